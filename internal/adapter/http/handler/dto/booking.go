package dto

// BookingRequest carries the customer and trip details for a new booking.
// The quoted vehicle and price come from a prior quote call.
type BookingRequest struct {
	CustomerName  string  `json:"customer_name"`
	CustomerPhone string  `json:"customer_phone"`
	CustomerEmail string  `json:"customer_email,omitempty"`
	RideType      string  `json:"ride_type"`
	From          string  `json:"from"`
	To            string  `json:"to"`
	PickupDate    string  `json:"pickup_date"`
	ReturnDate    string  `json:"return_date,omitempty"`
	VehicleID     string  `json:"vehicle_id"`
	DistanceKm    float64 `json:"distance_km"`
}

type AssignTaxiRequest struct {
	DriverName   string `json:"driver_name"`
	DriverNumber string `json:"driver_number"`
	CabName      string `json:"cab_name"`
	CabNumber    string `json:"cab_number"`

	// MarkAssigned confirms the customer has been notified of the
	// assignment. Without it the request is rejected.
	MarkAssigned bool `json:"mark_assigned"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type CompleteRequest struct {
	ActualKm    float64 `json:"actual_km"`
	TollCharges int64   `json:"toll_charges"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type NoteRequest struct {
	Text string `json:"text"`
}
