package dto

// QuoteRequest prices a trip for every active vehicle.
type QuoteRequest struct {
	From       string `json:"from"`
	To         string `json:"to"`
	RideType   string `json:"ride_type"`
	PickupDate string `json:"pickup_date"`           // YYYY-MM-DD
	ReturnDate string `json:"return_date,omitempty"` // YYYY-MM-DD, roundtrip only
}
