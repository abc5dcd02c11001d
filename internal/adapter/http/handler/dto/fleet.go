package dto

type VehicleRequest struct {
	Name        string   `json:"name"`
	VehicleType string   `json:"vehicle_type"`
	Seats       int      `json:"seats"`
	Bags        int      `json:"bags"`
	PricePerKm  float64  `json:"price_per_km"`
	Tags        []string `json:"tags,omitempty"`
	Active      *bool    `json:"active,omitempty"`
}
