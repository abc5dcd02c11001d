package models

import (
	"time"

	"github.com/urbancabz/booking-system/pkg/uuid"
)

// Vehicle is a fleet catalog entry.
type Vehicle struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	VehicleType string    `json:"vehicle_type"`
	Seats       int       `json:"seats"`
	Bags        int       `json:"bags"`
	PricePerKm  float64   `json:"price_per_km"`
	Tags        []string  `json:"tags,omitempty"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitzero"`
}
