package models

import (
	"math"

	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

// Quote is a priced offer for one vehicle on one trip. Prices are whole
// rupees. The struck-through price and discount badge are derived on read,
// never stored.
type Quote struct {
	VehicleID   uuid.UUID      `json:"vehicle_id"`
	VehicleName string         `json:"vehicle_name"`
	RideType    types.RideType `json:"ride_type"`

	Metrics    RouteMetrics `json:"metrics"`
	Days       int          `json:"days,omitempty"`
	BillableKm float64      `json:"billable_km"`
	PricePerKm float64      `json:"price_per_km"`
	TotalPrice int64        `json:"total_price"`
}

// OriginalPrice is the pre-discount display price.
func (q Quote) OriginalPrice() int64 {
	return int64(math.Round(float64(q.TotalPrice) * 1.15))
}

// DiscountPercent is the flat badge shown next to OriginalPrice.
func (q Quote) DiscountPercent() int {
	return 13
}
