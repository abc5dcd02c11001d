package fare

import (
	"math"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
)

// MinKmPerDay is the minimum billable distance per rental day. Short trips
// pay for the minimum, long trips pay actual distance.
const MinKmPerDay = 300.0

// Calculator prices trips. Pure, no IO.
type Calculator struct{}

func New() *Calculator {
	return &Calculator{}
}

// Days returns the number of billable days for a round trip. Same-day trips
// count as one day, each started day after pickup adds one. A return date
// before pickup is rejected at the request boundary; here it clamps to one
// day rather than inflating the bill.
func (c *Calculator) Days(pickupDate time.Time, returnDate *time.Time) int {
	if returnDate == nil || pickupDate.IsZero() || returnDate.IsZero() {
		return 1
	}
	diff := returnDate.Sub(pickupDate).Hours() / 24
	days := int(math.Ceil(diff)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// BillableKm applies the per-day minimum to the measured distance.
// Unknown ride types bill zero kilometers.
func (c *Calculator) BillableKm(rideType types.RideType, distanceKm float64, days int) float64 {
	switch rideType {
	case types.RideAirport, types.RideOneway:
		return math.Max(MinKmPerDay, distanceKm)
	case types.RideRoundtrip:
		return math.Max(MinKmPerDay*float64(days), distanceKm*2)
	default:
		return 0
	}
}

// Quote prices one vehicle for one trip. Total is rounded to whole rupees.
func (c *Calculator) Quote(vehicle *models.Vehicle, metrics models.RouteMetrics, rideType types.RideType, pickupDate time.Time, returnDate *time.Time) models.Quote {
	days := 0
	if rideType == types.RideRoundtrip {
		days = c.Days(pickupDate, returnDate)
	}

	billable := c.BillableKm(rideType, metrics.DistanceKm, days)
	total := int64(math.Round(billable * vehicle.PricePerKm))

	return models.Quote{
		VehicleID:   vehicle.ID,
		VehicleName: vehicle.Name,
		RideType:    rideType,
		Metrics:     metrics,
		Days:        days,
		BillableKm:  billable,
		PricePerKm:  vehicle.PricePerKm,
		TotalPrice:  total,
	}
}
