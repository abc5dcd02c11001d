package routing

import (
	"math"

	"github.com/urbancabz/booking-system/internal/domain/models"
)

const (
	earthRadiusKm = 6371

	// Assumed highway speed for estimated durations.
	fallbackSpeedKmh = 45

	minFallbackKm  = 1.0
	minFallbackMin = 15
)

// haversineKm is the great-circle distance between two points in kilometers.
func haversineKm(from, to models.Location) float64 {
	lat1 := from.Lat * math.Pi / 180
	lat2 := to.Lat * math.Pi / 180
	dLat := (to.Lat - from.Lat) * math.Pi / 180
	dLng := (to.Lng - from.Lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	angle := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * angle
}

// estimate produces straight-line metrics when no routed path is available.
// Distance is rounded to one decimal and floored at 1 km; the duration
// assumes 45 km/h and is floored at 15 minutes.
func estimate(from, to models.Location) models.RouteMetrics {
	km := models.RoundKm(haversineKm(from, to))
	if km < minFallbackKm {
		km = minFallbackKm
	}

	minutes := int(math.Round(km / fallbackSpeedKmh * 60))
	if minutes < minFallbackMin {
		minutes = minFallbackMin
	}

	return models.RouteMetrics{
		DistanceKm:  km,
		DurationMin: minutes,
		Coordinates: [][]float64{{from.Lat, from.Lng}, {to.Lat, to.Lng}},
		IsEstimate:  true,
	}
}
