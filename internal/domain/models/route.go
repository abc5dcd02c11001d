package models

import (
	"fmt"
	"math"
)

// Location is a geocoded point on the map.
type Location struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	FormattedAddress string  `json:"formatted_address,omitempty"`
}

// RouteMetrics is the measured (or estimated) driving distance and duration
// between two locations.
type RouteMetrics struct {
	DistanceKm  float64 `json:"distance_km"`
	DurationMin int     `json:"duration_min"`

	// Coordinates is the routed path as [lat, lng] pairs for map
	// rendering. Estimated metrics carry only the two endpoints.
	Coordinates [][]float64 `json:"route_coordinates,omitempty"`

	// IsEstimate is set when the metrics come from a straight-line
	// approximation instead of a routed path.
	IsEstimate bool `json:"is_estimate,omitempty"`
}

// DistanceText renders the distance for display, e.g. "1154.3 km".
// Estimated metrics carry an "(est.)" suffix.
func (m RouteMetrics) DistanceText() string {
	s := fmt.Sprintf("%.1f km", m.DistanceKm)
	if m.IsEstimate {
		s += " (est.)"
	}
	return s
}

// DurationText renders the duration as "H hr M min" when an hour or longer,
// otherwise "M min". Estimated metrics carry an "(est.)" suffix.
func (m RouteMetrics) DurationText() string {
	var s string
	if m.DurationMin >= 60 {
		s = fmt.Sprintf("%d hr %d min", m.DurationMin/60, m.DurationMin%60)
	} else {
		s = fmt.Sprintf("%d min", m.DurationMin)
	}
	if m.IsEstimate {
		s += " (est.)"
	}
	return s
}

// RoundKm rounds a distance to one decimal place.
func RoundKm(km float64) float64 {
	return math.Round(km*10) / 10
}
