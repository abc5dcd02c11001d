package fare

import (
	"reflect"
	"testing"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

func testVehicle(pricePerKm float64) *models.Vehicle {
	return &models.Vehicle{
		ID:         uuid.New(),
		Name:       "Sedan",
		PricePerKm: pricePerKm,
		Active:     true,
	}
}

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestQuote_OnewayMinimum(t *testing.T) {
	c := New()
	pickup := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		distanceKm float64
		wantKm     float64
		wantTotal  int64
	}{
		{"short trip pays the minimum", 120, 300, 300 * 12},
		{"long trip pays actual distance", 450, 450, 450 * 12},
		{"exactly the minimum", 300, 300, 300 * 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := c.Quote(testVehicle(12), models.RouteMetrics{DistanceKm: tt.distanceKm}, types.RideOneway, pickup, nil)
			if q.BillableKm != tt.wantKm {
				t.Errorf("BillableKm = %v, want %v", q.BillableKm, tt.wantKm)
			}
			if q.TotalPrice != tt.wantTotal {
				t.Errorf("TotalPrice = %d, want %d", q.TotalPrice, tt.wantTotal)
			}
		})
	}
}

func TestQuote_AirportSameAsOneway(t *testing.T) {
	c := New()
	pickup := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	metrics := models.RouteMetrics{DistanceKm: 42.5}

	oneway := c.Quote(testVehicle(15), metrics, types.RideOneway, pickup, nil)
	airport := c.Quote(testVehicle(15), metrics, types.RideAirport, pickup, nil)

	if oneway.TotalPrice != airport.TotalPrice {
		t.Errorf("airport price %d differs from oneway price %d", airport.TotalPrice, oneway.TotalPrice)
	}
}

func TestQuote_Roundtrip(t *testing.T) {
	c := New()
	pickup := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		distanceKm float64
		returnDate *time.Time
		wantDays   int
		wantKm     float64
	}{
		{"same day short trip bills one day minimum", 100, datePtr(pickup), 1, 300},
		{"missing return date counts as one day", 100, nil, 1, 300},
		{"three day trip bills three day minimum", 50, datePtr(pickup.AddDate(0, 0, 2)), 3, 900},
		{"long trip bills doubled distance", 800, datePtr(pickup), 1, 1600},
		{"return before pickup clamps to one day", 50, datePtr(pickup.AddDate(0, 0, -4)), 1, 300},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := c.Quote(testVehicle(10), models.RouteMetrics{DistanceKm: tt.distanceKm}, types.RideRoundtrip, pickup, tt.returnDate)
			if q.Days != tt.wantDays {
				t.Errorf("Days = %d, want %d", q.Days, tt.wantDays)
			}
			if q.BillableKm != tt.wantKm {
				t.Errorf("BillableKm = %v, want %v", q.BillableKm, tt.wantKm)
			}
		})
	}
}

func TestQuote_UnknownRideTypeBillsNothing(t *testing.T) {
	c := New()
	q := c.Quote(testVehicle(12), models.RouteMetrics{DistanceKm: 500}, types.RideType("LUNAR"), time.Now(), nil)

	if q.BillableKm != 0 || q.TotalPrice != 0 {
		t.Errorf("unknown ride type: BillableKm = %v, TotalPrice = %d, want zero quote", q.BillableKm, q.TotalPrice)
	}
}

func TestQuote_Deterministic(t *testing.T) {
	c := New()
	pickup := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)
	v := testVehicle(13)
	metrics := models.RouteMetrics{DistanceKm: 1154}

	first := c.Quote(v, metrics, types.RideOneway, pickup, nil)
	for i := 0; i < 5; i++ {
		again := c.Quote(v, metrics, types.RideOneway, pickup, nil)
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("quote not deterministic: %+v vs %+v", again, first)
		}
	}
}

func TestQuote_DerivedDisplayPrice(t *testing.T) {
	c := New()
	pickup := time.Date(2025, 3, 10, 6, 0, 0, 0, time.UTC)

	// Delhi to Mumbai at 13/km: 1154 km beats the 300 km minimum.
	q := c.Quote(testVehicle(13), models.RouteMetrics{DistanceKm: 1154}, types.RideOneway, pickup, nil)

	if want := int64(15002); q.TotalPrice != want {
		t.Errorf("TotalPrice = %d, want %d", q.TotalPrice, want)
	}
	if want := int64(17252); q.OriginalPrice() != want {
		t.Errorf("OriginalPrice = %d, want %d", q.OriginalPrice(), want)
	}
	if q.DiscountPercent() != 13 {
		t.Errorf("DiscountPercent = %d, want 13", q.DiscountPercent())
	}
}
