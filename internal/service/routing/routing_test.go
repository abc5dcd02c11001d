package routing

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
)

var (
	delhi  = models.Location{Lat: 28.6139, Lng: 77.2090, FormattedAddress: "Delhi, India"}
	mumbai = models.Location{Lat: 19.0760, Lng: 72.8777, FormattedAddress: "Mumbai, India"}
)

type fakeResolver struct {
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, address string) (models.Location, error) {
	f.calls++
	switch address {
	case "Delhi":
		return delhi, nil
	case "Mumbai":
		return mumbai, nil
	default:
		return models.Location{}, types.ErrLocationNotFound
	}
}

type fakeRouter struct {
	calls   int
	metrics models.RouteMetrics
	err     error
}

func (f *fakeRouter) FetchRoute(_ context.Context, _, _ models.Location) (models.RouteMetrics, error) {
	f.calls++
	if f.err != nil {
		return models.RouteMetrics{}, f.err
	}
	return f.metrics, nil
}

func testLogger() logger.Logger {
	return logger.InitLogger("test", logger.LevelError)
}

func TestDistanceAndDuration_CachesWithinTTL(t *testing.T) {
	resolver := &fakeResolver{}
	router := &fakeRouter{metrics: models.RouteMetrics{DistanceKm: 1421.3, DurationMin: 1122}}
	s := New(resolver, router, nil, testLogger())

	for i := 0; i < 3; i++ {
		m, err := s.DistanceAndDuration(context.Background(), "Delhi", "Mumbai")
		if err != nil {
			t.Fatalf("DistanceAndDuration: %v", err)
		}
		if m.DistanceKm != 1421.3 {
			t.Fatalf("DistanceKm = %v, want 1421.3", m.DistanceKm)
		}
	}

	if router.calls != 1 {
		t.Errorf("router called %d times, want 1", router.calls)
	}
	if resolver.calls != 2 {
		t.Errorf("resolver called %d times, want 2", resolver.calls)
	}
}

func TestDistanceAndDuration_DirectionSensitive(t *testing.T) {
	resolver := &fakeResolver{}
	router := &fakeRouter{metrics: models.RouteMetrics{DistanceKm: 1421.3, DurationMin: 1122}}
	s := New(resolver, router, nil, testLogger())

	if _, err := s.DistanceAndDuration(context.Background(), "Delhi", "Mumbai"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.DistanceAndDuration(context.Background(), "Mumbai", "Delhi"); err != nil {
		t.Fatal(err)
	}

	if router.calls != 2 {
		t.Errorf("router called %d times for opposite directions, want 2", router.calls)
	}
}

func TestDistanceAndDuration_TTLExpiry(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	resolver := &fakeResolver{}
	router := &fakeRouter{metrics: models.RouteMetrics{DistanceKm: 1421.3, DurationMin: 1122}}
	s := New(resolver, router, nil, testLogger(), WithClock(func() time.Time { return now }))

	if _, err := s.DistanceAndDuration(context.Background(), "Delhi", "Mumbai"); err != nil {
		t.Fatal(err)
	}

	now = now.Add(11 * time.Hour)
	if _, err := s.DistanceAndDuration(context.Background(), "Delhi", "Mumbai"); err != nil {
		t.Fatal(err)
	}
	if router.calls != 1 {
		t.Fatalf("router called %d times inside TTL, want 1", router.calls)
	}

	now = now.Add(2 * time.Hour)
	if _, err := s.DistanceAndDuration(context.Background(), "Delhi", "Mumbai"); err != nil {
		t.Fatal(err)
	}
	if router.calls != 2 {
		t.Errorf("router called %d times after TTL expiry, want 2", router.calls)
	}
}

func TestFetchRoute_FallbackEstimate(t *testing.T) {
	resolver := &fakeResolver{}
	router := &fakeRouter{err: types.ErrRouteNotFound}
	s := New(resolver, router, nil, testLogger())

	m, err := s.FetchRoute(context.Background(), delhi, mumbai)
	if err != nil {
		t.Fatalf("FetchRoute: %v", err)
	}

	if !m.IsEstimate {
		t.Error("fallback metrics not marked as estimate")
	}
	// Great-circle Delhi to Mumbai is roughly 1150 km.
	if m.DistanceKm < 1150 || m.DistanceKm > 1160 {
		t.Errorf("DistanceKm = %v, want within [1150, 1160]", m.DistanceKm)
	}

	wantMin := int(math.Round(m.DistanceKm / 45 * 60))
	if m.DurationMin != wantMin {
		t.Errorf("DurationMin = %d, want %d", m.DurationMin, wantMin)
	}

	if got := m.DistanceText(); got[len(got)-len(" (est.)"):] != " (est.)" {
		t.Errorf("DistanceText %q missing (est.) suffix", got)
	}
	if got := m.DurationText(); got[len(got)-len(" (est.)"):] != " (est.)" {
		t.Errorf("DurationText %q missing (est.) suffix", got)
	}
}

func TestFetchRoute_FallbackFloors(t *testing.T) {
	a := models.Location{Lat: 28.6139, Lng: 77.2090}
	b := models.Location{Lat: 28.6141, Lng: 77.2092} // a few hundred meters away

	router := &fakeRouter{err: types.ErrRouteNotFound}
	s := New(&fakeResolver{}, router, nil, testLogger())

	m, err := s.FetchRoute(context.Background(), a, b)
	if err != nil {
		t.Fatalf("FetchRoute: %v", err)
	}

	if m.DistanceKm != 1.0 {
		t.Errorf("DistanceKm = %v, want 1 km floor", m.DistanceKm)
	}
	if m.DurationMin != 15 {
		t.Errorf("DurationMin = %d, want 15 min floor", m.DurationMin)
	}
}
