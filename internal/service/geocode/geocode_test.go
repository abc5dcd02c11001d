package geocode

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
)

type fakeGeocoder struct {
	calls     int
	locations map[string]models.Location
}

func (f *fakeGeocoder) Search(_ context.Context, address string) (models.Location, error) {
	f.calls++
	loc, ok := f.locations[Normalize(address)]
	if !ok {
		return models.Location{}, types.ErrLocationNotFound
	}
	return loc, nil
}

func newTestService(t *testing.T, g *fakeGeocoder) *Service {
	t.Helper()
	l := logger.InitLogger("test", logger.LevelError)
	// Clock stands still and sleep is a no-op so tests never wait on the gate.
	return New(g, nil, l, WithClock(func() time.Time { return time.Unix(0, 0) }, func(time.Duration) {}))
}

func TestResolve_CachesWithinTTL(t *testing.T) {
	delhi := models.Location{Lat: 28.6139, Lng: 77.2090, FormattedAddress: "Delhi, India"}
	g := &fakeGeocoder{locations: map[string]models.Location{"delhi": delhi}}
	s := newTestService(t, g)

	for i := 0; i < 3; i++ {
		got, err := s.Resolve(context.Background(), "Delhi")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if got != delhi {
			t.Fatalf("Resolve = %+v, want %+v", got, delhi)
		}
	}

	if g.calls != 1 {
		t.Errorf("upstream called %d times, want 1", g.calls)
	}
}

func TestResolve_NormalizesCacheKey(t *testing.T) {
	g := &fakeGeocoder{locations: map[string]models.Location{
		"delhi": {Lat: 28.6139, Lng: 77.2090},
	}}
	s := newTestService(t, g)

	variants := []string{"Delhi", "  delhi  ", "DELHI"}
	for _, v := range variants {
		if _, err := s.Resolve(context.Background(), v); err != nil {
			t.Fatalf("Resolve(%q): %v", v, err)
		}
	}

	if g.calls != 1 {
		t.Errorf("upstream called %d times for equivalent addresses, want 1", g.calls)
	}
}

func TestResolve_NotFound(t *testing.T) {
	g := &fakeGeocoder{locations: map[string]models.Location{}}
	s := newTestService(t, g)

	_, err := s.Resolve(context.Background(), "nowhere at all")
	if !errors.Is(err, types.ErrLocationNotFound) {
		t.Errorf("Resolve error = %v, want ErrLocationNotFound", err)
	}

	// Failures are not cached, the next call hits upstream again.
	_, _ = s.Resolve(context.Background(), "nowhere at all")
	if g.calls != 2 {
		t.Errorf("upstream called %d times, want 2", g.calls)
	}
}

func TestResolve_RateGateSpacesCalls(t *testing.T) {
	g := &fakeGeocoder{locations: map[string]models.Location{
		"a": {Lat: 1}, "b": {Lat: 2},
	}}

	now := time.Unix(1000, 0)
	var slept []time.Duration
	s := New(g, nil, logger.InitLogger("test", logger.LevelError), WithClock(
		func() time.Time { return now },
		func(d time.Duration) { slept = append(slept, d); now = now.Add(d) },
	))

	// Two distinct misses back to back: the second must wait out the gate.
	if _, err := s.Resolve(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Resolve(context.Background(), "b"); err != nil {
		t.Fatal(err)
	}

	if len(slept) != 1 || slept[0] != 700*time.Millisecond {
		t.Errorf("slept = %v, want one 700ms wait", slept)
	}

	// A cache hit never touches the gate.
	slept = nil
	if _, err := s.Resolve(context.Background(), "a"); err != nil {
		t.Fatal(err)
	}
	if len(slept) != 0 {
		t.Errorf("cache hit slept %v, want no waits", slept)
	}
}
