package geocode

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/pkg/cache"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/metrics"
)

const (
	cacheTTL = 24 * time.Hour

	// Nominatim usage policy allows at most one request per second.
	// We keep a shared 700ms spacing between outbound calls.
	minCallSpacing = 700 * time.Millisecond
)

// Service resolves addresses with a two-tier cache in front of the upstream
// geocoder and a shared rate gate on outbound calls.
type Service struct {
	geocoder Geocoder
	cache    *cache.Tiered[models.Location]
	l        logger.Logger

	gateMu   sync.Mutex
	lastCall time.Time
	now      func() time.Time
	sleep    func(time.Duration)
}

type Option func(*Service)

// WithClock overrides the time source and sleeper of the rate gate.
func WithClock(now func() time.Time, sleep func(time.Duration)) Option {
	return func(s *Service) {
		s.now = now
		s.sleep = sleep
	}
}

func New(geocoder Geocoder, store cache.Store, l logger.Logger, opts ...Option) *Service {
	var cacheOpts []cache.Option[models.Location]
	if store != nil {
		cacheOpts = append(cacheOpts, cache.WithStore[models.Location](store, "geo_"))
	}

	s := &Service{
		geocoder: geocoder,
		cache:    cache.NewTiered(cacheTTL, cacheOpts...),
		l:        l,
		now:      time.Now,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Normalize produces the cache key form of an address. Display text keeps
// the original casing.
func Normalize(address string) string {
	return strings.ToLower(strings.TrimSpace(address))
}

// Resolve geocodes an address, consulting the cache first. Within the TTL a
// repeated address never reaches the network.
func (s *Service) Resolve(ctx context.Context, address string) (models.Location, error) {
	key := Normalize(address)

	if loc, ok := s.cache.Get(ctx, key); ok {
		metrics.GeocodeLookupsTotal.WithLabelValues("booking-system", "hit").Inc()
		return loc, nil
	}

	s.waitForGate()

	loc, err := s.geocoder.Search(ctx, address)
	if err != nil {
		metrics.GeocodeLookupsTotal.WithLabelValues("booking-system", "miss").Inc()
		return models.Location{}, err
	}
	metrics.GeocodeLookupsTotal.WithLabelValues("booking-system", "network").Inc()

	s.cache.Put(ctx, key, loc)

	return loc, nil
}

// waitForGate enforces the shared spacing between outbound geocode calls.
// Callers are delayed, never dropped.
func (s *Service) waitForGate() {
	s.gateMu.Lock()
	defer s.gateMu.Unlock()

	elapsed := s.now().Sub(s.lastCall)
	if !s.lastCall.IsZero() && elapsed < minCallSpacing {
		s.sleep(minCallSpacing - elapsed)
	}
	s.lastCall = s.now()
}
