package routing

import (
	"context"
	"fmt"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/service/geocode"
	"github.com/urbancabz/booking-system/pkg/cache"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/metrics"
)

const cacheTTL = 12 * time.Hour

// Service computes driving metrics between two addresses: geocode both ends,
// route them, fall back to a straight-line estimate when routing fails.
// Results are cached per direction-sensitive address pair.
type Service struct {
	resolver Resolver
	router   Router
	cache    *cache.Tiered[models.RouteMetrics]
	l        logger.Logger

	clockOverride func() time.Time
}

type Option func(*Service)

// WithClock overrides the cache time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.clockOverride = now
	}
}

func New(resolver Resolver, router Router, store cache.Store, l logger.Logger, opts ...Option) *Service {
	s := &Service{
		resolver: resolver,
		router:   router,
		l:        l,
	}
	for _, opt := range opts {
		opt(s)
	}

	cacheOpts := []cache.Option[models.RouteMetrics]{}
	if store != nil {
		cacheOpts = append(cacheOpts, cache.WithStore[models.RouteMetrics](store, "route_"))
	}
	if s.clockOverride != nil {
		cacheOpts = append(cacheOpts, cache.WithClock[models.RouteMetrics](s.clockOverride))
	}
	s.cache = cache.NewTiered(cacheTTL, cacheOpts...)

	return s
}

func cacheKey(fromAddr, toAddr string) string {
	return fmt.Sprintf("%s_%s", geocode.Normalize(fromAddr), geocode.Normalize(toAddr))
}

// DistanceAndDuration returns metrics for the trip between two addresses.
// An estimated result is cached the same as a routed one.
func (s *Service) DistanceAndDuration(ctx context.Context, fromAddr, toAddr string) (models.RouteMetrics, error) {
	key := cacheKey(fromAddr, toAddr)

	if m, ok := s.cache.Get(ctx, key); ok {
		metrics.RouteLookupsTotal.WithLabelValues("booking-system", "hit").Inc()
		return m, nil
	}

	from, err := s.resolver.Resolve(ctx, fromAddr)
	if err != nil {
		return models.RouteMetrics{}, err
	}
	to, err := s.resolver.Resolve(ctx, toAddr)
	if err != nil {
		return models.RouteMetrics{}, err
	}

	m, err := s.FetchRoute(ctx, from, to)
	if err != nil {
		return models.RouteMetrics{}, err
	}

	s.cache.Put(ctx, key, m)

	return m, nil
}

// FetchRoute routes two resolved locations. When the router has no route the
// coordinates are already known, so a straight-line estimate is returned
// instead of an error.
func (s *Service) FetchRoute(ctx context.Context, from, to models.Location) (models.RouteMetrics, error) {
	m, err := s.router.FetchRoute(ctx, from, to)
	if err != nil {
		s.l.Warn(ctx, "routing failed, falling back to straight-line estimate",
			"from", from.FormattedAddress,
			"to", to.FormattedAddress,
			"err", err.Error(),
		)
		metrics.RouteLookupsTotal.WithLabelValues("booking-system", "fallback").Inc()
		return estimate(from, to), nil
	}

	metrics.RouteLookupsTotal.WithLabelValues("booking-system", "network").Inc()
	return m, nil
}
