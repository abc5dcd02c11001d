package routing

import (
	"context"

	"github.com/urbancabz/booking-system/internal/domain/models"
)

// Router fetches driving metrics between two resolved locations.
type Router interface {
	FetchRoute(ctx context.Context, from, to models.Location) (models.RouteMetrics, error)
}

// Resolver turns a free-text address into coordinates.
type Resolver interface {
	Resolve(ctx context.Context, address string) (models.Location, error)
}
