package geocode

import (
	"context"

	"github.com/urbancabz/booking-system/internal/domain/models"
)

// Geocoder resolves a free-text address to coordinates.
type Geocoder interface {
	Search(ctx context.Context, address string) (models.Location, error)
}
