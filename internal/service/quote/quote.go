package quote

import (
	"context"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/internal/service/fare"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/metrics"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

// RouteProvider measures the trip between two addresses.
type RouteProvider interface {
	DistanceAndDuration(ctx context.Context, fromAddr, toAddr string) (models.RouteMetrics, error)
}

// FleetCatalog lists vehicles offered to customers.
type FleetCatalog interface {
	ListActive(ctx context.Context) ([]*models.Vehicle, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}

// Service prices a trip across the whole active fleet.
type Service struct {
	routes RouteProvider
	fleet  FleetCatalog
	fare   *fare.Calculator
	l      logger.Logger
}

func New(routes RouteProvider, fleet FleetCatalog, calc *fare.Calculator, l logger.Logger) *Service {
	return &Service{
		routes: routes,
		fleet:  fleet,
		fare:   calc,
		l:      l,
	}
}

// Result is one quoted trip with per-vehicle prices.
type Result struct {
	Metrics  models.RouteMetrics `json:"metrics"`
	Distance string              `json:"distance_text"`
	Duration string              `json:"duration_text"`
	Quotes   []models.Quote      `json:"quotes"`
}

// QuoteTrip measures the route once and prices every active vehicle for it.
func (s *Service) QuoteTrip(ctx context.Context, fromAddr, toAddr string, rideType types.RideType, pickupDate time.Time, returnDate *time.Time) (*Result, error) {
	m, err := s.routes.DistanceAndDuration(ctx, fromAddr, toAddr)
	if err != nil {
		return nil, err
	}

	vehicles, err := s.fleet.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	quotes := make([]models.Quote, 0, len(vehicles))
	for _, v := range vehicles {
		quotes = append(quotes, s.fare.Quote(v, m, rideType, pickupDate, returnDate))
	}

	metrics.QuotesTotal.WithLabelValues("booking-system", rideType.String()).Inc()

	return &Result{
		Metrics:  m,
		Distance: m.DistanceText(),
		Duration: m.DurationText(),
		Quotes:   quotes,
	}, nil
}

// PriceBooking measures the trip and prices the selected vehicle, producing
// a booking with a server-authoritative total. Client-supplied prices are
// never trusted.
func (s *Service) PriceBooking(ctx context.Context, b *models.Booking, fromAddr, toAddr string) (*models.Booking, error) {
	vehicle, err := s.fleet.Get(ctx, b.VehicleID)
	if err != nil {
		return nil, err
	}

	m, err := s.routes.DistanceAndDuration(ctx, fromAddr, toAddr)
	if err != nil {
		return nil, err
	}

	q := s.fare.Quote(vehicle, m, b.RideType, b.PickupDate, b.ReturnDate)

	b.VehicleName = vehicle.Name
	b.DistanceKm = m.DistanceKm
	b.PricePerKm = vehicle.PricePerKm
	b.TotalAmount = q.TotalPrice

	return b, nil
}
