package booking

import (
	"context"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type BookingRepository interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, statuses []types.BookingStatus, filters models.Filters) ([]*models.Booking, models.Metadata, error)
	Update(ctx context.Context, b *models.Booking) error
	CountByDate(ctx context.Context, date time.Time) (int, error)
	UpsertAssignment(ctx context.Context, a *models.Assignment) error
	AppendPayment(ctx context.Context, p *models.Payment) error
	ListPayments(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error)
}

type NoteRepository interface {
	Create(ctx context.Context, n *models.Note) (*models.Note, error)
	ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.Note, error)
}

type FleetRepository interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
}

// Notifier fans booking lifecycle events out to interested consumers.
type Notifier interface {
	PublishBookingEvent(ctx context.Context, event models.BookingEvent) error
}
