package payment

import (
	"context"

	"github.com/urbancabz/booking-system/internal/adapter/razorpay"
	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

// Gateway creates checkout orders with the payment provider.
type Gateway interface {
	KeyID() string
	CreateOrder(ctx context.Context, amountRupees int64, receipt string) (razorpay.Order, error)
}

// BookingCreator owns booking creation and the lifecycle transition to PAID.
type BookingCreator interface {
	Create(ctx context.Context, b *models.Booking) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus types.BookingStatus) (*models.Booking, error)
}

// LedgerRepository gives access to the payment ledger.
type LedgerRepository interface {
	AppendPayment(ctx context.Context, p *models.Payment) error
	GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error)
}
