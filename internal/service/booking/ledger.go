package booking

import (
	"context"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

// Balance computes the ledger position of a booking. Paid sums every settled
// entry; due never goes below zero even when payments exceed the total after
// a completion true-up lowered it.
func (s *Service) Balance(ctx context.Context, bookingID uuid.UUID) (models.Balance, error) {
	b, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return models.Balance{}, err
	}

	payments, err := s.bookingRepo.ListPayments(ctx, bookingID)
	if err != nil {
		return models.Balance{}, err
	}

	return computeBalance(b.TotalAmount, payments), nil
}

func computeBalance(total int64, payments []*models.Payment) models.Balance {
	var paid int64
	for _, p := range payments {
		if p.Status.Settled() {
			paid += p.Amount
		}
	}

	due := total - paid
	if due < 0 {
		due = 0
	}

	return models.Balance{
		Total: total,
		Paid:  paid,
		Due:   due,
	}
}

// Payments returns the full append-only ledger of a booking.
func (s *Service) Payments(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error) {
	if _, err := s.bookingRepo.Get(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.bookingRepo.ListPayments(ctx, bookingID)
}
