package booking

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
	"github.com/urbancabz/booking-system/pkg/metrics"
	"github.com/urbancabz/booking-system/pkg/trm"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

// Service owns the booking lifecycle. All guard failures are validation
// errors raised before any storage mutation.
type Service struct {
	bookingRepo BookingRepository
	noteRepo    NoteRepository
	fleetRepo   FleetRepository
	notifier    Notifier
	trm         trm.TxManager
	l           logger.Logger
}

func New(bookingRepo BookingRepository, noteRepo NoteRepository, fleetRepo FleetRepository, notifier Notifier, txManager trm.TxManager, l logger.Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		noteRepo:    noteRepo,
		fleetRepo:   fleetRepo,
		notifier:    notifier,
		trm:         txManager,
		l:           l,
	}
}

// generateBookingNumber builds a human-readable booking number like
// UC-20250310-0042 from the creation date and that day's booking count.
func (s *Service) generateBookingNumber(ctx context.Context) (string, error) {
	now := time.Now()
	count, err := s.bookingRepo.CountByDate(ctx, now)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("UC-%s-%04d", now.Format("20060102"), count+1), nil
}

// Create inserts a new booking in PENDING_PAYMENT with NOT_ASSIGNED taxi
// status. The quoted total comes from the fare calculator upstream.
func (s *Service) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	ctx = wrap.WithAction(ctx, "booking_create")

	if _, err := s.fleetRepo.Get(ctx, b.VehicleID); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	b.Status = types.StatusPendingPayment
	b.AssignStatus = types.AssignNotAssigned

	err := s.trm.Do(ctx, func(ctx context.Context) error {
		number, err := s.generateBookingNumber(ctx)
		if err != nil {
			return err
		}
		b.BookingNumber = number

		_, err = s.bookingRepo.Create(ctx, b)
		return err
	})
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingsTotal.WithLabelValues("booking-system", b.Status.String()).Inc()
	s.publish(ctx, b, types.EventBookingCreated, "", b.Status)

	return b, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return s.bookingRepo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, statuses []types.BookingStatus, filters models.Filters) ([]*models.Booking, models.Metadata, error) {
	return s.bookingRepo.List(ctx, statuses, filters)
}

// ListCompleted returns the completed-trips history.
func (s *Service) ListCompleted(ctx context.Context, filters models.Filters) ([]*models.Booking, models.Metadata, error) {
	return s.bookingRepo.List(ctx, []types.BookingStatus{types.StatusCompleted}, filters)
}

// ListCancelled returns the cancelled-bookings history.
func (s *Service) ListCancelled(ctx context.Context, filters models.Filters) ([]*models.Booking, models.Metadata, error) {
	return s.bookingRepo.List(ctx, []types.BookingStatus{types.StatusCancelled}, filters)
}

// ListPendingPayments returns bookings still awaiting payment.
func (s *Service) ListPendingPayments(ctx context.Context, filters models.Filters) ([]*models.Booking, models.Metadata, error) {
	return s.bookingRepo.List(ctx, []types.BookingStatus{types.StatusPendingPayment}, filters)
}

// AssignTaxi records the taxi assignment for a PAID booking. The caller must
// confirm the customer has been notified; without that confirmation nothing
// is written. Re-assigning replaces the current assignment.
func (s *Service) AssignTaxi(ctx context.Context, bookingID uuid.UUID, assignment models.Assignment, customerNotified bool) (*models.Booking, error) {
	ctx = wrap.WithBookingID(ctx, bookingID.String())
	ctx = wrap.WithAction(ctx, "booking_assign_taxi")

	if !customerNotified {
		return nil, wrap.Error(ctx, types.ErrCustomerNotNotified)
	}

	b, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	if b.Status != types.StatusPaid && b.Status != types.StatusInProgress {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: cannot assign taxi in status %s", types.ErrInvalidTransition, b.Status))
	}

	assignment.BookingID = bookingID

	err = s.trm.Do(ctx, func(ctx context.Context) error {
		if err := s.bookingRepo.UpsertAssignment(ctx, &assignment); err != nil {
			return err
		}
		b.AssignStatus = types.AssignAssigned
		return s.bookingRepo.Update(ctx, b)
	})
	if err != nil {
		ctx = wrap.WithAction(ctx, types.ActionDatabaseTransactionFailed)
		return nil, wrap.Error(ctx, err)
	}
	b.Assignment = &assignment

	s.publish(ctx, b, types.EventTaxiAssigned, b.Status, b.Status)

	return b, nil
}

// UpdateStatus moves a booking along the state machine. Illegal transitions
// are rejected before any mutation.
func (s *Service) UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus types.BookingStatus) (*models.Booking, error) {
	ctx = wrap.WithBookingID(ctx, bookingID.String())
	ctx = wrap.WithAction(ctx, "booking_update_status")

	b, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if !canTransition(b.Status, newStatus) {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, b.Status, newStatus))
	}

	oldStatus := b.Status
	b.Status = newStatus

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingsTotal.WithLabelValues("booking-system", newStatus.String()).Inc()
	s.publish(ctx, b, types.EventStatusChanged, oldStatus, newStatus)

	return b, nil
}

// Complete finishes an IN_PROGRESS trip with the actual odometer reading and
// toll charges. Extra kilometers beyond the quoted distance are billed at the
// vehicle per-km rate, tolls are added verbatim, and the new total overwrites
// the quoted one.
func (s *Service) Complete(ctx context.Context, bookingID uuid.UUID, actualKm float64, tollCharges int64) (*models.Booking, error) {
	ctx = wrap.WithBookingID(ctx, bookingID.String())
	ctx = wrap.WithAction(ctx, "booking_complete")

	b, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if !canTransition(b.Status, types.StatusCompleted) {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, b.Status, types.StatusCompleted))
	}

	extraKm := math.Max(0, actualKm-b.DistanceKm)
	extraCharge := int64(math.Round(extraKm * b.PricePerKm))

	oldStatus := b.Status
	now := time.Now()

	b.Status = types.StatusCompleted
	b.ActualKm = &actualKm
	b.TollCharges = &tollCharges
	b.ExtraCharge = &extraCharge
	b.TotalAmount = b.TotalAmount + extraCharge + tollCharges
	b.CompletedAt = &now

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingsTotal.WithLabelValues("booking-system", b.Status.String()).Inc()
	s.publish(ctx, b, types.EventBookingCompleted, oldStatus, b.Status)

	return b, nil
}

// Cancel terminates a non-terminal booking. The reason is mandatory and must
// not be blank; a rejected cancel leaves the booking untouched.
func (s *Service) Cancel(ctx context.Context, bookingID uuid.UUID, reason string) (*models.Booking, error) {
	ctx = wrap.WithBookingID(ctx, bookingID.String())
	ctx = wrap.WithAction(ctx, "booking_cancel")

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, wrap.Error(ctx, types.ErrBlankCancellationReason)
	}

	b, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	if !canTransition(b.Status, types.StatusCancelled) {
		return nil, wrap.Error(ctx, fmt.Errorf("%w: %s -> %s", types.ErrInvalidTransition, b.Status, types.StatusCancelled))
	}

	oldStatus := b.Status
	now := time.Now()

	b.Status = types.StatusCancelled
	b.CancellationReason = &reason
	b.CancelledAt = &now

	if err := s.bookingRepo.Update(ctx, b); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	metrics.BookingsTotal.WithLabelValues("booking-system", b.Status.String()).Inc()
	s.publish(ctx, b, types.EventBookingCancelled, oldStatus, b.Status)

	return b, nil
}

/* ================= Notes ================= */

func (s *Service) AddNote(ctx context.Context, bookingID uuid.UUID, author, text string) (*models.Note, error) {
	ctx = wrap.WithBookingID(ctx, bookingID.String())

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, wrap.Error(ctx, fmt.Errorf("note text must not be blank"))
	}

	note := &models.Note{
		BookingID: bookingID,
		Author:    author,
		Text:      text,
	}
	return s.noteRepo.Create(ctx, note)
}

func (s *Service) ListNotes(ctx context.Context, bookingID uuid.UUID) ([]*models.Note, error) {
	if _, err := s.bookingRepo.Get(ctx, bookingID); err != nil {
		return nil, err
	}
	return s.noteRepo.ListByBooking(ctx, bookingID)
}

func (s *Service) publish(ctx context.Context, b *models.Booking, eventType types.BookingEventType, oldStatus, newStatus types.BookingStatus) {
	if s.notifier == nil {
		return
	}

	event := models.BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		BookingNumber: b.BookingNumber,
		OldStatus:     oldStatus,
		NewStatus:     newStatus,
		OccurredAt:    time.Now(),
	}

	// Event delivery is best-effort, a failed publish never fails the
	// booking operation itself.
	if err := s.notifier.PublishBookingEvent(ctx, event); err != nil {
		s.l.Warn(ctx, "failed to publish booking event",
			"event_type", eventType.String(),
			"booking_id", b.ID,
			"err", err.Error(),
		)
	}
}
