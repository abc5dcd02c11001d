package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

/* ================= fakes ================= */

type fakeRepo struct {
	bookings    map[uuid.UUID]*models.Booking
	payments    map[uuid.UUID][]*models.Payment
	assignments map[uuid.UUID]*models.Assignment
	notes       map[uuid.UUID][]*models.Note
	updates     int
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		bookings:    make(map[uuid.UUID]*models.Booking),
		payments:    make(map[uuid.UUID][]*models.Payment),
		assignments: make(map[uuid.UUID]*models.Assignment),
		notes:       make(map[uuid.UUID][]*models.Note),
	}
}

func (f *fakeRepo) Create(_ context.Context, b *models.Booking) (*models.Booking, error) {
	b.ID = uuid.New()
	b.CreatedAt = time.Now()
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeRepo) Get(_ context.Context, id uuid.UUID) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, types.ErrBookingNotFound
	}
	copied := *b
	if a, ok := f.assignments[id]; ok {
		copied.Assignment = a
	}
	return &copied, nil
}

func (f *fakeRepo) List(_ context.Context, statuses []types.BookingStatus, _ models.Filters) ([]*models.Booking, models.Metadata, error) {
	var out []*models.Booking
	for _, b := range f.bookings {
		if len(statuses) == 0 {
			out = append(out, b)
			continue
		}
		for _, s := range statuses {
			if b.Status == s {
				out = append(out, b)
				break
			}
		}
	}
	return out, models.CalculateMetadata(len(out), 1, 20), nil
}

func (f *fakeRepo) Update(_ context.Context, b *models.Booking) error {
	if _, ok := f.bookings[b.ID]; !ok {
		return types.ErrBookingNotFound
	}
	copied := *b
	f.bookings[b.ID] = &copied
	f.updates++
	return nil
}

func (f *fakeRepo) CountByDate(_ context.Context, _ time.Time) (int, error) {
	return len(f.bookings), nil
}

func (f *fakeRepo) UpsertAssignment(_ context.Context, a *models.Assignment) error {
	a.AssignedAt = time.Now()
	copied := *a
	f.assignments[a.BookingID] = &copied
	return nil
}

func (f *fakeRepo) AppendPayment(_ context.Context, p *models.Payment) error {
	p.ID = uuid.New()
	p.CreatedAt = time.Now()
	f.payments[p.BookingID] = append(f.payments[p.BookingID], p)
	return nil
}

func (f *fakeRepo) ListPayments(_ context.Context, bookingID uuid.UUID) ([]*models.Payment, error) {
	return f.payments[bookingID], nil
}

type fakeNoteRepo struct {
	notes map[uuid.UUID][]*models.Note
}

func (f *fakeNoteRepo) Create(_ context.Context, n *models.Note) (*models.Note, error) {
	n.ID = uuid.New()
	n.CreatedAt = time.Now()
	f.notes[n.BookingID] = append(f.notes[n.BookingID], n)
	return n, nil
}

func (f *fakeNoteRepo) ListByBooking(_ context.Context, bookingID uuid.UUID) ([]*models.Note, error) {
	return f.notes[bookingID], nil
}

type fakeFleetRepo struct {
	vehicles map[uuid.UUID]*models.Vehicle
}

func (f *fakeFleetRepo) Get(_ context.Context, id uuid.UUID) (*models.Vehicle, error) {
	v, ok := f.vehicles[id]
	if !ok {
		return nil, types.ErrVehicleNotFound
	}
	return v, nil
}

type fakeNotifier struct {
	events []models.BookingEvent
}

func (f *fakeNotifier) PublishBookingEvent(_ context.Context, e models.BookingEvent) error {
	f.events = append(f.events, e)
	return nil
}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixture struct {
	svc      *Service
	repo     *fakeRepo
	notifier *fakeNotifier
	vehicle  *models.Vehicle
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	vehicle := &models.Vehicle{
		ID:         uuid.New(),
		Name:       "Sedan",
		PricePerKm: 12,
		Active:     true,
	}

	repo := newFakeRepo()
	notifier := &fakeNotifier{}
	svc := New(
		repo,
		&fakeNoteRepo{notes: make(map[uuid.UUID][]*models.Note)},
		&fakeFleetRepo{vehicles: map[uuid.UUID]*models.Vehicle{vehicle.ID: vehicle}},
		notifier,
		fakeTxManager{},
		logger.InitLogger("test", logger.LevelError),
	)

	return &fixture{svc: svc, repo: repo, notifier: notifier, vehicle: vehicle}
}

func (fx *fixture) createBooking(t *testing.T, status types.BookingStatus) *models.Booking {
	t.Helper()

	b, err := fx.svc.Create(context.Background(), &models.Booking{
		CustomerName:  "Asha",
		CustomerPhone: "+919999000001",
		RideType:      types.RideOneway,
		PickupAddress: "Delhi",
		DropAddress:   "Agra",
		PickupDate:    time.Now().AddDate(0, 0, 1),
		VehicleID:     fx.vehicle.ID,
		DistanceKm:    233,
		PricePerKm:    fx.vehicle.PricePerKm,
		TotalAmount:   3600,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if status != types.StatusPendingPayment {
		stored := fx.repo.bookings[b.ID]
		stored.Status = status
		b.Status = status
	}
	return b
}

/* ================= lifecycle ================= */

func TestCreate_StartsPendingPayment(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPendingPayment)

	if b.Status != types.StatusPendingPayment {
		t.Errorf("Status = %s, want PENDING_PAYMENT", b.Status)
	}
	if b.AssignStatus != types.AssignNotAssigned {
		t.Errorf("AssignStatus = %s, want NOT_ASSIGNED", b.AssignStatus)
	}
	if b.BookingNumber == "" {
		t.Error("BookingNumber is empty")
	}
	if len(fx.notifier.events) != 1 || fx.notifier.events[0].Type != types.EventBookingCreated {
		t.Errorf("events = %+v, want one BOOKING_CREATED", fx.notifier.events)
	}
}

func TestUpdateStatus_AllowsForwardPath(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPaid)

	got, err := fx.svc.UpdateStatus(context.Background(), b.ID, types.StatusInProgress)
	if err != nil {
		t.Fatalf("UpdateStatus: %v", err)
	}
	if got.Status != types.StatusInProgress {
		t.Errorf("Status = %s, want IN_PROGRESS", got.Status)
	}
}

func TestUpdateStatus_RejectsIllegalTransitions(t *testing.T) {
	tests := []struct {
		name string
		from types.BookingStatus
		to   types.BookingStatus
	}{
		{"cannot skip payment", types.StatusPendingPayment, types.StatusInProgress},
		{"cannot start unpaid trip", types.StatusPendingPayment, types.StatusCompleted},
		{"cannot complete a paid trip that never started", types.StatusPaid, types.StatusCompleted},
		{"cannot leave completed", types.StatusCompleted, types.StatusInProgress},
		{"cannot cancel completed", types.StatusCompleted, types.StatusCancelled},
		{"cannot revive cancelled", types.StatusCancelled, types.StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := newFixture(t)
			b := fx.createBooking(t, tt.from)
			updatesBefore := fx.repo.updates

			_, err := fx.svc.UpdateStatus(context.Background(), b.ID, tt.to)
			if !errors.Is(err, types.ErrInvalidTransition) {
				t.Fatalf("err = %v, want ErrInvalidTransition", err)
			}
			if fx.repo.updates != updatesBefore {
				t.Error("rejected transition reached storage")
			}
			if fx.repo.bookings[b.ID].Status != tt.from {
				t.Errorf("status changed to %s on rejected transition", fx.repo.bookings[b.ID].Status)
			}
		})
	}
}

/* ================= assignment ================= */

func TestAssignTaxi_RequiresCustomerNotified(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPaid)

	_, err := fx.svc.AssignTaxi(context.Background(), b.ID, models.Assignment{
		DriverName:   "Ravi",
		DriverNumber: "+919999000002",
		CabName:      "Dzire",
		CabNumber:    "DL01AB1234",
	}, false)

	if !errors.Is(err, types.ErrCustomerNotNotified) {
		t.Fatalf("err = %v, want ErrCustomerNotNotified", err)
	}
	if fx.repo.bookings[b.ID].AssignStatus != types.AssignNotAssigned {
		t.Error("assign status changed despite rejected guard")
	}
	if len(fx.repo.assignments) != 0 {
		t.Error("assignment persisted despite rejected guard")
	}
}

func TestAssignTaxi_ReplacesCurrentAssignment(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPaid)

	first := models.Assignment{DriverName: "Ravi", DriverNumber: "+919999000002", CabName: "Dzire", CabNumber: "DL01AB1234"}
	if _, err := fx.svc.AssignTaxi(context.Background(), b.ID, first, true); err != nil {
		t.Fatalf("AssignTaxi: %v", err)
	}

	second := models.Assignment{DriverName: "Sunil", DriverNumber: "+919999000003", CabName: "Ertiga", CabNumber: "DL02CD5678"}
	got, err := fx.svc.AssignTaxi(context.Background(), b.ID, second, true)
	if err != nil {
		t.Fatalf("AssignTaxi (reassign): %v", err)
	}

	if got.AssignStatus != types.AssignAssigned {
		t.Errorf("AssignStatus = %s, want ASSIGNED", got.AssignStatus)
	}
	if got.Assignment.DriverName != "Sunil" {
		t.Errorf("DriverName = %s, want the replacement driver", got.Assignment.DriverName)
	}
	if got.Assignment.CabName != "Ertiga" || got.Assignment.CabNumber != "DL02CD5678" {
		t.Errorf("cab = %s %s, want the replacement cab", got.Assignment.CabName, got.Assignment.CabNumber)
	}
	if len(fx.repo.assignments) != 1 {
		t.Errorf("assignments stored = %d, want the single current one", len(fx.repo.assignments))
	}
}

func TestAssignTaxi_RejectedBeforePayment(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPendingPayment)

	_, err := fx.svc.AssignTaxi(context.Background(), b.ID, models.Assignment{DriverName: "Ravi"}, true)
	if !errors.Is(err, types.ErrInvalidTransition) {
		t.Fatalf("err = %v, want ErrInvalidTransition", err)
	}
}

/* ================= completion ================= */

func TestComplete_TruesUpTotal(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusInProgress)

	// Quoted 233 km at 12/km with total 3600; driven 250 km plus 150 toll.
	got, err := fx.svc.Complete(context.Background(), b.ID, 250, 150)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	wantExtra := int64(204) // 17 extra km at 12/km
	if *got.ExtraCharge != wantExtra {
		t.Errorf("ExtraCharge = %d, want %d", *got.ExtraCharge, wantExtra)
	}
	if want := int64(3600 + 204 + 150); got.TotalAmount != want {
		t.Errorf("TotalAmount = %d, want %d", got.TotalAmount, want)
	}
	if got.Status != types.StatusCompleted {
		t.Errorf("Status = %s, want COMPLETED", got.Status)
	}
	if got.CompletedAt == nil {
		t.Error("CompletedAt not set")
	}
}

func TestComplete_ShorterTripAddsNoExtra(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusInProgress)

	got, err := fx.svc.Complete(context.Background(), b.ID, 200, 0)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}

	if *got.ExtraCharge != 0 {
		t.Errorf("ExtraCharge = %d, want 0 for a shorter trip", *got.ExtraCharge)
	}
	if got.TotalAmount != 3600 {
		t.Errorf("TotalAmount = %d, want unchanged 3600", got.TotalAmount)
	}
}

/* ================= cancellation ================= */

func TestCancel_RequiresReason(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPaid)

	for _, reason := range []string{"", "   ", "\t\n"} {
		_, err := fx.svc.Cancel(context.Background(), b.ID, reason)
		if !errors.Is(err, types.ErrBlankCancellationReason) {
			t.Errorf("Cancel(%q) err = %v, want ErrBlankCancellationReason", reason, err)
		}
	}
	if fx.repo.bookings[b.ID].Status != types.StatusPaid {
		t.Error("booking mutated by rejected cancel")
	}
}

func TestCancel_FromAnyNonTerminalState(t *testing.T) {
	for _, from := range []types.BookingStatus{
		types.StatusPendingPayment, types.StatusPaid, types.StatusInProgress,
	} {
		t.Run(from.String(), func(t *testing.T) {
			fx := newFixture(t)
			b := fx.createBooking(t, from)

			got, err := fx.svc.Cancel(context.Background(), b.ID, "customer changed plans")
			if err != nil {
				t.Fatalf("Cancel from %s: %v", from, err)
			}
			if got.Status != types.StatusCancelled {
				t.Errorf("Status = %s, want CANCELLED", got.Status)
			}
			if got.CancellationReason == nil || *got.CancellationReason != "customer changed plans" {
				t.Error("cancellation reason not recorded")
			}
		})
	}
}

/* ================= ledger ================= */

func TestBalance(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPaid)

	addPayment := func(amount int64, status types.PaymentStatus) {
		err := fx.repo.AppendPayment(context.Background(), &models.Payment{
			BookingID: b.ID,
			Amount:    amount,
			Status:    status,
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	addPayment(1000, types.PaymentSuccess)
	addPayment(500, types.PaymentPaid)
	addPayment(700, types.PaymentFailed)  // never counted
	addPayment(300, types.PaymentPending) // never counted

	bal, err := fx.svc.Balance(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if bal.Paid != 1500 {
		t.Errorf("Paid = %d, want 1500", bal.Paid)
	}
	if bal.Due != 3600-1500 {
		t.Errorf("Due = %d, want %d", bal.Due, 3600-1500)
	}
	if bal.Classification() != models.PaidPartial {
		t.Errorf("Classification = %s, want Partial", bal.Classification())
	}
}

func TestBalance_DueNeverNegative(t *testing.T) {
	fx := newFixture(t)
	b := fx.createBooking(t, types.StatusPaid)

	err := fx.repo.AppendPayment(context.Background(), &models.Payment{
		BookingID: b.ID,
		Amount:    5000, // overpaid against a 3600 total
		Status:    types.PaymentSuccess,
	})
	if err != nil {
		t.Fatal(err)
	}

	bal, err := fx.svc.Balance(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("Balance: %v", err)
	}

	if bal.Due != 0 {
		t.Errorf("Due = %d, want 0", bal.Due)
	}
	if bal.Classification() != models.PaidFullOnline {
		t.Errorf("Classification = %s, want Full Online", bal.Classification())
	}
}
