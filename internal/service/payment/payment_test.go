package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"testing"

	"github.com/urbancabz/booking-system/internal/adapter/razorpay"
	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

const testSecret = "test_key_secret"

func sign(orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(testSecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	return hex.EncodeToString(mac.Sum(nil))
}

type fakeGateway struct {
	orders int
}

func (f *fakeGateway) KeyID() string { return "rzp_test_key" }

func (f *fakeGateway) CreateOrder(_ context.Context, amountRupees int64, _ string) (razorpay.Order, error) {
	f.orders++
	return razorpay.Order{
		OrderID:  fmt.Sprintf("order_%d", f.orders),
		Amount:   amountRupees * 100,
		Currency: "INR",
	}, nil
}

type fakeBookings struct {
	bookings map[uuid.UUID]*models.Booking
}

func (f *fakeBookings) Create(_ context.Context, b *models.Booking) (*models.Booking, error) {
	b.ID = uuid.New()
	b.BookingNumber = "UC-20250310-0001"
	b.Status = types.StatusPendingPayment
	f.bookings[b.ID] = b
	return b, nil
}

func (f *fakeBookings) UpdateStatus(_ context.Context, id uuid.UUID, newStatus types.BookingStatus) (*models.Booking, error) {
	b, ok := f.bookings[id]
	if !ok {
		return nil, types.ErrBookingNotFound
	}
	if b.Status != types.StatusPendingPayment || newStatus != types.StatusPaid {
		return nil, types.ErrInvalidTransition
	}
	b.Status = newStatus
	return b, nil
}

type fakeLedger struct {
	payments []*models.Payment
	byOrder  map[string]*models.Booking
}

func (f *fakeLedger) AppendPayment(_ context.Context, p *models.Payment) error {
	f.payments = append(f.payments, p)
	return nil
}

func (f *fakeLedger) GetByOrderID(_ context.Context, orderID string) (*models.Booking, error) {
	b, ok := f.byOrder[orderID]
	if !ok {
		return nil, types.ErrBookingNotFound
	}
	return b, nil
}

func newTestService() (*Service, *fakeBookings, *fakeLedger) {
	bookings := &fakeBookings{bookings: make(map[uuid.UUID]*models.Booking)}
	ledger := &fakeLedger{byOrder: make(map[string]*models.Booking)}
	svc := New(&fakeGateway{}, bookings, ledger, testSecret, logger.InitLogger("test", logger.LevelError))
	return svc, bookings, ledger
}

func quotedBooking() *models.Booking {
	return &models.Booking{
		CustomerName:  "Asha",
		CustomerPhone: "+919999000001",
		RideType:      types.RideOneway,
		PickupAddress: "Delhi",
		DropAddress:   "Agra",
		VehicleID:     uuid.New(),
		DistanceKm:    233,
		PricePerKm:    12,
		TotalAmount:   3600,
	}
}

func TestCreateOrder(t *testing.T) {
	svc, _, ledger := newTestService()

	order, b, err := svc.CreateOrder(context.Background(), quotedBooking())
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}

	if order.KeyID != "rzp_test_key" {
		t.Errorf("KeyID = %s", order.KeyID)
	}
	if order.Amount != 3600*100 {
		t.Errorf("Amount = %d paise, want %d", order.Amount, 3600*100)
	}
	if order.Currency != "INR" {
		t.Errorf("Currency = %s, want INR", order.Currency)
	}
	if b.Status != types.StatusPendingPayment {
		t.Errorf("booking status = %s, want PENDING_PAYMENT", b.Status)
	}

	if len(ledger.payments) != 1 {
		t.Fatalf("ledger entries = %d, want 1", len(ledger.payments))
	}
	if p := ledger.payments[0]; p.Status != types.PaymentPending || p.OrderID != order.OrderID {
		t.Errorf("pending entry = %+v", p)
	}
}

func TestCreateOrder_RejectsZeroAmount(t *testing.T) {
	svc, bookings, _ := newTestService()

	b := quotedBooking()
	b.TotalAmount = 0

	_, _, err := svc.CreateOrder(context.Background(), b)
	if !errors.Is(err, types.ErrOrderAmountZero) {
		t.Fatalf("err = %v, want ErrOrderAmountZero", err)
	}
	if len(bookings.bookings) != 0 {
		t.Error("booking created for a zero-amount order")
	}
}

func TestVerifyAndBook(t *testing.T) {
	svc, _, ledger := newTestService()

	order, b, err := svc.CreateOrder(context.Background(), quotedBooking())
	if err != nil {
		t.Fatal(err)
	}
	ledger.byOrder[order.OrderID] = b

	paymentID := "pay_ABC123"
	updated, err := svc.VerifyAndBook(context.Background(), order.OrderID, paymentID, sign(order.OrderID, paymentID))
	if err != nil {
		t.Fatalf("VerifyAndBook: %v", err)
	}

	if updated.Status != types.StatusPaid {
		t.Errorf("status = %s, want PAID", updated.Status)
	}

	last := ledger.payments[len(ledger.payments)-1]
	if last.Status != types.PaymentSuccess || last.PaymentRef != paymentID {
		t.Errorf("success entry = %+v", last)
	}
}

func TestVerifyAndBook_BadSignature(t *testing.T) {
	svc, _, ledger := newTestService()

	order, b, err := svc.CreateOrder(context.Background(), quotedBooking())
	if err != nil {
		t.Fatal(err)
	}
	ledger.byOrder[order.OrderID] = b

	_, err = svc.VerifyAndBook(context.Background(), order.OrderID, "pay_ABC123", "forged")
	if !errors.Is(err, types.ErrSignatureMismatch) {
		t.Fatalf("err = %v, want ErrSignatureMismatch", err)
	}

	if b.Status != types.StatusPendingPayment {
		t.Errorf("status = %s, want PENDING_PAYMENT to survive a bad signature", b.Status)
	}

	last := ledger.payments[len(ledger.payments)-1]
	if last.Status != types.PaymentFailed {
		t.Errorf("last ledger entry status = %s, want FAILED attempt recorded", last.Status)
	}
}

func TestVerifyAndBook_UnknownOrder(t *testing.T) {
	svc, _, _ := newTestService()

	_, err := svc.VerifyAndBook(context.Background(), "order_missing", "pay_1", sign("order_missing", "pay_1"))
	if !errors.Is(err, types.ErrBookingNotFound) {
		t.Fatalf("err = %v, want ErrBookingNotFound", err)
	}
}
