package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
	"github.com/urbancabz/booking-system/pkg/metrics"
)

const methodRazorpay = "razorpay"

// Service runs the online payment flow: create a checkout order for a quoted
// booking, then verify the checkout signature and move the booking to PAID.
type Service struct {
	gateway   Gateway
	bookings  BookingCreator
	ledger    LedgerRepository
	keySecret string
	l         logger.Logger
}

func New(gateway Gateway, bookings BookingCreator, ledger LedgerRepository, keySecret string, l logger.Logger) *Service {
	return &Service{
		gateway:   gateway,
		bookings:  bookings,
		ledger:    ledger,
		keySecret: keySecret,
		l:         l,
	}
}

// CheckoutOrder is what the storefront checkout widget needs.
type CheckoutOrder struct {
	KeyID    string `json:"keyId"`
	OrderID  string `json:"orderId"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// CreateOrder creates the booking in PENDING_PAYMENT and opens a checkout
// order for its quoted total. A PENDING ledger entry ties the order to the
// booking.
func (s *Service) CreateOrder(ctx context.Context, b *models.Booking) (CheckoutOrder, *models.Booking, error) {
	ctx = wrap.WithAction(ctx, "payment_create_order")

	if b.TotalAmount <= 0 {
		return CheckoutOrder{}, nil, wrap.Error(ctx, types.ErrOrderAmountZero)
	}

	created, err := s.bookings.Create(ctx, b)
	if err != nil {
		return CheckoutOrder{}, nil, err
	}

	order, err := s.gateway.CreateOrder(ctx, created.TotalAmount, created.BookingNumber)
	if err != nil {
		metrics.PaymentOrdersTotal.WithLabelValues("booking-system", "error").Inc()
		return CheckoutOrder{}, nil, err
	}
	metrics.PaymentOrdersTotal.WithLabelValues("booking-system", "created").Inc()

	entry := &models.Payment{
		BookingID: created.ID,
		Amount:    created.TotalAmount,
		Status:    types.PaymentPending,
		Method:    methodRazorpay,
		OrderID:   order.OrderID,
	}
	if err := s.ledger.AppendPayment(ctx, entry); err != nil {
		return CheckoutOrder{}, nil, wrap.Error(ctx, err)
	}

	return CheckoutOrder{
		KeyID:    s.gateway.KeyID(),
		OrderID:  order.OrderID,
		Amount:   order.Amount,
		Currency: order.Currency,
	}, created, nil
}

// VerifyAndBook checks the checkout signature returned by the payment widget
// and moves the booking to PAID with a SUCCESS ledger entry. A bad signature
// records a FAILED attempt and leaves the booking in PENDING_PAYMENT.
func (s *Service) VerifyAndBook(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error) {
	ctx = wrap.WithAction(ctx, "payment_verify_and_book")

	b, err := s.ledger.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}
	ctx = wrap.WithBookingID(ctx, b.ID.String())

	if !s.verifySignature(orderID, paymentID, signature) {
		failed := &models.Payment{
			BookingID:  b.ID,
			Amount:     b.TotalAmount,
			Status:     types.PaymentFailed,
			Method:     methodRazorpay,
			OrderID:    orderID,
			PaymentRef: paymentID,
		}
		if appendErr := s.ledger.AppendPayment(ctx, failed); appendErr != nil {
			s.l.Error(ctx, "failed to record failed payment attempt", appendErr)
		}
		metrics.PaymentOrdersTotal.WithLabelValues("booking-system", "signature_mismatch").Inc()
		return nil, wrap.Error(ctx, types.ErrSignatureMismatch)
	}

	success := &models.Payment{
		BookingID:  b.ID,
		Amount:     b.TotalAmount,
		Status:     types.PaymentSuccess,
		Method:     methodRazorpay,
		OrderID:    orderID,
		PaymentRef: paymentID,
	}
	if err := s.ledger.AppendPayment(ctx, success); err != nil {
		return nil, wrap.Error(ctx, err)
	}

	updated, err := s.bookings.UpdateStatus(ctx, b.ID, types.StatusPaid)
	if err != nil {
		return nil, err
	}
	metrics.PaymentOrdersTotal.WithLabelValues("booking-system", "paid").Inc()

	return updated, nil
}

// verifySignature checks the Razorpay checkout signature:
// hex(HMAC-SHA256(order_id + "|" + payment_id, key_secret)).
func (s *Service) verifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(s.keySecret))
	fmt.Fprintf(mac, "%s|%s", orderID, paymentID)
	expected := hex.EncodeToString(mac.Sum(nil))

	return subtle.ConstantTimeCompare([]byte(expected), []byte(signature)) == 1
}
