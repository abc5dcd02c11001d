package handler

import (
	"context"
	"net/http"

	"github.com/urbancabz/booking-system/internal/adapter/http/handler/dto"
	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/internal/service/payment"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
	"github.com/urbancabz/booking-system/pkg/validator"
)

type PaymentService interface {
	CreateOrder(ctx context.Context, b *models.Booking) (payment.CheckoutOrder, *models.Booking, error)
	VerifyAndBook(ctx context.Context, orderID, paymentID, signature string) (*models.Booking, error)
}

// BookingPricer re-prices a booking on the server so checkout never trusts
// the distance or total a client sends.
type BookingPricer interface {
	PriceBooking(ctx context.Context, b *models.Booking, fromAddr, toAddr string) (*models.Booking, error)
}

type Payment struct {
	service PaymentService
	pricer  BookingPricer
	log     logger.Logger
}

func NewPayment(service PaymentService, pricer BookingPricer, log logger.Logger) *Payment {
	return &Payment{
		service: service,
		pricer:  pricer,
		log:     log,
	}
}

// CreateOrder godoc
// @Summary      Open a checkout order
// @Description  Creates the booking in PENDING_PAYMENT and returns a payment order for the quoted total
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body dto.CreateOrderRequest true "Booking to pay for"
// @Success      201 {object} map[string]any
// @Failure      400 {object} map[string]string
// @Failure      422 {object} map[string]any
// @Router       /payments/create-order [post]
func (h *Payment) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateOrderRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	booking, v := bookingFromRequest(req.Booking)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, err := h.pricer.PriceBooking(r.Context(), booking, req.Booking.From, req.Booking.To)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	order, created, err := h.service.CreateOrder(r.Context(), booking)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"order": order, "booking": created}, nil)
}

// VerifyAndBook godoc
// @Summary      Confirm a checkout
// @Description  Verifies the checkout signature and moves the booking to PAID
// @Tags         Payments
// @Accept       json
// @Produce      json
// @Param        request body dto.VerifyRequest true "Checkout result"
// @Success      200 {object} map[string]any
// @Failure      402 {object} map[string]string
// @Failure      404 {object} map[string]string
// @Router       /payments/verify-and-book [post]
func (h *Payment) VerifyAndBook(w http.ResponseWriter, r *http.Request) {
	var req dto.VerifyRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	v.Check(req.OrderID != "", "razorpay_order_id", "must be provided")
	v.Check(req.PaymentID != "", "razorpay_payment_id", "must be provided")
	v.Check(req.Signature != "", "razorpay_signature", "must be provided")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, err := h.service.VerifyAndBook(r.Context(), req.OrderID, req.PaymentID, req.Signature)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"booking": booking}, nil)
}

// bookingFromRequest validates the request and maps it to an unpriced
// booking. Distance and total are filled in by the pricer afterwards.
func bookingFromRequest(req dto.BookingRequest) (*models.Booking, *validator.Validator) {
	v := validator.New()
	v.Check(req.CustomerName != "", "customer_name", "must be provided")
	v.Check(req.CustomerPhone != "", "customer_phone", "must be provided")
	v.Check(req.From != "", "from", "must be provided")
	v.Check(req.To != "", "to", "must be provided")

	rideType, err := types.ParseRideType(req.RideType)
	if err != nil {
		v.AddError("ride_type", "must be one of AIRPORT, ONEWAY, ROUNDTRIP")
	}

	pickupDate, err := readDate(req.PickupDate)
	if err != nil {
		v.AddError("pickup_date", err.Error())
	}
	v.Check(req.PickupDate != "", "pickup_date", "must be provided")

	booking := &models.Booking{
		CustomerName:  req.CustomerName,
		CustomerPhone: req.CustomerPhone,
		CustomerEmail: req.CustomerEmail,
		RideType:      rideType,
		PickupAddress: req.From,
		DropAddress:   req.To,
		PickupDate:    pickupDate,
	}

	if req.ReturnDate != "" {
		returnDate, err := readDate(req.ReturnDate)
		if err != nil {
			v.AddError("return_date", err.Error())
		} else {
			booking.ReturnDate = &returnDate
		}
	}
	if rideType == types.RideRoundtrip {
		v.Check(req.ReturnDate != "", "return_date", "must be provided for round trips")
	}

	checkTrip(v, req.From, req.To, booking.PickupDate, booking.ReturnDate)

	vehicleID, err := uuid.Parse(req.VehicleID)
	if err != nil {
		v.AddError("vehicle_id", "must be a valid UUID")
	}
	booking.VehicleID = vehicleID

	return booking, v
}
