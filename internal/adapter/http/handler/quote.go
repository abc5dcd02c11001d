package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/urbancabz/booking-system/internal/adapter/http/handler/dto"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/internal/service/quote"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/validator"
)

type QuoteService interface {
	QuoteTrip(ctx context.Context, fromAddr, toAddr string, rideType types.RideType, pickupDate time.Time, returnDate *time.Time) (*quote.Result, error)
}

type Quote struct {
	service QuoteService
	log     logger.Logger
}

func NewQuote(service QuoteService, log logger.Logger) *Quote {
	return &Quote{
		service: service,
		log:     log,
	}
}

// CreateQuote godoc
// @Summary      Quote a trip
// @Description  Measures the route and prices every active vehicle for it
// @Tags         Quotes
// @Accept       json
// @Produce      json
// @Param        request body dto.QuoteRequest true "Trip to price"
// @Success      200 {object} quote.Result
// @Failure      404 {object} map[string]string
// @Router       /quotes [post]
func (h *Quote) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var req dto.QuoteRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
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

	var returnDate *time.Time
	if req.ReturnDate != "" {
		parsed, err := readDate(req.ReturnDate)
		if err != nil {
			v.AddError("return_date", err.Error())
		} else {
			returnDate = &parsed
		}
	}

	checkTrip(v, req.From, req.To, pickupDate, returnDate)

	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	result, err := h.service.QuoteTrip(r.Context(), req.From, req.To, rideType, pickupDate, returnDate)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"quote": result}, nil)
}
