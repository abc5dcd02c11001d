package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/urbancabz/booking-system/internal/adapter/http/handler/dto"
	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
	"github.com/urbancabz/booking-system/pkg/validator"
)

// bookingSortSafelist is the set of sort keys the list endpoints accept.
var bookingSortSafelist = []string{
	"-created_at", "created_at",
	"-pickup_date", "pickup_date",
	"-total_amount", "total_amount",
}

type BookingService interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	List(ctx context.Context, statuses []types.BookingStatus, filters models.Filters) ([]*models.Booking, models.Metadata, error)
	ListCompleted(ctx context.Context, filters models.Filters) ([]*models.Booking, models.Metadata, error)
	ListCancelled(ctx context.Context, filters models.Filters) ([]*models.Booking, models.Metadata, error)
	ListPendingPayments(ctx context.Context, filters models.Filters) ([]*models.Booking, models.Metadata, error)
	AssignTaxi(ctx context.Context, bookingID uuid.UUID, assignment models.Assignment, customerNotified bool) (*models.Booking, error)
	UpdateStatus(ctx context.Context, bookingID uuid.UUID, newStatus types.BookingStatus) (*models.Booking, error)
	Complete(ctx context.Context, bookingID uuid.UUID, actualKm float64, tollCharges int64) (*models.Booking, error)
	Cancel(ctx context.Context, bookingID uuid.UUID, reason string) (*models.Booking, error)
	AddNote(ctx context.Context, bookingID uuid.UUID, author, text string) (*models.Note, error)
	ListNotes(ctx context.Context, bookingID uuid.UUID) ([]*models.Note, error)
	Balance(ctx context.Context, bookingID uuid.UUID) (models.Balance, error)
	Payments(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error)
}

type Admin struct {
	service BookingService
	log     logger.Logger
}

func NewAdmin(service BookingService, log logger.Logger) *Admin {
	return &Admin{
		service: service,
		log:     log,
	}
}

func bookingFilters(r *http.Request, v *validator.Validator) models.Filters {
	qs := r.URL.Query()
	return models.Filters{
		Page:         readInt(qs, "page", 1, v),
		PageSize:     readInt(qs, "page_size", 20, v),
		Sort:         readString(qs, "sort", "-created_at"),
		SortSafelist: bookingSortSafelist,
	}
}

// ListBookings godoc
// @Summary      List bookings
// @Description  Lists bookings, optionally filtered by one or more statuses
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        status query []string false "Booking status filter" collectionFormat(multi)
// @Param        page query int false "Page number"
// @Param        page_size query int false "Page size"
// @Param        sort query string false "Sort key"
// @Success      200 {object} map[string]any
// @Router       /admin/bookings [get]
func (h *Admin) ListBookings(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	filters := bookingFilters(r, v)
	filters.Validate(v)

	var statuses []types.BookingStatus
	for _, raw := range r.URL.Query()["status"] {
		status := types.BookingStatus(raw)
		if !validator.PermittedValue(status,
			types.StatusPendingPayment, types.StatusPaid, types.StatusInProgress,
			types.StatusCompleted, types.StatusCancelled) {
			v.AddError("status", "contains an unknown booking status")
			break
		}
		statuses = append(statuses, status)
	}

	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	bookings, metadata, err := h.service.List(r.Context(), statuses, filters)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"bookings": bookings, "metadata": metadata}, nil)
}

// GetBooking godoc
// @Summary      Booking details
// @Description  Returns a booking with its assignment, payment ledger and balance
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200 {object} map[string]any
// @Failure      404 {object} map[string]string
// @Router       /admin/bookings/{id} [get]
func (h *Admin) GetBooking(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	booking, err := h.service.Get(r.Context(), id)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	payments, err := h.service.Payments(r.Context(), id)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	balance, err := h.service.Balance(r.Context(), id)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{
		"booking":  booking,
		"payments": payments,
		"balance":  balance,
	}, nil)
}

// AssignTaxi godoc
// @Summary      Assign a taxi
// @Description  Attaches or replaces the driver and vehicle on a paid booking
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body dto.AssignTaxiRequest true "Assignment"
// @Success      200 {object} map[string]any
// @Failure      422 {object} map[string]any
// @Router       /admin/bookings/{id}/assign-taxi [post]
func (h *Admin) AssignTaxi(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.AssignTaxiRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	v.Check(req.DriverName != "", "driver_name", "must be provided")
	v.Check(req.DriverNumber != "", "driver_number", "must be provided")
	v.Check(req.CabName != "", "cab_name", "must be provided")
	v.Check(req.CabNumber != "", "cab_number", "must be provided")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	assignment := models.Assignment{
		BookingID:    id,
		DriverName:   req.DriverName,
		DriverNumber: req.DriverNumber,
		CabName:      req.CabName,
		CabNumber:    req.CabNumber,
		AssignedAt:   time.Now(),
	}

	booking, err := h.service.AssignTaxi(r.Context(), id, assignment, req.MarkAssigned)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"booking": booking}, nil)
}

// UpdateStatus godoc
// @Summary      Update booking status
// @Description  Moves a booking along its lifecycle
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body dto.UpdateStatusRequest true "Target status"
// @Success      200 {object} map[string]any
// @Failure      422 {object} map[string]any
// @Router       /admin/bookings/{id}/status [patch]
func (h *Admin) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.UpdateStatusRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	status := types.BookingStatus(req.Status)
	v := validator.New()
	v.Check(validator.PermittedValue(status,
		types.StatusPendingPayment, types.StatusPaid, types.StatusInProgress,
		types.StatusCompleted, types.StatusCancelled),
		"status", "must be a known booking status")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, err := h.service.UpdateStatus(r.Context(), id, status)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"booking": booking}, nil)
}

// Complete godoc
// @Summary      Complete a booking
// @Description  Records the actual trip and settles extra distance and toll charges into the total
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body dto.CompleteRequest true "Actual trip"
// @Success      200 {object} map[string]any
// @Failure      422 {object} map[string]any
// @Router       /admin/bookings/{id}/complete [post]
func (h *Admin) Complete(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.CompleteRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	v.Check(req.ActualKm >= 0, "actual_km", "must not be negative")
	v.Check(req.TollCharges >= 0, "toll_charges", "must not be negative")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	booking, err := h.service.Complete(r.Context(), id, req.ActualKm, req.TollCharges)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"booking": booking}, nil)
}

// Cancel godoc
// @Summary      Cancel a booking
// @Description  Cancels a booking with a mandatory reason
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body dto.CancelRequest true "Cancellation reason"
// @Success      200 {object} map[string]any
// @Failure      422 {object} map[string]any
// @Router       /admin/bookings/{id}/cancel [post]
func (h *Admin) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.CancelRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	booking, err := h.service.Cancel(r.Context(), id, req.Reason)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"booking": booking}, nil)
}

// ListNotes godoc
// @Summary      Booking notes
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Success      200 {object} map[string]any
// @Router       /admin/bookings/{id}/notes [get]
func (h *Admin) ListNotes(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	notes, err := h.service.ListNotes(r.Context(), id)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"notes": notes}, nil)
}

// AddNote godoc
// @Summary      Add a booking note
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Booking ID"
// @Param        request body dto.NoteRequest true "Note"
// @Success      201 {object} map[string]any
// @Router       /admin/bookings/{id}/notes [post]
func (h *Admin) AddNote(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.NoteRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	v.Check(req.Text != "", "text", "must be provided")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	author := models.UserFromContext(r.Context()).Name

	note, err := h.service.AddNote(r.Context(), id, author, req.Text)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"note": note}, nil)
}

// ListCompleted godoc
// @Summary      Completed bookings
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]any
// @Router       /admin/history/completed [get]
func (h *Admin) ListCompleted(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, h.service.ListCompleted)
}

// ListCancelled godoc
// @Summary      Cancelled bookings
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]any
// @Router       /admin/history/cancelled [get]
func (h *Admin) ListCancelled(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, h.service.ListCancelled)
}

// ListPendingPayments godoc
// @Summary      Bookings awaiting payment
// @Tags         Admin
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]any
// @Router       /admin/pending-payments [get]
func (h *Admin) ListPendingPayments(w http.ResponseWriter, r *http.Request) {
	h.listByStatus(w, r, h.service.ListPendingPayments)
}

func (h *Admin) listByStatus(w http.ResponseWriter, r *http.Request,
	list func(context.Context, models.Filters) ([]*models.Booking, models.Metadata, error),
) {
	v := validator.New()
	filters := bookingFilters(r, v)
	filters.Validate(v)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	bookings, metadata, err := list(r.Context(), filters)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"bookings": bookings, "metadata": metadata}, nil)
}
