package handler

import (
	"context"
	"net/http"

	"github.com/urbancabz/booking-system/internal/adapter/http/handler/dto"
	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
	"github.com/urbancabz/booking-system/pkg/validator"
)

type FleetService interface {
	Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error)
	ListActive(ctx context.Context) ([]*models.Vehicle, error)
	ListAll(ctx context.Context) ([]*models.Vehicle, error)
	Update(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error)
	Deactivate(ctx context.Context, id uuid.UUID) error
}

type Fleet struct {
	service FleetService
	log     logger.Logger
}

func NewFleet(service FleetService, log logger.Logger) *Fleet {
	return &Fleet{
		service: service,
		log:     log,
	}
}

// ListVehicles godoc
// @Summary      Public vehicle catalog
// @Tags         Fleet
// @Produce      json
// @Success      200 {array} models.Vehicle
// @Router       /vehicles [get]
func (h *Fleet) ListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.ListActive(r.Context())
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"vehicles": vehicles}, nil)
}

// AdminListVehicles godoc
// @Summary      Full vehicle catalog including deactivated entries
// @Tags         Fleet
// @Produce      json
// @Security     BearerAuth
// @Success      200 {array} models.Vehicle
// @Router       /admin/vehicles [get]
func (h *Fleet) AdminListVehicles(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.service.ListAll(r.Context())
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"vehicles": vehicles}, nil)
}

func validateVehicle(v *validator.Validator, req dto.VehicleRequest) {
	v.Check(req.Name != "", "name", "must be provided")
	v.Check(req.Seats > 0, "seats", "must be greater than zero")
	v.Check(req.Bags >= 0, "bags", "must not be negative")
	v.Check(req.PricePerKm > 0, "price_per_km", "must be greater than zero")
	v.Check(validator.Unique(req.Tags), "tags", "must not contain duplicate values")
}

// CreateVehicle godoc
// @Summary      Add a vehicle to the catalog
// @Tags         Fleet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request body dto.VehicleRequest true "Vehicle"
// @Success      201 {object} models.Vehicle
// @Router       /admin/vehicles [post]
func (h *Fleet) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req dto.VehicleRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	validateVehicle(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	vehicle, err := h.service.Create(r.Context(), &models.Vehicle{
		Name:        req.Name,
		VehicleType: req.VehicleType,
		Seats:       req.Seats,
		Bags:        req.Bags,
		PricePerKm:  req.PricePerKm,
		Tags:        req.Tags,
	})
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"vehicle": vehicle}, nil)
}

// UpdateVehicle godoc
// @Summary      Update a catalog entry
// @Tags         Fleet
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Vehicle ID"
// @Param        request body dto.VehicleRequest true "Vehicle"
// @Success      200 {object} models.Vehicle
// @Router       /admin/vehicles/{id} [patch]
func (h *Fleet) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	var req dto.VehicleRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	validateVehicle(v, req)
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	vehicle, err := h.service.Get(r.Context(), id)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	vehicle.Name = req.Name
	vehicle.VehicleType = req.VehicleType
	vehicle.Seats = req.Seats
	vehicle.Bags = req.Bags
	vehicle.PricePerKm = req.PricePerKm
	vehicle.Tags = req.Tags
	if req.Active != nil {
		vehicle.Active = *req.Active
	}

	updated, err := h.service.Update(r.Context(), vehicle)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"vehicle": updated}, nil)
}

// DeactivateVehicle godoc
// @Summary      Deactivate a vehicle
// @Description  Hides the vehicle from the public catalog without deleting it
// @Tags         Fleet
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Vehicle ID"
// @Success      200 {object} map[string]string
// @Router       /admin/vehicles/{id}/deactivate [post]
func (h *Fleet) DeactivateVehicle(w http.ResponseWriter, r *http.Request) {
	id, err := readIDParam(r)
	if err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	if err := h.service.Deactivate(r.Context(), id); err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusOK, envelope{"message": "vehicle deactivated"}, nil)
}
