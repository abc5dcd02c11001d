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

type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Token, *models.User, error)
	Register(ctx context.Context, name, email, password string) (uuid.UUID, error)
}

type Auth struct {
	service AuthService
	log     logger.Logger
}

func NewAuth(service AuthService, log logger.Logger) *Auth {
	return &Auth{
		service: service,
		log:     log,
	}
}

// Login godoc
// @Summary      Log in
// @Description  Verifies credentials and issues an access token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.LoginRequest true "Credentials"
// @Success      200 {object} dto.LoginResponse
// @Failure      401 {object} map[string]string
// @Router       /auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	v.Check(req.Email != "", "email", "must be provided")
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(req.Password != "", "password", "must be provided")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	token, user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	resp := dto.LoginResponse{
		AccessToken: token.AccessToken,
		ExpiresAt:   token.ExpiresAt,
		User:        dto.NewUserInfo(user),
	}
	writeJSON(w, http.StatusOK, envelope{"auth": resp}, nil)
}

// Register godoc
// @Summary      Register
// @Description  Creates a customer account
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body dto.RegisterRequest true "New account"
// @Success      201 {object} map[string]string
// @Router       /auth/register [post]
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := readJSON(w, r, &req); err != nil {
		badRequestResponse(w, err.Error())
		return
	}

	v := validator.New()
	v.Check(req.Name != "", "name", "must be provided")
	v.Check(validator.Matches(req.Email, validator.EmailRX), "email", "must be a valid email address")
	v.Check(len(req.Password) >= 8, "password", "must be at least 8 characters long")
	if !v.Valid() {
		failedValidationResponse(w, v.Errors)
		return
	}

	id, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		serviceErrorResponse(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, envelope{"id": id.String()}, nil)
}

// Me godoc
// @Summary      Current identity
// @Description  Returns the authenticated user resolved from the bearer token
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} dto.UserInfo
// @Failure      401 {object} map[string]string
// @Router       /admin/me [get]
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	user := models.UserFromContext(r.Context())
	if user.IsAnonymous() {
		errorResponse(w, http.StatusUnauthorized, "authorization required")
		return
	}

	writeJSON(w, http.StatusOK, envelope{"user": dto.NewUserInfo(user)}, nil)
}
