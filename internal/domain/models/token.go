package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type Token struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

type CustomClaims struct {
	ID    uuid.UUID      `json:"id"`
	Name  string         `json:"name"`
	Email string         `json:"email"`
	Role  types.UserRole `json:"role"`
	jwt.RegisteredClaims
}
