package auth

import (
	"context"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type UserRepo interface {
	Create(ctx context.Context, u *models.User) (uuid.UUID, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// TokenProvider signs and validates access tokens.
type TokenProvider interface {
	Generate(ctx context.Context, user *models.User) (*models.Token, error)
	Validate(ctx context.Context, token string) (*models.CustomClaims, error)
}
