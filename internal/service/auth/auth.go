package auth

import (
	"context"
	"errors"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
	"github.com/urbancabz/booking-system/pkg/passhash"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type Service struct {
	userRepo     UserRepo
	tokenService TokenProvider
	log          logger.Logger
}

func New(userRepo UserRepo, tokenService TokenProvider, log logger.Logger) *Service {
	return &Service{
		userRepo:     userRepo,
		tokenService: tokenService,
		log:          log,
	}
}

// Login verifies credentials and issues an access token with the user's role.
func (s *Service) Login(ctx context.Context, email, password string) (*models.Token, *models.User, error) {
	ctx = wrap.WithAction(ctx, "login")

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, types.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, wrap.Error(ctx, err)
	}

	if ok, err := passhash.VerifyPassword(password, user.GetPassword()); err != nil || !ok {
		return nil, nil, ErrInvalidCredentials
	}

	token, err := s.tokenService.Generate(ctx, user)
	if err != nil {
		return nil, nil, ErrTokenGenerateFail
	}

	return token, user, nil
}

// Register creates a customer account. Admin accounts are seeded out of band.
func (s *Service) Register(ctx context.Context, name, email, password string) (uuid.UUID, error) {
	ctx = wrap.WithAction(ctx, "register")

	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return uuid.UUID{}, ErrNotUniqueEmail
	} else if !errors.Is(err, types.ErrUserNotFound) {
		return uuid.UUID{}, wrap.Error(ctx, err)
	}

	hash, err := passhash.HashPassword(password)
	if err != nil {
		s.log.Error(ctx, "failed to hash password", err)
		return uuid.UUID{}, err
	}

	user := &models.User{
		Name:  name,
		Email: email,
		Role:  types.CustomerRole,
	}
	user.SetPassword(hash)

	return s.userRepo.Create(ctx, user)
}

// Me resolves the current identity from a validated token.
func (s *Service) Me(ctx context.Context, claims *models.CustomClaims) (*models.User, error) {
	return s.userRepo.GetByID(ctx, claims.ID)
}

// ValidateToken exposes token validation to transport middleware.
func (s *Service) ValidateToken(ctx context.Context, token string) (*models.CustomClaims, error) {
	return s.tokenService.Validate(ctx, token)
}

// RoleCheck validates the token and loads the current user for middleware.
func (s *Service) RoleCheck(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokenService.Validate(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.userRepo.GetByID(ctx, claims.ID)
}
