package auth

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/urbancabz/booking-system/internal/domain/models"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
)

// TokenService issues and validates HS256 access tokens carrying the user's
// identity and role.
type TokenService struct {
	secret    string
	accessTTL time.Duration
}

func NewTokenService(secret string, accessTTL time.Duration) *TokenService {
	return &TokenService{
		secret:    secret,
		accessTTL: accessTTL,
	}
}

func (s *TokenService) Generate(ctx context.Context, user *models.User) (*models.Token, error) {
	ctx = wrap.WithAction(ctx, "generate_token")
	if user == nil {
		return nil, wrap.Error(ctx, errors.New("user is nil"))
	}

	issuedAt := time.Now().UTC()
	expiresAt := issuedAt.Add(s.accessTTL)

	claims := models.CustomClaims{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.secret))
	if err != nil {
		return nil, wrap.Error(ctx, err)
	}

	return &models.Token{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *TokenService) Validate(ctx context.Context, token string) (*models.CustomClaims, error) {
	ctx = wrap.WithAction(ctx, "validate_token")

	var claims models.CustomClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, ErrInvalidToken
		}
		return []byte(s.secret), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, wrap.Error(ctx, ErrExpToken)
		}
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}
	if !parsed.Valid {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	if claims.ID.IsZero() {
		return nil, wrap.Error(ctx, ErrInvalidToken)
	}

	return &claims, nil
}
