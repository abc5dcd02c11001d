package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

func testUser() *models.User {
	return &models.User{
		ID:    uuid.New(),
		Name:  "Admin",
		Email: "admin@urbancabz.example",
		Role:  types.AdminRole,
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	user := testUser()

	token, err := svc.Generate(context.Background(), user)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}

	claims, err := svc.Validate(context.Background(), token.AccessToken)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}

	if claims.ID != user.ID {
		t.Errorf("ID = %s, want %s", claims.ID, user.ID)
	}
	if claims.Role != types.AdminRole {
		t.Errorf("Role = %s, want ADMIN", claims.Role)
	}
	if claims.Email != user.Email {
		t.Errorf("Email = %s, want %s", claims.Email, user.Email)
	}
}

func TestValidate_WrongSecret(t *testing.T) {
	token, err := NewTokenService("secret-a", time.Hour).Generate(context.Background(), testUser())
	if err != nil {
		t.Fatal(err)
	}

	_, err = NewTokenService("secret-b", time.Hour).Validate(context.Background(), token.AccessToken)
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}

func TestValidate_Expired(t *testing.T) {
	svc := NewTokenService("secret", -time.Minute)

	token, err := svc.Generate(context.Background(), testUser())
	if err != nil {
		t.Fatal(err)
	}

	_, err = svc.Validate(context.Background(), token.AccessToken)
	if !errors.Is(err, ErrExpToken) {
		t.Errorf("err = %v, want ErrExpToken", err)
	}
}

func TestValidate_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	_, err := svc.Validate(context.Background(), "not.a.token")
	if !errors.Is(err, ErrInvalidToken) {
		t.Errorf("err = %v, want ErrInvalidToken", err)
	}
}
