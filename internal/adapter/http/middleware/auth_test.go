package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/logger"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type fakeAuthService struct {
	users map[string]*models.User
}

func (f *fakeAuthService) RoleCheck(_ context.Context, token string) (*models.User, error) {
	user, ok := f.users[token]
	if !ok {
		return nil, types.ErrInvalidCredentials
	}
	return user, nil
}

func TestRequireRoles(t *testing.T) {
	auth := &fakeAuthService{users: map[string]*models.User{
		"admin-token":    {ID: uuid.New(), Role: types.AdminRole},
		"customer-token": {ID: uuid.New(), Role: types.CustomerRole},
	}}
	m := New(auth, logger.InitLogger("test", logger.LevelError))

	reached := false
	protected := m.Auth(m.RequireRoles(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}, types.AdminRole))

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantReach  bool
	}{
		{"anonymous request", "", http.StatusUnauthorized, false},
		{"unknown token", "Bearer bogus", http.StatusUnauthorized, false},
		{"customer role", "Bearer customer-token", http.StatusForbidden, false},
		{"admin role", "Bearer admin-token", http.StatusOK, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached = false

			req := httptest.NewRequest(http.MethodGet, "/admin/ws", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			rec := httptest.NewRecorder()

			protected.ServeHTTP(rec, req)

			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if reached != tt.wantReach {
				t.Errorf("handler reached = %v, want %v", reached, tt.wantReach)
			}
		})
	}
}
