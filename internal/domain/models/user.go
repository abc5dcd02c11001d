package models

import (
	"context"
	"time"

	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type User struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	password  string         `json:"-"`
	Role      types.UserRole `json:"role"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at,omitzero"`
}

func (u *User) GetPassword() string {
	return u.password
}

func (u *User) SetPassword(password string) {
	u.password = password
}

// AnonymousUser stands in for unauthenticated requests.
var AnonymousUser = &User{}

func (u *User) IsAnonymous() bool {
	return u == AnonymousUser
}

type userContextKey struct{}

// WithUser stores the authenticated user in the request context.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext returns the authenticated user or AnonymousUser.
func UserFromContext(ctx context.Context) *User {
	user, ok := ctx.Value(userContextKey{}).(*User)
	if !ok {
		return AnonymousUser
	}
	return user
}
