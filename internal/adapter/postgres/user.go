package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/postgres"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type UserRepo struct {
	db *pgxpool.Pool
}

func NewUserRepo(db *pgxpool.Pool) *UserRepo {
	return &UserRepo{db: db}
}

func (r *UserRepo) Create(ctx context.Context, u *models.User) (uuid.UUID, error) {
	if u == nil {
		return uuid.UUID{}, errors.New("nil user")
	}

	query := `
		INSERT INTO users (name, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at;`

	err := TxorDB(ctx, r.db).QueryRow(ctx, query,
		u.Name, u.Email, u.GetPassword(), u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return uuid.UUID{}, fmt.Errorf("user repo: Create: email already in use")
		}
		return uuid.UUID{}, fmt.Errorf("user repo: Create: %w", err)
	}

	return u.ID, nil
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE email = $1;`

	var (
		u            models.User
		passwordHash string
	)
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, email).Scan(
		&u.ID, &u.Name, &u.Email, &passwordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("user repo: GetByEmail: %w", err)
	}
	u.SetPassword(passwordHash)

	return &u, nil
}

func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, role, created_at, updated_at
		FROM users
		WHERE id = $1;`

	var (
		u            models.User
		passwordHash string
	)
	err := TxorDB(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &passwordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrUserNotFound
		}
		return nil, fmt.Errorf("user repo: GetByID: %w", err)
	}
	u.SetPassword(passwordHash)

	return &u, nil
}
