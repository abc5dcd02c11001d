package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type FleetRepo struct {
	db *pgxpool.Pool
}

func NewFleetRepo(db *pgxpool.Pool) *FleetRepo {
	return &FleetRepo{db: db}
}

func (r *FleetRepo) Create(ctx context.Context, v *models.Vehicle) (*models.Vehicle, error) {
	q := TxorDB(ctx, r.db)

	query := `
		INSERT INTO vehicles (name, vehicle_type, seats, bags, price_per_km, tags, active)
		VALUES ($1, $2, $3, $4, $5, $6, true)
		RETURNING id, created_at;`

	err := q.QueryRow(ctx, query,
		v.Name, v.VehicleType, v.Seats, v.Bags, v.PricePerKm, v.Tags,
	).Scan(&v.ID, &v.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("fleet repo: Create: %w", err)
	}
	v.Active = true

	return v, nil
}

func (r *FleetRepo) Get(ctx context.Context, id uuid.UUID) (*models.Vehicle, error) {
	q := TxorDB(ctx, r.db)

	query := `
		SELECT id, name, vehicle_type, seats, bags, price_per_km, tags, active, created_at, updated_at
		FROM vehicles
		WHERE id = $1;`

	var v models.Vehicle
	err := q.QueryRow(ctx, query, id).Scan(
		&v.ID, &v.Name, &v.VehicleType, &v.Seats, &v.Bags, &v.PricePerKm, &v.Tags, &v.Active, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("fleet repo: Get: %w", err)
	}

	return &v, nil
}

// ListActive returns the public catalog, cheapest first.
func (r *FleetRepo) ListActive(ctx context.Context) ([]*models.Vehicle, error) {
	return r.list(ctx, true)
}

// ListAll returns every vehicle including deactivated ones.
func (r *FleetRepo) ListAll(ctx context.Context) ([]*models.Vehicle, error) {
	return r.list(ctx, false)
}

func (r *FleetRepo) list(ctx context.Context, activeOnly bool) ([]*models.Vehicle, error) {
	q := TxorDB(ctx, r.db)

	query := `
		SELECT id, name, vehicle_type, seats, bags, price_per_km, tags, active, created_at, updated_at
		FROM vehicles
		WHERE ($1 = false OR active = true)
		ORDER BY price_per_km, name;`

	rows, err := q.Query(ctx, query, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("fleet repo: list: %w", err)
	}
	defer rows.Close()

	var vehicles []*models.Vehicle
	for rows.Next() {
		var v models.Vehicle
		err := rows.Scan(&v.ID, &v.Name, &v.VehicleType, &v.Seats, &v.Bags, &v.PricePerKm, &v.Tags, &v.Active, &v.CreatedAt, &v.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("fleet repo: list scan: %w", err)
		}
		vehicles = append(vehicles, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fleet repo: list rows: %w", err)
	}

	return vehicles, nil
}

func (r *FleetRepo) Update(ctx context.Context, v *models.Vehicle) error {
	q := TxorDB(ctx, r.db)

	query := `
		UPDATE vehicles
		SET name = $2, vehicle_type = $3, seats = $4, bags = $5, price_per_km = $6, tags = $7, active = $8, updated_at = now()
		WHERE id = $1;`

	cmdTag, err := q.Exec(ctx, query, v.ID, v.Name, v.VehicleType, v.Seats, v.Bags, v.PricePerKm, v.Tags, v.Active)
	if err != nil {
		return fmt.Errorf("fleet repo: Update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrVehicleNotFound
	}

	return nil
}

// Deactivate hides a vehicle from the catalog. Rows are never deleted so
// existing bookings keep their vehicle reference.
func (r *FleetRepo) Deactivate(ctx context.Context, id uuid.UUID) error {
	q := TxorDB(ctx, r.db)

	query := `UPDATE vehicles SET active = false, updated_at = now() WHERE id = $1;`

	cmdTag, err := q.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("fleet repo: Deactivate: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrVehicleNotFound
	}

	return nil
}
