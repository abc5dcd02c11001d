package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type BookingRepo struct {
	db *pgxpool.Pool
}

func NewBookingRepo(db *pgxpool.Pool) *BookingRepo {
	return &BookingRepo{db: db}
}

const bookingColumns = `
	b.id, b.booking_number, b.customer_name, b.customer_phone, b.customer_email,
	b.ride_type, b.pickup_address, b.drop_address, b.pickup_date, b.return_date,
	b.vehicle_id, v.name, b.distance_km, b.price_per_km, b.total_amount,
	b.status, b.taxi_assign_status,
	b.actual_km, b.toll_charges, b.extra_charge, b.cancellation_reason,
	b.created_at, b.updated_at, b.completed_at, b.cancelled_at`

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.BookingNumber, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
		&b.RideType, &b.PickupAddress, &b.DropAddress, &b.PickupDate, &b.ReturnDate,
		&b.VehicleID, &b.VehicleName, &b.DistanceKm, &b.PricePerKm, &b.TotalAmount,
		&b.Status, &b.AssignStatus,
		&b.ActualKm, &b.TollCharges, &b.ExtraCharge, &b.CancellationReason,
		&b.CreatedAt, &b.UpdatedAt, &b.CompletedAt, &b.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepo) Create(ctx context.Context, b *models.Booking) (*models.Booking, error) {
	q := TxorDB(ctx, r.db)

	query := `
		INSERT INTO bookings (booking_number, customer_name, customer_phone, customer_email,
		                      ride_type, pickup_address, drop_address, pickup_date, return_date,
		                      vehicle_id, distance_km, price_per_km, total_amount,
		                      status, taxi_assign_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at;`

	err := q.QueryRow(ctx, query,
		b.BookingNumber, b.CustomerName, b.CustomerPhone, b.CustomerEmail,
		b.RideType, b.PickupAddress, b.DropAddress, b.PickupDate, b.ReturnDate,
		b.VehicleID, b.DistanceKm, b.PricePerKm, b.TotalAmount,
		b.Status, b.AssignStatus,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("booking repo: Create: %w", err)
	}

	return b, nil
}

func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	q := TxorDB(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.id
		WHERE b.id = $1;`, bookingColumns)

	b, err := scanBooking(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking repo: Get: %w", err)
	}

	assignment, err := r.getAssignment(ctx, id)
	if err != nil {
		return nil, err
	}
	b.Assignment = assignment

	return b, nil
}

// List returns bookings filtered by status (all statuses when empty), newest
// first within the requested page.
func (r *BookingRepo) List(ctx context.Context, statuses []types.BookingStatus, filters models.Filters) ([]*models.Booking, models.Metadata, error) {
	q := TxorDB(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT count(*) OVER(), %s
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.id
		WHERE (cardinality($1::text[]) = 0 OR b.status = ANY($1))
		ORDER BY b.%s %s, b.id
		LIMIT $2 OFFSET $3;`, bookingColumns, filters.SortColumn(), filters.SortDirection())

	statusArgs := make([]string, 0, len(statuses))
	for _, s := range statuses {
		statusArgs = append(statusArgs, s.String())
	}

	rows, err := q.Query(ctx, query, statusArgs, filters.Limit(), filters.Offset())
	if err != nil {
		return nil, models.Metadata{}, fmt.Errorf("booking repo: List: %w", err)
	}
	defer rows.Close()

	var (
		bookings     []*models.Booking
		totalRecords int
	)
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(
			&totalRecords,
			&b.ID, &b.BookingNumber, &b.CustomerName, &b.CustomerPhone, &b.CustomerEmail,
			&b.RideType, &b.PickupAddress, &b.DropAddress, &b.PickupDate, &b.ReturnDate,
			&b.VehicleID, &b.VehicleName, &b.DistanceKm, &b.PricePerKm, &b.TotalAmount,
			&b.Status, &b.AssignStatus,
			&b.ActualKm, &b.TollCharges, &b.ExtraCharge, &b.CancellationReason,
			&b.CreatedAt, &b.UpdatedAt, &b.CompletedAt, &b.CancelledAt,
		)
		if err != nil {
			return nil, models.Metadata{}, fmt.Errorf("booking repo: List scan: %w", err)
		}
		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, models.Metadata{}, fmt.Errorf("booking repo: List rows: %w", err)
	}

	metadata := models.CalculateMetadata(totalRecords, filters.Page, filters.PageSize)
	return bookings, metadata, nil
}

func (r *BookingRepo) Update(ctx context.Context, b *models.Booking) error {
	q := TxorDB(ctx, r.db)

	query := `
		UPDATE bookings
		SET
			status = $2,
			taxi_assign_status = $3,
			total_amount = $4,
			actual_km = $5,
			toll_charges = $6,
			extra_charge = $7,
			cancellation_reason = $8,
			completed_at = $9,
			cancelled_at = $10,
			updated_at = now()
		WHERE id = $1;`

	cmdTag, err := q.Exec(ctx, query,
		b.ID,
		b.Status,
		b.AssignStatus,
		b.TotalAmount,
		b.ActualKm,
		b.TollCharges,
		b.ExtraCharge,
		b.CancellationReason,
		b.CompletedAt,
		b.CancelledAt,
	)
	if err != nil {
		return fmt.Errorf("booking repo: Update: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return types.ErrBookingNotFound
	}

	return nil
}

func (r *BookingRepo) CountByDate(ctx context.Context, date time.Time) (int, error) {
	q := TxorDB(ctx, r.db)

	var count int
	query := "SELECT COUNT(*) FROM bookings WHERE DATE(created_at) = $1;"

	err := q.QueryRow(ctx, query, date.Format("2006-01-02")).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("booking repo: CountByDate: %w", err)
	}
	return count, nil
}

/* ================= Assignment ================= */

// UpsertAssignment keeps a single current assignment per booking.
func (r *BookingRepo) UpsertAssignment(ctx context.Context, a *models.Assignment) error {
	q := TxorDB(ctx, r.db)

	query := `
		INSERT INTO booking_assignments (booking_id, driver_name, driver_number, cab_name, cab_number, assigned_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (booking_id)
		DO UPDATE SET
			driver_name = EXCLUDED.driver_name,
			driver_number = EXCLUDED.driver_number,
			cab_name = EXCLUDED.cab_name,
			cab_number = EXCLUDED.cab_number,
			assigned_at = now()
		RETURNING assigned_at;`

	err := q.QueryRow(ctx, query, a.BookingID, a.DriverName, a.DriverNumber, a.CabName, a.CabNumber).Scan(&a.AssignedAt)
	if err != nil {
		return fmt.Errorf("booking repo: UpsertAssignment: %w", err)
	}
	return nil
}

func (r *BookingRepo) getAssignment(ctx context.Context, bookingID uuid.UUID) (*models.Assignment, error) {
	q := TxorDB(ctx, r.db)

	query := `
		SELECT booking_id, driver_name, driver_number, cab_name, cab_number, assigned_at
		FROM booking_assignments
		WHERE booking_id = $1;`

	var a models.Assignment
	err := q.QueryRow(ctx, query, bookingID).Scan(
		&a.BookingID, &a.DriverName, &a.DriverNumber, &a.CabName, &a.CabNumber, &a.AssignedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("booking repo: getAssignment: %w", err)
	}
	return &a, nil
}

/* ================= Payments ================= */

// AppendPayment inserts a new ledger entry. The ledger is append-only,
// entries are never updated or deleted.
func (r *BookingRepo) AppendPayment(ctx context.Context, p *models.Payment) error {
	q := TxorDB(ctx, r.db)

	query := `
		INSERT INTO payments (booking_id, amount, status, method, order_id, payment_ref)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at;`

	err := q.QueryRow(ctx, query,
		p.BookingID, p.Amount, p.Status, p.Method, p.OrderID, p.PaymentRef,
	).Scan(&p.ID, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("booking repo: AppendPayment: %w", err)
	}
	return nil
}

func (r *BookingRepo) ListPayments(ctx context.Context, bookingID uuid.UUID) ([]*models.Payment, error) {
	q := TxorDB(ctx, r.db)

	query := `
		SELECT id, booking_id, amount, status, method, order_id, payment_ref, created_at
		FROM payments
		WHERE booking_id = $1
		ORDER BY created_at;`

	rows, err := q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking repo: ListPayments: %w", err)
	}
	defer rows.Close()

	var payments []*models.Payment
	for rows.Next() {
		var p models.Payment
		err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Status, &p.Method, &p.OrderID, &p.PaymentRef, &p.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("booking repo: ListPayments scan: %w", err)
		}
		payments = append(payments, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("booking repo: ListPayments rows: %w", err)
	}

	return payments, nil
}

// GetByOrderID finds the booking created for a payment order.
func (r *BookingRepo) GetByOrderID(ctx context.Context, orderID string) (*models.Booking, error) {
	q := TxorDB(ctx, r.db)

	query := fmt.Sprintf(`
		SELECT %s
		FROM bookings b
		JOIN vehicles v ON b.vehicle_id = v.id
		JOIN payments p ON p.booking_id = b.id
		WHERE p.order_id = $1
		LIMIT 1;`, bookingColumns)

	b, err := scanBooking(q.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, types.ErrBookingNotFound
		}
		return nil, fmt.Errorf("booking repo: GetByOrderID: %w", err)
	}
	return b, nil
}
