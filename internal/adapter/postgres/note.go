package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbancabz/booking-system/internal/domain/models"
	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/postgres"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

type NoteRepo struct {
	db *pgxpool.Pool
}

func NewNoteRepo(db *pgxpool.Pool) *NoteRepo {
	return &NoteRepo{db: db}
}

func (r *NoteRepo) Create(ctx context.Context, n *models.Note) (*models.Note, error) {
	q := TxorDB(ctx, r.db)

	query := `
		INSERT INTO booking_notes (booking_id, author, text)
		VALUES ($1, $2, $3)
		RETURNING id, created_at;`

	err := q.QueryRow(ctx, query, n.BookingID, n.Author, n.Text).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		if postgres.IsForeignKeyViolation(err) {
			return nil, types.ErrBookingNotFound
		}
		return nil, fmt.Errorf("note repo: Create: %w", err)
	}

	return n, nil
}

func (r *NoteRepo) ListByBooking(ctx context.Context, bookingID uuid.UUID) ([]*models.Note, error) {
	q := TxorDB(ctx, r.db)

	query := `
		SELECT id, booking_id, author, text, created_at
		FROM booking_notes
		WHERE booking_id = $1
		ORDER BY created_at;`

	rows, err := q.Query(ctx, query, bookingID)
	if err != nil {
		return nil, fmt.Errorf("note repo: ListByBooking: %w", err)
	}
	defer rows.Close()

	var notes []*models.Note
	for rows.Next() {
		var n models.Note
		if err := rows.Scan(&n.ID, &n.BookingID, &n.Author, &n.Text, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("note repo: ListByBooking scan: %w", err)
		}
		notes = append(notes, &n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("note repo: ListByBooking rows: %w", err)
	}

	return notes, nil
}
