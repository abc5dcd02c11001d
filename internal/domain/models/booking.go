package models

import (
	"time"

	"github.com/urbancabz/booking-system/internal/domain/types"
	"github.com/urbancabz/booking-system/pkg/uuid"
)

// Booking is the dispatch record for one trip.
type Booking struct {
	ID            uuid.UUID `json:"id"`
	BookingNumber string    `json:"booking_number"`

	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email,omitempty"`

	RideType      types.RideType `json:"ride_type"`
	PickupAddress string         `json:"pickup_address"`
	DropAddress   string         `json:"drop_address"`
	PickupDate    time.Time      `json:"pickup_date"`
	ReturnDate    *time.Time     `json:"return_date,omitempty"`

	VehicleID   uuid.UUID `json:"vehicle_id"`
	VehicleName string    `json:"vehicle_name"`
	DistanceKm  float64   `json:"distance_km"`
	PricePerKm  float64   `json:"price_per_km"`

	// TotalAmount is quoted at creation and overwritten by the completion
	// true-up.
	TotalAmount int64 `json:"total_amount"`

	Status       types.BookingStatus `json:"status"`
	AssignStatus types.AssignStatus  `json:"taxi_assign_status"`
	Assignment   *Assignment         `json:"assignment,omitempty"`

	// Completion fields, present only on COMPLETED bookings.
	ActualKm    *float64 `json:"actual_km,omitempty"`
	TollCharges *int64   `json:"toll_charges,omitempty"`
	ExtraCharge *int64   `json:"extra_charge,omitempty"`

	// CancellationReason is present only on CANCELLED bookings.
	CancellationReason *string `json:"cancellation_reason,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at,omitzero"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CancelledAt *time.Time `json:"cancelled_at,omitempty"`
}

// Assignment is the single current taxi assignment of a booking.
// Re-assigning replaces it.
type Assignment struct {
	BookingID    uuid.UUID `json:"booking_id"`
	DriverName   string    `json:"driver_name"`
	DriverNumber string    `json:"driver_number"`
	CabName      string    `json:"cab_name"`
	CabNumber    string    `json:"cab_number"`
	AssignedAt   time.Time `json:"assigned_at"`
}

// Payment is one append-only ledger entry against a booking.
type Payment struct {
	ID         uuid.UUID           `json:"id"`
	BookingID  uuid.UUID           `json:"booking_id"`
	Amount     int64               `json:"amount"`
	Status     types.PaymentStatus `json:"status"`
	Method     string              `json:"method,omitempty"`
	OrderID    string              `json:"order_id,omitempty"`
	PaymentRef string              `json:"payment_ref,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
}

// Note is a free-text admin annotation on a booking.
type Note struct {
	ID        uuid.UUID `json:"id"`
	BookingID uuid.UUID `json:"booking_id"`
	Author    string    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// Balance summarizes the ledger position of a booking.
type Balance struct {
	Total int64 `json:"total"`
	Paid  int64 `json:"paid"`
	Due   int64 `json:"due"`
}

const (
	PaidFullOnline = "Full Online"
	PaidPartial    = "Partial"
	PaidUnpaid     = "Unpaid"
)

// Classification buckets the balance for display.
func (b Balance) Classification() string {
	switch {
	case b.Paid <= 0:
		return PaidUnpaid
	case b.Due == 0:
		return PaidFullOnline
	default:
		return PaidPartial
	}
}

// BookingEvent is published on every lifecycle transition.
type BookingEvent struct {
	Type          types.BookingEventType `json:"type"`
	BookingID     uuid.UUID              `json:"booking_id"`
	BookingNumber string                 `json:"booking_number"`
	OldStatus     types.BookingStatus    `json:"old_status,omitempty"`
	NewStatus     types.BookingStatus    `json:"new_status,omitempty"`
	OccurredAt    time.Time              `json:"occurred_at"`
}
