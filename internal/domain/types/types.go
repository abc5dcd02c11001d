package types

import "fmt"

// BookingStatus is the lifecycle state of a booking.
type BookingStatus string

func (s BookingStatus) String() string {
	return string(s)
}

const (
	StatusPendingPayment BookingStatus = "PENDING_PAYMENT"
	StatusPaid           BookingStatus = "PAID"
	StatusInProgress     BookingStatus = "IN_PROGRESS"
	StatusCompleted      BookingStatus = "COMPLETED"
	StatusCancelled      BookingStatus = "CANCELLED"
)

// Terminal reports whether no further transitions are allowed from s.
func (s BookingStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusCancelled
}

// AssignStatus tracks whether a taxi has been assigned to a booking.
type AssignStatus string

func (s AssignStatus) String() string {
	return string(s)
}

const (
	AssignNotAssigned AssignStatus = "NOT_ASSIGNED"
	AssignAssigned    AssignStatus = "ASSIGNED"
)

// PaymentStatus is the state of a single ledger entry.
type PaymentStatus string

func (s PaymentStatus) String() string {
	return string(s)
}

const (
	PaymentPending PaymentStatus = "PENDING"
	PaymentSuccess PaymentStatus = "SUCCESS"
	PaymentPaid    PaymentStatus = "PAID"
	PaymentFailed  PaymentStatus = "FAILED"
)

// Settled reports whether the entry counts toward the amount paid.
func (s PaymentStatus) Settled() bool {
	return s == PaymentSuccess || s == PaymentPaid
}

// RideType distinguishes the three trip shapes with different billing rules.
type RideType string

func (t RideType) String() string {
	return string(t)
}

const (
	RideAirport   RideType = "AIRPORT"
	RideOneway    RideType = "ONEWAY"
	RideRoundtrip RideType = "ROUNDTRIP"
)

// ParseRideType validates a raw ride type string.
func ParseRideType(raw string) (RideType, error) {
	switch RideType(raw) {
	case RideAirport:
		return RideAirport, nil
	case RideOneway:
		return RideOneway, nil
	case RideRoundtrip:
		return RideRoundtrip, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRideType, raw)
	}
}

// UserRole of an authenticated user.
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	AdminRole    UserRole = "ADMIN"
	CustomerRole UserRole = "CUSTOMER"
	BusinessRole UserRole = "BUSINESS"
)
