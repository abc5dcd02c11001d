package types

import "errors"

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrBookingNotFound = errors.New("booking not found")
	ErrVehicleNotFound = errors.New("vehicle not found")
	ErrNotFound        = errors.New("requested item not found")

	ErrLocationNotFound = errors.New("location could not be resolved")
	ErrRouteNotFound    = errors.New("no route found between locations")
	ErrUnknownRideType  = errors.New("unknown ride type")

	ErrInvalidTransition       = errors.New("booking status transition not allowed")
	ErrCustomerNotNotified     = errors.New("customer must be notified before assigning a taxi")
	ErrBlankCancellationReason = errors.New("cancellation reason must not be blank")
	ErrBookingTerminal         = errors.New("booking is in a terminal state")

	ErrSignatureMismatch = errors.New("payment signature verification failed")
	ErrOrderAmountZero   = errors.New("order amount must be positive")

	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEditConflict       = errors.New("unable to update the record due to an edit conflict")
)
