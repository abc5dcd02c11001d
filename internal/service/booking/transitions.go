package booking

import "github.com/urbancabz/booking-system/internal/domain/types"

// transitions is the booking state machine. CANCELLED is reachable from any
// non-terminal state; nothing leaves COMPLETED or CANCELLED.
var transitions = map[types.BookingStatus][]types.BookingStatus{
	types.StatusPendingPayment: {types.StatusPaid, types.StatusCancelled},
	types.StatusPaid:           {types.StatusInProgress, types.StatusCancelled},
	types.StatusInProgress:     {types.StatusCompleted, types.StatusCancelled},
	types.StatusCompleted:      {},
	types.StatusCancelled:      {},
}

// canTransition reports whether moving from one status to another is allowed.
func canTransition(from, to types.BookingStatus) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
