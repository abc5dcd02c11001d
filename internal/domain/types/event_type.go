package types

// BookingEventType is published on the booking events feed.
type BookingEventType string

func (e BookingEventType) String() string {
	return string(e)
}

const (
	EventBookingCreated   BookingEventType = "BOOKING_CREATED"
	EventBookingPaid      BookingEventType = "BOOKING_PAID"
	EventTaxiAssigned     BookingEventType = "TAXI_ASSIGNED"
	EventStatusChanged    BookingEventType = "STATUS_CHANGED"
	EventBookingCompleted BookingEventType = "BOOKING_COMPLETED"
	EventBookingCancelled BookingEventType = "BOOKING_CANCELLED"
	EventPaymentRecorded  BookingEventType = "PAYMENT_RECORDED"
)
