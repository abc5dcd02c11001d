package dto

// CreateOrderRequest opens a checkout order for a quoted booking.
type CreateOrderRequest struct {
	Booking BookingRequest `json:"booking"`
}

// VerifyRequest carries the checkout result returned by the payment widget.
type VerifyRequest struct {
	OrderID   string `json:"razorpay_order_id"`
	PaymentID string `json:"razorpay_payment_id"`
	Signature string `json:"razorpay_signature"`
}
