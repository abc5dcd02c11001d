package razorpay

import (
	"context"
	"fmt"

	razorpay "github.com/razorpay/razorpay-go"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
)

// Order is a created checkout order as the storefront needs it.
type Order struct {
	OrderID  string `json:"order_id"`
	Amount   int64  `json:"amount"` // smallest currency unit (paise)
	Currency string `json:"currency"`
}

// Gateway wraps the Razorpay orders API.
type Gateway struct {
	client *razorpay.Client
	keyID  string
}

func New(keyID, keySecret string) *Gateway {
	return &Gateway{
		client: razorpay.NewClient(keyID, keySecret),
		keyID:  keyID,
	}
}

// KeyID is the public key the checkout widget needs.
func (g *Gateway) KeyID() string {
	return g.keyID
}

// CreateOrder creates a checkout order for the given amount in rupees.
func (g *Gateway) CreateOrder(ctx context.Context, amountRupees int64, receipt string) (Order, error) {
	const op = "razorpay.CreateOrder"

	data := map[string]interface{}{
		"amount":   amountRupees * 100, // rupees to paise
		"currency": "INR",
		"receipt":  receipt,
	}

	body, err := g.client.Order.Create(data, nil)
	if err != nil {
		return Order{}, wrap.Error(ctx, fmt.Errorf("%s: %w", op, err))
	}

	id, _ := body["id"].(string)
	currency, _ := body["currency"].(string)
	amount, _ := body["amount"].(float64)

	if id == "" {
		return Order{}, wrap.Error(ctx, fmt.Errorf("%s: response has no order id", op))
	}

	return Order{
		OrderID:  id,
		Amount:   int64(amount),
		Currency: currency,
	}, nil
}
