package rabbit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/urbancabz/booking-system/internal/domain/models"
	wrap "github.com/urbancabz/booking-system/pkg/logger/wrapper"
	"github.com/urbancabz/booking-system/pkg/metrics"
	"github.com/urbancabz/booking-system/pkg/rabbit"
)

const bookingExchange = "booking_events"

// BookingProducer publishes booking lifecycle events to the booking_events
// topic exchange. Routing key is booking.<event_type>.
type BookingProducer struct {
	client *rabbit.RabbitMQ
}

func NewBookingProducer(client *rabbit.RabbitMQ) (*BookingProducer, error) {
	if err := client.Channel.ExchangeDeclare(
		bookingExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		return nil, fmt.Errorf("failed to declare exchange %q: %w", bookingExchange, err)
	}

	return &BookingProducer{client: client}, nil
}

// PublishBookingEvent publishes a lifecycle event.
func (r *BookingProducer) PublishBookingEvent(ctx context.Context, event models.BookingEvent) error {
	const op = "BookingProducer.PublishBookingEvent"

	body, err := json.Marshal(event)
	if err != nil {
		ctx = wrap.WithAction(ctx, "marshal_booking_event")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to marshal message: %w", op, err))
	}

	key := fmt.Sprintf("booking.%s", event.Type)

	if err := r.client.Channel.PublishWithContext(
		ctx,
		bookingExchange,
		key,   // routing key
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Body:        body,
			Timestamp:   time.Now(),
		},
	); err != nil {
		metrics.RecordRabbitMQPublish("booking-system", key, err)
		ctx = wrap.WithAction(ctx, "publish_message")
		return wrap.Error(ctx, fmt.Errorf("%s: failed to publish with context: %w", op, err))
	}

	metrics.RecordRabbitMQPublish("booking-system", key, nil)

	return nil
}
