package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	DefaultExchange = "fulfillment_events"

	dialAttempts = 10
	dialBackoff  = 2 * time.Second
)

var _ ports.EventSink = (*Publisher)(nil)

// Publisher sends lifecycle events to a durable topic exchange. The routing
// key is order.<machine>.<state>, e.g. order.payment.completed.
type Publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *slog.Logger
}

// NewPublisher dials the broker, retrying while it starts up, and declares the exchange.
func NewPublisher(ctx context.Context, url, exchange string, logger *slog.Logger) (*Publisher, error) {
	if url == "" {
		return nil, errors.New("rabbitmq url is empty")
	}
	if exchange == "" {
		exchange = DefaultExchange
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "rabbitmq_publisher")

	var conn *amqp.Connection
	var err error
	for attempt := 1; attempt <= dialAttempts; attempt++ {
		conn, err = amqp.Dial(url)
		if err == nil {
			break
		}
		logger.Warn("failed to connect to rabbitmq, retrying",
			"attempt", attempt, "max_attempts", dialAttempts, "error", err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(dialBackoff):
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = channel.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	logger.Info("connected to rabbitmq", "exchange", exchange)
	return &Publisher{
		conn:     conn,
		channel:  channel,
		exchange: exchange,
		logger:   logger,
	}, nil
}

func (p *Publisher) Publish(ctx context.Context, event order.Event) error {
	msg, err := NewPublishing(event)
	if err != nil {
		return err
	}

	err = p.channel.PublishWithContext(ctx,
		p.exchange,          // exchange
		RoutingKey(event),   // routing key
		false,               // mandatory
		false,               // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event.ID, err)
	}

	p.logger.Debug("event published", "event_id", event.ID, "routing_key", RoutingKey(event))
	return nil
}

func (p *Publisher) Close() error {
	return errors.Join(p.channel.Close(), p.conn.Close())
}

// RoutingKey returns the topic routing key of an event.
func RoutingKey(event order.Event) string {
	return strings.ToLower("order." + event.Machine + "." + event.To)
}

// NewPublishing builds a persistent JSON message for an event.
func NewPublishing(event order.Event) (amqp.Publishing, error) {
	body, err := json.Marshal(event)
	if err != nil {
		return amqp.Publishing{}, fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}
	return amqp.Publishing{
		MessageId:    event.ID,
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.OccurredAt,
		Type:         strings.ToLower(event.Machine) + "." + strings.ToLower(event.To),
		Headers: amqp.Table{
			"order_id": event.OrderID,
			"version":  event.Version,
			"cascade":  event.Cascade,
		},
		Body: body,
	}, nil
}
