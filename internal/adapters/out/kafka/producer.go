package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

const DefaultTopic = "fulfillment.events"

var _ ports.EventSink = (*Producer)(nil)

// Producer writes lifecycle events to a topic keyed by order id, so every
// event of one order lands on the same partition in commit order.
type Producer struct {
	writer     *kafka.Writer
	propagator propagation.TextMapPropagator
	logger     *slog.Logger
}

func NewWriter(brokers []string, topic string) (*kafka.Writer, error) {
	if len(brokers) == 0 {
		return nil, errors.New("kafka brokers are empty")
	}
	if topic == "" {
		topic = DefaultTopic
	}
	return &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		BatchTimeout:           10 * time.Millisecond,
		AllowAutoTopicCreation: true,
	}, nil
}

func NewProducer(writer *kafka.Writer, logger *slog.Logger) *Producer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Producer{
		writer:     writer,
		propagator: otel.GetTextMapPropagator(),
		logger:     logger.With("component", "kafka_producer"),
	}
}

func (p *Producer) Publish(ctx context.Context, event order.Event) error {
	msg, err := NewMessage(event)
	if err != nil {
		return err
	}
	carrier := headerCarrier{headers: &msg.Headers}
	p.propagator.Inject(ctx, carrier)

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to write event %s: %w", event.ID, err)
	}

	p.logger.Debug("event written", "event_id", event.ID, "topic", p.writer.Topic)
	return nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// NewMessage builds the kafka message of an event.
func NewMessage(event order.Event) (kafka.Message, error) {
	value, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to marshal event %s: %w", event.ID, err)
	}
	return kafka.Message{
		Key:   []byte(strconv.FormatInt(event.OrderID, 10)),
		Value: value,
		Time:  event.OccurredAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(event.ID)},
			{Key: "machine", Value: []byte(event.Machine)},
			{Key: "version", Value: []byte(strconv.FormatInt(event.Version, 10))},
		},
	}, nil
}

// headerCarrier adapts kafka headers to the otel text map carrier.
type headerCarrier struct {
	headers *[]kafka.Header
}

func (c headerCarrier) Get(key string) string {
	for _, h := range *c.headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func (c headerCarrier) Set(key, value string) {
	for i, h := range *c.headers {
		if h.Key == key {
			(*c.headers)[i].Value = []byte(value)
			return
		}
	}
	*c.headers = append(*c.headers, kafka.Header{Key: key, Value: []byte(value)})
}

func (c headerCarrier) Keys() []string {
	keys := make([]string, 0, len(*c.headers))
	for _, h := range *c.headers {
		keys = append(keys, h.Key)
	}
	return keys
}
