package rabbitmq_test

import (
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/rabbitmq"
	"fulfillment/internal/core/domain/model/order"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paymentCompleted() order.Event {
	return order.Event{
		ID:         "0b7c1c1e-7a0f-4e53-9a55-5d3c3b1b8f10",
		OrderID:    42,
		Machine:    "PAYMENT",
		From:       "PROCESSING",
		To:         "COMPLETED",
		Actor:      "payment-webhook:evt_1",
		Title:      "Payment Received",
		Version:    5,
		OccurredAt: time.Date(2025, 3, 14, 12, 30, 0, 0, time.UTC),
	}
}

func TestRoutingKey(t *testing.T) {
	assert.Equal(t, "order.payment.completed", rabbitmq.RoutingKey(paymentCompleted()))

	e := paymentCompleted()
	e.Machine, e.To = "ORDER", "OUT_FOR_DELIVERY"
	assert.Equal(t, "order.order.out_for_delivery", rabbitmq.RoutingKey(e))
}

func TestNewPublishing(t *testing.T) {
	e := paymentCompleted()

	msg, err := rabbitmq.NewPublishing(e)

	require.NoError(t, err)
	assert.Equal(t, e.ID, msg.MessageId)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, int64(42), msg.Headers["order_id"])
	assert.Equal(t, int64(5), msg.Headers["version"])

	var decoded order.Event
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	assert.Equal(t, e.To, decoded.To)
	assert.True(t, e.OccurredAt.Equal(decoded.OccurredAt))
}
