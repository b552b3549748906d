package kafka

import (
	"encoding/json"
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/order"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMessage(t *testing.T) {
	event := order.Event{
		ID:         "e-1",
		OrderID:    7,
		Machine:    "DELIVERY",
		From:       "PENDING",
		To:         "ASSIGNED",
		Version:    3,
		OccurredAt: time.Date(2025, 3, 14, 12, 0, 0, 0, time.UTC),
	}

	msg, err := NewMessage(event)

	require.NoError(t, err)
	assert.Equal(t, "7", string(msg.Key))
	var decoded order.Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, "ASSIGNED", decoded.To)
	carrier := headerCarrier{headers: &msg.Headers}
	assert.Equal(t, "e-1", carrier.Get("event_id"))
	assert.Equal(t, "3", carrier.Get("version"))
}

func TestHeaderCarrier(t *testing.T) {
	var headers []kafka.Header
	carrier := headerCarrier{headers: &headers}

	carrier.Set("traceparent", "00-a-b-01")
	carrier.Set("traceparent", "00-c-d-01")
	carrier.Set("baggage", "k=v")

	require.Len(t, headers, 2)
	assert.Equal(t, "00-c-d-01", carrier.Get("traceparent"))
	assert.Empty(t, carrier.Get("missing"))
	assert.ElementsMatch(t, []string{"traceparent", "baggage"}, carrier.Keys())
}

func TestNewWriter(t *testing.T) {
	_, err := NewWriter(nil, "")
	require.Error(t, err)

	w, err := NewWriter([]string{"localhost:9092"}, "")
	require.NoError(t, err)
	assert.Equal(t, DefaultTopic, w.Topic)
	assert.IsType(t, &kafka.Hash{}, w.Balancer)
}
