package orders

import (
	"encoding/json"
	"time"

	kafkago "github.com/segmentio/kafka-go"
)

const (
	EventOrderSubmitted     = "OrderSubmitted"
	EventOrderStatusChanged = "OrderStatusChanged"
)

type Envelope struct {
	EventID       string          `json:"event_id"`      // uuid
	EventType     string          `json:"event_type"`    // salah satu const di atas
	EventVersion  int             `json:"event_version"` // 1
	OccurredAt    time.Time       `json:"occurred_at"`   // RFC3339
	Producer      string          `json:"producer"`      // e.g., "invitation-api"
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // order id
	Payload       json.RawMessage `json:"payload"`
}

type OrderSubmittedPayload struct {
	Order      Order  `json:"order"`
	DesignName string `json:"design_name"`
	Total      int    `json:"total"`
}

type OrderStatusChangedPayload struct {
	OrderID string `json:"order_id"`
	From    Status `json:"from"`
	To      Status `json:"to"`
}

// Publisher is satisfied by *kafka.Producer.
type Publisher interface {
	Publish(key, value []byte, headers ...kafkago.Header)
}

// NopPublisher dipakai kalau KAFKA_BROKERS kosong.
type NopPublisher struct{}

func (NopPublisher) Publish([]byte, []byte, ...kafkago.Header) {}
