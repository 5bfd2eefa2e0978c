package rabbitmq

import (
	"brokerage-service/internal/constants"
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type capturePublisher struct {
	routingKey string
	msg        amqp.Publishing
	err        error
}

func (c *capturePublisher) Publish(_ context.Context, routingKey string, msg amqp.Publishing) error {
	c.routingKey = routingKey
	c.msg = msg
	return c.err
}

func TestInquiryCreatedPublishesEvent(t *testing.T) {
	pub := &capturePublisher{}
	adapter, err := NewLeadNotifierAdapter(pub)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}
	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
	msg := "Is it still available?"
	inquiry := domain.PropertyInquiry{
		ID: "inq-1", PropertyID: "prop-9", FullName: "Chidi", Email: "c@example.com", Phone: "080",
		Message: &msg, CreatedAt: time.Date(2024, 2, 2, 0, 0, 0, 0, time.UTC),
	}

	if err := adapter.InquiryCreated(ctx, inquiry); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if pub.routingKey != constants.RoutingKeyInquiryCreated {
		t.Fatalf("unexpected routing key %s", pub.routingKey)
	}
	if pub.msg.DeliveryMode != amqp.Persistent || pub.msg.Headers["x-trace-id"] != "trace-123" {
		t.Fatalf("unexpected publishing %+v", pub.msg)
	}

	var dto LeadEventDTO
	if err := json.Unmarshal(pub.msg.Body, &dto); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if dto.Event != "inquiry.created" || dto.PropertyID != "prop-9" || dto.Message == nil || *dto.Message != msg {
		t.Fatalf("unexpected event %+v", dto)
	}
}

func TestContactCreatedWrapsPublishError(t *testing.T) {
	boom := errors.New("channel closed")
	adapter, _ := NewLeadNotifierAdapter(&capturePublisher{err: boom})
	err := adapter.ContactCreated(context.Background(), domain.Contact{ID: "c-1"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped publish error, got %v", err)
	}
}

func TestNewLeadNotifierAdapterRequiresProducer(t *testing.T) {
	if _, err := NewLeadNotifierAdapter(nil); err == nil {
		t.Fatalf("expected error for nil producer")
	}
}
