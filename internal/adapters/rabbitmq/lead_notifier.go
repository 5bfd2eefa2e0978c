package rabbitmq

import (
	"brokerage-service/internal/constants"
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

var _ port.LeadNotifierPort = (*LeadNotifierAdapter)(nil)

// publisher - часть rabbitmq_producer.Publisher, нужная адаптеру
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

// LeadEventDTO - тело сообщения о новом лиде
type LeadEventDTO struct {
	Event      string    `json:"event"`
	LeadID     string    `json:"lead_id"`
	PropertyID string    `json:"property_id,omitempty"`
	FullName   string    `json:"full_name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    *string   `json:"message,omitempty"`
	Budget     *string   `json:"budget,omitempty"`
	Purpose    *string   `json:"purpose,omitempty"`
	Preferred  *string   `json:"preferred_contact_method,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

type LeadNotifierAdapter struct {
	producer       publisher
	publishTimeout time.Duration
}

func NewLeadNotifierAdapter(producer publisher) (*LeadNotifierAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("rabbitmq adapter: producer cannot be nil")
	}
	return &LeadNotifierAdapter{producer: producer, publishTimeout: 10 * time.Second}, nil
}

func (a *LeadNotifierAdapter) ContactCreated(ctx context.Context, contact domain.Contact) error {
	return a.publish(ctx, constants.RoutingKeyContactCreated, LeadEventDTO{
		Event:     "contact.created",
		LeadID:    contact.ID,
		FullName:  contact.FullName,
		Email:     contact.Email,
		Phone:     contact.Phone,
		Message:   contact.Message,
		Budget:    contact.Budget,
		Purpose:   contact.Purpose,
		Preferred: contact.ContactMethod,
		CreatedAt: contact.CreatedAt,
	})
}

func (a *LeadNotifierAdapter) InquiryCreated(ctx context.Context, inquiry domain.PropertyInquiry) error {
	return a.publish(ctx, constants.RoutingKeyInquiryCreated, LeadEventDTO{
		Event:      "inquiry.created",
		LeadID:     inquiry.ID,
		PropertyID: inquiry.PropertyID,
		FullName:   inquiry.FullName,
		Email:      inquiry.Email,
		Phone:      inquiry.Phone,
		Message:    inquiry.Message,
		CreatedAt:  inquiry.CreatedAt,
	})
}

func (a *LeadNotifierAdapter) publish(ctx context.Context, routingKey string, dto LeadEventDTO) error {
	adapterLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":   "LeadNotifierAdapter",
		"routing_key": routingKey,
		"lead_id":     dto.LeadID,
	})

	body, err := json.Marshal(dto)
	if err != nil {
		return fmt.Errorf("rabbitmq adapter: failed to marshal lead event: %w", err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now(),
		MessageId:    dto.LeadID,
		Type:         dto.Event,
		Headers:      make(amqp.Table),
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	// публикация не должна зависеть от отмены HTTP-запроса
	publishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), a.publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish lead event", err, nil)
		return fmt.Errorf("rabbitmq adapter: failed to publish %s for lead %s: %w", dto.Event, dto.LeadID, err)
	}

	adapterLogger.Info("Lead event published", nil)
	return nil
}
