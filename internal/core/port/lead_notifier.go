package port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

// LeadNotifierPort передает новые лиды во внешнюю систему сообщений (CRM, почта, мессенджеры).
type LeadNotifierPort interface {
	ContactCreated(ctx context.Context, contact domain.Contact) error
	InquiryCreated(ctx context.Context, inquiry domain.PropertyInquiry) error
}
