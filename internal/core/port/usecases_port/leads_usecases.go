package usecases_port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

type CreateContactUseCasePort interface {
	Execute(ctx context.Context, input domain.NewContactInput) (*domain.Contact, error)
}

type ListContactsUseCasePort interface {
	Execute(ctx context.Context) ([]domain.Contact, error)
}

type CreateInquiryUseCasePort interface {
	Execute(ctx context.Context, input domain.NewInquiryInput) (*domain.PropertyInquiry, error)
}

type ListInquiriesUseCasePort interface {
	Execute(ctx context.Context, filters domain.InquiryFilters) ([]domain.PropertyInquiry, error)
}
