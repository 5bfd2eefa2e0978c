package port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

type PropertyStoragePort interface {
	ListProperties(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error)
	// GetProperty возвращает domain.ErrNotFound, если записи нет
	GetProperty(ctx context.Context, id string) (*domain.Property, error)
	CreateProperty(ctx context.Context, input domain.NewPropertyInput) (*domain.Property, error)
	// UpdateProperty возвращает domain.ErrNotFound, если записи нет; коллекция при этом не меняется
	UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
	DeleteProperty(ctx context.Context, id string) (bool, error)
}

type ContactStoragePort interface {
	ListContacts(ctx context.Context) ([]domain.Contact, error)
	CreateContact(ctx context.Context, input domain.NewContactInput) (*domain.Contact, error)
}

type InquiryStoragePort interface {
	ListInquiries(ctx context.Context, filters domain.InquiryFilters) ([]domain.PropertyInquiry, error)
	CreateInquiry(ctx context.Context, input domain.NewInquiryInput) (*domain.PropertyInquiry, error)
}

type UserStoragePort interface {
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
	// CreateUser возвращает domain.ErrUsernameTaken, если имя уже занято
	CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.User, error)
}
