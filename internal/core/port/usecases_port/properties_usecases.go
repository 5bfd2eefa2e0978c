package usecases_port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

type ListPropertiesUseCasePort interface {
	// perPage <= 0 - без пагинации
	Execute(ctx context.Context, filters domain.PropertyFilters, page, perPage int) (domain.Page[domain.Property], error)
}

type GetPropertyUseCasePort interface {
	Execute(ctx context.Context, id string) (*domain.Property, error)
}

type CreatePropertyUseCasePort interface {
	Execute(ctx context.Context, input domain.NewPropertyInput) (*domain.Property, error)
}

type UpdatePropertyUseCasePort interface {
	Execute(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error)
}

type DeletePropertyUseCasePort interface {
	Execute(ctx context.Context, id string) error // domain.ErrNotFound, если удалять нечего
}
