package usecases_port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

type LoginUserUseCasePort interface {
	Execute(ctx context.Context, username, password string) (*domain.User, string, error) // Возвращает JWT токен
}

type ValidateTokenUseCasePort interface {
	Execute(ctx context.Context, tokenString string) (*domain.Claims, error)
}

type CreateUserUseCasePort interface {
	Execute(ctx context.Context, username, password string) (*domain.User, error)
}

type GetUserUseCasePort interface {
	Execute(ctx context.Context, id string) (*domain.User, error)
}
