package port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

// DescriptionGeneratorPort - внешний сервис генерации текста для карточки объекта.
type DescriptionGeneratorPort interface {
	GenerateDescription(ctx context.Context, req domain.DescriptionRequest) (string, error)
}
