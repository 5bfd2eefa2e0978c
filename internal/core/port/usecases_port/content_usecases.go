package usecases_port

import (
	"brokerage-service/internal/core/domain"
	"context"
	"io"
)

type GenerateDescriptionUseCasePort interface {
	Execute(ctx context.Context, req domain.DescriptionRequest) (string, error)
}

type UploadMediaUseCasePort interface {
	// Возвращает публичный URL загруженного файла
	Execute(ctx context.Context, filename, contentType string, r io.Reader) (string, error)
}
