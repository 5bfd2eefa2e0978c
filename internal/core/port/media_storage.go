package port

import (
	"context"
	"io"
)

// MediaStoragePort сохраняет загруженные фото и видео объектов и возвращает публичный URL.
type MediaStoragePort interface {
	Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error)
}
