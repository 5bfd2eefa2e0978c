// Package filestore хранит каждую коллекцию в отдельном JSON-файле внутри каталога данных.
package filestore

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

var _ port.DocumentBackendPort = (*DocumentBackend)(nil)
var _ port.QuarantinePort = (*DocumentBackend)(nil)

// DocumentBackend - файловое хранилище документов: <dir>/<collection>.json.
// Файл заменяется целиком через временный файл и rename, поэтому читатель
// никогда не видит наполовину записанный документ.
type DocumentBackend struct {
	dir string
	now func() time.Time
}

// NewDocumentBackend создает каталог данных, если его нет.
func NewDocumentBackend(dir string) (*DocumentBackend, error) {
	if dir == "" {
		return nil, fmt.Errorf("FileDocumentBackend: data directory is required")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("FileDocumentBackend: failed to create data directory %s: %w", dir, err)
	}
	return &DocumentBackend{dir: dir, now: time.Now}, nil
}

// Path возвращает путь к файлу коллекции
func (b *DocumentBackend) Path(collection domain.Collection) string {
	return filepath.Join(b.dir, string(collection)+".json")
}

func (b *DocumentBackend) Load(ctx context.Context, collection domain.Collection) ([]byte, error) {
	data, err := os.ReadFile(b.Path(collection))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCollectionMissing
		}
		return nil, fmt.Errorf("FileDocumentBackend: failed to read %s: %w", collection, err)
	}
	return data, nil
}

func (b *DocumentBackend) Save(ctx context.Context, collection domain.Collection, payload []byte) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "FileDocumentBackend",
		"collection": string(collection),
	})

	// каталог могли удалить во время работы
	if err := os.MkdirAll(b.dir, 0o755); err != nil {
		return fmt.Errorf("FileDocumentBackend: failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(b.dir, "."+string(collection)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("FileDocumentBackend: failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(payload); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("FileDocumentBackend: failed to write %s: %w", collection, err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("FileDocumentBackend: failed to sync %s: %w", collection, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("FileDocumentBackend: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), b.Path(collection)); err != nil {
		return fmt.Errorf("FileDocumentBackend: failed to replace %s: %w", collection, err)
	}

	logger.Debug("Collection document written", port.Fields{"bytes": len(payload)})
	return nil
}

// Quarantine сохраняет копию поврежденного документа рядом с оригиналом
func (b *DocumentBackend) Quarantine(ctx context.Context, collection domain.Collection, payload []byte) (string, error) {
	path := filepath.Join(b.dir, fmt.Sprintf("%s.corrupt-%d.json", collection, b.now().Unix()))
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", fmt.Errorf("FileDocumentBackend: failed to quarantine %s: %w", collection, err)
	}
	return path, nil
}

func (b *DocumentBackend) Close() error { return nil }
