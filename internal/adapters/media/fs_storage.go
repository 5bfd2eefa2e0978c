// Package media сохраняет фото и видео объектов: в локальный каталог или в S3-совместимое хранилище.
package media

import (
	"brokerage-service/internal/core/port"
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
)

var _ port.MediaStoragePort = (*FSStorage)(nil)

// FSStorage пишет файлы в root; REST-сервер раздает их по PublicBaseURL
type FSStorage struct {
	root          string
	publicBaseURL string
}

func NewFSStorage(root, publicBaseURL string) (*FSStorage, error) {
	if root == "" {
		return nil, fmt.Errorf("FSStorage: root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("FSStorage: failed to create root %s: %w", root, err)
	}
	return &FSStorage{root: root, publicBaseURL: strings.TrimRight(publicBaseURL, "/")}, nil
}

// Root - каталог, который раздается как статика
func (s *FSStorage) Root() string { return s.root }

func (s *FSStorage) Put(ctx context.Context, key string, r io.Reader, _ string) (string, error) {
	clean, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	dst := filepath.Join(s.root, filepath.FromSlash(clean))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("FSStorage: failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".upload-*")
	if err != nil {
		return "", fmt.Errorf("FSStorage: failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, r); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("FSStorage: failed to write %s: %w", clean, err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("FSStorage: failed to close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), dst); err != nil {
		return "", fmt.Errorf("FSStorage: failed to move %s into place: %w", clean, err)
	}
	return s.publicBaseURL + "/" + clean, nil
}

// cleanKey запрещает абсолютные пути и выход за пределы корня
func cleanKey(key string) (string, error) {
	clean := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))
	clean = strings.TrimPrefix(clean, "/")
	if clean == "" || clean == "." || strings.Contains(key, "..") {
		return "", fmt.Errorf("media: invalid key %q", key)
	}
	return clean, nil
}
