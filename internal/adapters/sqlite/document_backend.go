// Package sqlite хранит документы коллекций в одной таблице встроенной SQLite-базы.
package sqlite

import (
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

var _ port.DocumentBackendPort = (*DocumentBackend)(nil)

// DocumentBackend - таблица collections(name, payload): одна строка на коллекцию
type DocumentBackend struct {
	db   *sql.DB
	path string
}

func NewDocumentBackend(ctx context.Context, path string) (*DocumentBackend, error) {
	if path == "" {
		path = "brokerage.db"
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("SQLiteDocumentBackend: create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("SQLiteDocumentBackend: open: %w", err)
	}
	// одно соединение: SQLite все равно сериализует запись
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS collections (
		name TEXT PRIMARY KEY,
		payload BLOB NOT NULL,
		updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("SQLiteDocumentBackend: create collections table: %w", err)
	}
	return &DocumentBackend{db: db, path: path}, nil
}

func (b *DocumentBackend) Load(ctx context.Context, collection domain.Collection) ([]byte, error) {
	var payload []byte
	err := b.db.QueryRowContext(ctx, `SELECT payload FROM collections WHERE name = ?`, string(collection)).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrCollectionMissing
		}
		return nil, fmt.Errorf("SQLiteDocumentBackend: select %s: %w", collection, err)
	}
	return payload, nil
}

func (b *DocumentBackend) Save(ctx context.Context, collection domain.Collection, payload []byte) error {
	_, err := b.db.ExecContext(ctx,
		`INSERT INTO collections(name, payload, updated_at) VALUES(?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload, updated_at = excluded.updated_at`,
		string(collection), payload)
	if err != nil {
		return fmt.Errorf("SQLiteDocumentBackend: upsert %s: %w", collection, err)
	}
	return nil
}

// DB отдает соединение для тестов
func (b *DocumentBackend) DB() *sql.DB { return b.db }

func (b *DocumentBackend) Path() string { return b.path }

func (b *DocumentBackend) Close() error { return b.db.Close() }
