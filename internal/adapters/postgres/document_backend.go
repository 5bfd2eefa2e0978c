package postgres

import (
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ port.DocumentBackendPort = (*DocumentBackend)(nil)

// pgxExecutor - часть pgxpool.Pool, нужная бэкенду
type pgxExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DocumentBackend хранит документ каждой коллекции в строке таблицы collections (JSONB)
type DocumentBackend struct {
	db   pgxExecutor
	pool *pgxpool.Pool
}

const createCollectionsTable = `CREATE TABLE IF NOT EXISTS collections (
	name TEXT PRIMARY KEY,
	payload JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`

func NewDocumentBackend(ctx context.Context, pool *pgxpool.Pool) (*DocumentBackend, error) {
	if pool == nil {
		return nil, fmt.Errorf("PostgresDocumentBackend: pool cannot be nil")
	}
	b, err := newDocumentBackend(ctx, pool)
	if err != nil {
		return nil, err
	}
	b.pool = pool
	return b, nil
}

func newDocumentBackend(ctx context.Context, db pgxExecutor) (*DocumentBackend, error) {
	if _, err := db.Exec(ctx, createCollectionsTable); err != nil {
		return nil, fmt.Errorf("PostgresDocumentBackend: ensure collections table: %w", err)
	}
	return &DocumentBackend{db: db}, nil
}

func (b *DocumentBackend) Load(ctx context.Context, collection domain.Collection) ([]byte, error) {
	var payload []byte
	err := b.db.QueryRow(ctx, `SELECT payload::text FROM collections WHERE name = $1`, string(collection)).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrCollectionMissing
		}
		return nil, fmt.Errorf("PostgresDocumentBackend: select %s: %w", collection, err)
	}
	return payload, nil
}

func (b *DocumentBackend) Save(ctx context.Context, collection domain.Collection, payload []byte) error {
	_, err := b.db.Exec(ctx,
		`INSERT INTO collections (name, payload, updated_at) VALUES ($1, $2::jsonb, now())
		 ON CONFLICT (name) DO UPDATE SET payload = EXCLUDED.payload, updated_at = EXCLUDED.updated_at`,
		string(collection), string(payload))
	if err != nil {
		return fmt.Errorf("PostgresDocumentBackend: upsert %s: %w", collection, err)
	}
	return nil
}

// Close закрывает пул, если бэкенд им владеет
func (b *DocumentBackend) Close() error {
	if b.pool != nil {
		b.pool.Close()
	}
	return nil
}
