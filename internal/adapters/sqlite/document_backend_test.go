package sqlite

import (
	"brokerage-service/internal/core/domain"
	"context"
	"errors"
	"path/filepath"
	"testing"
)

func TestSQLiteBackendPersistAndReload(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "brokerage.db")
	b, err := NewDocumentBackend(ctx, path)
	if err != nil {
		t.Skipf("sqlite unavailable: %v", err)
	}

	if _, err := b.Load(ctx, domain.CollectionProperties); !errors.Is(err, domain.ErrCollectionMissing) {
		t.Fatalf("expected ErrCollectionMissing, got %v", err)
	}
	if err := b.Save(ctx, domain.CollectionProperties, []byte(`[{"id":"a"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save(ctx, domain.CollectionProperties, []byte(`[{"id":"b"}]`)); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if err := b.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := NewDocumentBackend(ctx, path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	t.Cleanup(func() { _ = reopened.Close() })

	got, err := reopened.Load(ctx, domain.CollectionProperties)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != `[{"id":"b"}]` {
		t.Fatalf("unexpected payload %s", got)
	}

	var rows int
	if err := reopened.DB().QueryRow("SELECT COUNT(*) FROM collections").Scan(&rows); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	if rows != 1 {
		t.Fatalf("expected one row per collection, got %d", rows)
	}
}
