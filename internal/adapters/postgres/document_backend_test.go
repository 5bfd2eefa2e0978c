package postgres

import (
	"brokerage-service/internal/core/domain"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// fakeDB эмулирует таблицу collections в памяти
type fakeDB struct {
	rows    map[string]string
	execErr error
	stmts   []string
}

func (f *fakeDB) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	f.stmts = append(f.stmts, sql)
	if f.execErr != nil {
		return pgconn.CommandTag{}, f.execErr
	}
	if strings.HasPrefix(sql, "INSERT INTO collections") {
		f.rows[args[0].(string)] = args[1].(string)
		return pgconn.NewCommandTag("INSERT 0 1"), nil
	}
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (f *fakeDB) QueryRow(_ context.Context, _ string, args ...any) pgx.Row {
	payload, ok := f.rows[args[0].(string)]
	return fakeRow{payload: payload, ok: ok}
}

type fakeRow struct {
	payload string
	ok      bool
}

func (r fakeRow) Scan(dest ...any) error {
	if !r.ok {
		return pgx.ErrNoRows
	}
	*(dest[0].(*[]byte)) = []byte(r.payload)
	return nil
}

func TestDocumentBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{rows: map[string]string{}}

	backend, err := newDocumentBackend(ctx, db)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	if len(db.stmts) != 1 || !strings.Contains(db.stmts[0], "CREATE TABLE IF NOT EXISTS collections") {
		t.Fatalf("table not ensured: %v", db.stmts)
	}

	if _, err := backend.Load(ctx, domain.CollectionContacts); !errors.Is(err, domain.ErrCollectionMissing) {
		t.Fatalf("expected ErrCollectionMissing, got %v", err)
	}

	if err := backend.Save(ctx, domain.CollectionContacts, []byte(`[{"id":"1"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := backend.Load(ctx, domain.CollectionContacts)
	if err != nil || string(got) != `[{"id":"1"}]` {
		t.Fatalf("load: %q %v", got, err)
	}
	if err := backend.Close(); err != nil {
		t.Fatalf("close without pool: %v", err)
	}
}

func TestDocumentBackendErrors(t *testing.T) {
	ctx := context.Background()
	db := &fakeDB{rows: map[string]string{}, execErr: errors.New("connection refused")}

	if _, err := newDocumentBackend(ctx, db); err == nil {
		t.Fatalf("expected error when table cannot be created")
	}

	backend := &DocumentBackend{db: db}
	if err := backend.Save(ctx, domain.CollectionUsers, []byte(`[]`)); err == nil || !strings.Contains(err.Error(), "upsert users") {
		t.Fatalf("expected wrapped upsert error, got %v", err)
	}

	if _, err := NewDocumentBackend(ctx, nil); err == nil {
		t.Fatalf("expected error for nil pool")
	}
}
