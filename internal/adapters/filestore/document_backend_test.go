package filestore

import (
	"brokerage-service/internal/core/domain"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadMissingCollection(t *testing.T) {
	b, err := NewDocumentBackend(filepath.Join(t.TempDir(), "data"))
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	if _, err := b.Load(context.Background(), domain.CollectionContacts); !errors.Is(err, domain.ErrCollectionMissing) {
		t.Fatalf("expected ErrCollectionMissing, got %v", err)
	}
}

func TestSaveReplacesDocument(t *testing.T) {
	dir := t.TempDir()
	b, err := NewDocumentBackend(dir)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	ctx := context.Background()
	if err := b.Save(ctx, domain.CollectionProperties, []byte(`[{"id":"1"},{"id":"2"}]`)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := b.Save(ctx, domain.CollectionProperties, []byte(`[]`)); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	got, err := b.Load(ctx, domain.CollectionProperties)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(got) != "[]" {
		t.Fatalf("expected overwritten document, got %s", got)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read dir: %v", err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "properties.json")); err != nil {
		t.Fatalf("expected properties.json: %v", err)
	}
}

func TestSaveRecreatesRemovedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "data")
	b, err := NewDocumentBackend(dir)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if err := b.Save(context.Background(), domain.CollectionUsers, []byte(`[]`)); err != nil {
		t.Fatalf("save after removal: %v", err)
	}
}

func TestQuarantine(t *testing.T) {
	dir := t.TempDir()
	b, err := NewDocumentBackend(dir)
	if err != nil {
		t.Fatalf("new backend: %v", err)
	}
	b.now = func() time.Time { return time.Unix(1700000000, 0) }

	path, err := b.Quarantine(context.Background(), domain.CollectionInquiries, []byte("{broken"))
	if err != nil {
		t.Fatalf("quarantine: %v", err)
	}
	if filepath.Base(path) != "inquiries.corrupt-1700000000.json" {
		t.Fatalf("unexpected quarantine path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil || string(data) != "{broken" {
		t.Fatalf("quarantined payload mismatch: %q %v", data, err)
	}
}

func TestNewDocumentBackendRequiresDir(t *testing.T) {
	if _, err := NewDocumentBackend(""); err == nil {
		t.Fatalf("expected error for empty directory")
	}
}
