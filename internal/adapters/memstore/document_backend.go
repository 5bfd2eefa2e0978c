// Package memstore - хранилище документов в памяти процесса (тесты, эфемерный запуск).
package memstore

import (
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"sync"
)

var _ port.DocumentBackendPort = (*DocumentBackend)(nil)

type DocumentBackend struct {
	mu   sync.RWMutex
	docs map[domain.Collection][]byte

	// FailLoad/FailSave позволяют тестам имитировать сбой ввода-вывода
	FailLoad error
	FailSave error
}

func NewDocumentBackend() *DocumentBackend {
	return &DocumentBackend{docs: make(map[domain.Collection][]byte)}
}

func (b *DocumentBackend) Load(_ context.Context, collection domain.Collection) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.FailLoad != nil {
		return nil, b.FailLoad
	}
	doc, ok := b.docs[collection]
	if !ok {
		return nil, domain.ErrCollectionMissing
	}
	return append([]byte(nil), doc...), nil
}

func (b *DocumentBackend) Save(_ context.Context, collection domain.Collection, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSave != nil {
		return b.FailSave
	}
	b.docs[collection] = append([]byte(nil), payload...)
	return nil
}

// Put записывает документ напрямую, минуя хранилище (например, испорченный JSON в тестах)
func (b *DocumentBackend) Put(collection domain.Collection, payload []byte) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.docs[collection] = append([]byte(nil), payload...)
}

func (b *DocumentBackend) Close() error { return nil }
