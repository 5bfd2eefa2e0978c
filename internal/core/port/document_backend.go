package port

import (
	"brokerage-service/internal/core/domain"
	"context"
)

// DocumentBackendPort - низкоуровневое хранилище документов коллекций.
// Каждая коллекция - один JSON-документ с массивом записей, который читается и пишется целиком.
type DocumentBackendPort interface {
	// Load возвращает содержимое документа или domain.ErrCollectionMissing, если его еще нет.
	Load(ctx context.Context, collection domain.Collection) ([]byte, error)
	// Save целиком заменяет документ коллекции.
	Save(ctx context.Context, collection domain.Collection, payload []byte) error
	Close() error
}

// QuarantinePort реализуют бэкенды, умеющие сохранить копию поврежденного документа.
type QuarantinePort interface {
	Quarantine(ctx context.Context, collection domain.Collection, payload []byte) (string, error)
}

// PersistenceObserverPort получает уведомления о сбоях чтения/записи коллекций.
type PersistenceObserverPort interface {
	ObserveFault(collection domain.Collection, operation string)
}
