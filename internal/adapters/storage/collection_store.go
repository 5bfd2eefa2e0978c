// Package storage - хранилище коллекций: каждая коллекция читается и пишется целиком
// через DocumentBackendPort, а типизированные методы реализуют порты ядра.
package storage

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// RecoveryPolicy определяет, что делать при сбое чтения или записи документа
type RecoveryPolicy string

const (
	// FailOpen: сбой логируется и считается, чтение дает пустую коллекцию, запись отбрасывается
	FailOpen RecoveryPolicy = "fail_open"
	// FailClosed: сбой возвращается вызывающему как domain.ErrPersistence
	FailClosed RecoveryPolicy = "fail_closed"
)

var (
	_ port.PropertyStoragePort = (*CollectionStore)(nil)
	_ port.ContactStoragePort  = (*CollectionStore)(nil)
	_ port.InquiryStoragePort  = (*CollectionStore)(nil)
	_ port.UserStoragePort     = (*CollectionStore)(nil)
)

type Options struct {
	Policy   RecoveryPolicy
	Observer port.PersistenceObserverPort
	// SeedSampleProperties заполняет пустой каталог демонстрационными объектами
	SeedSampleProperties bool
	Now                  func() time.Time
	NewID                func() string
}

type CollectionStore struct {
	backend  port.DocumentBackendPort
	policy   RecoveryPolicy
	observer port.PersistenceObserverPort
	now      func() time.Time
	newID    func() string

	// один писатель на коллекцию: цикл чтение-изменение-запись не перемешивается
	locks map[domain.Collection]*sync.Mutex

	// хэш последнего сохраненного в карантин содержимого по коллекциям
	quarantineMu sync.Mutex
	quarantined  map[domain.Collection][sha256.Size]byte
}

// NewCollectionStore создает хранилище и один раз засевает пустой каталог.
func NewCollectionStore(ctx context.Context, backend port.DocumentBackendPort, opts Options) (*CollectionStore, error) {
	if backend == nil {
		return nil, fmt.Errorf("CollectionStore: backend cannot be nil")
	}
	switch opts.Policy {
	case "":
		opts.Policy = FailOpen
	case FailOpen, FailClosed:
	default:
		return nil, fmt.Errorf("CollectionStore: unknown recovery policy %q", opts.Policy)
	}
	if opts.Now == nil {
		opts.Now = func() time.Time { return time.Now().UTC() }
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.New().String() }
	}

	s := &CollectionStore{
		backend:  backend,
		policy:   opts.Policy,
		observer: opts.Observer,
		now:      opts.Now,
		newID:    opts.NewID,
		locks:    make(map[domain.Collection]*sync.Mutex, len(domain.Collections)),

		quarantined: make(map[domain.Collection][sha256.Size]byte),
	}
	for _, c := range domain.Collections {
		s.locks[c] = &sync.Mutex{}
	}

	if opts.SeedSampleProperties {
		if err := s.seedProperties(ctx); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Policy возвращает действующую политику восстановления
func (s *CollectionStore) Policy() RecoveryPolicy { return s.policy }

// Close закрывает бэкенд
func (s *CollectionStore) Close() error { return s.backend.Close() }

func (s *CollectionStore) lock(collection domain.Collection) func() {
	mu := s.locks[collection]
	mu.Lock()
	return mu.Unlock
}

func (s *CollectionStore) seedProperties(ctx context.Context) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "CollectionStore"})

	unlock := s.lock(domain.CollectionProperties)
	defer unlock()

	items, err := readCollection[domain.Property](ctx, s, domain.CollectionProperties)
	if err != nil {
		return fmt.Errorf("CollectionStore: failed to read properties for seeding: %w", err)
	}
	if len(items) > 0 {
		logger.Debug("Catalog already populated, seeding skipped", port.Fields{"count": len(items)})
		return nil
	}

	samples := domain.SampleProperties()
	base := s.now()
	for i, in := range samples {
		// разносим метки, чтобы порядок "новые сверху" был детерминированным
		items = append(items, domain.NewProperty(s.newID(), in, base.Add(time.Duration(i)*time.Millisecond)))
	}
	if err := writeCollection(ctx, s, domain.CollectionProperties, items); err != nil {
		return fmt.Errorf("CollectionStore: failed to persist seed properties: %w", err)
	}
	logger.Info("Catalog seeded with sample properties", port.Fields{"count": len(samples)})
	return nil
}

// readCollection читает массив записей. Отсутствующий документ - пустая коллекция.
func readCollection[T any](ctx context.Context, s *CollectionStore, collection domain.Collection) ([]T, error) {
	payload, err := s.backend.Load(ctx, collection)
	if err != nil {
		if errors.Is(err, domain.ErrCollectionMissing) {
			return []T{}, nil
		}
		return []T{}, s.fault(ctx, collection, "read", err)
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		if s.policy == FailOpen {
			s.quarantine(ctx, collection, payload)
		}
		return []T{}, s.fault(ctx, collection, "decode", err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

// writeCollection целиком заменяет документ коллекции
func writeCollection[T any](ctx context.Context, s *CollectionStore, collection domain.Collection, items []T) error {
	if items == nil {
		items = []T{}
	}
	payload, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return s.fault(ctx, collection, "encode", err)
	}
	if err := s.backend.Save(ctx, collection, payload); err != nil {
		return s.fault(ctx, collection, "write", err)
	}
	return nil
}

// fault применяет политику восстановления к сбою ввода-вывода
func (s *CollectionStore) fault(ctx context.Context, collection domain.Collection, operation string, err error) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "CollectionStore",
		"collection": string(collection),
		"operation":  operation,
		"policy":     string(s.policy),
	})
	logger.Error("Persistence fault", err, nil)

	if s.observer != nil {
		s.observer.ObserveFault(collection, operation)
	}
	if s.policy == FailClosed {
		return fmt.Errorf("%w: %s %s: %v", domain.ErrPersistence, operation, collection, err)
	}
	return nil
}

func (s *CollectionStore) quarantine(ctx context.Context, collection domain.Collection, payload []byte) {
	q, ok := s.backend.(port.QuarantinePort)
	if !ok {
		return
	}
	// одно и то же поврежденное содержимое копируется один раз
	sum := sha256.Sum256(payload)
	s.quarantineMu.Lock()
	defer s.quarantineMu.Unlock()
	if prev, ok := s.quarantined[collection]; ok && prev == sum {
		return
	}

	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "CollectionStore",
		"collection": string(collection),
	})
	path, err := q.Quarantine(ctx, collection, payload)
	if err != nil {
		logger.Error("Failed to quarantine corrupt document", err, nil)
		return
	}
	s.quarantined[collection] = sum
	logger.Warn("Corrupt document quarantined", port.Fields{"path": path})
}
