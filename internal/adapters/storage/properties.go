package storage

import (
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/query"
	"context"
)

func (s *CollectionStore) ListProperties(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	items, err := readCollection[domain.Property](ctx, s, domain.CollectionProperties)
	if err != nil {
		return nil, err
	}
	return query.FilterProperties(items, filters), nil
}

func (s *CollectionStore) GetProperty(ctx context.Context, id string) (*domain.Property, error) {
	items, err := readCollection[domain.Property](ctx, s, domain.CollectionProperties)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *CollectionStore) CreateProperty(ctx context.Context, input domain.NewPropertyInput) (*domain.Property, error) {
	unlock := s.lock(domain.CollectionProperties)
	defer unlock()

	items, err := readCollection[domain.Property](ctx, s, domain.CollectionProperties)
	if err != nil {
		return nil, err
	}
	created := domain.NewProperty(s.newID(), input, s.now())
	items = append(items, created)
	if err := writeCollection(ctx, s, domain.CollectionProperties, items); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CollectionStore) UpdateProperty(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	unlock := s.lock(domain.CollectionProperties)
	defer unlock()

	items, err := readCollection[domain.Property](ctx, s, domain.CollectionProperties)
	if err != nil {
		return nil, err
	}
	idx := -1
	for i := range items {
		if items[i].ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, domain.ErrNotFound
	}

	items[idx].Apply(patch, s.now())
	updated := items[idx]
	if err := writeCollection(ctx, s, domain.CollectionProperties, items); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProperty удаляет первую запись с таким id. Документ переписывается только при удалении.
func (s *CollectionStore) DeleteProperty(ctx context.Context, id string) (bool, error) {
	unlock := s.lock(domain.CollectionProperties)
	defer unlock()

	items, err := readCollection[domain.Property](ctx, s, domain.CollectionProperties)
	if err != nil {
		return false, err
	}
	for i := range items {
		if items[i].ID != id {
			continue
		}
		items = append(items[:i], items[i+1:]...)
		if err := writeCollection(ctx, s, domain.CollectionProperties, items); err != nil {
			return false, err
		}
		return true, nil
	}
	return false, nil
}
