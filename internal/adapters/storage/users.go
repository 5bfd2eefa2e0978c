package storage

import (
	"brokerage-service/internal/core/domain"
	"context"
)

func (s *CollectionStore) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.findUser(ctx, func(u domain.User) bool { return u.ID == id })
}

func (s *CollectionStore) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return s.findUser(ctx, func(u domain.User) bool { return u.Username == username })
}

func (s *CollectionStore) findUser(ctx context.Context, match func(domain.User) bool) (*domain.User, error) {
	items, err := readCollection[domain.User](ctx, s, domain.CollectionUsers)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if match(items[i]) {
			return &items[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

// CreateUser сохраняет пароль как есть; хэширование - забота вызывающего кода
func (s *CollectionStore) CreateUser(ctx context.Context, input domain.NewUserInput) (*domain.User, error) {
	unlock := s.lock(domain.CollectionUsers)
	defer unlock()

	items, err := readCollection[domain.User](ctx, s, domain.CollectionUsers)
	if err != nil {
		return nil, err
	}
	for _, u := range items {
		if u.Username == input.Username {
			return nil, domain.ErrUsernameTaken
		}
	}
	created := domain.NewUser(s.newID(), input, s.now())
	if err := writeCollection(ctx, s, domain.CollectionUsers, append(items, created)); err != nil {
		return nil, err
	}
	return &created, nil
}
