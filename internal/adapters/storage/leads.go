package storage

import (
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/query"
	"context"
)

func (s *CollectionStore) ListContacts(ctx context.Context) ([]domain.Contact, error) {
	items, err := readCollection[domain.Contact](ctx, s, domain.CollectionContacts)
	if err != nil {
		return nil, err
	}
	return query.SortContacts(items), nil
}

func (s *CollectionStore) CreateContact(ctx context.Context, input domain.NewContactInput) (*domain.Contact, error) {
	unlock := s.lock(domain.CollectionContacts)
	defer unlock()

	items, err := readCollection[domain.Contact](ctx, s, domain.CollectionContacts)
	if err != nil {
		return nil, err
	}
	created := domain.NewContact(s.newID(), input, s.now())
	if err := writeCollection(ctx, s, domain.CollectionContacts, append(items, created)); err != nil {
		return nil, err
	}
	return &created, nil
}

func (s *CollectionStore) ListInquiries(ctx context.Context, filters domain.InquiryFilters) ([]domain.PropertyInquiry, error) {
	items, err := readCollection[domain.PropertyInquiry](ctx, s, domain.CollectionInquiries)
	if err != nil {
		return nil, err
	}
	return query.FilterInquiries(items, filters), nil
}

// CreateInquiry не проверяет существование объекта: ссылка на него слабая
func (s *CollectionStore) CreateInquiry(ctx context.Context, input domain.NewInquiryInput) (*domain.PropertyInquiry, error) {
	unlock := s.lock(domain.CollectionInquiries)
	defer unlock()

	items, err := readCollection[domain.PropertyInquiry](ctx, s, domain.CollectionInquiries)
	if err != nil {
		return nil, err
	}
	created := domain.NewInquiry(s.newID(), input, s.now())
	if err := writeCollection(ctx, s, domain.CollectionInquiries, append(items, created)); err != nil {
		return nil, err
	}
	return &created, nil
}
