package query

import "brokerage-service/internal/core/domain"

// FilterInquiries отбирает запросы по объекту (если задан) и сортирует от новых к старым
func FilterInquiries(items []domain.PropertyInquiry, filters domain.InquiryFilters) []domain.PropertyInquiry {
	result := make([]domain.PropertyInquiry, 0, len(items))
	for _, inq := range items {
		if filters.PropertyID != nil && inq.PropertyID != *filters.PropertyID {
			continue
		}
		result = append(result, inq)
	}
	SortByRecency(result, func(i domain.PropertyInquiry) int64 { return i.CreatedAt.UnixNano() })
	return result
}

// SortContacts возвращает копию списка контактов от новых к старым
func SortContacts(items []domain.Contact) []domain.Contact {
	result := append([]domain.Contact{}, items...)
	SortByRecency(result, func(c domain.Contact) int64 { return c.CreatedAt.UnixNano() })
	return result
}
