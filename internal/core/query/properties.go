// Package query фильтрует и сортирует снимки коллекций в памяти, не трогая хранилище.
package query

import (
	"brokerage-service/internal/core/domain"
	"math"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// FilterProperties возвращает записи, удовлетворяющие всем заданным фильтрам,
// отсортированные по CreatedAt от новых к старым. Исходный срез не меняется.
func FilterProperties(items []domain.Property, filters domain.PropertyFilters) []domain.Property {
	var location string
	if filters.Location != nil {
		location = fold(*filters.Location)
	}

	result := make([]domain.Property, 0, len(items))
	for _, p := range items {
		if matchProperty(p, filters, location) {
			result = append(result, p)
		}
	}
	SortByRecency(result, func(p domain.Property) int64 { return p.CreatedAt.UnixNano() })
	return result
}

func matchProperty(p domain.Property, f domain.PropertyFilters, foldedLocation string) bool {
	if f.Type != nil && p.Type != *f.Type {
		return false
	}
	if f.Location != nil && !strings.Contains(fold(p.Location), foldedLocation) {
		return false
	}
	if f.MinPrice != nil || f.MaxPrice != nil {
		price, ok := ParsePrice(p.Price)
		if !ok {
			return false
		}
		if f.MinPrice != nil && price < *f.MinPrice {
			return false
		}
		if f.MaxPrice != nil && price > *f.MaxPrice {
			return false
		}
	}
	if f.Featured != nil && p.Featured != *f.Featured {
		return false
	}
	if f.Status != nil && p.Status != *f.Status {
		return false
	}
	if f.MinBedrooms != nil {
		if p.Bedrooms == nil {
			return false
		}
		bedrooms, err := strconv.Atoi(strings.TrimSpace(*p.Bedrooms))
		if err != nil || bedrooms < *f.MinBedrooms {
			return false
		}
	}
	return true
}

// ParsePrice разбирает цену из строки. Пустая, нечисловая или отрицательная цена - не разобрана.
func ParsePrice(raw string) (float64, bool) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || value < 0 || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

func fold(s string) string {
	return cases.Fold().String(s)
}

// SortByRecency стабильно сортирует срез по убыванию временной метки
func SortByRecency[T any](items []T, createdAt func(T) int64) {
	sort.SliceStable(items, func(i, j int) bool {
		return createdAt(items[i]) > createdAt(items[j])
	})
}
