package query

import "brokerage-service/internal/core/domain"

// Paginate режет отсортированный список на страницы.
// perPage <= 0 означает "все записи одной страницей"; page начинается с 1.
func Paginate[T any](items []T, page, perPage int) domain.Page[T] {
	total := len(items)
	if page < 1 {
		page = 1
	}
	if perPage <= 0 {
		return domain.Page[T]{Items: items, Total: total, Page: 1, PerPage: total}
	}

	// сравнение до умножения: огромный page не переполняет int
	start := total
	if page-1 <= total/perPage {
		start = min((page-1)*perPage, total)
	}
	end := start + perPage
	if end > total {
		end = total
	}
	return domain.Page[T]{Items: items[start:end], Total: total, Page: page, PerPage: perPage}
}
