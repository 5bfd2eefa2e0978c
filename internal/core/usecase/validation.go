package usecase

import (
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/query"
	"fmt"
	"strings"
)

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

func validateNewProperty(in domain.NewPropertyInput) error {
	if strings.TrimSpace(in.Title) == "" {
		return invalid("title is required")
	}
	if strings.TrimSpace(in.Location) == "" {
		return invalid("location is required")
	}
	if !in.Type.Valid() {
		return invalid("unknown property type %q", in.Type)
	}
	if _, ok := query.ParsePrice(in.Price); !ok {
		return invalid("price must be a non-negative number, got %q", in.Price)
	}
	if in.Status != "" && !in.Status.Valid() {
		return invalid("unknown property status %q", in.Status)
	}
	return nil
}

func validatePropertyPatch(p domain.PropertyPatch) error {
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return invalid("title cannot be empty")
	}
	if p.Location != nil && strings.TrimSpace(*p.Location) == "" {
		return invalid("location cannot be empty")
	}
	if p.Type != nil && !p.Type.Valid() {
		return invalid("unknown property type %q", *p.Type)
	}
	if p.Price != nil {
		if _, ok := query.ParsePrice(*p.Price); !ok {
			return invalid("price must be a non-negative number, got %q", *p.Price)
		}
	}
	if p.Status != nil && !p.Status.Valid() {
		return invalid("unknown property status %q", *p.Status)
	}
	return nil
}

type field struct {
	name, value string
}

// requireFields сообщает о первом пустом поле в порядке перечисления
func requireFields(fields ...field) error {
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			return invalid("%s is required", f.name)
		}
	}
	return nil
}
