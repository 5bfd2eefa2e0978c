package domain

import (
	"time"
)

// PropertyType - тип объекта недвижимости
type PropertyType string

const (
	TypeResidentialLand PropertyType = "residential_land"
	TypeCommercialLand  PropertyType = "commercial_land"
	TypeLuxuryHome      PropertyType = "luxury_home"
	TypeApartment       PropertyType = "apartment"
	TypeLand            PropertyType = "land"
	TypeHouse           PropertyType = "house"
	TypeCommercial      PropertyType = "commercial"
)

// PropertyTypes перечисляет все допустимые типы в порядке отображения
var PropertyTypes = []PropertyType{
	TypeResidentialLand, TypeCommercialLand, TypeLuxuryHome,
	TypeApartment, TypeLand, TypeHouse, TypeCommercial,
}

func (t PropertyType) Valid() bool {
	for _, known := range PropertyTypes {
		if t == known {
			return true
		}
	}
	return false
}

// PropertyStatus - статус объекта в каталоге
type PropertyStatus string

const (
	StatusAvailable PropertyStatus = "available"
	StatusSold      PropertyStatus = "sold"
	StatusReserved  PropertyStatus = "reserved"
)

func (s PropertyStatus) Valid() bool {
	switch s {
	case StatusAvailable, StatusSold, StatusReserved:
		return true
	}
	return false
}

// Property - объект каталога.
// Price хранится строкой; Bedrooms/Bathrooms/Parking = nil означает "не применимо", а не ноль.
type Property struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description,omitempty"`
	Type        PropertyType   `json:"type"`
	Price       string         `json:"price"`
	Location    string         `json:"location"`
	Address     *string        `json:"address,omitempty"`
	Size        *string        `json:"size,omitempty"`
	Bedrooms    *string        `json:"bedrooms,omitempty"`
	Bathrooms   *string        `json:"bathrooms,omitempty"`
	Parking     *string        `json:"parking,omitempty"`
	Features    []string       `json:"features"`
	Images      []string       `json:"images"`
	Videos      []string       `json:"videos"`
	Status      PropertyStatus `json:"status"`
	Featured    bool           `json:"featured"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
}

// NewPropertyInput - данные для создания объекта (без id и временных меток)
type NewPropertyInput struct {
	Title       string
	Description *string
	Type        PropertyType
	Price       string
	Location    string
	Address     *string
	Size        *string
	Bedrooms    *string
	Bathrooms   *string
	Parking     *string
	Features    []string
	Images      []string
	Videos      []string
	Status      PropertyStatus
	Featured    *bool
}

// PropertyPatch - частичное обновление: nil означает "оставить как есть"
type PropertyPatch struct {
	Title       *string
	Description *string
	Type        *PropertyType
	Price       *string
	Location    *string
	Address     *string
	Size        *string
	Bedrooms    *string
	Bathrooms   *string
	Parking     *string
	Features    []string
	Images      []string
	Videos      []string
	Status      *PropertyStatus
	Featured    *bool
	// Cleared - необязательные поля, явно сброшенные в null
	Cleared ClearedFields
}

type ClearedFields struct {
	Description bool
	Address     bool
	Size        bool
	Bedrooms    bool
	Bathrooms   bool
	Parking     bool
}

// NewProperty собирает запись из входных данных, проставляя id и обе временные метки.
func NewProperty(id string, in NewPropertyInput, now time.Time) Property {
	status := in.Status
	if status == "" {
		status = StatusAvailable
	}
	featured := false
	if in.Featured != nil {
		featured = *in.Featured
	}
	return Property{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Price:       in.Price,
		Location:    in.Location,
		Address:     in.Address,
		Size:        in.Size,
		Bedrooms:    in.Bedrooms,
		Bathrooms:   in.Bathrooms,
		Parking:     in.Parking,
		Features:    nonNil(in.Features),
		Images:      nonNil(in.Images),
		Videos:      nonNil(in.Videos),
		Status:      status,
		Featured:    featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Apply сливает патч в запись и обновляет UpdatedAt.
// Списки заменяются целиком, если переданы (не nil).
func (p *Property) Apply(patch PropertyPatch, now time.Time) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Description != nil {
		p.Description = patch.Description
	} else if patch.Cleared.Description {
		p.Description = nil
	}
	if patch.Type != nil {
		p.Type = *patch.Type
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Location != nil {
		p.Location = *patch.Location
	}
	if patch.Address != nil {
		p.Address = patch.Address
	} else if patch.Cleared.Address {
		p.Address = nil
	}
	if patch.Size != nil {
		p.Size = patch.Size
	} else if patch.Cleared.Size {
		p.Size = nil
	}
	if patch.Bedrooms != nil {
		p.Bedrooms = patch.Bedrooms
	} else if patch.Cleared.Bedrooms {
		p.Bedrooms = nil
	}
	if patch.Bathrooms != nil {
		p.Bathrooms = patch.Bathrooms
	} else if patch.Cleared.Bathrooms {
		p.Bathrooms = nil
	}
	if patch.Parking != nil {
		p.Parking = patch.Parking
	} else if patch.Cleared.Parking {
		p.Parking = nil
	}
	if patch.Features != nil {
		p.Features = append([]string{}, patch.Features...)
	}
	if patch.Images != nil {
		p.Images = append([]string{}, patch.Images...)
	}
	if patch.Videos != nil {
		p.Videos = append([]string{}, patch.Videos...)
	}
	if patch.Status != nil {
		p.Status = *patch.Status
	}
	if patch.Featured != nil {
		p.Featured = *patch.Featured
	}
	p.UpdatedAt = now
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return append([]string{}, items...)
}
