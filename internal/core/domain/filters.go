package domain

// PropertyFilters - фильтры каталога. nil-поле не накладывает ограничений.
type PropertyFilters struct {
	Type        *PropertyType   `json:"type,omitempty"`
	Location    *string         `json:"location,omitempty"`
	MinPrice    *float64        `json:"minPrice,omitempty"`
	MaxPrice    *float64        `json:"maxPrice,omitempty"`
	Featured    *bool           `json:"featured,omitempty"`
	Status      *PropertyStatus `json:"status,omitempty"`
	MinBedrooms *int            `json:"minBedrooms,omitempty"`
}

// InquiryFilters - фильтры списка запросов
type InquiryFilters struct {
	PropertyID *string `json:"propertyId,omitempty"`
}

// Page - одна страница результата
type Page[T any] struct {
	Items   []T
	Total   int
	Page    int
	PerPage int
}

// Collection - имя коллекции (одного документа в хранилище)
type Collection string

const (
	CollectionProperties Collection = "properties"
	CollectionContacts   Collection = "contacts"
	CollectionInquiries  Collection = "inquiries"
	CollectionUsers      Collection = "users"
)

// Collections перечисляет все коллекции хранилища
var Collections = []Collection{CollectionProperties, CollectionContacts, CollectionInquiries, CollectionUsers}
