package rest

import (
	"brokerage-service/internal/core/domain"
	"bytes"
	"encoding/json"
	"time"
)

// ErrorResponse - стандартная структура для ответа с ошибкой.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PaginatedPropertiesResponse - список объектов с пагинацией
type PaginatedPropertiesResponse struct {
	Data    []domain.Property `json:"properties"`
	Total   int               `json:"total"`
	Page    int               `json:"page"`
	PerPage int               `json:"per_page"`
}

func newPaginatedPropertiesResponse(page domain.Page[domain.Property]) PaginatedPropertiesResponse {
	data := page.Items
	if data == nil {
		data = []domain.Property{}
	}
	return PaginatedPropertiesResponse{Data: data, Total: page.Total, Page: page.Page, PerPage: page.PerPage}
}

// PropertyRequest - тело создания и частичного обновления объекта.
// Для обновления nil означает "не менять"; списки заменяются целиком.
type PropertyRequest struct {
	Title       *string                `json:"title"`
	Description *string                `json:"description"`
	Type        *domain.PropertyType   `json:"type"`
	Price       *string                `json:"price"`
	Location    *string                `json:"location"`
	Address     *string                `json:"address"`
	Size        *string                `json:"size"`
	Bedrooms    *string                `json:"bedrooms"`
	Bathrooms   *string                `json:"bathrooms"`
	Parking     *string                `json:"parking"`
	Features    *[]string              `json:"features"`
	Images      *[]string              `json:"images"`
	Videos      *[]string              `json:"videos"`
	Status      *domain.PropertyStatus `json:"status"`
	Featured    *bool                  `json:"featured"`

	// ключи, пришедшие со значением null
	nulls map[string]bool
}

func (req *PropertyRequest) UnmarshalJSON(data []byte) error {
	type plain PropertyRequest
	var body plain
	if err := json.Unmarshal(data, &body); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*req = PropertyRequest(body)
	for key, value := range raw {
		if string(bytes.TrimSpace(value)) == "null" {
			if req.nulls == nil {
				req.nulls = make(map[string]bool)
			}
			req.nulls[key] = true
		}
	}
	return nil
}

func (req PropertyRequest) toNewPropertyInput() domain.NewPropertyInput {
	in := domain.NewPropertyInput{
		Title:       deref(req.Title),
		Description: req.Description,
		Price:       deref(req.Price),
		Location:    deref(req.Location),
		Address:     req.Address,
		Size:        req.Size,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Parking:     req.Parking,
		Features:    list(req.Features),
		Images:      list(req.Images),
		Videos:      list(req.Videos),
		Featured:    req.Featured,
	}
	if req.Type != nil {
		in.Type = *req.Type
	}
	if req.Status != nil {
		in.Status = *req.Status
	}
	return in
}

func (req PropertyRequest) toPatch() domain.PropertyPatch {
	return domain.PropertyPatch{
		Title:       req.Title,
		Description: req.Description,
		Type:        req.Type,
		Price:       req.Price,
		Location:    req.Location,
		Address:     req.Address,
		Size:        req.Size,
		Bedrooms:    req.Bedrooms,
		Bathrooms:   req.Bathrooms,
		Parking:     req.Parking,
		Features:    list(req.Features),
		Images:      list(req.Images),
		Videos:      list(req.Videos),
		Status:      req.Status,
		Featured:    req.Featured,
		Cleared: domain.ClearedFields{
			Description: req.nulls["description"],
			Address:     req.nulls["address"],
			Size:        req.nulls["size"],
			Bedrooms:    req.nulls["bedrooms"],
			Bathrooms:   req.nulls["bathrooms"],
			Parking:     req.nulls["parking"],
		},
	}
}

// ContactRequest - тело общей контактной формы
type ContactRequest struct {
	FullName      string  `json:"fullName"`
	Email         string  `json:"email"`
	Phone         string  `json:"phone"`
	Location      *string `json:"location"`
	PropertyType  *string `json:"propertyType"`
	Budget        *string `json:"budget"`
	Purpose       *string `json:"purpose"`
	Message       *string `json:"message"`
	ContactMethod *string `json:"contactMethod"`
}

// InquiryRequest - запрос по конкретному объекту
type InquiryRequest struct {
	PropertyID string  `json:"propertyId"`
	FullName   string  `json:"fullName"`
	Email      string  `json:"email"`
	Phone      string  `json:"phone"`
	Message    *string `json:"message"`
}

// LoginRequest - тело запроса для входа.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// CreateUserRequest - тело запроса на создание администратора
type CreateUserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// UserResponse - пользователь без пароля
type UserResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"createdAt"`
}

func newUserResponse(u *domain.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, CreatedAt: u.CreatedAt}
}

type DescriptionRequest struct {
	Title     string              `json:"title"`
	Type      domain.PropertyType `json:"type"`
	Location  string              `json:"location"`
	Price     string              `json:"price"`
	Size      *string             `json:"size"`
	Bedrooms  *string             `json:"bedrooms"`
	Bathrooms *string             `json:"bathrooms"`
	Features  []string            `json:"features"`
	Tone      string              `json:"tone"`
}

type DescriptionResponse struct {
	Description string `json:"description"`
}

type MediaUploadResponse struct {
	URL string `json:"url"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// list: nil - поле не передано, пустой список - передан пустым
func list(items *[]string) []string {
	if items == nil {
		return nil
	}
	return append([]string{}, (*items)...)
}
