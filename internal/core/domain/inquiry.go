package domain

import "time"

// PropertyInquiry - запрос по конкретному объекту.
// PropertyID - слабая ссылка: объект может быть удален независимо от запроса.
type PropertyInquiry struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"propertyId"`
	FullName   string    `json:"fullName"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Message    *string   `json:"message,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

type NewInquiryInput struct {
	PropertyID string
	FullName   string
	Email      string
	Phone      string
	Message    *string
}

func NewInquiry(id string, in NewInquiryInput, now time.Time) PropertyInquiry {
	return PropertyInquiry{
		ID:         id,
		PropertyID: in.PropertyID,
		FullName:   in.FullName,
		Email:      in.Email,
		Phone:      in.Phone,
		Message:    in.Message,
		CreatedAt:  now,
	}
}
