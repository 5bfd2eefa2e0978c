package domain

import "time"

// ContactStatus - стадия обработки лида
type ContactStatus string

const (
	ContactNew       ContactStatus = "new"
	ContactContacted ContactStatus = "contacted"
	ContactQualified ContactStatus = "qualified"
	ContactConverted ContactStatus = "converted"
)

// Contact - заявка с общей контактной формы
type Contact struct {
	ID            string        `json:"id"`
	FullName      string        `json:"fullName"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone"`
	Location      *string       `json:"location,omitempty"`
	PropertyType  *string       `json:"propertyType,omitempty"`
	Budget        *string       `json:"budget,omitempty"`
	Purpose       *string       `json:"purpose,omitempty"`
	Message       *string       `json:"message,omitempty"`
	ContactMethod *string       `json:"contactMethod,omitempty"`
	Status        ContactStatus `json:"status"`
	CreatedAt     time.Time     `json:"createdAt"`
}

type NewContactInput struct {
	FullName      string
	Email         string
	Phone         string
	Location      *string
	PropertyType  *string
	Budget        *string
	Purpose       *string
	Message       *string
	ContactMethod *string
}

func NewContact(id string, in NewContactInput, now time.Time) Contact {
	return Contact{
		ID:            id,
		FullName:      in.FullName,
		Email:         in.Email,
		Phone:         in.Phone,
		Location:      in.Location,
		PropertyType:  in.PropertyType,
		Budget:        in.Budget,
		Purpose:       in.Purpose,
		Message:       in.Message,
		ContactMethod: in.ContactMethod,
		Status:        ContactNew,
		CreatedAt:     now,
	}
}
