package domain

// DescriptionRequest - исходные данные для генерации описания объекта
type DescriptionRequest struct {
	Title     string
	Type      PropertyType
	Location  string
	Price     string
	Size      *string
	Bedrooms  *string
	Bathrooms *string
	Features  []string
	Tone      string
}
