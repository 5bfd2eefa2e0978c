package constants

// Обменник для событий о новых лидах
const (
	LeadsExchangeType = "topic"
)

// Ключи маршрутизации
const (
	RoutingKeyContactCreated = "leads.contact.created"
	RoutingKeyInquiryCreated = "leads.inquiry.created"
)
