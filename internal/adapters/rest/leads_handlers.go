package rest

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"
	"net/http"
)

type LeadHandlers struct {
	createContactUC usecases_port.CreateContactUseCasePort
	listContactsUC  usecases_port.ListContactsUseCasePort
	createInquiryUC usecases_port.CreateInquiryUseCasePort
	listInquiriesUC usecases_port.ListInquiriesUseCasePort
}

func NewLeadHandlers(createContactUC usecases_port.CreateContactUseCasePort,
	listContactsUC usecases_port.ListContactsUseCasePort,
	createInquiryUC usecases_port.CreateInquiryUseCasePort,
	listInquiriesUC usecases_port.ListInquiriesUseCasePort) *LeadHandlers {
	return &LeadHandlers{
		createContactUC: createContactUC,
		listContactsUC:  listContactsUC,
		createInquiryUC: createInquiryUC,
		listInquiriesUC: listInquiriesUC,
	}
}

// CreateContact обрабатывает POST /contacts
func (h *LeadHandlers) CreateContact(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateContact"})

	var req ContactRequest
	if err := decodeValidated(r, contracts.ContactCreate, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	contact, err := h.createContactUC.Execute(r.Context(), domain.NewContactInput{
		FullName:      req.FullName,
		Email:         req.Email,
		Phone:         req.Phone,
		Location:      req.Location,
		PropertyType:  req.PropertyType,
		Budget:        req.Budget,
		Purpose:       req.Purpose,
		Message:       req.Message,
		ContactMethod: req.ContactMethod,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Contact created", port.Fields{"contact_id": contact.ID})
	RespondWithJSON(w, http.StatusCreated, contact)
}

// ListContacts обрабатывает GET /admin/contacts
func (h *LeadHandlers) ListContacts(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListContacts"})

	contacts, err := h.listContactsUC.Execute(r.Context())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	if contacts == nil {
		contacts = []domain.Contact{}
	}
	RespondWithJSON(w, http.StatusOK, contacts)
}

// CreateInquiry обрабатывает POST /inquiries
func (h *LeadHandlers) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateInquiry"})

	var req InquiryRequest
	if err := decodeValidated(r, contracts.InquiryCreate, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	inquiry, err := h.createInquiryUC.Execute(r.Context(), domain.NewInquiryInput{
		PropertyID: req.PropertyID,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Message:    req.Message,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Inquiry created", port.Fields{"inquiry_id": inquiry.ID, "property_id": inquiry.PropertyID})
	RespondWithJSON(w, http.StatusCreated, inquiry)
}

// ListInquiries обрабатывает GET /admin/inquiries?propertyId=
func (h *LeadHandlers) ListInquiries(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListInquiries"})

	filters := domain.InquiryFilters{PropertyID: parseFilterString(r.URL.Query(), "propertyId")}
	inquiries, err := h.listInquiriesUC.Execute(r.Context(), filters)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	if inquiries == nil {
		inquiries = []domain.PropertyInquiry{}
	}
	RespondWithJSON(w, http.StatusOK, inquiries)
}
