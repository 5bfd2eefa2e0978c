package usecase

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"errors"
)

type CreateContactUseCase struct {
	storage  port.ContactStoragePort
	notifier port.LeadNotifierPort
}

// NewCreateContactUseCase: notifier может быть nil, тогда уведомления не отправляются
func NewCreateContactUseCase(storage port.ContactStoragePort, notifier port.LeadNotifierPort) *CreateContactUseCase {
	return &CreateContactUseCase{storage: storage, notifier: notifier}
}

func (uc *CreateContactUseCase) Execute(ctx context.Context, input domain.NewContactInput) (*domain.Contact, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateContact",
		"email":    input.Email,
	})
	ucLogger.Info("Use case started", nil)

	if err := requireFields(field{"fullName", input.FullName}, field{"email", input.Email}, field{"phone", input.Phone}); err != nil {
		ucLogger.Warn("Contact rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	contact, err := uc.storage.CreateContact(ctx, input)
	if err != nil {
		ucLogger.Error("Storage failed to create contact", err, nil)
		return nil, err
	}
	ucLogger = ucLogger.WithFields(port.Fields{"contact_id": contact.ID})

	// лид уже сохранен, сбой уведомления не должен его терять
	if uc.notifier != nil {
		if err := uc.notifier.ContactCreated(ctx, *contact); err != nil {
			ucLogger.Error("Failed to publish contact notification", err, nil)
		}
	}

	ucLogger.Info("Use case finished successfully", nil)
	return contact, nil
}

type ListContactsUseCase struct {
	storage port.ContactStoragePort
}

func NewListContactsUseCase(storage port.ContactStoragePort) *ListContactsUseCase {
	return &ListContactsUseCase{storage: storage}
}

func (uc *ListContactsUseCase) Execute(ctx context.Context) ([]domain.Contact, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListContacts"})

	contacts, err := uc.storage.ListContacts(ctx)
	if err != nil {
		ucLogger.Error("Storage failed to list contacts", err, nil)
		return nil, err
	}
	ucLogger.Debug("Use case finished", port.Fields{"count": len(contacts)})
	return contacts, nil
}

type CreateInquiryUseCase struct {
	storage         port.InquiryStoragePort
	properties      port.PropertyStoragePort
	notifier        port.LeadNotifierPort
	requireProperty bool
}

// NewCreateInquiryUseCase: при requireProperty запрос к несуществующему объекту отклоняется
func NewCreateInquiryUseCase(storage port.InquiryStoragePort, properties port.PropertyStoragePort, notifier port.LeadNotifierPort, requireProperty bool) *CreateInquiryUseCase {
	return &CreateInquiryUseCase{
		storage:         storage,
		properties:      properties,
		notifier:        notifier,
		requireProperty: requireProperty,
	}
}

func (uc *CreateInquiryUseCase) Execute(ctx context.Context, input domain.NewInquiryInput) (*domain.PropertyInquiry, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "CreateInquiry",
		"property_id": input.PropertyID,
		"email":       input.Email,
	})
	ucLogger.Info("Use case started", nil)

	if err := requireFields(
		field{"propertyId", input.PropertyID},
		field{"fullName", input.FullName},
		field{"email", input.Email},
		field{"phone", input.Phone},
	); err != nil {
		ucLogger.Warn("Inquiry rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	if uc.requireProperty && uc.properties != nil {
		if _, err := uc.properties.GetProperty(ctx, input.PropertyID); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				ucLogger.Warn("Inquiry references unknown property", nil)
				return nil, domain.ErrUnknownProperty
			}
			ucLogger.Error("Storage failed to check property", err, nil)
			return nil, err
		}
	}

	inquiry, err := uc.storage.CreateInquiry(ctx, input)
	if err != nil {
		ucLogger.Error("Storage failed to create inquiry", err, nil)
		return nil, err
	}
	ucLogger = ucLogger.WithFields(port.Fields{"inquiry_id": inquiry.ID})

	if uc.notifier != nil {
		if err := uc.notifier.InquiryCreated(ctx, *inquiry); err != nil {
			ucLogger.Error("Failed to publish inquiry notification", err, nil)
		}
	}

	ucLogger.Info("Use case finished successfully", nil)
	return inquiry, nil
}

type ListInquiriesUseCase struct {
	storage port.InquiryStoragePort
}

func NewListInquiriesUseCase(storage port.InquiryStoragePort) *ListInquiriesUseCase {
	return &ListInquiriesUseCase{storage: storage}
}

func (uc *ListInquiriesUseCase) Execute(ctx context.Context, filters domain.InquiryFilters) ([]domain.PropertyInquiry, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "ListInquiries"})

	inquiries, err := uc.storage.ListInquiries(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage failed to list inquiries", err, nil)
		return nil, err
	}
	ucLogger.Debug("Use case finished", port.Fields{"count": len(inquiries)})
	return inquiries, nil
}
