package usecase

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/query"
	"context"
	"errors"
)

type ListPropertiesUseCase struct {
	storage port.PropertyStoragePort
}

func NewListPropertiesUseCase(storage port.PropertyStoragePort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{storage: storage}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters, page, perPage int) (domain.Page[domain.Property], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListProperties",
		"page":     page,
		"per_page": perPage,
	})
	ucLogger.Debug("Use case started", port.Fields{"filters": filters})

	items, err := uc.storage.ListProperties(ctx, filters)
	if err != nil {
		ucLogger.Error("Storage failed to list properties", err, nil)
		return domain.Page[domain.Property]{}, err
	}

	result := query.Paginate(items, page, perPage)
	ucLogger.Debug("Use case finished", port.Fields{"total": result.Total, "returned": len(result.Items)})
	return result, nil
}

type GetPropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewGetPropertyUseCase(storage port.PropertyStoragePort) *GetPropertyUseCase {
	return &GetPropertyUseCase{storage: storage}
}

func (uc *GetPropertyUseCase) Execute(ctx context.Context, id string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetProperty", "property_id": id})

	property, err := uc.storage.GetProperty(ctx, id)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			ucLogger.Error("Storage failed to get property", err, nil)
		}
		return nil, err
	}
	return property, nil
}

type CreatePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewCreatePropertyUseCase(storage port.PropertyStoragePort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{storage: storage}
}

func (uc *CreatePropertyUseCase) Execute(ctx context.Context, input domain.NewPropertyInput) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateProperty",
		"title":    input.Title,
	})
	ucLogger.Info("Use case started", nil)

	if err := validateNewProperty(input); err != nil {
		ucLogger.Warn("Property rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	created, err := uc.storage.CreateProperty(ctx, input)
	if err != nil {
		ucLogger.Error("Storage failed to create property", err, nil)
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"property_id": created.ID})
	return created, nil
}

type UpdatePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewUpdatePropertyUseCase(storage port.PropertyStoragePort) *UpdatePropertyUseCase {
	return &UpdatePropertyUseCase{storage: storage}
}

func (uc *UpdatePropertyUseCase) Execute(ctx context.Context, id string, patch domain.PropertyPatch) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "UpdateProperty",
		"property_id": id,
	})
	ucLogger.Info("Use case started", nil)

	if err := validatePropertyPatch(patch); err != nil {
		ucLogger.Warn("Property update rejected", port.Fields{"reason": err.Error()})
		return nil, err
	}

	updated, err := uc.storage.UpdateProperty(ctx, id, patch)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			ucLogger.Warn("Property not found", nil)
		} else {
			ucLogger.Error("Storage failed to update property", err, nil)
		}
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", nil)
	return updated, nil
}

type DeletePropertyUseCase struct {
	storage port.PropertyStoragePort
}

func NewDeletePropertyUseCase(storage port.PropertyStoragePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{storage: storage}
}

func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})
	ucLogger.Info("Use case started", nil)

	deleted, err := uc.storage.DeleteProperty(ctx, id)
	if err != nil {
		ucLogger.Error("Storage failed to delete property", err, nil)
		return err
	}
	if !deleted {
		ucLogger.Warn("Property not found", nil)
		return domain.ErrNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)
	return nil
}
