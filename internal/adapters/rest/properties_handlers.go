package rest

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"
	"net/http"

	"github.com/go-chi/chi/v5"
)

type PropertyHandlers struct {
	listUC   usecases_port.ListPropertiesUseCasePort
	getUC    usecases_port.GetPropertyUseCasePort
	createUC usecases_port.CreatePropertyUseCasePort
	updateUC usecases_port.UpdatePropertyUseCasePort
	deleteUC usecases_port.DeletePropertyUseCasePort
}

func NewPropertyHandlers(listUC usecases_port.ListPropertiesUseCasePort,
	getUC usecases_port.GetPropertyUseCasePort,
	createUC usecases_port.CreatePropertyUseCasePort,
	updateUC usecases_port.UpdatePropertyUseCasePort,
	deleteUC usecases_port.DeletePropertyUseCasePort) *PropertyHandlers {
	return &PropertyHandlers{
		listUC:   listUC,
		getUC:    getUC,
		createUC: createUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

// ListProperties обрабатывает GET /properties и GET /admin/properties
func (h *PropertyHandlers) ListProperties(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListProperties"})
	query := r.URL.Query()

	filters, err := parsePropertyFilters(query)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	page, perPage, err := parsePagination(query)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	result, err := h.listUC.Execute(r.Context(), filters, page, perPage)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Debug("Properties listed", port.Fields{"total_found": result.Total, "items_on_page": len(result.Items)})
	RespondWithJSON(w, http.StatusOK, newPaginatedPropertiesResponse(result))
}

// GetProperty обрабатывает GET /properties/{propertyID}
func (h *PropertyHandlers) GetProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "GetProperty",
		"property_id": id,
	})

	property, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, property)
}

// CreateProperty обрабатывает POST /admin/properties
func (h *PropertyHandlers) CreateProperty(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "CreateProperty"})

	var req PropertyRequest
	if err := decodeValidated(r, contracts.PropertyCreate, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	property, err := h.createUC.Execute(r.Context(), req.toNewPropertyInput())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Property created", port.Fields{"property_id": property.ID})
	RespondWithJSON(w, http.StatusCreated, property)
}

// UpdateProperty обрабатывает PATCH и PUT /admin/properties/{propertyID}
func (h *PropertyHandlers) UpdateProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "UpdateProperty",
		"property_id": id,
	})

	var req PropertyRequest
	if err := decodeValidated(r, contracts.PropertyUpdate, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	property, err := h.updateUC.Execute(r.Context(), id, req.toPatch())
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Property updated", nil)
	RespondWithJSON(w, http.StatusOK, property)
}

// DeleteProperty обрабатывает DELETE /admin/properties/{propertyID}
func (h *PropertyHandlers) DeleteProperty(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "propertyID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{
		"handler":     "DeleteProperty",
		"property_id": id,
	})

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	logger.Info("Property deleted", nil)
	w.WriteHeader(http.StatusNoContent)
}
