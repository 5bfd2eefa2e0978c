package rest

import (
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// максимальный размер JSON тела запроса
const maxJSONBodyBytes = 1 << 20

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// decodeValidated читает тело, проверяет его JSON-схемой и только потом разбирает в dst
func decodeValidated(r *http.Request, schema string, dst interface{}) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxJSONBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: failed to read request body", domain.ErrInvalidInput)
	}
	if len(body) > maxJSONBodyBytes {
		return fmt.Errorf("%w: request body too large", domain.ErrInvalidInput)
	}
	if err := contracts.ValidateRequest(schema, body); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: invalid request body", domain.ErrInvalidInput)
	}
	return nil
}

// writeUseCaseError переводит доменную ошибку в HTTP статус
func writeUseCaseError(w http.ResponseWriter, logger port.LoggerPort, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		logger.Info("Requested record not found", nil)
		WriteJSONError(w, http.StatusNotFound, "Not found")
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrUnknownProperty):
		logger.Warn("Request rejected", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrUnsupportedMedia):
		logger.Warn("Unsupported media rejected", port.Fields{"reason": err.Error()})
		WriteJSONError(w, http.StatusUnsupportedMediaType, err.Error())
	case errors.Is(err, domain.ErrUsernameTaken):
		logger.Warn("Username already in use", nil)
		WriteJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrTokenInvalid):
		logger.Warn("Authentication failed", nil)
		WriteJSONError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, domain.ErrPersistence):
		logger.Error("Storage unavailable", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, "Storage temporarily unavailable")
	case errors.Is(err, domain.ErrGeneratorUnavailable):
		logger.Error("Description generator unavailable", err, nil)
		WriteJSONError(w, http.StatusServiceUnavailable, "Description generator unavailable")
	default:
		logger.Error("Use case failed with an unexpected error", err, nil)
		WriteJSONError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// значения, которые старый фронтенд присылает вместо "фильтр не задан"
var filterSentinels = map[string]struct{}{
	"all":           {},
	"all types":     {},
	"all locations": {},
	"all statuses":  {},
}

func parseFilterString(query url.Values, key string) *string {
	value := strings.TrimSpace(query.Get(key))
	if value == "" {
		return nil
	}
	if _, ok := filterSentinels[strings.ToLower(value)]; ok {
		return nil
	}
	return &value
}

func parseFloatParam(query url.Values, key string) (*float64, error) {
	value := strings.TrimSpace(query.Get(key))
	if value == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, key)
	}
	return &f, nil
}

func parseIntParam(query url.Values, key string) (*int, error) {
	value := strings.TrimSpace(query.Get(key))
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be an integer", domain.ErrInvalidInput, key)
	}
	return &n, nil
}

func parseBoolParam(query url.Values, key string) (*bool, error) {
	value := strings.TrimSpace(query.Get(key))
	if value == "" || strings.EqualFold(value, "all") {
		return nil, nil
	}
	b, err := strconv.ParseBool(value)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
	}
	return &b, nil
}

// parsePropertyFilters собирает фильтры каталога из query-параметров
func parsePropertyFilters(query url.Values) (domain.PropertyFilters, error) {
	var filters domain.PropertyFilters
	var err error

	if t := parseFilterString(query, "type"); t != nil {
		pt := domain.PropertyType(*t)
		filters.Type = &pt
	}
	filters.Location = parseFilterString(query, "location")
	if s := parseFilterString(query, "status"); s != nil {
		st := domain.PropertyStatus(*s)
		filters.Status = &st
	}
	if filters.MinPrice, err = parseFloatParam(query, "minPrice"); err != nil {
		return filters, err
	}
	if filters.MaxPrice, err = parseFloatParam(query, "maxPrice"); err != nil {
		return filters, err
	}
	if filters.Featured, err = parseBoolParam(query, "featured"); err != nil {
		return filters, err
	}
	if filters.MinBedrooms, err = parseIntParam(query, "minBedrooms"); err != nil {
		return filters, err
	}
	return filters, nil
}

// parsePagination: perPage не задан - весь список одной страницей
func parsePagination(query url.Values) (page, perPage int, err error) {
	p, err := parseIntParam(query, "page")
	if err != nil {
		return 0, 0, err
	}
	pp, err := parseIntParam(query, "perPage")
	if err != nil {
		return 0, 0, err
	}
	page = 1
	if p != nil {
		if *p < 1 {
			return 0, 0, fmt.Errorf("%w: page must be positive", domain.ErrInvalidInput)
		}
		page = *p
	}
	if pp != nil {
		if *pp < 1 || *pp > maxPerPage {
			return 0, 0, fmt.Errorf("%w: perPage must be between 1 and %d", domain.ErrInvalidInput, maxPerPage)
		}
		perPage = *pp
	}
	return page, perPage, nil
}

const maxPerPage = 100
