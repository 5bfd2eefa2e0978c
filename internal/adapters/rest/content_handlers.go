package rest

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/contracts"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"brokerage-service/internal/core/port/usecases_port"
	"bytes"
	"errors"
	"io"
	"net/http"
)

// ContentHandlers - генерация описаний и загрузка медиа
type ContentHandlers struct {
	generateUC     usecases_port.GenerateDescriptionUseCasePort
	uploadUC       usecases_port.UploadMediaUseCasePort
	maxUploadBytes int64
}

func NewContentHandlers(generateUC usecases_port.GenerateDescriptionUseCasePort,
	uploadUC usecases_port.UploadMediaUseCasePort,
	maxUploadBytes int64) *ContentHandlers {
	return &ContentHandlers{
		generateUC:     generateUC,
		uploadUC:       uploadUC,
		maxUploadBytes: maxUploadBytes,
	}
}

// GenerateDescription обрабатывает POST /admin/properties/generate-description
func (h *ContentHandlers) GenerateDescription(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GenerateDescription"})

	var req DescriptionRequest
	if err := decodeValidated(r, contracts.DescriptionGenerate, &req); err != nil {
		writeUseCaseError(w, logger, err)
		return
	}

	text, err := h.generateUC.Execute(r.Context(), domain.DescriptionRequest{
		Title:     req.Title,
		Type:      req.Type,
		Location:  req.Location,
		Price:     req.Price,
		Size:      req.Size,
		Bedrooms:  req.Bedrooms,
		Bathrooms: req.Bathrooms,
		Features:  req.Features,
		Tone:      req.Tone,
	})
	if err != nil {
		writeUseCaseError(w, logger, err)
		return
	}
	RespondWithJSON(w, http.StatusOK, DescriptionResponse{Description: text})
}

// UploadMedia обрабатывает POST /admin/media (multipart, поле "file")
func (h *ContentHandlers) UploadMedia(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UploadMedia"})

	if r.ContentLength > h.maxUploadBytes {
		logger.Warn("Upload exceeds size limit", port.Fields{"limit_bytes": h.maxUploadBytes, "content_length": r.ContentLength})
		WriteJSONError(w, http.StatusRequestEntityTooLarge, "File is too large")
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			logger.Warn("Upload exceeds size limit", port.Fields{"limit_bytes": h.maxUploadBytes})
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "File is too large")
			return
		}
		logger.Warn("Failed to parse multipart form", port.Fields{"error": err.Error()})
		WriteJSONError(w, http.StatusBadRequest, "Invalid multipart form")
		return
	}
	defer func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Form field 'file' is required")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	var body io.Reader = file
	if contentType == "" || contentType == "application/octet-stream" {
		// тип не передан клиентом - определяем по первым байтам
		head := make([]byte, 512)
		n, _ := io.ReadFull(file, head)
		head = head[:n]
		contentType = http.DetectContentType(head)
		body = io.MultiReader(bytes.NewReader(head), file)
	}

	handlerLogger := logger.WithFields(port.Fields{
		"filename":     header.Filename,
		"content_type": contentType,
		"size_bytes":   header.Size,
	})

	url, err := h.uploadUC.Execute(r.Context(), header.Filename, contentType, body)
	if err != nil {
		writeUseCaseError(w, handlerLogger, err)
		return
	}

	handlerLogger.Info("Media uploaded", port.Fields{"url": url})
	RespondWithJSON(w, http.StatusCreated, MediaUploadResponse{URL: url})
}
