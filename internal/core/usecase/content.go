package usecase

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

type GenerateDescriptionUseCase struct {
	generator port.DescriptionGeneratorPort
}

// NewGenerateDescriptionUseCase: generator = nil, если сервис генерации не настроен
func NewGenerateDescriptionUseCase(generator port.DescriptionGeneratorPort) *GenerateDescriptionUseCase {
	return &GenerateDescriptionUseCase{generator: generator}
}

func (uc *GenerateDescriptionUseCase) Execute(ctx context.Context, req domain.DescriptionRequest) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "GenerateDescription",
		"title":    req.Title,
	})
	ucLogger.Info("Use case started", nil)

	if err := requireFields(field{"title", req.Title}, field{"location", req.Location}); err != nil {
		return "", err
	}
	if req.Type != "" && !req.Type.Valid() {
		return "", invalid("unknown property type %q", req.Type)
	}
	if uc.generator == nil {
		ucLogger.Warn("Description generator is not configured", nil)
		return "", domain.ErrGeneratorUnavailable
	}

	text, err := uc.generator.GenerateDescription(ctx, req)
	if err != nil {
		ucLogger.Error("Description generator failed", err, nil)
		return "", fmt.Errorf("%w: %v", domain.ErrGeneratorUnavailable, err)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		ucLogger.Warn("Description generator returned empty text", nil)
		return "", domain.ErrGeneratorUnavailable
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"length": len(text)})
	return text, nil
}

type UploadMediaUseCase struct {
	media port.MediaStoragePort
	now   func() time.Time
}

func NewUploadMediaUseCase(media port.MediaStoragePort) *UploadMediaUseCase {
	return &UploadMediaUseCase{media: media, now: time.Now}
}

// Execute сохраняет фото или видео объекта под ключом properties/<yyyy>/<mm>/<uuid><ext>
func (uc *UploadMediaUseCase) Execute(ctx context.Context, filename, contentType string, r io.Reader) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":     "UploadMedia",
		"filename":     filename,
		"content_type": contentType,
	})
	ucLogger.Info("Use case started", nil)

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil || !(strings.HasPrefix(mediaType, "image/") || strings.HasPrefix(mediaType, "video/")) {
		ucLogger.Warn("Upload rejected: unsupported content type", nil)
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedMedia, contentType)
	}

	ext := strings.ToLower(path.Ext(filename))
	if ext == "" {
		if exts, _ := mime.ExtensionsByType(mediaType); len(exts) > 0 {
			ext = exts[0]
		}
	}
	key := fmt.Sprintf("properties/%s/%s%s", uc.now().UTC().Format("2006/01"), uuid.New().String(), ext)

	url, err := uc.media.Put(ctx, key, r, mediaType)
	if err != nil {
		ucLogger.Error("Media storage failed", err, port.Fields{"key": key})
		return "", err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{"key": key})
	return url, nil
}
