// Package aitext - клиент внешнего сервиса генерации текста (Gemini generateContent API).
package aitext

import (
	"brokerage-service/internal/contextkeys"
	"brokerage-service/internal/core/domain"
	"brokerage-service/internal/core/port"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

var _ port.DescriptionGeneratorPort = (*GeminiGenerator)(nil)

type Config struct {
	APIKey  string
	Model   string
	BaseURL string // https://generativelanguage.googleapis.com/v1beta
	Timeout time.Duration
}

type geminiRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

type GeminiGenerator struct {
	cfg    Config
	client *http.Client
}

func NewGeminiGenerator(cfg Config) (*GeminiGenerator, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("GeminiGenerator: API key is required")
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-1.5-flash"
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &GeminiGenerator{cfg: cfg, client: &http.Client{Timeout: cfg.Timeout}}, nil
}

func (g *GeminiGenerator) GenerateDescription(ctx context.Context, req domain.DescriptionRequest) (string, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "GeminiGenerator",
		"model":     g.cfg.Model,
	})

	body, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: BuildPrompt(req)}}}},
		GenerationConfig: &geminiGenerationConfig{Temperature: 0.7, MaxOutputTokens: 512},
	})
	if err != nil {
		return "", fmt.Errorf("GeminiGenerator: failed to encode request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/models/%s:generateContent?key=%s",
		strings.TrimRight(g.cfg.BaseURL, "/"), url.PathEscape(g.cfg.Model), url.QueryEscape(g.cfg.APIKey))
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("GeminiGenerator: failed to build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("GeminiGenerator: request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("GeminiGenerator: failed to read response: %w", err)
	}

	var parsed geminiResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("GeminiGenerator: failed to decode response (status %d): %w", resp.StatusCode, err)
	}
	if resp.StatusCode != http.StatusOK {
		msg := http.StatusText(resp.StatusCode)
		if parsed.Error != nil && parsed.Error.Message != "" {
			msg = parsed.Error.Message
		}
		return "", fmt.Errorf("GeminiGenerator: status %d: %s", resp.StatusCode, msg)
	}

	var sb strings.Builder
	if len(parsed.Candidates) > 0 {
		for _, part := range parsed.Candidates[0].Content.Parts {
			sb.WriteString(part.Text)
		}
	}
	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("GeminiGenerator: empty response")
	}

	logger.Debug("Description generated", port.Fields{"duration_ms": time.Since(start).Milliseconds(), "length": len(text)})
	return text, nil
}

// BuildPrompt собирает запрос к модели из данных объекта
func BuildPrompt(req domain.DescriptionRequest) string {
	tone := req.Tone
	if tone == "" {
		tone = "professional and inviting"
	}

	var sb strings.Builder
	sb.WriteString("You are a copywriter for a real-estate brokerage in Lagos, Nigeria.\n")
	fmt.Fprintf(&sb, "Write a %s listing description (120-180 words, plain text, no headings) for this property.\n\n", tone)
	fmt.Fprintf(&sb, "Title: %s\n", req.Title)
	if req.Type != "" {
		fmt.Fprintf(&sb, "Type: %s\n", strings.ReplaceAll(string(req.Type), "_", " "))
	}
	fmt.Fprintf(&sb, "Location: %s\n", req.Location)
	if req.Price != "" {
		fmt.Fprintf(&sb, "Price: NGN %s\n", req.Price)
	}
	optional := []struct {
		label string
		value *string
	}{
		{"Size", req.Size},
		{"Bedrooms", req.Bedrooms},
		{"Bathrooms", req.Bathrooms},
	}
	for _, o := range optional {
		if o.value != nil && *o.value != "" {
			fmt.Fprintf(&sb, "%s: %s\n", o.label, *o.value)
		}
	}
	if len(req.Features) > 0 {
		fmt.Fprintf(&sb, "Features: %s\n", strings.Join(req.Features, ", "))
	}
	return sb.String()
}
