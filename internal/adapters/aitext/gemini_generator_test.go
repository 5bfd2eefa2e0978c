package aitext

import (
	"brokerage-service/internal/core/domain"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGenerateDescription(t *testing.T) {
	var gotPath, gotKey, gotPrompt string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		body, _ := io.ReadAll(r.Body)
		var req geminiRequest
		_ = json.Unmarshal(body, &req)
		if len(req.Contents) > 0 && len(req.Contents[0].Parts) > 0 {
			gotPrompt = req.Contents[0].Parts[0].Text
		}
		_, _ = w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"Spacious duplex. "},{"text":"Move in today."}]}}]}`))
	}))
	defer srv.Close()

	g, err := NewGeminiGenerator(Config{APIKey: "k", Model: "gemini-test", BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}
	beds := "4"
	text, err := g.GenerateDescription(context.Background(), domain.DescriptionRequest{
		Title: "Luxury 4BR Duplex", Type: domain.TypeLuxuryHome, Location: "Lekki Phase 1, Lagos",
		Price: "85000000", Bedrooms: &beds, Features: []string{"Pool"},
	})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if text != "Spacious duplex. Move in today." {
		t.Fatalf("unexpected text %q", text)
	}
	if gotPath != "/models/gemini-test:generateContent" || gotKey != "k" {
		t.Fatalf("unexpected request path=%s key=%s", gotPath, gotKey)
	}
	for _, want := range []string{"Luxury 4BR Duplex", "luxury home", "Bedrooms: 4", "Features: Pool"} {
		if !strings.Contains(gotPrompt, want) {
			t.Fatalf("prompt missing %q:\n%s", want, gotPrompt)
		}
	}
}

func TestGenerateDescriptionUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		_, _ = w.Write([]byte(`{"error":{"code":429,"message":"quota exceeded"}}`))
	}))
	defer srv.Close()

	g, _ := NewGeminiGenerator(Config{APIKey: "k", BaseURL: srv.URL})
	_, err := g.GenerateDescription(context.Background(), domain.DescriptionRequest{Title: "x", Location: "y"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("expected upstream error, got %v", err)
	}
}

func TestNewGeminiGeneratorRequiresKey(t *testing.T) {
	if _, err := NewGeminiGenerator(Config{}); err == nil {
		t.Fatalf("expected error without API key")
	}
}
