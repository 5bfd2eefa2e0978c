package logger_adapter

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"brokerage-service/internal/core/port"
)

type recordingPoster struct {
	tags     []string
	messages []map[string]interface{}
}

func (p *recordingPoster) Post(tag string, message interface{}) error {
	p.tags = append(p.tags, tag)
	p.messages = append(p.messages, message.(port.Fields))
	return nil
}

func TestSlogAdapterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewSlogAdapter(SlogConfig{Writer: &buf, Level: slog.LevelInfo, IsJSON: true})

	logger.WithFields(port.Fields{"trace_id": "t-1"}).Error("write failed", errors.New("disk full"), port.Fields{"collection": "contacts"})
	logger.Debug("hidden", nil)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected one line below debug level, got %d: %s", len(lines), buf.String())
	}
	var entry map[string]interface{}
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if entry["msg"] != "write failed" || entry["trace_id"] != "t-1" || entry["collection"] != "contacts" {
		t.Fatalf("unexpected entry %v", entry)
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Fatalf("error text missing: %s", buf.String())
	}
}

func TestFluentAdapterLevelsAndFields(t *testing.T) {
	poster := &recordingPoster{}
	adapter, err := NewFluentLoggerAdapter(poster, slog.LevelInfo)
	if err != nil {
		t.Fatalf("new adapter: %v", err)
	}

	scoped := adapter.WithFields(port.Fields{"component": "store"})
	scoped.Debug("skipped", nil)
	scoped.Warn("slow write", port.Fields{"duration_ms": 1200})
	scoped.Error("failed", errors.New("boom"), nil)

	if strings.Join(poster.tags, ",") != "warn,error" {
		t.Fatalf("unexpected tags %v", poster.tags)
	}
	if poster.messages[0]["component"] != "store" || poster.messages[0]["message"] != "slow write" {
		t.Fatalf("unexpected message %v", poster.messages[0])
	}
	if poster.messages[1]["error"] != "boom" {
		t.Fatalf("error not attached: %v", poster.messages[1])
	}

	if _, err := NewFluentLoggerAdapter(nil, nil); err == nil {
		t.Fatalf("expected error for nil client")
	}
}

func TestMultiLoggerFanOut(t *testing.T) {
	first, second := &recordingPoster{}, &recordingPoster{}
	a, _ := NewFluentLoggerAdapter(first, slog.LevelDebug)
	b, _ := NewFluentLoggerAdapter(second, slog.LevelDebug)

	multi, err := NewMultiloggerAdapter(a, b)
	if err != nil {
		t.Fatalf("new multilogger: %v", err)
	}
	multi.WithFields(port.Fields{"trace_id": "x"}).Info("hello", nil)

	for i, p := range []*recordingPoster{first, second} {
		if len(p.messages) != 1 || p.messages[0]["trace_id"] != "x" {
			t.Fatalf("logger %d did not receive enriched record: %v", i, p.messages)
		}
	}

	if _, err := NewMultiloggerAdapter(); err == nil {
		t.Fatalf("expected error without loggers")
	}
	if _, err := NewMultiloggerAdapter(nil, nil); err == nil {
		t.Fatalf("expected error when every logger is nil")
	}
	if single, _ := NewMultiloggerAdapter(nil, a); single != a {
		t.Fatalf("single non-nil logger must be returned unwrapped")
	}
}

func TestParseLevel(t *testing.T) {
	if level, ok := ParseLevel("warn"); !ok || level != slog.LevelWarn {
		t.Fatalf("unexpected %v %v", level, ok)
	}
	if level, ok := ParseLevel("loud"); ok || level != slog.LevelInfo {
		t.Fatalf("unknown level must fall back to info, got %v %v", level, ok)
	}
}
