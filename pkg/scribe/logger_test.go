package scribe

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
		wantError bool
	}{
		{"debug", true, true, true},
		{"info", false, true, true},
		{"error", false, false, true},
		{"off", false, false, false},
		{"bogus", false, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			logger := NewLogger(&buf, tt.level, "console")
			logger.Debug("debug message")
			logger.Info("info message")
			logger.Error("error message")
			logger.Sync()

			out := buf.String()
			if got := strings.Contains(out, "debug message"); got != tt.wantDebug {
				t.Errorf("debug logged = %v, want %v", got, tt.wantDebug)
			}
			if got := strings.Contains(out, "info message"); got != tt.wantInfo {
				t.Errorf("info logged = %v, want %v", got, tt.wantInfo)
			}
			if got := strings.Contains(out, "error message"); got != tt.wantError {
				t.Errorf("error logged = %v, want %v", got, tt.wantError)
			}
			if logger.IsDebugMode() != tt.wantDebug {
				t.Errorf("IsDebugMode() = %v, want %v", logger.IsDebugMode(), tt.wantDebug)
			}
		})
	}
}

func TestLoggerJSONFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "info", "json").With("packager", "docx")
	logger.Info("document serialized", "bytes", 512)
	logger.Sync()

	var entry map[string]interface{}
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "document serialized" {
		t.Errorf("msg = %v, want document serialized", entry["msg"])
	}
	if entry["packager"] != "docx" {
		t.Errorf("packager = %v, want docx", entry["packager"])
	}
	if entry["bytes"] != float64(512) {
		t.Errorf("bytes = %v, want 512", entry["bytes"])
	}
}

func TestLoggerSetLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(&buf, "error", "console")
	logger.Info("hidden")
	logger.SetLevel("info")
	logger.Info("shown")
	logger.Sync()

	if strings.Contains(buf.String(), "hidden") {
		t.Error("info message logged at error level")
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Error("info message not logged after SetLevel(info)")
	}
}

func TestGlobalLogger(t *testing.T) {
	original := GetLogger()
	defer SetLogger(original)

	var buf bytes.Buffer
	SetLogger(NewLogger(&buf, "info", "console"))
	GetLogger().Warn("global warning", "count", 2)
	GetLogger().Sync()

	if !strings.Contains(buf.String(), "global warning") {
		t.Errorf("global logger output = %q", buf.String())
	}
}
