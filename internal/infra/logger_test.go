package infra

import (
	"bytes"
	"encoding/json"
	"testing"
)

func TestNewLoggerProductionWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "production")
	logger.Debug().Msg("hidden")
	logger.Info().Str("session_id", "abc").Msg("editor: session opened")

	var entry map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry); err != nil {
		t.Fatalf("log output is not a single JSON line: %q (%v)", buf.String(), err)
	}
	if entry["service"] != "imagestudio" || entry["session_id"] != "abc" {
		t.Fatalf("unexpected log entry: %#v", entry)
	}
}

func TestNewLoggerDevelopmentEnablesDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "development")
	logger.Debug().Msg("visible")
	if !bytes.Contains(buf.Bytes(), []byte("visible")) {
		t.Fatalf("debug message missing from development output: %q", buf.String())
	}
}
