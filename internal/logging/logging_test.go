package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"warning", "WARN"},
		{"error", "ERROR"},
		{"", "INFO"},
		{"nonsense", "INFO"},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

func TestNewWithWriterFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn", false)

	logger.Info("should be filtered")
	logger.Warn("should appear", "crate", "foo")

	out := buf.String()
	if strings.Contains(out, "should be filtered") {
		t.Errorf("info line not filtered: %q", out)
	}
	if !strings.Contains(out, "should appear") || !strings.Contains(out, "crate=foo") {
		t.Errorf("warn line missing or unstructured: %q", out)
	}
}

func TestNewWithWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "info", true)
	logger.Info("hello", "crate", "foo")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if entry["msg"] != "hello" || entry["crate"] != "foo" {
		t.Errorf("unexpected entry: %v", entry)
	}
}
