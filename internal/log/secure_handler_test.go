package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
)

func TestSecureHandlerMasksSensitiveKeys(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		key  string
	}{
		{name: "full name", key: "full_name"},
		{name: "contact number", key: "contact_number"},
		{name: "phone", key: "phone"},
		{name: "mobile", key: "mobile"},
		{name: "email id", key: "email_id"},
		{name: "address", key: "address"},
		{name: "mixed case", key: "Contact_Number"},
		{name: "compound key", key: "owner_contact_number"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, false)

			logger.Info("test", tt.key, "sensitive data")

			out := buf.String()
			if strings.Contains(out, "sensitive data") {
				t.Errorf("output leaked value for key %q: %s", tt.key, out)
			}
			if !strings.Contains(out, MaskValue) {
				t.Errorf("output for key %q missing mask: %s", tt.key, out)
			}
		})
	}
}

func TestSecureHandlerMasksSensitiveValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
	}{
		{name: "bare mobile", value: "9820012345"},
		{name: "mobile with country code", value: "+91 98200 12345"},
		{name: "mobile with zero prefix", value: "09820012345"},
		{name: "email address", value: "someone@example.com"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, false)

			logger.Info("test", "detail", tt.value)

			if strings.Contains(buf.String(), tt.value) {
				t.Errorf("output leaked value %q: %s", tt.value, buf.String())
			}
		})
	}
}

func TestSecureHandlerKeepsHarmlessAttrs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		key   string
		value string
	}{
		{name: "station", key: "station", value: "Andheri"},
		{name: "page number", key: "page", value: "12"},
		{name: "url", key: "url", value: "https://mumbaipolice.gov.in/Lostfoundarticle"},
		{name: "hostname is not a name", key: "hostname", value: "portal-mirror"},
		{name: "pin code", key: "count", value: "400058"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			logger := NewSecureLogger(&buf, false)

			logger.Info("test", tt.key, tt.value)

			if !strings.Contains(buf.String(), tt.value) {
				t.Errorf("harmless attr %q=%q was masked: %s", tt.key, tt.value, buf.String())
			}
		})
	}
}

func TestSecureHandlerSanitizesGroups(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false)

	logger.Info("test", slog.Group("record",
		slog.String("contact_number", "9820012345"),
		slog.String("station", "Bandra"),
	))

	out := buf.String()
	if strings.Contains(out, "9820012345") {
		t.Errorf("grouped attr leaked: %s", out)
	}
	if !strings.Contains(out, "Bandra") {
		t.Errorf("harmless grouped attr was masked: %s", out)
	}
}

func TestSecureHandlerWithAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false).With("email_id", "a@b.com")

	logger.Info("test")

	if strings.Contains(buf.String(), "a@b.com") {
		t.Errorf("With-attached attr leaked: %s", buf.String())
	}
}

func TestSecureLoggerLevels(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureLogger(&buf, false)

	logger.Debug("hidden")
	if buf.Len() != 0 {
		t.Errorf("non-verbose logger emitted debug output: %s", buf.String())
	}

	logger.Info("shown")
	if !strings.Contains(buf.String(), "shown") {
		t.Error("non-verbose logger dropped info output")
	}

	buf.Reset()
	verbose := NewSecureLogger(&buf, true)
	verbose.Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("verbose logger dropped debug output")
	}
}

func TestSecureJSONLogger(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := NewSecureJSONLogger(&buf, false)

	logger.Info("test", "address", "12 Hill Road", "station", "Bandra")

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if entry["address"] != MaskValue {
		t.Errorf("address = %v, want mask", entry["address"])
	}
	if entry["station"] != "Bandra" {
		t.Errorf("station = %v, want Bandra", entry["station"])
	}
}
