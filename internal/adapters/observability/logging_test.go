package observability_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"hotel_gateway/internal/adapters/observability"
)

func TestNewLogger_StampsServiceField(t *testing.T) {
	var buf bytes.Buffer
	l := observability.NewLogger("prod", "gateway").Output(&buf)
	l.Info().Msg("hello")

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected a JSON line, got %q: %v", buf.String(), err)
	}
	if line["service"] != "gateway" {
		t.Fatalf("service = %v", line["service"])
	}
	if line["message"] != "hello" {
		t.Fatalf("message = %v", line["message"])
	}
}
