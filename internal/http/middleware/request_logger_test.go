package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/la-masion/booking-api/pkg/logging"
)

func TestRequestLoggerScopesRequestFields(t *testing.T) {
	var buf bytes.Buffer
	logger := &logging.Logger{Logger: slog.New(slog.NewJSONHandler(&buf, nil))}

	handler := RequestLogger(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest("GET", "/availability", nil)
	req.Header.Set("X-Request-ID", "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected start and completion records, got %d:\n%s", len(lines), buf.String())
	}
	for i, line := range lines {
		var record map[string]any
		if err := json.Unmarshal([]byte(line), &record); err != nil {
			t.Fatalf("record %d is not JSON: %v", i, err)
		}
		if record["request_id"] != "req-42" {
			t.Errorf("record %d request_id = %v, want req-42", i, record["request_id"])
		}
		if record["method"] != "GET" || record["path"] != "/availability" {
			t.Errorf("record %d missing request fields: %v", i, record)
		}
	}
}
