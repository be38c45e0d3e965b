package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardbridge/atena/internal/dict"
)

func TestHealthzPayload(t *testing.T) {
	h := NewHealthHandlers(nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rr := httptest.NewRecorder()

	h.Healthz(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload["status"] != "ok" {
		t.Errorf("unexpected status: %v", payload["status"])
	}
	if payload["uptime"] == "" {
		t.Errorf("expected uptime to be set")
	}
}

func TestReadyzReportsDictionaries(t *testing.T) {
	h := NewHealthHandlers(dict.NewStaticStore(handlerTestSet()))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()

	h.Readyz(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if payload["dictionaries"] == nil {
		t.Errorf("expected dictionary summary in payload")
	}
}

func TestReadyzUnavailableWithoutDictionaries(t *testing.T) {
	h := NewHealthHandlers(dict.NewStaticStore(nil))

	req := httptest.NewRequest(http.MethodGet, "/readyz", nil)
	rr := httptest.NewRecorder()

	h.Readyz(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}
