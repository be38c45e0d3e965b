package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cardbridge/atena/internal/dict"
)

func newDictionaryRouter(store *dict.Store) http.Handler {
	h := NewDictionaryHandlers(store)
	return NewRouter(WithDictionaryRoutes(h.Routes))
}

func TestDictionaryList(t *testing.T) {
	router := newDictionaryRouter(dict.NewStaticStore(handlerTestSet()))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dictionaries/", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var payload dictionaryListPayload
	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode payload: %v", err)
	}
	if len(payload.Dictionaries) != 6 {
		t.Fatalf("expected 6 dictionaries, got %d", len(payload.Dictionaries))
	}

	byName := make(map[string]dictionaryPayload, len(payload.Dictionaries))
	for _, d := range payload.Dictionaries {
		byName[d.Name] = d
	}
	corp, ok := byName["corp_terms"]
	if !ok {
		t.Fatalf("corp_terms missing from payload: %+v", payload.Dictionaries)
	}
	if corp.Version != "t1" || corp.Entries != 1 {
		t.Errorf("unexpected corp_terms payload: %+v", corp)
	}
}

func TestDictionaryReloadWithoutBackingFilesFails(t *testing.T) {
	router := newDictionaryRouter(dict.NewStaticStore(handlerTestSet()))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/dictionaries/reload", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected status 409, got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestDictionaryListUnavailable(t *testing.T) {
	router := newDictionaryRouter(nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/dictionaries/", nil)
	rr := httptest.NewRecorder()

	router.ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected status 503, got %d", rr.Code)
	}
}
