package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/cardbridge/atena/internal/dict"
)

var startTime = time.Now()

// HealthHandlers answers liveness and readiness probes.
type HealthHandlers struct {
	dicts *dict.Store
}

// NewHealthHandlers constructs health handlers. The dictionary store may be
// nil, in which case readiness only reports process liveness.
func NewHealthHandlers(dicts *dict.Store) *HealthHandlers {
	return &HealthHandlers{dicts: dicts}
}

// Healthz responds with a simple status payload for monitoring.
func (h *HealthHandlers) Healthz(w http.ResponseWriter, r *http.Request) {
	writeHealthPayload(w, map[string]any{
		"status":    "ok",
		"uptime":    time.Since(startTime).String(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// Readyz reports whether the service can convert: the dictionary set must be
// loaded before traffic is admitted.
func (h *HealthHandlers) Readyz(w http.ResponseWriter, r *http.Request) {
	payload := map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	}
	if h.dicts != nil {
		set := h.dicts.Current()
		if set == nil {
			payload["status"] = "unavailable"
			payload["reason"] = "dictionaries not loaded"
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(payload)
			return
		}
		payload["dictionaries"] = dict.Describe(set)
	}
	writeHealthPayload(w, payload)
}

func writeHealthPayload(w http.ResponseWriter, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
