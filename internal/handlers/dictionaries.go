package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/cardbridge/atena/internal/dict"
	"github.com/cardbridge/atena/internal/platform/httpx"
	"github.com/cardbridge/atena/internal/platform/observability"
)

// DictionaryHandlers exposes dictionary provenance and reload endpoints.
type DictionaryHandlers struct {
	store *dict.Store
}

// NewDictionaryHandlers constructs the dictionary handler set.
func NewDictionaryHandlers(store *dict.Store) *DictionaryHandlers {
	return &DictionaryHandlers{store: store}
}

// Routes registers the dictionary endpoints beneath /dictionaries.
func (h *DictionaryHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.list)
	r.Post("/reload", h.reload)
}

type dictionaryPayload struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Entries int    `json:"entries"`
}

type dictionaryListPayload struct {
	Dictionaries []dictionaryPayload `json:"dictionaries"`
}

func (h *DictionaryHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.store == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "dictionary store not available", http.StatusServiceUnavailable))
		return
	}

	set := h.store.Current()
	if set == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "dictionaries not loaded", http.StatusServiceUnavailable))
		return
	}

	writeJSONResponse(w, http.StatusOK, buildDictionaryPayload(set))
}

// reload re-reads the dictionary files from disk. On failure the previous set
// stays active and the error surfaces to the caller.
func (h *DictionaryHandlers) reload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.store == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "dictionary store not available", http.StatusServiceUnavailable))
		return
	}

	set, err := h.store.Reload()
	if err != nil {
		observability.FromContext(ctx).Warn("dictionary reload failed", zap.Error(err))
		httpx.WriteError(ctx, w, httpx.NewError("reload_failed", err.Error(), http.StatusConflict))
		return
	}

	writeJSONResponse(w, http.StatusOK, buildDictionaryPayload(set))
}

func buildDictionaryPayload(set *dict.Set) dictionaryListPayload {
	payload := dictionaryListPayload{Dictionaries: make([]dictionaryPayload, 0, 7)}
	for _, d := range []*dict.Dictionary{
		set.CorpTerms,
		set.BuildingWords,
		set.PersonFullOverrides,
		set.SurnameOverrides,
		set.GivenNameOverrides,
		set.CompanyOverrides,
	} {
		payload.Dictionaries = append(payload.Dictionaries, dictionaryPayload{
			Name:    d.Name(),
			Version: d.Version(),
			Entries: d.Len(),
		})
	}
	if set.LegacyCompanyKana != nil {
		payload.Dictionaries = append(payload.Dictionaries, dictionaryPayload{
			Name:    set.LegacyCompanyKana.Name(),
			Version: set.LegacyCompanyKana.Version(),
			Entries: set.LegacyCompanyKana.Len(),
		})
	}
	return payload
}
