package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/cardbridge/atena/internal/domain"
	"github.com/cardbridge/atena/internal/eightcsv"
	"github.com/cardbridge/atena/internal/platform/httpx"
	"github.com/cardbridge/atena/internal/services"
)

const defaultMaxUploadBytes = 10 << 20

// uploadFieldName is the multipart form field holding the exported CSV.
const uploadFieldName = "file"

// ConversionHandlers exposes the CSV conversion endpoints.
type ConversionHandlers struct {
	svc       services.ConvertService
	maxUpload int64
	limiter   uploadLimiter
}

// NewConversionHandlers constructs the conversion handler set.
func NewConversionHandlers(svc services.ConvertService, maxUpload int64) *ConversionHandlers {
	if maxUpload <= 0 {
		maxUpload = defaultMaxUploadBytes
	}
	return &ConversionHandlers{svc: svc, maxUpload: maxUpload}
}

// WithRateLimit caps conversions per client IP inside the window. A zero
// limit or window disables limiting.
func (h *ConversionHandlers) WithRateLimit(limit int, window time.Duration) *ConversionHandlers {
	h.limiter = newUploadLimiter(limit, window, nil)
	return h
}

// Routes registers the conversion endpoints beneath /conversions.
func (h *ConversionHandlers) Routes(r chi.Router) {
	if r == nil {
		return
	}
	r.Post("/", h.convert)
	r.Post("/report", h.report)
}

// convert accepts an exported contact CSV and streams back the converted
// address-label CSV. Batch metadata travels in response headers so the body
// stays a plain file download.
func (h *ConversionHandlers) convert(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "conversion service not available", http.StatusServiceUnavailable))
		return
	}

	records, ok := h.readRecords(w, r)
	if !ok {
		return
	}

	report := h.svc.Convert(ctx, records)

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "atena_"+report.ID+".csv"))
	w.Header().Set("X-Conversion-Id", report.ID)
	w.Header().Set("X-Conversion-Rows", strconv.Itoa(len(report.Rows)))
	w.Header().Set("X-Conversion-Errors", strconv.Itoa(len(report.Errors)))
	w.Header().Set("X-Conversion-Reviewed", strconv.Itoa(report.Reviewed))

	if err := eightcsv.Write(w, report.Rows); err != nil {
		// Headers are already out; nothing sensible left to send.
		return
	}
}

// report runs the same conversion but answers with the batch report as JSON
// instead of the converted file. Callers use it to inspect row errors and
// review flags before downloading.
func (h *ConversionHandlers) report(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if h.svc == nil {
		httpx.WriteError(ctx, w, httpx.NewError("service_unavailable", "conversion service not available", http.StatusServiceUnavailable))
		return
	}

	records, ok := h.readRecords(w, r)
	if !ok {
		return
	}

	report := h.svc.Convert(ctx, records)
	writeJSONResponse(w, http.StatusOK, buildReportPayload(report))
}

// readRecords pulls the uploaded CSV out of the request. Both raw text/csv
// bodies and multipart uploads with a "file" field are accepted.
func (h *ConversionHandlers) readRecords(w http.ResponseWriter, r *http.Request) ([]domain.ContactRecord, bool) {
	ctx := r.Context()
	if h.limiter != nil && !h.limiter.Allow(clientKey(r)) {
		httpx.WriteError(ctx, w, httpx.NewError("rate_limited", "too many conversions, retry later", http.StatusTooManyRequests))
		return nil, false
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUpload)

	var reader io.Reader = r.Body
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, _, err := r.FormFile(uploadFieldName)
		if err != nil {
			if tooLarge(err) {
				httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "uploaded file exceeds allowed size", http.StatusRequestEntityTooLarge))
				return nil, false
			}
			httpx.WriteError(ctx, w, httpx.NewError("invalid_request", fmt.Sprintf("multipart field %q is required", uploadFieldName), http.StatusBadRequest))
			return nil, false
		}
		defer file.Close()
		reader = file
	}

	records, err := eightcsv.Read(reader)
	if err != nil {
		if tooLarge(err) {
			httpx.WriteError(ctx, w, httpx.NewError("payload_too_large", "uploaded file exceeds allowed size", http.StatusRequestEntityTooLarge))
			return nil, false
		}
		var readErr *eightcsv.ReadError
		if errors.As(err, &readErr) {
			httpx.WriteError(ctx, w, httpx.NewError("invalid_csv", readErr.Reason, http.StatusBadRequest))
			return nil, false
		}
		httpx.WriteError(ctx, w, httpx.NewError("invalid_csv", "failed to parse uploaded CSV", http.StatusBadRequest))
		return nil, false
	}
	return records, true
}

func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return errors.As(err, &maxErr)
}

type rowErrorPayload struct {
	Row     int    `json:"row"`
	Column  string `json:"column"`
	Message string `json:"message"`
}

type conversionReportPayload struct {
	ID                 string            `json:"id"`
	RowCount           int               `json:"row_count"`
	Converted          int               `json:"converted"`
	Reviewed           int               `json:"reviewed"`
	Errors             []rowErrorPayload `json:"errors"`
	DictionaryVersions map[string]string `json:"dictionary_versions"`
}

func buildReportPayload(report domain.ConversionReport) conversionReportPayload {
	payload := conversionReportPayload{
		ID:                 report.ID,
		RowCount:           len(report.Rows),
		Converted:          report.Converted,
		Reviewed:           report.Reviewed,
		Errors:             make([]rowErrorPayload, 0, len(report.Errors)),
		DictionaryVersions: report.DictionaryVersions,
	}
	for _, re := range report.Errors {
		payload.Errors = append(payload.Errors, rowErrorPayload{Row: re.Row, Column: re.Column, Message: re.Message})
	}
	return payload
}

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
