/*
handlers.go - HTTP API handlers for the residence calculator

PURPOSE:
  Exposes residence.Assess and report.Render over HTTP. Handles request
  decoding, validation and response encoding; every figure comes from the
  residence package.

ENDPOINTS:
  POST   /api/assessments    Record in, assessment JSON out
  POST   /api/reports        Record in, markdown report out
  GET    /api/policy         Active goal, allowance and zone
  GET    /healthz            Liveness

ARCHITECTURE:
  Handler holds only immutable settings and the metrics manager. Nothing
  is stored between requests, so handlers are safe for concurrent use.

REQUEST FLOW:
  1. Decode JSON (unknown fields rejected, body capped)
  2. Validate with loader's validator and build a residence.Record
  3. Assess
  4. Serialize response

ERROR HANDLING:
  - 400: Malformed JSON, validation errors, invalid dates or periods
  - 500: Record could not be built for a reason other than bad input,
         or the response could not be produced

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/warp/residence-engine/config"
	"github.com/warp/residence-engine/generic"
	"github.com/warp/residence-engine/loader"
	"github.com/warp/residence-engine/logger"
	"github.com/warp/residence-engine/metrics"
	"github.com/warp/residence-engine/report"
	"github.com/warp/residence-engine/residence"
)

// maxBodyBytes caps request bodies; a lifetime of travel fits easily.
const maxBodyBytes = 1 << 20

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Policy   residence.Policy
	Timezone string
	Location *time.Location
	Metrics  *metrics.Manager

	// Seams for tests.
	Now   func() time.Time
	NewID func() string
}

// NewHandler creates a handler serving the policy and zone of cfg.
func NewHandler(cfg *config.Config, m *metrics.Manager) *Handler {
	return &Handler{
		Policy:   cfg.Policy(),
		Timezone: cfg.Timezone,
		Location: cfg.Location(),
		Metrics:  m,
		Now:      time.Now,
		NewID:    uuid.NewString,
	}
}

// =============================================================================
// ASSESSMENT ENDPOINTS
// =============================================================================

// CreateAssessment handles POST /api/assessments.
func (h *Handler) CreateAssessment(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a, ok := h.assess(w, r)
	if !ok {
		return
	}
	id := h.NewID()
	writeJSON(w, http.StatusOK, toAssessmentDTO(id, a))
	h.Metrics.RecordAssessment(metrics.KindAssessment, time.Since(start))
}

// CreateReport handles POST /api/reports.
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	a, ok := h.assess(w, r)
	if !ok {
		return
	}
	id := h.NewID()
	doc := report.Document{Assessment: a, GeneratedOn: a.Record.Today, ReportID: id}

	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", report.FileName(a.Record.Today)))
	w.Header().Set("X-Report-ID", id)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(report.Render(doc))); err != nil {
		logger.C(r.Context()).Error().Err(err).Msg("failed to write report")
		return
	}
	h.Metrics.RecordAssessment(metrics.KindReport, time.Since(start))
}

// assess decodes, validates and assesses the request body. On failure it has
// already written the error response.
func (h *Handler) assess(w http.ResponseWriter, r *http.Request) (residence.Assessment, bool) {
	var req AssessmentRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		h.Metrics.RecordValidationFailure()
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return residence.Assessment{}, false
	}

	if field, msg, ok := loader.Check(req); !ok {
		h.Metrics.RecordValidationFailure()
		writeErrorCode(w, http.StatusBadRequest, "Invalid record", "validation", map[string]string{
			"field":  field,
			"reason": msg,
		})
		return residence.Assessment{}, false
	}

	today := generic.DateOf(h.Now(), h.Location)
	if req.Today != "" {
		d, err := generic.ParseDate(req.Today)
		if err != nil {
			h.Metrics.RecordValidationFailure()
			writeError(w, http.StatusBadRequest, "Invalid today", err)
			return residence.Assessment{}, false
		}
		today = d
	}

	record, err := req.recordInput().Record("request", today)
	if err != nil {
		h.recordError(w, r, err)
		return residence.Assessment{}, false
	}

	a := residence.Assess(record, req.policy(h.Policy))
	logger.C(r.Context()).Debug().
		Str("today", today.String()).
		Int("permits", len(record.Permits)).
		Int("travels", len(record.Travels)).
		Int("days_left", a.Raw.DaysLeft.Raw).
		Msg("assessed record")
	return a, true
}

// recordError maps a failure to build the record onto a response: input
// problems are 400, anything else is ours and becomes 500.
func (h *Handler) recordError(w http.ResponseWriter, r *http.Request, err error) {
	var ie *loader.InputError
	switch {
	case errors.As(err, &ie):
		h.Metrics.RecordValidationFailure()
		writeErrorCode(w, http.StatusBadRequest, "Invalid record", "validation", map[string]string{
			"field":  ie.Field,
			"reason": ie.Reason,
		})
	case generic.IsClientError(err):
		h.Metrics.RecordValidationFailure()
		writeError(w, http.StatusBadRequest, "Invalid record", err)
	default:
		logger.C(r.Context()).Error().Err(err).Msg("failed to build record")
		writeError(w, http.StatusInternalServerError, "Failed to assess record", nil)
	}
}

// =============================================================================
// POLICY & HEALTH
// =============================================================================

// GetPolicy handles GET /api/policy.
func (h *Handler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, PolicyDTO{
		GoalDays:          h.Policy.GoalDays,
		ExcuseDaysPerYear: h.Policy.ExcuseDaysPerYear,
		Timezone:          h.Timezone,
	})
}

// Health handles GET /healthz.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeErrorCode(w http.ResponseWriter, status int, message, code string, details any) {
	writeJSON(w, status, ErrorResponse{Error: message, Code: code, Details: details})
}
