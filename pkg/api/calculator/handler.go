// Package calculator exposes the loan calculator over HTTP. Handlers are
// thin: they decode the request, run the stateless core, and map the error
// taxonomy onto status codes. Business rule failures are ordinary 200
// responses with status "Error"; only malformed input (400) and solver
// failures (500) surface as HTTP errors.
package calculator

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"equity_release/pkg/core/assumption"
	"equity_release/pkg/core/cache"
	"equity_release/pkg/core/calcerr"
	"equity_release/pkg/core/disclosure"
	"equity_release/pkg/core/eligibility"
	"equity_release/pkg/core/projection"
	"equity_release/pkg/core/store"
)

// QuoteStore persists accepted quotes. Nil-able at wiring time; the handler
// treats persistence as best effort.
type QuoteStore interface {
	Save(ctx context.Context, quote *store.Quote) error
	Load(ctx context.Context, id uuid.UUID) (*store.Quote, error)
}

// Handler implements the calculator HTTP endpoints.
type Handler struct {
	validator *eligibility.Validator
	economic  assumption.Economic
	policy    assumption.Policy
	cache     cache.Cache
	quotes    QuoteStore
	logger    *zap.Logger
}

// NewHandler wires the calculator endpoints. quotes may be nil when no
// database is configured.
func NewHandler(validator *eligibility.Validator, economic assumption.Economic, c cache.Cache, quotes QuoteStore, logger *zap.Logger) *Handler {
	return &Handler{
		validator: validator,
		economic:  economic,
		policy:    validator.Policy(),
		cache:     c,
		quotes:    quotes,
		logger:    logger,
	}
}

// projectRequest is the validate/status input plus the projection-only
// fields.
type projectRequest struct {
	eligibility.Input

	PensionIncome          float64 `json:"pensionIncome"`
	InterestPayment        float64 `json:"interestPayment"`
	InterestPaymentPeriods int     `json:"interestPaymentPeriods"`
	InterestPaymentEnabled bool    `json:"interestPaymentEnabled"`
	PeriodsPerYear         int     `json:"periodsPerYear"`
}

// projectResponse is the full quote payload.
type projectResponse struct {
	QuoteID    string              `json:"quoteId"`
	Status     eligibility.Status  `json:"status"`
	Reason     string              `json:"reason,omitempty"`
	Validation *eligibility.Result `json:"validation,omitempty"`
	Projection *projection.Result  `json:"projection,omitempty"`
	Disclosure string              `json:"disclosure,omitempty"`
}

// Validate runs the eligibility rule chain for a prospective borrower.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var input eligibility.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.applyDefaults(&input)

	result, err := h.validator.ValidateLoan(input)
	if err != nil {
		h.writeCalcError(w, "validate", err)
		return
	}
	h.writeJSON(w, result)
}

// Status computes the live limits and per-purpose breakdown for the amounts
// currently requested.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	var input eligibility.Input
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.applyDefaults(&input)

	result, err := h.validator.Status(input)
	if err != nil {
		h.writeCalcError(w, "status", err)
		return
	}
	h.writeJSON(w, result)
}

// Project validates the loan, runs every scenario and returns the full
// quote with its disclosure document. Identical requests are served from
// the cache.
func (h *Handler) Project(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	body := json.NewDecoder(r.Body)
	if err := body.Decode(&req); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	h.applyDefaults(&req.Input)

	key, cacheable := requestKey(req)
	if cacheable {
		if cached, ok := h.cache.Get(key); ok {
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(cached))
			return
		}
	}

	validation, err := h.validator.ValidateLoan(req.Input)
	if err != nil {
		h.writeCalcError(w, "project", err)
		return
	}

	resp := projectResponse{
		QuoteID:    uuid.NewString(),
		Status:     validation.Status,
		Reason:     validation.Reason,
		Validation: &validation,
	}

	if validation.Status == eligibility.StatusOK {
		engine, err := projection.NewEngine(projection.Input{
			Profile:                req.Profile,
			Terms:                  req.Terms,
			Economic:               req.Economic,
			Policy:                 h.policy,
			LoanLimit:              validation.Limits.LoanLimit,
			AccruedInterest:        req.AccruedInterest,
			PensionIncome:          req.PensionIncome,
			InterestPayment:        req.InterestPayment,
			InterestPaymentPeriods: req.InterestPaymentPeriods,
			InterestPaymentEnabled: req.InterestPaymentEnabled,
			PeriodsPerYear:         req.PeriodsPerYear,
		})
		if err != nil {
			h.writeCalcError(w, "project", err)
			return
		}
		resp.Projection = engine.ProjectAll()
		resp.Disclosure = disclosure.Markdown(resp.Projection)
	}

	payload, err := json.Marshal(resp)
	if err != nil {
		h.logger.Error("marshal projection response", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if cacheable {
		if err := h.cache.Set(key, string(payload)); err != nil {
			h.logger.Warn("cache projection response", zap.Error(err))
		}
	}
	h.saveQuote(r.Context(), &resp, req.Profile.Postcode)

	w.Header().Set("Content-Type", "application/json")
	w.Write(payload)
}

// Quote returns a previously persisted quote by id.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.quotes == nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	quote, err := h.quotes.Load(r.Context(), id)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}
	h.writeJSON(w, quote)
}

// Healthz answers liveness probes.
func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

// applyDefaults fills the service-configured economic assumptions when the
// request carries none.
func (h *Handler) applyDefaults(input *eligibility.Input) {
	if (input.Economic == assumption.Economic{}) {
		input.Economic = h.economic
	}
}

func (h *Handler) saveQuote(ctx context.Context, resp *projectResponse, postcode string) {
	if h.quotes == nil {
		return
	}
	id, err := uuid.Parse(resp.QuoteID)
	if err != nil {
		return
	}
	quote := &store.Quote{
		ID:         id,
		Postcode:   postcode,
		Validation: resp.Validation,
		Projection: resp.Projection,
		CreatedAt:  time.Now().UTC(),
	}
	if err := h.quotes.Save(ctx, quote); err != nil {
		h.logger.Warn("save quote", zap.Error(err), zap.String("quote_id", resp.QuoteID))
	}
}

// writeCalcError maps the calculation error taxonomy onto HTTP codes:
// bad input data is the caller's fault, a non-converging solve is ours.
func (h *Handler) writeCalcError(w http.ResponseWriter, op string, err error) {
	if calcerr.IsDataError(err) {
		h.logger.Info("rejected input", zap.String("op", op), zap.Error(err))
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if calcerr.IsComputationError(err) {
		h.logger.Error("computation failed", zap.String("op", op), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	h.logger.Error("handler error", zap.String("op", op), zap.Error(err))
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.logger.Error("encode response", zap.Error(err))
	}
}

// requestKey derives a deterministic cache key from the canonical JSON of
// the request. Marshal failure just disables caching for the call.
func requestKey(req projectRequest) (string, bool) {
	raw, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(raw)
	return "project:" + hex.EncodeToString(sum[:]), true
}
