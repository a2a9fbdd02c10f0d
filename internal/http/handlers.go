package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/mitra9917/FinDash/internal/core"
	applog "github.com/mitra9917/FinDash/internal/log"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// handleView serves the derived view for the requested filter criteria.
// Results are cached per criteria; any mutation purges the cache.
func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", "GET")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	crit := ParseFilterCriteria(r.URL.Query())
	key := criteriaCacheKey(crit)

	if view, found := s.viewCache.Get(key); found {
		applog.FromContext(r.Context()).DebugContext(r.Context(), "View cache hit", "key", key)
		writeJSON(w, http.StatusOK, view)
		return
	}

	view := s.ledger.View(r.Context(), crit)
	s.viewCache.Set(key, view)
	writeJSON(w, http.StatusOK, view)
}

// handleCreateTransaction appends a validated transaction to the ledger.
func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))

	var req transactionRequest
	if err := decodeJSONBody(r, &req); err != nil {
		sl.LogError(r.Context(), "Parse body error", err, applog.ComponentHTTP, applog.OpParse,
			applog.NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", "", ""))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tx, err := s.ledger.RecordTransaction(r.Context(), core.TransactionInput{
		Amount:      req.Amount,
		Type:        req.Type,
		Category:    sanitizeInput(req.Category),
		Date:        req.Date,
		PaymentMode: req.PaymentMode,
		Notes:       sanitizeInput(req.Notes),
	})
	if err != nil {
		if core.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		sl.LogError(r.Context(), "Record transaction error", err, applog.ComponentLedger, applog.OpRecord, applog.NewFields())
		writeError(w, http.StatusInternalServerError, "failed to record transaction")
		return
	}

	sl.LogTransactionRecorded(r.Context(), tx.ID, tx.Amount.Cents, string(tx.Type), tx.Category)
	s.viewCache.Purge()
	writeJSON(w, http.StatusCreated, tx)
}

// handleSetBudget upserts the monthly limit for a category.
func (s *Server) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", "POST")
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	sl := applog.NewStructuredLogger(applog.FromContext(r.Context()))

	var req budgetRequest
	if err := decodeJSONBody(r, &req); err != nil {
		sl.LogError(r.Context(), "Parse body error", err, applog.ComponentHTTP, applog.OpParse,
			applog.NewFields().WithHTTPRequest(r.Method, r.URL.Path, "", "", ""))
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := s.ledger.SetBudget(r.Context(), core.BudgetInput{
		Category: sanitizeInput(req.Category),
		Amount:   req.Amount,
	})
	if err != nil {
		if core.IsValidationError(err) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		sl.LogError(r.Context(), "Set budget error", err, applog.ComponentLedger, applog.OpUpsert, applog.NewFields())
		writeError(w, http.StatusInternalServerError, "failed to set budget")
		return
	}

	applog.FromContext(r.Context()).InfoContext(r.Context(), "Budget limit set",
		applog.FieldCategory, entry.Category,
		applog.FieldAmountCents, entry.Limit.Cents)
	s.viewCache.Purge()
	writeJSON(w, http.StatusOK, entry)
}
