// This file implements utilities for parsing and validating HTTP request
// data: filter criteria from query strings and JSON bodies for mutations.

package http

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/mitra9917/FinDash/internal/core"
)

// maxBodyBytes caps mutation payload size.
const maxBodyBytes = 64 << 10

// ParseFilterCriteria extracts view selection criteria from query parameters.
// Unknown period and sort values fall back to their defaults; a missing or
// malformed page defaults to 1, with clamping left to pagination.
func ParseFilterCriteria(query url.Values) core.FilterCriteria {
	crit := core.FilterCriteria{
		Query:       sanitizeInput(query.Get("q")),
		Period:      core.PeriodAll,
		CustomStart: strings.TrimSpace(query.Get("customStart")),
		CustomEnd:   strings.TrimSpace(query.Get("customEnd")),
		SortMode:    core.SortMode(strings.TrimSpace(query.Get("sort"))),
		Page:        1,
	}

	switch p := core.Period(strings.TrimSpace(query.Get("period"))); p {
	case core.PeriodWeekly, core.PeriodMonthly, core.PeriodCustom:
		crit.Period = p
	}

	if v := strings.TrimSpace(query.Get("page")); v != "" {
		if page, err := strconv.Atoi(v); err == nil {
			crit.Page = page
		}
	}

	return crit
}

// criteriaCacheKey builds a stable cache key covering every criteria field.
func criteriaCacheKey(crit core.FilterCriteria) string {
	return fmt.Sprintf("%s|%s|%s|%s|%s|%d",
		strings.ToLower(crit.Query), crit.Period, crit.CustomStart, crit.CustomEnd, crit.SortMode, crit.Page)
}

// transactionRequest is the JSON body of POST /api/transactions. All fields
// arrive as strings and go through core validation untouched.
type transactionRequest struct {
	Amount      string `json:"amount"`
	Type        string `json:"type"`
	Category    string `json:"category"`
	Date        string `json:"date"`
	PaymentMode string `json:"paymentMode"`
	Notes       string `json:"notes"`
}

// budgetRequest is the JSON body of POST /api/budgets.
type budgetRequest struct {
	Category string `json:"category"`
	Amount   string `json:"amount"`
}

// decodeJSONBody reads and decodes a size-capped JSON body into dst.
func decodeJSONBody(r *http.Request, dst any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("decode body: %w", err)
	}
	return nil
}

// sanitizeInput removes potentially dangerous characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	// Remove control characters except tab, newline, carriage return
	result := strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1 // remove character
		}
		return r
	}, s)
	return result
}
