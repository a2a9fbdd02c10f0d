package http

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mitra9917/FinDash/internal/core"
	applog "github.com/mitra9917/FinDash/internal/log"
	"github.com/mitra9917/FinDash/internal/services"
	"github.com/mitra9917/FinDash/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWithLogger(t, nil)
}

func newTestServerWithLogger(t *testing.T, logger *applog.Logger) *Server {
	t.Helper()
	ledger := services.NewLedgerService(storage.NewMemoryStore(), nil)
	srv := NewServer(":0", ledger, logger, 16, time.Minute)
	t.Cleanup(func() {
		rl := srv.rateLimiter
		rl.stop()
		srv.cacheMgr.Stop()
	})
	return srv
}

func doRequest(srv *Server, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for _, path := range []string{"/healthz", "/readyz"} {
		rec := doRequest(srv, http.MethodGet, path, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}

func TestCreateTransaction(t *testing.T) {
	t.Run("valid transaction returns 201", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doRequest(srv, http.MethodPost, "/api/transactions",
			`{"amount":"12.50","type":"Expense","category":"Food","date":"2026-08-15","paymentMode":"Card","notes":"lunch"}`)
		if rec.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
		}

		var tx core.Transaction
		if err := json.Unmarshal(rec.Body.Bytes(), &tx); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if tx.ID == "" {
			t.Error("response should carry the generated ID")
		}
		if tx.Amount.Cents != 1250 {
			t.Errorf("Amount.Cents = %d, want 1250", tx.Amount.Cents)
		}
	})

	t.Run("validation failure returns 422 with message", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doRequest(srv, http.MethodPost, "/api/transactions",
			`{"amount":"0","type":"Expense","category":"Food","date":"2026-08-15","paymentMode":"Card"}`)
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("status = %d, want 422", rec.Code)
		}

		var resp errorResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Error != "Amount must be greater than 0." {
			t.Errorf("error = %q, want exact validation message", resp.Error)
		}
	})

	t.Run("malformed body returns 400", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doRequest(srv, http.MethodPost, "/api/transactions", `{not json`)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
	})

	t.Run("GET is rejected", func(t *testing.T) {
		srv := newTestServer(t)

		rec := doRequest(srv, http.MethodGet, "/api/transactions", "")
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want 405", rec.Code)
		}
		if rec.Header().Get("Allow") != "POST" {
			t.Errorf("Allow = %q, want POST", rec.Header().Get("Allow"))
		}
	})
}

func TestSetBudget(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodPost, "/api/budgets", `{"category":"Food","amount":"200"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}

	var entry core.BudgetEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &entry); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if entry.Category != "Food" || entry.Limit.Cents != 20000 {
		t.Errorf("entry = %+v, want Food with 20000 cents", entry)
	}

	rec = doRequest(srv, http.MethodPost, "/api/budgets", `{"category":"","amount":"200"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("empty category status = %d, want 422", rec.Code)
	}
}

func TestViewEndpoint(t *testing.T) {
	srv := newTestServer(t)

	seed := []string{
		`{"amount":"1000","type":"Income","category":"Salary","date":"2026-08-01","paymentMode":"UPI"}`,
		`{"amount":"120","type":"Expense","category":"Food","date":"2026-08-10","paymentMode":"Card","notes":"groceries"}`,
	}
	for _, body := range seed {
		if rec := doRequest(srv, http.MethodPost, "/api/transactions", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed transaction failed: %d %s", rec.Code, rec.Body.String())
		}
	}

	rec := doRequest(srv, http.MethodGet, "/api/view?q=groceries", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var view core.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if len(view.Page.Rows) != 1 || view.Page.Rows[0].Category != "Food" {
		t.Fatalf("filtered rows = %+v, want single Food row", view.Page.Rows)
	}
	if view.Summary.Expense.Cents != 12000 {
		t.Errorf("Summary.Expense = %d, want 12000", view.Summary.Expense.Cents)
	}

	rec = doRequest(srv, http.MethodPost, "/api/view", "")
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("POST /api/view status = %d, want 405", rec.Code)
	}
}

func TestViewCacheInvalidation(t *testing.T) {
	srv := newTestServer(t)

	// Prime the cache with the empty view
	rec := doRequest(srv, http.MethodGet, "/api/view", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if srv.viewCache.Size() != 1 {
		t.Fatalf("viewCache.Size() = %d, want 1 after first read", srv.viewCache.Size())
	}

	// A mutation purges the cache
	rec = doRequest(srv, http.MethodPost, "/api/transactions",
		`{"amount":"5","type":"Expense","category":"Food","date":"2026-08-15","paymentMode":"Cash"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("mutation failed: %d %s", rec.Code, rec.Body.String())
	}
	if srv.viewCache.Size() != 0 {
		t.Errorf("viewCache.Size() = %d after mutation, want 0", srv.viewCache.Size())
	}

	// The next read sees the write
	rec = doRequest(srv, http.MethodGet, "/api/view", "")
	var view core.View
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decode view: %v", err)
	}
	if view.Summary.Count != 1 {
		t.Errorf("Summary.Count = %d after mutation, want 1", view.Summary.Count)
	}
}

func TestSecurityHeaders(t *testing.T) {
	srv := newTestServer(t)

	rec := doRequest(srv, http.MethodGet, "/api/view", "")
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}

func TestRequestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := applog.New(applog.Config{
		Component: applog.ComponentHTTP,
		Handler:   slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}),
	})
	srv := newTestServerWithLogger(t, logger)

	req := httptest.NewRequest(http.MethodGet, "/api/view", nil)
	req.Header.Set("X-Request-ID", "req_test123")
	rec := httptest.NewRecorder()
	srv.Server.Handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	out := buf.String()
	if !strings.Contains(out, "HTTP request started") || !strings.Contains(out, "HTTP request completed") {
		t.Fatalf("request lifecycle not logged:\n%s", out)
	}
	// The context logger carries the propagated request ID on every line
	if !strings.Contains(out, applog.FieldRequestID+"=req_test123") {
		t.Errorf("log output missing request ID field:\n%s", out)
	}
	if !strings.Contains(out, applog.FieldStatusCode+"=200") {
		t.Errorf("log output missing response status:\n%s", out)
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	defer rl.stop()

	for i := 0; i < 60; i++ {
		if !rl.allow("10.0.0.1") {
			t.Fatalf("request %d should be allowed", i+1)
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request 61 within a minute should be rejected")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("a different client should not be affected")
	}
}
