package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestHandleFib(t *testing.T) {
	s := newTestServer()

	t.Run("small value returned inline", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib?n=30", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp fibResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Value != "832040" {
			t.Errorf("Value = %q, want 832040", resp.Value)
		}
		if resp.Algorithm != "doubling" {
			t.Errorf("Algorithm = %q, want default doubling", resp.Algorithm)
		}
	})

	t.Run("explicit algorithm", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib?n=10&algo=iterative", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		var resp fibResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.Value != "55" {
			t.Errorf("Value = %q, want 55", resp.Value)
		}
	})

	t.Run("last digits mode", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib?n=1000000&digits=6", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var resp fibResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("invalid JSON: %v", err)
		}
		if resp.LastDigits == "" {
			t.Error("expected last_digits in response")
		}
		if resp.Value != "" {
			t.Error("full value should be absent in digits mode")
		}
	})

	t.Run("missing n", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("n above cap", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib?n=2000000000", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
		if !strings.Contains(rec.Body.String(), "exceeds maximum") {
			t.Errorf("body = %q, want cap message", rec.Body.String())
		}
	})

	t.Run("unknown algorithm", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib?n=10&algo=bogus", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("invalid digits", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/fib?n=10&digits=-1", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusBadRequest)
		}
	})

	t.Run("POST not allowed", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/api/fib?n=10", http.NoBody)
		rec := httptest.NewRecorder()
		s.handleFib(rec, req)

		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("status = %d, want %d", rec.Code, http.StatusMethodNotAllowed)
		}
	})
}
