// Package server exposes Prometheus metrics and a small read-only HTTP API
// for Fibonacci calculations.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"net/http"
	"strconv"
	"time"

	"github.com/fibseq/fibseq/internal/fibonacci"
	"github.com/fibseq/fibseq/internal/logging"
)

const (
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 5 * time.Second
	requestTimeout    = 30 * time.Second
)

// Server serves /metrics, /healthz and /api/fib.
type Server struct {
	addr     string
	metrics  *Metrics
	logger   logging.Logger
	security SecurityConfig
	factory  fibonacci.CalculatorFactory
	httpSrv  *http.Server
}

// NewServer wires the HTTP server on the given address. The factory provides
// calculators for the /api/fib endpoint.
func NewServer(addr string, factory fibonacci.CalculatorFactory, logger logging.Logger) *Server {
	s := &Server{
		addr:     addr,
		metrics:  NewMetrics(),
		logger:   logger,
		security: DefaultSecurityConfig(),
		factory:  factory,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", s.metricsMiddleware(s.handleMetrics))
	mux.HandleFunc("/healthz", s.metricsMiddleware(s.handleHealth))
	mux.HandleFunc("/api/fib", s.metricsMiddleware(SecurityMiddleware(s.security, s.handleFib)))

	s.httpSrv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return s
}

// Metrics exposes the server's metric set so calculation outcomes can be
// recorded from outside the HTTP path.
func (s *Server) Metrics() *Metrics { return s.metrics }

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("metrics server listening", logging.String("addr", s.addr))
		if err := s.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return <-errCh
	case err := <-errCh:
		return err
	}
}

// metricsMiddleware tracks in-flight and total request counts.
func (s *Server) metricsMiddleware(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.metrics.IncrementActiveRequests()
		defer s.metrics.DecrementActiveRequests()
		s.metrics.CountRequest(r.URL.Path)
		next(w, r)
	}
}

// handleMetrics serves the Prometheus exposition endpoint. GET only.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.logger.Debug("method not allowed on /metrics", logging.String("method", r.Method))
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.metrics.WritePrometheus(w, r)
}

// handleHealth reports liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprintln(w, `{"status":"ok"}`)
}

// fibResponse is the JSON body returned by /api/fib.
type fibResponse struct {
	N          uint64 `json:"n"`
	Algorithm  string `json:"algorithm"`
	Digits     int    `json:"digits"`
	Bits       int    `json:"bits"`
	Value      string `json:"value,omitempty"`
	LastDigits string `json:"last_digits,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// handleFib computes F(n) for GET /api/fib?n=...&algo=...[&digits=K].
// Values beyond 10000 digits are omitted from the response body; use the
// digits parameter for the tail of very large results.
func (s *Server) handleFib(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	n, err := strconv.ParseUint(r.URL.Query().Get("n"), 10, 64)
	if err != nil {
		http.Error(w, "invalid n parameter", http.StatusBadRequest)
		return
	}
	if n > s.security.MaxNValue {
		http.Error(w, fmt.Sprintf("n exceeds maximum of %d", s.security.MaxNValue), http.StatusBadRequest)
		return
	}

	algo := r.URL.Query().Get("algo")
	if algo == "" {
		algo = fibonacci.StrategyFastDoubling.String()
	}

	ctx, cancel := context.WithTimeout(r.Context(), requestTimeout)
	defer cancel()

	start := time.Now()
	resp := fibResponse{N: n, Algorithm: algo}

	if digitsParam := r.URL.Query().Get("digits"); digitsParam != "" {
		k, err := strconv.Atoi(digitsParam)
		if err != nil || k <= 0 {
			http.Error(w, "invalid digits parameter", http.StatusBadRequest)
			return
		}
		modulus := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
		last, err := fibonacci.FastDoublingMod(n, modulus)
		if err != nil {
			s.failCalculation(w, algo, start, err)
			return
		}
		resp.LastDigits = last.String()
		resp.Algorithm = "doubling-mod"
	} else {
		calc, err := s.factory.Get(algo)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, err := calc.Calculate(ctx, nil, 0, n, fibonacci.Options{})
		if err != nil {
			s.failCalculation(w, algo, start, err)
			return
		}
		resp.Digits = len(result.String())
		resp.Bits = result.BitLen()
		if resp.Digits <= maxResponseDigits {
			resp.Value = result.String()
		}
	}

	duration := time.Since(start)
	resp.DurationMS = duration.Milliseconds()
	s.metrics.ObserveCalculation(resp.Algorithm, duration.Seconds(), nil)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		s.logger.Error("encoding response failed", err)
	}
}

// maxResponseDigits bounds the inline value in /api/fib responses.
const maxResponseDigits = 10000

func (s *Server) failCalculation(w http.ResponseWriter, algo string, start time.Time, err error) {
	s.metrics.ObserveCalculation(algo, time.Since(start).Seconds(), err)
	s.logger.Error("calculation failed", err, logging.String("algorithm", algo))
	status := http.StatusInternalServerError
	if errors.Is(err, context.DeadlineExceeded) {
		status = http.StatusGatewayTimeout
	}
	http.Error(w, err.Error(), status)
}
