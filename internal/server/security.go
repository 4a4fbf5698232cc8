package server

import (
	"net/http"
	"strings"
)

// SecurityConfig controls the hardening middleware applied to every route.
type SecurityConfig struct {
	// EnableCORS toggles CORS header handling.
	EnableCORS bool
	// AllowedOrigins lists origins allowed by CORS; "*" matches any.
	AllowedOrigins []string
	// AllowedMethods lists HTTP methods advertised in CORS responses.
	AllowedMethods []string
	// MaxNValue caps the index accepted by the calculation endpoint, keeping
	// a single request from pinning a core indefinitely.
	MaxNValue uint64
}

// DefaultSecurityConfig returns the hardening defaults: permissive CORS for
// read-only endpoints and a 10^9 index cap.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		MaxNValue:      1_000_000_000,
	}
}

// SecurityMiddleware sets standard security headers, applies CORS policy and
// short-circuits OPTIONS preflight requests.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin := matchOrigin(config.AllowedOrigins, r.Header.Get("Origin")); origin != "" {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next(w, r)
	}
}

// matchOrigin returns the CORS origin value to advertise, or "" when the
// request origin is not allowed. A wildcard entry matches any request,
// including those without an Origin header.
func matchOrigin(allowed []string, origin string) string {
	for _, a := range allowed {
		if a == "*" {
			return "*"
		}
		if origin != "" && a == origin {
			return origin
		}
	}
	return ""
}
