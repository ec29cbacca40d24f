// Package middleware is the http stack in front of every /api/v1 route
package middleware

import (
	"compress/flate"
	"net/http"
	"time"

	"spoofwatch/internal/platform/logger"
	pnet "spoofwatch/internal/platform/net"

	chimw "github.com/go-chi/chi/v5/middleware"
	chicors "github.com/go-chi/cors"
)

// Stack configures Common
type Stack struct {
	// Slow upgrades the access line to warn, 0 never does
	Slow time.Duration

	// Timeout cancels the request context, 0 leaves it alone
	Timeout time.Duration

	// Origins allowed by CORS, empty allows any
	Origins []string
}

// Common returns the /api/v1 middleware, outermost first
func Common(s Stack) []func(http.Handler) http.Handler {
	mw := []func(http.Handler) http.Handler{
		chimw.RequestID,
		tagRequest,
		chimw.RealIP,
		Recover,
		chimw.NoCache,
		AccessLog(s.Slow),
		CORS(s.Origins),
		chimw.Compress(flate.BestSpeed),
		chimw.StripSlashes,
	}
	if s.Timeout > 0 {
		mw = append(mw, chimw.Timeout(s.Timeout))
	}
	return mw
}

// tagRequest puts the request id on the response and on the request logger
func tagRequest(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := pnet.RequestID(r.Context())
		if id == "" {
			next.ServeHTTP(w, r)
			return
		}
		w.Header().Set(chimw.RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(logger.WithRequest(r.Context(), id, "")))
	})
}

// CORS admits the scan endpoints' verbs from origins
func CORS(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return chicors.Handler(chicors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", chimw.RequestIDHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	})
}

// Throttle caps in-flight requests, the overflow gets 429
func Throttle(limit int) func(http.Handler) http.Handler { return chimw.Throttle(limit) }
