package middleware

import (
	"net/http"

	"spoofwatch/internal/platform/logger"
	pnet "spoofwatch/internal/platform/net"
	phttp "spoofwatch/internal/platform/net/http"
)

// AuthPort resolves the calling API client from a request
type AuthPort interface {
	Parse(r *http.Request) (clientID string, err error)
}

// Auth answers requests p refuses with p's error envelope. Admitted requests
// carry the client id on both the request and logger contexts. A nil p admits
// everything.
func Auth(p AuthPort) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if p == nil {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cid, err := p.Parse(r)
			if err != nil {
				phttp.Fail(w, r, err)
				return
			}
			ctx := pnet.WithClient(r.Context(), cid)
			ctx = logger.WithRequest(ctx, pnet.RequestID(ctx), cid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
