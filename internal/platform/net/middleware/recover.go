package middleware

import (
	"errors"
	"net/http"
	"runtime/debug"

	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/logger"
	phttp "spoofwatch/internal/platform/net/http"
)

// Recover turns a handler panic into the 500 envelope and logs its stack
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if err, ok := v.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(v)
			}
			logger.C(r.Context()).Error().
				Interface("panic", v).
				Str("stack", string(debug.Stack())).
				Msg("panic recovered")
			phttp.Fail(w, r, perr.PanicErrf("panic recovered"))
		}()
		next.ServeHTTP(w, r)
	})
}
