package httpkit

import (
	"net/http"
	"time"

	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/net/middleware"
)

// Stack is the /api/v1 middleware, tuned from cfg: SLOW (2s) marks slow
// requests, TIMEOUT (30s) bounds them and CORS_ORIGINS (any) lists origins
func Stack(cfg config.Conf) []func(http.Handler) http.Handler {
	return middleware.Common(middleware.Stack{
		Slow:    cfg.MayDuration("SLOW", 2*time.Second),
		Timeout: cfg.MayDuration("TIMEOUT", 30*time.Second),
		Origins: cfg.MayCSV("CORS_ORIGINS", nil),
	})
}

// Throttle caps the requests in flight through one module
func Throttle(limit int) func(http.Handler) http.Handler { return middleware.Throttle(limit) }
