package httpkit

import (
	"net/http"
	"testing"

	"spoofwatch/internal/platform/config"
)

func TestStack(t *testing.T) {
	cfg := config.New().Prefix("HTTPKIT_TEST_")
	if n := len(Stack(cfg)); n != 10 {
		t.Fatalf("default stack has %d middlewares, want 10 with timeout", n)
	}

	t.Setenv("HTTPKIT_TEST_TIMEOUT", "0s")
	t.Setenv("HTTPKIT_TEST_CORS_ORIGINS", "https://ops.example")
	stack := Stack(cfg)
	if len(stack) != 9 {
		t.Fatalf("stack has %d middlewares, want 9 without timeout", len(stack))
	}

	r := newRouter()
	V1(r, stack, func(api Router) {
		Get(api, "/ping", func(*http.Request) (any, error) { return "pong", nil })
	})

	rec := do(r, http.MethodGet, "/api/v1/ping/", "", "Origin", "https://ops.example")
	if rec.Code != http.StatusOK || rec.Header().Get("Access-Control-Allow-Origin") != "https://ops.example" {
		t.Fatalf("allowed origin: %d %v", rec.Code, rec.Header())
	}
	rec = do(r, http.MethodGet, "/api/v1/ping", "", "Origin", "https://evil.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("foreign origin admitted: %q", got)
	}
}
