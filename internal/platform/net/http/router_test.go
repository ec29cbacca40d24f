package http_test

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"spoofwatch/internal/platform/config"
	phttp "spoofwatch/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func serve(t *testing.T, r phttp.Router, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func TestRouter_ScopedRoutesAndMiddleware(t *testing.T) {
	t.Parallel()

	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/api/v1", func(api phttp.Router) {
		api.Use(func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
				w.Header().Set("X-Scope", "v1")
				next.ServeHTTP(w, req)
			})
		})
		api.Route("/spoof", func(s phttp.Router) {
			s.Get("/resolve", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "resolve") })
			s.Post("/check", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "check") })
		})
	})
	r.Handle("/raw/*", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		_, _ = io.WriteString(w, req.URL.Path)
	}))

	cases := []struct {
		method, target string
		code           int
		body, scope    string
	}{
		{http.MethodGet, "/api/v1/spoof/resolve", http.StatusOK, "resolve", "v1"},
		{http.MethodPost, "/api/v1/spoof/check", http.StatusOK, "check", "v1"},
		{http.MethodPost, "/api/v1/spoof/resolve", http.StatusMethodNotAllowed, "", "v1"},
		{http.MethodGet, "/raw/a/b", http.StatusOK, "/raw/a/b", ""},
	}
	for _, tc := range cases {
		rec := serve(t, r, tc.method, tc.target)
		if rec.Code != tc.code {
			t.Fatalf("%s %s: code %d, want %d", tc.method, tc.target, rec.Code, tc.code)
		}
		if tc.body != "" && rec.Body.String() != tc.body {
			t.Fatalf("%s %s: body %q", tc.method, tc.target, rec.Body.String())
		}
		if got := rec.Header().Get("X-Scope"); got != tc.scope {
			t.Fatalf("%s %s: scope header %q", tc.method, tc.target, got)
		}
	}
}

func TestMountProfiler(t *testing.T) {
	t.Parallel()

	off := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(off, "/debug", false)
	if rec := serve(t, off, http.MethodGet, "/debug/pprof/"); rec.Code != http.StatusNotFound {
		t.Fatalf("disabled profiler answered %d", rec.Code)
	}

	on := phttp.AdaptChi(chi.NewRouter())
	phttp.MountProfiler(on, "debug/", true)
	if rec := serve(t, on, http.MethodGet, "/debug/pprof/cmdline"); rec.Code != http.StatusOK {
		t.Fatalf("cmdline answered %d", rec.Code)
	}
}

func TestServer_DefaultAddr(t *testing.T) {
	t.Parallel()

	srv := phttp.NewServer(config.New().Prefix("SPOOFWATCH_TEST_UNSET_"))
	if srv.Addr() != ":4000" {
		t.Fatalf("addr = %q", srv.Addr())
	}
	if srv.Router().Mux() == nil {
		t.Fatalf("nil mux")
	}
}

func TestServer_RunDrainsOnCancel(t *testing.T) {
	t.Setenv("SPOOFWATCH_TEST_PORT", "127.0.0.1:0")
	srv := phttp.NewServer(config.New().Prefix("SPOOFWATCH_TEST_"))
	srv.Router().Get("/health", func(w http.ResponseWriter, _ *http.Request) { _, _ = io.WriteString(w, "ok") })

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatalf("Run did not return after cancel")
	}
}

func TestServer_RunListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("listen: %v", err)
	}
	defer ln.Close()

	t.Setenv("SPOOFWATCH_BUSY_PORT", ln.Addr().String())
	srv := phttp.NewServer(config.New().Prefix("SPOOFWATCH_BUSY_"))
	if err := srv.Run(context.Background()); err == nil {
		t.Fatalf("expected address in use")
	}
}
