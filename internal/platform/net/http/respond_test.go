package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "spoofwatch/internal/platform/errors"
	phttp "spoofwatch/internal/platform/net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

func call(t *testing.T, h phttp.Handler, method, body string) (*httptest.ResponseRecorder, phttp.Envelope) {
	t.Helper()
	req := httptest.NewRequest(method, "/x", bytes.NewBufferString(body))
	req = req.WithContext(context.WithValue(req.Context(), chimw.RequestIDKey, "rid-1"))
	rec := httptest.NewRecorder()
	h(rec, req)

	var env phttp.Envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("envelope %q: %v", rec.Body.String(), err)
	}
	return rec, env
}

func TestHandle(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		resp   phttp.Response
		status int
		code   perr.ErrorCode
	}{
		{"ok", phttp.OK([]string{"vitalik"}), http.StatusOK, 0},
		{"zero status", phttp.Response{Body: "hi"}, http.StatusOK, 0},
		{"accepted", phttp.Response{Status: http.StatusAccepted, Body: "queued"}, http.StatusAccepted, 0},
		{"not found", phttp.Error(perr.New(perr.ErrorCodeNotFound, "no resolver")), http.StatusNotFound, perr.ErrorCodeNotFound},
		{"unavailable", phttp.Error(perr.Unavailablef("node down")), http.StatusServiceUnavailable, perr.ErrorCodeUnavailable},
		{"plain error", phttp.Error(errors.New("boom")), http.StatusInternalServerError, perr.ErrorCodeUnknown},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := call(t, phttp.Handle(func(*http.Request) phttp.Response { return tc.resp }), http.MethodGet, "")
			if rec.Code != tc.status || env.StatusCode != tc.status {
				t.Fatalf("status = %d/%d, want %d", rec.Code, env.StatusCode, tc.status)
			}
			if ct := rec.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
				t.Fatalf("content-type = %q", ct)
			}
			if env.RequestID != "rid-1" || env.Code != tc.code {
				t.Fatalf("envelope = %+v", env)
			}
			if isErr := tc.status >= 400; isErr != (env.Error != "") || isErr != (env.Data == nil) {
				t.Fatalf("error/data mismatch: %+v", env)
			}
		})
	}
}

func TestHandle_CopiesHeaders(t *testing.T) {
	t.Parallel()

	rec, _ := call(t, phttp.Handle(func(*http.Request) phttp.Response {
		resp := phttp.OK("x")
		resp.Header = http.Header{"Retry-After": {"3"}}
		return resp
	}), http.MethodGet, "")
	if rec.Header().Get("Retry-After") != "3" {
		t.Fatalf("headers = %v", rec.Header())
	}
}

type lookupIn struct {
	Name  string `json:"name" validate:"required,max=8"`
	Block uint64 `json:"block" validate:"omitempty,min=1"`
}

func TestJSONHandler(t *testing.T) {
	t.Parallel()

	h := phttp.JSONHandler(func(_ *http.Request, in lookupIn) (any, error) {
		if in.Name == "taken" {
			return nil, perr.New(perr.ErrorCodeConflict, "taken")
		}
		return map[string]any{"name": in.Name, "block": in.Block}, nil
	})

	rec, env := call(t, h, http.MethodPost, `{"name":"vita1ik","block":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("ok: %d %+v", rec.Code, env)
	}
	if m, _ := env.Data.(map[string]any); m["name"] != "vita1ik" || m["block"] != float64(7) {
		t.Fatalf("data = %#v", env.Data)
	}

	rec, env = call(t, h, http.MethodPost, `{"name":"averyverylongname"}`)
	if rec.Code != http.StatusBadRequest || env.Field != "name" || env.Error != "name must be at most 8" {
		t.Fatalf("validation: %d %+v", rec.Code, env)
	}

	if rec, _ = call(t, h, http.MethodPost, `{"name":"taken"}`); rec.Code != http.StatusConflict {
		t.Fatalf("handler error: %d", rec.Code)
	}
}

func TestFail(t *testing.T) {
	t.Parallel()

	rec, env := call(t, func(w http.ResponseWriter, r *http.Request) {
		phttp.Fail(w, r, perr.Unauthorizedf("unknown api key"))
	}, http.MethodGet, "")
	if rec.Code != http.StatusUnauthorized || env.Error != "unknown api key" || env.RequestID != "rid-1" {
		t.Fatalf("fail: %d %+v", rec.Code, env)
	}
}
