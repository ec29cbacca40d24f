package http

import (
	"context"
	stdhttp "net/http"
	"net/http/httptest"
	"strings"
	"testing"

	phttp "spoofwatch/internal/platform/net/http"
	"spoofwatch/internal/services/findings/domain"

	"github.com/go-chi/chi/v5"
)

type fakeQuery struct {
	lastLimit int
	out       []domain.Finding
}

func (f *fakeQuery) Recent(_ context.Context, limit int) ([]domain.Finding, error) {
	f.lastLimit = limit
	return f.out, nil
}

func serve(t *testing.T, q domain.QueryPort, target string) *httptest.ResponseRecorder {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	Register(r, q)
	rr := httptest.NewRecorder()
	r.Mux().ServeHTTP(rr, httptest.NewRequest(stdhttp.MethodGet, target, nil))
	return rr
}

func TestRecent(t *testing.T) {
	cases := []struct {
		name      string
		target    string
		wantCode  int
		wantLimit int
	}{
		{"default limit", "/recent", stdhttp.StatusOK, 20},
		{"explicit limit", "/recent?limit=5", stdhttp.StatusOK, 5},
		{"not a number", "/recent?limit=x", stdhttp.StatusUnprocessableEntity, 0},
		{"below min", "/recent?limit=0", stdhttp.StatusBadRequest, 0},
		{"above max", "/recent?limit=5000", stdhttp.StatusBadRequest, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			q := &fakeQuery{out: []domain.Finding{{ID: "f1", AlertID: "SW-ENS-SPOOFING"}}}
			rr := serve(t, q, tc.target)
			if rr.Code != tc.wantCode {
				t.Fatalf("code = %d body=%s", rr.Code, rr.Body.String())
			}
			if q.lastLimit != tc.wantLimit {
				t.Fatalf("limit = %d, want %d", q.lastLimit, tc.wantLimit)
			}
			if tc.wantCode == stdhttp.StatusOK && !strings.Contains(rr.Body.String(), `"alertId":"SW-ENS-SPOOFING"`) {
				t.Fatalf("body = %s", rr.Body.String())
			}
		})
	}
}
