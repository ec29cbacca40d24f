package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/net/http/bind"
)

// Validate runs the shared validator over a DTO built from query params
func Validate(v any) error { return bind.Validate(v) }

// QueryString returns the trimmed query value for key, or def when absent
func QueryString(r *http.Request, key, def string) string {
	v := strings.TrimSpace(r.URL.Query().Get(key))
	if v == "" {
		return def
	}
	return v
}

// QueryInt parses an integer query param, def when absent
func QueryInt(r *http.Request, key string, def int) (int, error) {
	v := QueryString(r, key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be an integer", key), key)
	}
	return n, nil
}

// QueryUint64 parses an unsigned integer query param, def when absent
func QueryUint64(r *http.Request, key string, def uint64) (uint64, error) {
	v := QueryString(r, key, "")
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, perr.WithField(perr.InvalidArgf("%s must be a non-negative integer", key), key)
	}
	return n, nil
}
