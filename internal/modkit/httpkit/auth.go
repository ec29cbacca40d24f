package httpkit

import (
	"crypto/subtle"
	"net/http"
	"strings"

	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/net/middleware"
)

// KeyAuth gates routes behind "Authorization: Bearer <key>" for static
// client:key pairs. The admitted client lands on the request context.
func KeyAuth(pairs []string) (func(http.Handler) http.Handler, error) {
	keys, err := parseKeys(pairs)
	if err != nil {
		return nil, err
	}
	return middleware.Auth(keys), nil
}

type apiKey struct {
	client string
	key    []byte
}

// apiKeys is a middleware.AuthPort over a fixed key set
type apiKeys []apiKey

func parseKeys(pairs []string) (apiKeys, error) {
	var out apiKeys
	for _, p := range pairs {
		client, key, ok := strings.Cut(p, ":")
		client, key = strings.TrimSpace(client), strings.TrimSpace(key)
		if !ok || client == "" || key == "" {
			return nil, perr.Configf("httpkit: api key entry %q is not client:key", p)
		}
		out = append(out, apiKey{client: client, key: []byte(key)})
	}
	if len(out) == 0 {
		return nil, perr.Configf("httpkit: no api keys")
	}
	return out, nil
}

// Parse compares the token with every key, matched or not
func (ks apiKeys) Parse(r *http.Request) (string, error) {
	tok, err := bearer(r)
	if err != nil {
		return "", err
	}
	client := ""
	for _, k := range ks {
		if subtle.ConstantTimeCompare([]byte(tok), k.key) == 1 {
			client = k.client
		}
	}
	if client == "" {
		return "", perr.Unauthorizedf("unknown api key")
	}
	return client, nil
}

// bearer reads "Authorization: Bearer <token>", scheme case-insensitive
func bearer(r *http.Request) (string, error) {
	scheme, tok, _ := strings.Cut(strings.TrimSpace(r.Header.Get("Authorization")), " ")
	tok = strings.TrimSpace(tok)
	if !strings.EqualFold(scheme, "bearer") || tok == "" {
		return "", perr.Unauthorizedf("missing bearer token")
	}
	return tok, nil
}
