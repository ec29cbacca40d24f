// Package swaggerkit serves the swagger UI and the OpenAPI document registered
// with swag under the "api" instance, patched with the shared error envelope
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	phttp "spoofwatch/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
	"github.com/swaggo/swag/v2"
)

// Instance is the swag registry name swag init writes with --instanceName
const Instance = "api"

// skeleton is served when no generated docs package was linked in
const skeleton = `{"openapi":"3.0.3","info":{"title":"Spoofwatch API","version":"0.0.0"},"paths":{}}`

// Mount serves /api/docs when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", docJSON(Instance, "/api/v1"))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName(Instance),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func docJSON(instance, base string) phttp.Handler {
	return func(w http.ResponseWriter, _ *http.Request) {
		raw, err := swag.ReadDoc(instance)
		if err != nil {
			raw = skeleton
		}
		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			http.Error(w, "swagger document is not JSON", http.StatusInternalServerError)
			return
		}
		patch(doc, base)

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(doc)
	}
}

// patch lifts the document to OAS 3.0.3 (the UI cannot render 3.1), sets the
// server base and gives every operation the envelope's 400 and 500 bodies
func patch(doc map[string]any, base string) {
	v, _ := doc["openapi"].(string)
	if _, v2 := doc["swagger"]; v2 || v == "" || strings.HasPrefix(v, "3.1") {
		delete(doc, "swagger")
		doc["openapi"] = "3.0.3"
	}
	if _, ok := doc["servers"]; !ok {
		doc["servers"] = []any{map[string]any{"url": base}}
	}

	schemas := child(child(doc, "components"), "schemas")
	if _, ok := schemas["Envelope"]; !ok {
		schemas["Envelope"] = map[string]any{
			"type": "object",
			"properties": map[string]any{
				"status_code": map[string]any{"type": "integer"},
				"status":      map[string]any{"type": "string"},
				"code":        map[string]any{"type": "integer"},
				"error":       map[string]any{"type": "string"},
				"field":       map[string]any{"type": "string"},
				"request_id":  map[string]any{"type": "string"},
				"data":        map[string]any{},
			},
			"required": []any{"status_code", "status"},
		}
	}

	defaults := map[string]map[string]any{
		"400": errorBody("Bad Request", map[string]any{
			"status_code": 400, "status": "Bad Request", "code": 8,
			"error": "account must be a 0x-prefixed 20-byte hex address", "field": "account",
		}),
		"500": errorBody("Internal Server Error", map[string]any{
			"status_code": 500, "status": "Internal Server Error", "code": 1, "error": "panic recovered",
		}),
	}
	paths, _ := doc["paths"].(map[string]any)
	for _, item := range paths {
		ops, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resps := child(o, "responses")
			for status, body := range defaults {
				if _, ok := resps[status]; !ok {
					resps[status] = body
				}
			}
		}
	}
}

func errorBody(desc string, example map[string]any) map[string]any {
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/Envelope"},
				"example": example,
			},
		},
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	c, ok := m[key].(map[string]any)
	if !ok {
		c = map[string]any{}
		m[key] = c
	}
	return c
}
