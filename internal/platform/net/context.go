// Package net holds what the http layer learns about a caller: the id chi
// assigned the request and the API client the auth middleware admitted
package net

import (
	"context"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type clientKey struct{}

// WithClient records the admitted API client on ctx
func WithClient(ctx context.Context, clientID string) context.Context {
	if clientID == "" {
		return ctx
	}
	return context.WithValue(ctx, clientKey{}, clientID)
}

// RequestID is the id chi's RequestID middleware put on ctx, or ""
func RequestID(ctx context.Context) string { return chimw.GetReqID(ctx) }

// ClientID is the client WithClient recorded, or ""
func ClientID(ctx context.Context) string {
	id, _ := ctx.Value(clientKey{}).(string)
	return id
}
