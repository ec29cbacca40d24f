// Package modkit assembles the API and scanner out of small modules. Each
// module builds its name, route prefix, middleware and cross-module ports from
// Options, and reaches shared infrastructure through Deps.
package modkit

import (
	"net/http"
	"strings"

	phttp "spoofwatch/internal/platform/net/http"
)

// Option adjusts what Build returns
type Option func(*Built)

// WithName names the module in logs and the ports registry
func WithName(name string) Option {
	return func(b *Built) { b.Name = name }
}

// WithPrefix sets the route prefix, e.g. "/spoof"
func WithPrefix(prefix string) Option {
	return func(b *Built) { b.Prefix = prefix }
}

// WithMiddlewares appends per-module middleware, outermost first
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts hands a module the ports it consumes from other modules;
// the consuming module asserts the concrete type
func WithPorts[T any](p T) Option {
	return func(b *Built) { b.Ports = p }
}

// Built is the resolved module wiring
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order. Name must be set and a non-empty Prefix is
// normalized to one leading slash and no trailing slash; it panics otherwise.
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	if strings.TrimSpace(b.Name) == "" {
		panic("modkit: module name is required")
	}
	if b.Prefix != "" {
		b.Prefix = "/" + strings.Trim(b.Prefix, " /")
		if b.Prefix == "/" {
			panic("modkit: " + b.Name + ": prefix cannot be the root")
		}
	}
	return b
}

// Mount scopes register under Prefix with the module middleware applied
func (b Built) Mount(r phttp.Router, register func(phttp.Router)) {
	r.Route(b.Prefix, func(sub phttp.Router) {
		if len(b.Mw) > 0 {
			sub.Use(b.Mw...)
		}
		register(sub)
	})
}
