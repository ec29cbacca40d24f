// Package module implements the resolver module
package module

import (
	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/services/resolver/domain"
	"spoofwatch/internal/services/resolver/service"
)

// Ports exposed by the resolver module
type Ports struct {
	Resolver domain.ResolverPort
}

// Module implements module.Module
type Module struct {
	deps  modkit.Deps
	ports Ports
}

// New constructs a new resolver module over deps.Chain
func New(deps modkit.Deps) *Module {
	if deps.Chain == nil {
		panic("resolver module: deps.Chain is required")
	}
	opts := FromConfig(deps.Cfg)

	svc := service.New(deps.Chain, service.Config{Registry: opts.Registry})

	m := &Module{deps: deps}
	m.ports = Ports{Resolver: svc}
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return "resolver" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
