// Package module wires the findings sink and exposes its ports
package module

import (
	"context"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/modkit/repokit"
	"spoofwatch/internal/services/findings/domain"
	findingshttp "spoofwatch/internal/services/findings/http"
	"spoofwatch/internal/services/findings/repo"
	"spoofwatch/internal/services/findings/service"
)

// Ports exposed by the findings module
type Ports struct {
	Writer domain.WriterPort
	Query  domain.QueryPort
}

// Module implements module.Module
type Module struct {
	deps  modkit.Deps
	b     modkit.Built
	svc   *service.Service
	ports Ports
}

// New constructs the findings module, picking storage from CORE_FINDINGS_SINK
func New(deps modkit.Deps) *Module {
	opts := FromConfig(deps.Cfg)

	var storage repo.Storage
	switch opts.Sink {
	case service.SinkPG:
		storage = repokit.MustBind(repo.NewPG(), deps.PG)
	case service.SinkCH:
		if deps.CH == nil {
			panic("findings module: sink ch requires deps.CH")
		}
		storage = repo.NewCH(deps.CH)
	}

	svc := service.New(storage, service.Config{
		Sink:      opts.Sink,
		HardLimit: opts.HardLimit,
	})

	m := &Module{
		deps: deps,
		b:    modkit.Build(modkit.WithName("findings"), modkit.WithPrefix("/findings")),
		svc:  svc,
	}
	m.ports = Ports{
		Writer: svc,
		Query:  svc,
	}
	return m
}

// EnsureSchema creates the sink table when one is configured
func (m *Module) EnsureSchema(ctx context.Context) error { return m.svc.EnsureSchema(ctx) }

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// Prefix is where MountRoutes scopes the handlers
func (m *Module) Prefix() string { return m.b.Prefix }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { findingshttp.Register(rr, m.ports.Query) })
}
