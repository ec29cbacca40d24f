// Package module wires the scan progress ledger
package module

import (
	"context"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/modkit/repokit"
	"spoofwatch/internal/services/progress/domain"
	"spoofwatch/internal/services/progress/repo"
)

// Ports exposed by the progress module
type Ports struct {
	Ledger domain.LedgerPort
}

// Module implements module.Module
type Module struct {
	deps  modkit.Deps
	store repo.Storage
	ports Ports
}

// New constructs the progress module over deps.PG, which must be set
func New(deps modkit.Deps) *Module {
	st := repokit.MustBind(repo.NewPG(), deps.PG)
	return &Module{
		deps:  deps,
		store: st,
		ports: Ports{Ledger: st},
	}
}

// EnsureSchema creates the scan_pages table
func (m *Module) EnsureSchema(ctx context.Context) error { return m.store.EnsureSchema(ctx) }

// Name satisfies module.Module
func (m *Module) Name() string { return "progress" }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(_ httpkit.Router) {}
