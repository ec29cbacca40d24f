// Package module wires meta endpoints into the API using a tiny module
package module

import (
	"time"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/modkit/module"

	metahttp "spoofwatch/internal/services/api/meta/http"
)

// ServiceName is reported by /meta/health and /meta/service
const ServiceName = "spoofwatch-api"

// Module serves /meta
type Module struct {
	b    modkit.Built
	deps metahttp.Deps
}

// New constructs a meta module; det is reported verbatim on /meta/detector
func New(deps modkit.Deps, det metahttp.DetectorInfo, opts ...modkit.Option) module.Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("meta"),
		modkit.WithPrefix("/meta"),
	}, opts...)...)

	return &Module{
		b: b,
		deps: metahttp.Deps{
			ServiceName: ServiceName,
			StartedAt:   time.Now(),
			Detector:    det,
			PG:          deps.PG,
			CH:          deps.CH,
			Chain:       deps.Chain,
		},
	}
}

// MountRoutes registers the meta handlers under the prefix
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { metahttp.Register(rr, m.deps) })
}

// Name is "meta" unless overridden
func (m *Module) Name() string { return m.b.Name }

// Ports is nil; nothing consumes meta
func (m *Module) Ports() any { return nil }
