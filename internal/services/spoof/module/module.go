// Package module wires the spoofing detector and exposes its ports
package module

import (
	"spoofwatch/internal/core/candidates"
	"spoofwatch/internal/modkit"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/services/spoof/domain"
	spoofhttp "spoofwatch/internal/services/spoof/http"
	"spoofwatch/internal/services/spoof/service"
)

// Ports exposed by the spoof module
type Ports struct {
	Detector domain.DetectorPort
	Runner   domain.RunnerPort
}

// Module implements module.Module
type Module struct {
	deps modkit.Deps
	b    modkit.Built

	svc   *service.Service
	ports Ports
}

// New constructs the spoof module; cross-module ports come in via
// modkit.WithPorts(domain.Ports) and non-zero overrides win over CORE_SPOOF_*
func New(deps modkit.Deps, overrides Options, opts ...modkit.Option) *Module {
	b := modkit.Build(append([]modkit.Option{
		modkit.WithName("spoof"),
		modkit.WithPrefix("/spoof"),
	}, opts...)...)

	ports, ok := b.Ports.(domain.Ports)
	if !ok {
		panic("spoof module: expected WithPorts(spoof/domain.Ports)")
	}
	if ports.Resolver == nil || ports.Sink == nil {
		panic("spoof module: Ports missing Resolver or Sink")
	}

	cfg := FromConfig(deps.Cfg)
	if overrides.PageBlocks != 0 {
		cfg.PageBlocks = overrides.PageBlocks
	}
	if overrides.DryRun {
		cfg.DryRun = true
	}

	svc := service.New(
		ports.Resolver,
		ports.Sink,
		ports.Logs,
		candidates.New(nil),
		service.Config{
			Controller:   cfg.Controller,
			Abbreviation: cfg.Abbreviation,
			Candidates:   cfg.Candidates,
			PageBlocks:   cfg.PageBlocks,
			DryRun:       cfg.DryRun,
		},
	)

	svc.Progress = ports.Progress

	m := &Module{
		deps: deps,
		b:    b,
		svc:  svc,
	}
	m.ports = Ports{
		Detector: svc,
		Runner:   svc,
	}
	return m
}

// Name satisfies module.Module
func (m *Module) Name() string { return m.b.Name }

// Ports satisfies module.Module
func (m *Module) Ports() any { return m.ports }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return m.b.Prefix }

// MountRoutes satisfies module.Module
func (m *Module) MountRoutes(r httpkit.Router) {
	m.b.Mount(r, func(rr httpkit.Router) { spoofhttp.Register(rr, m.svc) })
}

// Config returns the effective detector configuration
func (m *Module) Config() service.Config { return m.svc.Cfg }
