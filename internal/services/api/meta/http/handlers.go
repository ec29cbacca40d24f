// Package http serves /meta: liveness, readiness of the node and stores,
// build info and the detector settings in effect
package http

import (
	"context"
	"net/http"
	"time"

	"spoofwatch/internal/core/candidates"
	"spoofwatch/internal/core/version"
	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/platform/store"

	"golang.org/x/sync/errgroup"
)

// readyTimeout bounds the pings behind /meta/ready
const readyTimeout = 2 * time.Second

// DetectorInfo is the effective detector configuration
type DetectorInfo struct {
	Registry   string            `json:"registry"   example:"0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e"`
	Controller string            `json:"controller" example:"0x283Af0B28c62C092C9727F1Ee09c02CA627EB7F5"`
	AlertID    string            `json:"alert_id"   example:"SW-ENS-SPOOFING"`
	Workers    int               `json:"workers"    example:"4"`
	Thresholds candidates.Config `json:"thresholds"`
	Sink       string            `json:"sink"       example:"log"`
}

// Deps feed the handlers. A nil backend is reported as skipped, one without
// a Ping as unknown.
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	Chain       any
	PG          any
	CH          any
	Detector    DetectorInfo
}

type handlers struct{ deps Deps }

// Register mounts the meta routes
func Register(r httpkit.Router, d Deps) {
	h := handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/detector", h.detector)
}

// HealthResponse is the liveness payload
type HealthResponse struct {
	OK      bool   `json:"ok"       example:"true"`
	Service string `json:"service"  example:"spoofwatch-api"`
	Started string `json:"started"  example:"2026-10-03T13:00:00Z"`
	Now     string `json:"now"      example:"2026-10-03T13:05:00Z"`
}

// ReadyCheck is one backend's answer: ok, fail, skipped or unknown
type ReadyCheck struct {
	Name   string `json:"name"            example:"chain"`
	Status string `json:"status"          example:"ok"`
	Error  string `json:"error,omitempty" example:"chain: node unavailable"`
}

// ReadyResponse is fail when any backend failed, degraded when one could not
// be asked, ok otherwise
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"`
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-10-03T13:05:00Z"`
}

// ServiceResponse is the service name and uptime in seconds
type ServiceResponse struct {
	Name    string `json:"name"    example:"spoofwatch-api"`
	Started string `json:"started" example:"2026-10-03T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// DetectorResponse pairs the detector settings with the build
type DetectorResponse struct {
	Detector DetectorInfo      `json:"detector"`
	Build    version.BuildInfo `json:"build"`
}

func stamp(t time.Time) string { return t.UTC().Format(time.RFC3339) }

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h handlers) health(*http.Request) (any, error) {
	return HealthResponse{OK: true, Service: h.deps.ServiceName, Started: stamp(h.deps.StartedAt), Now: stamp(time.Now())}, nil
}

// @Summary Readiness of the node and the configured stores
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	backends := []struct {
		name string
		dep  any
	}{
		{"chain", h.deps.Chain},
		{"pg", h.deps.PG},
		{"ch", h.deps.CH},
	}
	checks := make([]ReadyCheck, len(backends))
	var g errgroup.Group
	for i, b := range backends {
		g.Go(func() error {
			checks[i] = check(ctx, b.name, b.dep)
			return nil
		})
	}
	_ = g.Wait()

	return ReadyResponse{Status: overall(checks), Checks: checks, Now: stamp(time.Now())}, nil
}

func check(ctx context.Context, name string, dep any) ReadyCheck {
	switch p := dep.(type) {
	case nil:
		return ReadyCheck{Name: name, Status: "skipped"}
	case store.Pinger:
		if err := p.Ping(ctx); err != nil {
			return ReadyCheck{Name: name, Status: "fail", Error: err.Error()}
		}
		return ReadyCheck{Name: name, Status: "ok"}
	default:
		return ReadyCheck{Name: name, Status: "unknown"}
	}
}

func overall(checks []ReadyCheck) string {
	status := "ok"
	for _, c := range checks {
		switch c.Status {
		case "fail":
			return "fail"
		case "unknown":
			status = "degraded"
		}
	}
	return status
}

// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h handlers) version(*http.Request) (any, error) { return version.Info(), nil }

// @Summary Service name and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: stamp(h.deps.StartedAt),
		Uptime:  int64(time.Since(h.deps.StartedAt) / time.Second),
	}, nil
}

// @Summary Effective detector configuration
// @Tags Meta
// @Produce json
// @Success 200 {object} DetectorResponse "ok"
// @Router /meta/detector [get]
func (h handlers) detector(*http.Request) (any, error) {
	return DetectorResponse{Detector: h.deps.Detector, Build: version.Info()}, nil
}
