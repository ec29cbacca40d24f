// Package http provides http transport for the spoofing detector
package http

import (
	"context"
	stdhttp "net/http"

	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/services/spoof/domain"
)

// API is what the handlers need from the spoof service
type API interface {
	Candidates(ctx context.Context, in domain.CandidatesInput) (domain.CandidatesOutput, error)
	Check(ctx context.Context, in domain.CheckInput) ([]domain.Finding, error)
	Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveOutput, error)
}

// Register mounts spoof endpoints on the given router
func Register(r httpkit.Router, api API) {
	h := &handlers{api: api}
	httpkit.PostJSON[domain.CandidatesInput](r, "/candidates", h.candidates)
	httpkit.PostJSON[domain.CheckInput](r, "/check", h.check)
	httpkit.Get(r, "/resolve", h.resolve)
}

type handlers struct{ api API }

// @Summary Lookalike originals a name could be impersonating
// @Tags Spoof
// @Accept json
// @Produce json
// @Param payload body domain.CandidatesInput true "Name"
// @Success 200 {object} domain.CandidatesOutput "ok"
// @Router /spoof/candidates [post]
func (h *handlers) candidates(r *stdhttp.Request, in domain.CandidatesInput) (any, error) {
	return h.api.Candidates(r.Context(), in)
}

// @Summary Findings a registration would raise
// @Tags Spoof
// @Accept json
// @Produce json
// @Param payload body domain.CheckInput true "Hypothetical registration"
// @Success 200 {array} domain.Finding "ok"
// @Router /spoof/check [post]
func (h *handlers) check(r *stdhttp.Request, in domain.CheckInput) (any, error) {
	return h.api.Check(r.Context(), in)
}

// @Summary Account an ENS name resolved to at a block
// @Tags Spoof
// @Produce json
// @Param name query string true "ENS name, .eth optional"
// @Param block query int false "block number, head when omitted"
// @Success 200 {object} domain.ResolveOutput "ok"
// @Router /spoof/resolve [get]
func (h *handlers) resolve(r *stdhttp.Request) (any, error) {
	block, err := httpkit.QueryUint64(r, "block", 0)
	if err != nil {
		return nil, err
	}
	in := domain.ResolveInput{Name: httpkit.QueryString(r, "name", ""), Block: block}
	if err := httpkit.Validate(in); err != nil {
		return nil, err
	}
	return h.api.Resolve(r.Context(), in)
}
