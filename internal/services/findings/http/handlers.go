// Package http provides http transport for findings
package http

import (
	stdhttp "net/http"

	"spoofwatch/internal/modkit/httpkit"
	"spoofwatch/internal/services/findings/domain"
)

// Register mounts findings endpoints on the given router
func Register(r httpkit.Router, q domain.QueryPort) {
	h := &handlers{q: q}
	httpkit.Get(r, "/recent", h.recent)
}

type handlers struct{ q domain.QueryPort }

// swagger:route GET /findings/recent Findings findingsRecent
// @Summary Latest dispatched findings
// @Tags Findings
// @Produce json
// @Param limit query int false "max rows (clamped to the sink hard limit)"
// @Success 200 {array} domain.Finding "ok"
// @Router /findings/recent [get]
func (h *handlers) recent(r *stdhttp.Request) (any, error) {
	limit, err := httpkit.QueryInt(r, "limit", 20)
	if err != nil {
		return nil, err
	}
	in := domain.RecentInput{Limit: limit}
	if err := httpkit.Validate(in); err != nil {
		return nil, err
	}
	return h.q.Recent(r.Context(), in.Limit)
}
