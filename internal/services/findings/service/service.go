// Package service provides the findings sink
package service

import (
	"context"

	"spoofwatch/internal/platform/logger"
	dom "spoofwatch/internal/services/findings/domain"
	"spoofwatch/internal/services/findings/repo"
)

// Sink kinds
const (
	SinkLog = "log"
	SinkPG  = "pg"
	SinkCH  = "ch"
)

// Config for the findings service
type Config struct {
	Sink      string
	HardLimit int
}

// Service implements domain.WriterPort and domain.QueryPort
// every finding is logged; Storage is nil for the log sink
type Service struct {
	Storage repo.Storage
	Cfg     Config
}

// New constructs a findings service, storage may be nil
func New(storage repo.Storage, cfg Config) *Service {
	if cfg.HardLimit <= 0 {
		cfg.HardLimit = 100
	}
	if cfg.Sink == "" {
		cfg.Sink = SinkLog
	}
	return &Service{Storage: storage, Cfg: cfg}
}

// EnsureSchema creates the backing table when a storage sink is configured
func (s *Service) EnsureSchema(ctx context.Context) error {
	if s.Storage == nil {
		return nil
	}
	return s.Storage.EnsureSchema(ctx)
}

// WriteBatch implements domain.WriterPort
func (s *Service) WriteBatch(ctx context.Context, xs []dom.Finding) error {
	if len(xs) == 0 {
		return nil
	}
	log := logger.C(ctx)
	for _, f := range xs {
		log.Info().
			Str("alert_id", f.AlertID).
			Str("finding_id", f.ID).
			Str("impersonating_name", f.ImpersonatingName).
			Str("impersonating_account", f.ImpersonatingAccount).
			Str("original_name", f.OriginalName).
			Str("original_account", f.OriginalAccount).
			Uint64("block", f.BlockNumber).
			Str("tx", f.TxHash).
			Msg(f.Description)
	}
	if s.Storage == nil {
		return nil
	}
	return s.Storage.WriteBatch(ctx, xs)
}

// Recent implements domain.QueryPort; the log sink keeps no history
func (s *Service) Recent(ctx context.Context, limit int) ([]dom.Finding, error) {
	if s.Storage == nil {
		return []dom.Finding{}, nil
	}
	if limit <= 0 || limit > s.Cfg.HardLimit {
		limit = s.Cfg.HardLimit
	}
	out, err := s.Storage.Recent(ctx, limit)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []dom.Finding{}
	}
	return out, nil
}
