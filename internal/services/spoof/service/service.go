// Package service implements the ENS spoofing detector
package service

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"spoofwatch/internal/core/candidates"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/logger"
	findingsdom "spoofwatch/internal/services/findings/domain"
	progressdom "spoofwatch/internal/services/progress/domain"
	resolverdom "spoofwatch/internal/services/resolver/domain"
	"spoofwatch/internal/services/spoof/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// PoolSize is the number of candidate resolutions in flight per registration
const PoolSize = 4

// Config for the spoof service
type Config struct {
	Controller   common.Address
	Abbreviation string
	Candidates   candidates.Config

	PageBlocks uint64 // RunRange log window
	DryRun     bool

	MaxRetries int           // attempts per page; <=0 -> 3
	RetryBase  time.Duration // <=0 -> 500ms
}

// Service implements domain.DetectorPort and domain.RunnerPort
type Service struct {
	Resolver resolverdom.ResolverPort
	Sink     findingsdom.WriterPort
	Logs     domain.LogsPort
	Progress progressdom.LedgerPort
	Gen      *candidates.Generator
	Cfg      Config

	now   func() time.Time
	newID func() string
}

// New constructs a spoof service; gen may be nil for the default tables
func New(resolver resolverdom.ResolverPort, sink findingsdom.WriterPort, logs domain.LogsPort, gen *candidates.Generator, cfg Config) *Service {
	if gen == nil {
		gen = candidates.New(nil)
	}
	if cfg.PageBlocks == 0 {
		cfg.PageBlocks = 2000
	}
	if cfg.MaxRetries <= 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBase <= 0 {
		cfg.RetryBase = 500 * time.Millisecond
	}
	if cfg.Abbreviation == "" {
		cfg.Abbreviation = "SW"
	}
	return &Service{
		Resolver: resolver,
		Sink:     sink,
		Logs:     logs,
		Gen:      gen,
		Cfg:      cfg,
		now:      func() time.Time { return time.Now().UTC() },
		newID:    uuid.NewString,
	}
}

// FindImpersonations resolves every lookalike original of name at atBlock and
// returns the ones that pointed to an account, in sorted candidate order.
// The registering account is not filtered out.
// Any failed resolution cancels the rest and no matches are returned.
func (s *Service) FindImpersonations(
	ctx context.Context,
	name string,
	account common.Address,
	atBlock uint64,
	cfg candidates.Config,
) ([]domain.Match, error) {
	if s == nil || s.Resolver == nil {
		return nil, perr.Configf("spoof: resolver not configured")
	}

	names := s.Gen.Generate(name, cfg).Names()
	log := logger.C(ctx)
	log.Debug().Str("name", name).Int("variants", len(names)).Msg("name variants")
	if len(names) == 0 {
		return nil, nil
	}

	type slot struct {
		account common.Address
		ok      bool
	}
	out := make([]slot, len(names))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(PoolSize)
	var checked atomic.Int64
	for i := range names {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			acct, ok, err := s.Resolver.Resolve(gctx, names[i]+resolverdom.TLD, atBlock)
			if err != nil {
				return err
			}
			out[i] = slot{account: acct, ok: ok}
			ev := log.Debug().Str("variant", names[i]).Bool("found", ok)
			if ok {
				ev = ev.Str("account", acct.Hex())
			}
			ev.Msgf("Checked name variant %d/%d", checked.Add(1), len(names))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var matches []domain.Match
	for i, r := range out {
		if r.ok {
			matches = append(matches, domain.Match{Name: names[i], Account: r.account})
		}
	}
	if len(matches) > 0 {
		log.Info().
			Str("name", name).
			Str("account", account.Hex()).
			Int("matches", len(matches)).
			Uint64("block", atBlock).
			Msg("similar looking names found")
	}
	return matches, nil
}

// HandleTransaction decodes controller NameRegistered logs in tx and builds a
// finding per match. Malformed logs are skipped; a failed resolution aborts tx.
func (s *Service) HandleTransaction(ctx context.Context, tx domain.Transaction) ([]domain.Finding, error) {
	log := logger.C(ctx)

	var regs []domain.Registration
	for _, l := range tx.Logs {
		if !isRegistration(l, s.Cfg.Controller) {
			continue
		}
		reg, err := DecodeRegistration(l)
		if err != nil {
			log.Warn().Err(err).
				Str("tx", l.TxHash.Hex()).
				Uint("log_index", l.Index).
				Msg("skipping malformed registration")
			continue
		}
		regs = append(regs, reg)
	}
	if len(regs) == 0 {
		return nil, nil
	}

	names := make([]string, len(regs))
	for i, r := range regs {
		names[i] = r.Name
	}
	log.Info().Strs("names", names).Str("tx", tx.Hash.Hex()).Uint64("block", tx.BlockNumber).Msg("detected register events")

	var out []domain.Finding
	for _, reg := range regs {
		matches, err := s.FindImpersonations(ctx, reg.Name, reg.Owner, tx.BlockNumber, s.Cfg.Candidates)
		if err != nil {
			return nil, perr.WithOp(err, "spoof.HandleTransaction")
		}
		for _, m := range matches {
			out = append(out, s.finding(reg, m, tx))
		}
	}
	return out, nil
}

// finding builds the alert for one impersonation
func (s *Service) finding(reg domain.Registration, m domain.Match, tx domain.Transaction) domain.Finding {
	original := m.Account.Hex()
	impersonating := reg.Owner.Hex()

	f := domain.Finding{
		ID:      s.newID(),
		AlertID: s.Cfg.Abbreviation + domain.AlertSuffix,
		Name:    domain.FindingName,
		Description: fmt.Sprintf(
			"Account %s registered \"%s\" ENS name that is visually similar to \"%s\" of account %s",
			impersonating, reg.Name+resolverdom.TLD, m.Name+resolverdom.TLD, original,
		),
		Type:                 findingsdom.TypeSuspicious,
		Severity:             findingsdom.SeverityLow,
		Addresses:            []string{original, impersonating},
		OriginalName:         m.Name,
		OriginalAccount:      original,
		ImpersonatingName:    reg.Name,
		ImpersonatingAccount: impersonating,
		BlockNumber:          tx.BlockNumber,
		CreatedAt:            s.now(),
	}
	if tx.Hash != (common.Hash{}) {
		f.TxHash = tx.Hash.Hex()
	}
	f.Metadata = findingsdom.Metadata(f)
	return f
}
