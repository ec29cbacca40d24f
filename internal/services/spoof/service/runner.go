package service

import (
	"context"
	"sort"
	"time"

	"spoofwatch/internal/platform/chain"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/logger"
	progressdom "spoofwatch/internal/services/progress/domain"
	"spoofwatch/internal/services/spoof/domain"

	"github.com/cenkalti/backoff/v4"
	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// RunRange scans controller logs in [from, to] page by page, detects
// impersonations per transaction and writes each page's findings to the sink.
// Pages are recorded in the progress ledger when one is wired and not dry-running.
func (s *Service) RunRange(ctx context.Context, from, to uint64) error {
	if s.Logs == nil {
		return perr.Configf("spoof: log reader not configured")
	}
	if to < from {
		return perr.InvalidArgf("spoof: range end %d before start %d", to, from)
	}
	if !s.Cfg.DryRun && s.Sink == nil {
		return perr.Configf("spoof: findings sink not configured")
	}
	log := logger.C(ctx)
	ledger := s.Progress
	if s.Cfg.DryRun {
		ledger = nil
	}

	for start := from; ; start += s.Cfg.PageBlocks {
		end := to
		if to-start >= s.Cfg.PageBlocks {
			end = start + s.Cfg.PageBlocks - 1
		}
		ref := progressdom.PageRef{Controller: s.Cfg.Controller.Hex(), From: start, To: end}

		if ledger != nil {
			if err := ledger.StartPage(ctx, ref); err != nil {
				return err
			}
		}

		t0 := s.now()
		fin, err := s.scanPage(ctx, start, end)
		fin.ElapsedMS = s.now().Sub(t0).Milliseconds()
		if err != nil {
			fin.Status, fin.ErrText = progressdom.StatusError, err.Error()
		} else {
			fin.Status = progressdom.StatusDone
		}

		if ledger != nil {
			// record failures even when ctx is already cancelled
			if lerr := ledger.FinishPage(context.WithoutCancel(ctx), ref, fin); lerr != nil {
				if err == nil {
					return lerr
				}
				log.Error().Err(lerr).Uint64("from", start).Msg("couldn't record failed page")
			}
		}
		if err != nil {
			return perr.WithOp(err, "spoof.RunRange")
		}

		log.Info().
			Uint64("from", start).
			Uint64("to", end).
			Int("logs", fin.Logs).
			Int("txs", fin.Transactions).
			Int("findings", fin.Findings).
			Int64("elapsed_ms", fin.ElapsedMS).
			Bool("dry_run", s.Cfg.DryRun).
			Msg("range page scanned")

		if end == to {
			return nil
		}
	}
}

// scanPage handles one window; findings are written only if every tx succeeded
func (s *Service) scanPage(ctx context.Context, from, to uint64) (progressdom.PageFinish, error) {
	var fin progressdom.PageFinish

	var logs []types.Log
	err := s.withRetry(ctx, func() error {
		var e error
		logs, e = s.Logs.FilterLogs(ctx, s.query(from, to))
		return e
	})
	if err != nil {
		return fin, err
	}
	fin.Logs = len(logs)

	txs := GroupByTx(logs)
	fin.Transactions = len(txs)

	var batch []domain.Finding
	for _, tx := range txs {
		var fs []domain.Finding
		err := s.withRetry(ctx, func() error {
			var e error
			fs, e = s.HandleTransaction(ctx, tx)
			return e
		})
		if err != nil {
			return fin, err
		}
		batch = append(batch, fs...)
	}
	fin.Findings = len(batch)

	if !s.Cfg.DryRun && len(batch) > 0 {
		if err := s.Sink.WriteBatch(ctx, batch); err != nil {
			return fin, err
		}
	}
	return fin, nil
}

// query selects controller NameRegistered logs in [from, to]
func (s *Service) query(from, to uint64) ethereum.FilterQuery {
	return ethereum.FilterQuery{
		FromBlock: chain.AtBlock(from),
		ToBlock:   chain.AtBlock(to),
		Addresses: []common.Address{s.Cfg.Controller},
		Topics:    [][]common.Hash{{NameRegisteredTopic}},
	}
}

// GroupByTx groups logs into transactions ordered by block, tx index and log index
func GroupByTx(logs []types.Log) []domain.Transaction {
	if len(logs) == 0 {
		return nil
	}
	sorted := make([]types.Log, len(logs))
	copy(sorted, logs)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.BlockNumber != b.BlockNumber {
			return a.BlockNumber < b.BlockNumber
		}
		if a.TxIndex != b.TxIndex {
			return a.TxIndex < b.TxIndex
		}
		return a.Index < b.Index
	})

	var out []domain.Transaction
	idx := make(map[common.Hash]int)
	for _, l := range sorted {
		i, ok := idx[l.TxHash]
		if !ok {
			i = len(out)
			idx[l.TxHash] = i
			out = append(out, domain.Transaction{Hash: l.TxHash, BlockNumber: l.BlockNumber})
		}
		out[i].Logs = append(out[i].Logs, l)
	}
	return out
}

// withRetry runs fn up to MaxRetries times while the error is transient,
// backing off from RetryBase with jitter
func (s *Service) withRetry(ctx context.Context, fn func() error) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = s.Cfg.RetryBase
	eb.MaxInterval = 30 * time.Second
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(max(s.Cfg.MaxRetries, 1)-1)), ctx)

	attempt := 0
	return backoff.RetryNotify(func() error {
		err := fn()
		if err != nil && !perr.Retryable(err) {
			return backoff.Permanent(err)
		}
		return err
	}, b, func(err error, wait time.Duration) {
		attempt++
		logger.C(ctx).Warn().Err(err).Int("attempt", attempt).Dur("backoff", wait).Msg("transient failure, retrying")
	})
}
