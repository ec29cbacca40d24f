package store

import (
	"context"
	"fmt"
	"time"

	"spoofwatch/internal/platform/logger"

	"github.com/cenkalti/backoff/v4"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	readyAttempts = 20
	readyTimeout  = 3 * time.Second
	readyBackoff  = 150 * time.Millisecond
	readyCeiling  = 2 * time.Second
)

// postgres is a RowQuerier over a pgx pool
type postgres struct {
	pool *pgxpool.Pool
}

var (
	_ RowQuerier = (*postgres)(nil)
	_ Pinger     = (*postgres)(nil)
)

func openPostgres(ctx context.Context, app string, cfg PGConfig, log logger.Logger) (*postgres, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, err
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if _, set := pc.ConnConfig.RuntimeParams["application_name"]; !set && app != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = app
	}
	if cfg.LogSQL {
		pc.ConnConfig.Tracer = newQueryLog(log, time.Duration(cfg.SlowQueryMs)*time.Millisecond)
	}

	pool, err := pgxpool.NewWithConfig(ctx, pc)
	if err != nil {
		return nil, err
	}
	if err := waitReady(ctx, pool.Ping, readyAttempts, readyBackoff); err != nil {
		pool.Close()
		return nil, err
	}
	return &postgres{pool: pool}, nil
}

// waitReady pings up to attempts times, backing off from pause to readyCeiling
func waitReady(ctx context.Context, ping func(context.Context) error, attempts int, pause time.Duration) error {
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = pause
	eb.MaxInterval = readyCeiling
	eb.MaxElapsedTime = 0
	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(attempts-1)), ctx)

	err := backoff.Retry(func() error {
		pctx, cancel := context.WithTimeout(ctx, readyTimeout)
		defer cancel()
		return ping(pctx)
	}, b)
	if err != nil && ctx.Err() == nil {
		return fmt.Errorf("no answer after %d pings: %w", attempts, err)
	}
	return err
}

func (p *postgres) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return p.pool.Exec(ctx, sql, args...)
}

func (p *postgres) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rs, err := p.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

func (p *postgres) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return p.pool.QueryRow(ctx, sql, args...)
}

func (p *postgres) Ping(ctx context.Context) error { return p.pool.Ping(ctx) }

func (p *postgres) Close() error {
	p.pool.Close()
	return nil
}
