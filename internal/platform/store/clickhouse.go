package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

var errCHNotConnected = errors.New("clickhouse: not connected")

// columnar is the Clickhouse seam over a native-protocol connection
type columnar struct {
	conn driver.Conn
}

var (
	_ Clickhouse = (*columnar)(nil)
	_ Pinger     = (*columnar)(nil)
)

// openClickhouse parses the DSN and builds the pool; nothing is dialed yet
func openClickhouse(cfg CHConfig) (*columnar, error) {
	opts, err := clickhouse.ParseDSN(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}
	opts.ClientInfo = clientInfo(cfg.ClientName, cfg.ClientTag)

	conn, err := clickhouse.Open(opts)
	if err != nil {
		return nil, err
	}
	return &columnar{conn: conn}, nil
}

// Insert sends data as one batch
func (c *columnar) Insert(ctx context.Context, table string, data any) error {
	rows, ok := data.([][]any)
	if !ok {
		return fmt.Errorf("clickhouse: insert %s: want [][]any, got %T", table, data)
	}
	if c == nil || c.conn == nil {
		return errCHNotConnected
	}
	if len(rows) == 0 {
		return nil
	}

	batch, err := c.conn.PrepareBatch(ctx, "INSERT INTO "+table)
	if err != nil {
		return fmt.Errorf("clickhouse: prepare %s: %w", table, err)
	}
	for _, r := range rows {
		if err := batch.Append(r...); err != nil {
			_ = batch.Abort()
			return fmt.Errorf("clickhouse: append %s: %w", table, err)
		}
	}
	return batch.Send()
}

func (c *columnar) Exec(ctx context.Context, sql string, args ...any) error {
	if c == nil || c.conn == nil {
		return errCHNotConnected
	}
	return c.conn.Exec(ctx, sql, args...)
}

func (c *columnar) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	if c == nil || c.conn == nil {
		return nil, errCHNotConnected
	}
	rs, err := c.conn.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return chRows{rs}, nil
}

func (c *columnar) Ping(ctx context.Context) error {
	if c == nil || c.conn == nil {
		return errCHNotConnected
	}
	return c.conn.Ping(ctx)
}

func (c *columnar) Close() error {
	if c == nil || c.conn == nil {
		return nil
	}
	return c.conn.Close()
}

// chRows drops the error from driver.Rows.Close
type chRows struct{ driver.Rows }

func (r chRows) Close() { _ = r.Rows.Close() }

// clientInfo names this process in system.query_log: product name, role tag,
// go version, vcs revision and host
func clientInfo(name, tag string) clickhouse.ClientInfo {
	if name == "" {
		name = "spoofwatch"
	}
	host, _ := os.Hostname()

	rev := "unknown"
	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 7 {
				rev = s.Value[:7]
			}
		}
	}

	type product = struct{ Name, Version string }
	return clickhouse.ClientInfo{Products: []product{
		{Name: name, Version: strings.TrimSpace(tag)},
		{Name: "go", Version: runtime.Version()},
		{Name: "rev", Version: rev},
		{Name: "host", Version: host},
	}}
}
