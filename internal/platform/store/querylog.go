package store

import (
	"context"
	"strings"
	"time"

	"spoofwatch/internal/platform/logger"

	"github.com/jackc/pgx/v5"
)

// queryLog is a pgx.QueryTracer that writes one line per statement
type queryLog struct {
	log  logger.Logger
	slow time.Duration
}

var _ pgx.QueryTracer = (*queryLog)(nil)

type queryStartKey struct{}

type queryStart struct {
	sql  string
	args []any
	at   time.Time
}

func newQueryLog(log logger.Logger, slow time.Duration) *queryLog {
	return &queryLog{log: log.With().Str("component", "pg").Logger(), slow: slow}
}

func (q *queryLog) TraceQueryStart(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, queryStartKey{}, queryStart{sql: data.SQL, args: data.Args, at: time.Now()})
}

func (q *queryLog) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, data pgx.TraceQueryEndData) {
	st, ok := ctx.Value(queryStartKey{}).(queryStart)
	if !ok {
		return
	}
	took := time.Since(st.at)
	slow := q.slow > 0 && took >= q.slow

	ev := q.log.Info()
	switch {
	case data.Err != nil:
		ev = q.log.Error().Err(data.Err)
	case slow:
		ev = q.log.Warn()
	}
	ev.Dur("took", took).
		Bool("slow", slow).
		Int64("rows", data.CommandTag.RowsAffected()).
		Str("sql", squash(st.sql)).
		Int("nargs", len(st.args)).
		Msg("pg query")
}

// squash folds runs of whitespace in a statement into single spaces
func squash(sql string) string {
	return strings.Join(strings.Fields(sql), " ")
}
