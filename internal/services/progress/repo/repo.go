// Package repo provides postgres access for the scan progress ledger
package repo

import (
	"context"
	"database/sql"

	"spoofwatch/internal/modkit/repokit"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/store"
	"spoofwatch/internal/services/progress/domain"
)

// Schema creates the scan_pages table
const Schema = `
CREATE TABLE IF NOT EXISTS scan_pages (
	controller   text        NOT NULL,
	from_block   bigint      NOT NULL,
	to_block     bigint      NOT NULL,
	status       text        NOT NULL,
	logs         int         NOT NULL DEFAULT 0,
	transactions int         NOT NULL DEFAULT 0,
	findings     int         NOT NULL DEFAULT 0,
	elapsed_ms   bigint      NOT NULL DEFAULT 0,
	error        text,
	started_at   timestamptz NOT NULL DEFAULT now(),
	finished_at  timestamptz,
	PRIMARY KEY (controller, from_block)
);
`

// Storage is the ledger repository
type Storage interface {
	domain.LedgerPort
	EnsureSchema(ctx context.Context) error
}

type (
	// PG is a Postgres binder for Storage
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a Postgres binder for Storage
func NewPG() repokit.Binder[Storage] { return PG{} }

// Bind implements repokit.Binder
func (PG) Bind(q repokit.Queryer) Storage { return &queries{q: q} }

// EnsureSchema implements Storage
func (r *queries) EnsureSchema(ctx context.Context) error {
	_, err := r.q.Exec(ctx, Schema)
	return perr.FromPostgres(err, "progress: ensure schema")
}

// StartPage implements domain.LedgerPort
func (r *queries) StartPage(ctx context.Context, ref domain.PageRef) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO scan_pages (controller, from_block, to_block, status, started_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (controller, from_block) DO UPDATE
		SET to_block = EXCLUDED.to_block, status = EXCLUDED.status, started_at = now(),
			error = null, finished_at = null
	`, ref.Controller, int64(ref.From), int64(ref.To), domain.StatusRunning)
	return perr.FromPostgres(err, "progress: start page")
}

// FinishPage implements domain.LedgerPort
func (r *queries) FinishPage(ctx context.Context, ref domain.PageRef, fin domain.PageFinish) error {
	_, err := r.q.Exec(ctx, `
		UPDATE scan_pages SET
			finished_at = now(),
			status = $3,
			logs = $4,
			transactions = $5,
			findings = $6,
			elapsed_ms = $7,
			error = NULLIF($8,'')
		WHERE controller = $1 AND from_block = $2
	`,
		ref.Controller, int64(ref.From), fin.Status, fin.Logs, fin.Transactions, fin.Findings,
		fin.ElapsedMS, fin.ErrText,
	)
	return perr.FromPostgres(err, "progress: finish page")
}

// ResumeFrom implements domain.LedgerPort
func (r *queries) ResumeFrom(ctx context.Context, controller string) (uint64, bool, error) {
	next, err := store.Scalar[sql.NullInt64](ctx, r.q, `
		SELECT COALESCE(
			(SELECT min(from_block) FROM scan_pages WHERE controller = $1 AND status <> 'done'),
			(SELECT max(to_block) + 1 FROM scan_pages WHERE controller = $1 AND status = 'done')
		)
	`, controller)
	if err != nil {
		return 0, false, perr.FromPostgres(err, "progress: resume from")
	}
	if !next.Valid {
		return 0, false, nil
	}
	return uint64(next.Int64), true, nil
}
