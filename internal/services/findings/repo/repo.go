// Package repo provides the findings repository implementations
package repo

import (
	"context"
	"fmt"
	"strings"

	"spoofwatch/internal/modkit/repokit"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/store"
	"spoofwatch/internal/services/findings/domain"
)

// Storage defines the findings repository
type Storage interface {
	EnsureSchema(ctx context.Context) error
	WriteBatch(ctx context.Context, xs []domain.Finding) error
	Recent(ctx context.Context, limit int) ([]domain.Finding, error)
}

type (
	pg     struct{ q repokit.Queryer }
	binder struct{}
)

// NewPG constructs a new repo binder for Postgres
func NewPG() repokit.Binder[Storage] { return binder{} }

// Bind implements repokit.Binder
func (binder) Bind(q repokit.Queryer) Storage { return &pg{q: q} }

// EnsureSchema implements Storage
func (s *pg) EnsureSchema(ctx context.Context) error {
	_, err := s.q.Exec(ctx, PGSchema)
	return perr.FromPostgres(err, "findings: ensure schema")
}

// WriteBatch implements Storage
func (s *pg) WriteBatch(ctx context.Context, xs []domain.Finding) error {
	if len(xs) == 0 {
		return nil
	}

	const cols = 13
	var sb strings.Builder
	sb.WriteString(`INSERT INTO findings
		(id, alert_id, name, description, type, severity,
		original_name, original_account, impersonating_name, impersonating_account,
		block_number, tx_hash, created_at) VALUES `)

	args := make([]any, 0, len(xs)*cols)
	for i, f := range xs {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteByte('(')
		for c := 0; c < cols; c++ {
			if c > 0 {
				sb.WriteByte(',')
			}
			fmt.Fprintf(&sb, "$%d", i*cols+c+1)
		}
		sb.WriteByte(')')

		args = append(args,
			f.ID, f.AlertID, f.Name, f.Description, f.Type, f.Severity,
			f.OriginalName, f.OriginalAccount, f.ImpersonatingName, f.ImpersonatingAccount,
			int64(f.BlockNumber), f.TxHash, f.CreatedAt,
		)
	}
	// Idempotent when a range is rescanned
	sb.WriteString(` ON CONFLICT (tx_hash, impersonating_name, original_name) DO NOTHING`)
	_, err := s.q.Exec(ctx, sb.String(), args...)
	return perr.FromPostgres(err, "findings: write batch")
}

// Recent implements Storage
func (s *pg) Recent(ctx context.Context, limit int) ([]domain.Finding, error) {
	rows, err := store.Many(ctx, s.q, scanFinding, `
		SELECT id::text, alert_id, name, description, type, severity,
			original_name, original_account, impersonating_name, impersonating_account,
			block_number, tx_hash, created_at
		FROM findings
		ORDER BY created_at DESC, id
		LIMIT $1`, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "findings: recent")
	}
	return rows, nil
}

// scanFinding maps one findings row (column order as in Recent) and rebuilds the envelope fields
func scanFinding(r store.Row) (domain.Finding, error) {
	var (
		f     domain.Finding
		block int64
	)
	if err := r.Scan(
		&f.ID, &f.AlertID, &f.Name, &f.Description, &f.Type, &f.Severity,
		&f.OriginalName, &f.OriginalAccount, &f.ImpersonatingName, &f.ImpersonatingAccount,
		&block, &f.TxHash, &f.CreatedAt,
	); err != nil {
		return domain.Finding{}, err
	}
	f.BlockNumber = uint64(block)
	f.Addresses = []string{f.OriginalAccount, f.ImpersonatingAccount}
	f.Metadata = domain.Metadata(f)
	return f, nil
}
