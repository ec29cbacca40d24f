package repo

import (
	"context"
	"fmt"

	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/store"
	"spoofwatch/internal/services/findings/domain"

	"github.com/google/uuid"
)

const chTable = "findings"

// CH is the ClickHouse findings storage
type CH struct {
	db store.Clickhouse
}

var _ Storage = (*CH)(nil)

// NewCH binds the findings storage to a clickhouse seam
func NewCH(db store.Clickhouse) *CH { return &CH{db: db} }

// EnsureSchema implements Storage
func (s *CH) EnsureSchema(ctx context.Context) error {
	if err := s.db.Exec(ctx, CHSchema); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "findings: ensure ch schema")
	}
	return nil
}

// WriteBatch implements Storage
func (s *CH) WriteBatch(ctx context.Context, xs []domain.Finding) error {
	if len(xs) == 0 {
		return nil
	}
	rows := make([][]any, 0, len(xs))
	for _, f := range xs {
		id, err := uuid.Parse(f.ID)
		if err != nil {
			return perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "findings: bad id %q", f.ID)
		}
		rows = append(rows, []any{
			id, f.AlertID, f.Name, f.Description, f.Type, f.Severity,
			f.OriginalName, f.OriginalAccount, f.ImpersonatingName, f.ImpersonatingAccount,
			f.BlockNumber, f.TxHash, f.CreatedAt,
		})
	}
	if err := s.db.Insert(ctx, chTable, rows); err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "findings: ch insert")
	}
	return nil
}

// Recent implements Storage
func (s *CH) Recent(ctx context.Context, limit int) ([]domain.Finding, error) {
	rows, err := s.db.Query(ctx, fmt.Sprintf(`
		SELECT toString(id), alert_id, name, description, type, severity,
			original_name, original_account, impersonating_name, impersonating_account,
			block_number, tx_hash, created_at
		FROM %s FINAL
		ORDER BY created_at DESC
		LIMIT ?`, chTable), limit)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "findings: ch recent")
	}
	defer rows.Close()

	var out []domain.Finding
	for rows.Next() {
		var f domain.Finding
		if err := rows.Scan(
			&f.ID, &f.AlertID, &f.Name, &f.Description, &f.Type, &f.Severity,
			&f.OriginalName, &f.OriginalAccount, &f.ImpersonatingName, &f.ImpersonatingAccount,
			&f.BlockNumber, &f.TxHash, &f.CreatedAt,
		); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "findings: ch scan")
		}
		f.Addresses = []string{f.OriginalAccount, f.ImpersonatingAccount}
		f.Metadata = domain.Metadata(f)
		out = append(out, f)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "findings: ch rows")
	}
	return out, nil
}
