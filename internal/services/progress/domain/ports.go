package domain

import "context"

// LedgerPort records scan progress so a later run can resume
type LedgerPort interface {
	// StartPage marks a page as running (idempotent)
	StartPage(ctx context.Context, ref PageRef) error

	// FinishPage records the outcome of a page
	FinishPage(ctx context.Context, ref PageRef, fin PageFinish) error

	// ResumeFrom returns the first block a new run should scan: the start of
	// the earliest unfinished page, else one past the last finished block.
	// ok is false when nothing was recorded for controller.
	ResumeFrom(ctx context.Context, controller string) (block uint64, ok bool, err error)
}
