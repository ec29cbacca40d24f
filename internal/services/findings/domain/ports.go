package domain

import "context"

// WriterPort dispatches findings to the configured sink
type WriterPort interface {
	WriteBatch(ctx context.Context, xs []Finding) error
}

// QueryPort reads back dispatched findings, newest first
type QueryPort interface {
	Recent(ctx context.Context, limit int) ([]Finding, error)
}

// RecentInput bounds the recent findings query
type RecentInput struct {
	Limit int `json:"limit" validate:"min=1,max=1000" example:"20"`
}
