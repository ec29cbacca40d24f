package domain

import (
	"context"

	"spoofwatch/internal/core/candidates"
	findingsdom "spoofwatch/internal/services/findings/domain"
	progressdom "spoofwatch/internal/services/progress/domain"
	resolverdom "spoofwatch/internal/services/resolver/domain"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// DetectorPort finds registrations that impersonate existing names
type DetectorPort interface {
	FindImpersonations(ctx context.Context, name string, account common.Address, atBlock uint64, cfg candidates.Config) ([]Match, error)
	HandleTransaction(ctx context.Context, tx Transaction) ([]Finding, error)
}

// RunnerPort scans a block range and dispatches findings
type RunnerPort interface {
	RunRange(ctx context.Context, from, to uint64) error
}

// LogsPort reads controller logs and the chain head
type LogsPort interface {
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
}

// Ports are dependencies injected into the spoof module
type Ports struct {
	Resolver resolverdom.ResolverPort // required
	Sink     findingsdom.WriterPort   // required
	Logs     LogsPort                 // required for RunRange and latest-block lookups
	Progress progressdom.LedgerPort   // optional; RunRange records pages when set
}
