// Package domain defines the ports of the historical ENS resolver
package domain

import (
	"context"

	"github.com/ethereum/go-ethereum/common"
)

// TLD is appended to bare labels before resolving
const TLD = ".eth"

// ResolverPort answers "which account did name resolve to at block"
// ok=false means the name had no resolver; a resolver without an addr record
// yields the zero account with ok=true. err is reserved for failures to ask
// (node down, undecodable response)
type ResolverPort interface {
	Resolve(ctx context.Context, name string, atBlock uint64) (account common.Address, ok bool, err error)
}
