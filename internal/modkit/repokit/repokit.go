// Package repokit binds the sql repos to the store and checks backends at
// startup
package repokit

import (
	"context"
	"fmt"
	"time"

	"spoofwatch/internal/platform/store"
)

// Queryer is what the findings and ledger repos run their sql through
type Queryer = store.RowQuerier

// Binder builds a repo over a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// MustBind binds b to q. A nil q is a wiring bug and panics.
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: bind with nil Queryer")
	}
	return b.Bind(q)
}

// startupTimeout caps MustPing; an earlier ctx deadline wins
const startupTimeout = 5 * time.Second

// MustPing panics unless dep answers a ping
func MustPing(ctx context.Context, name string, dep store.Pinger) {
	if dep == nil {
		panic(name + ": not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, startupTimeout)
	defer cancel()
	if err := dep.Ping(ctx); err != nil {
		panic(fmt.Errorf("%s: %w", name, err))
	}
}

// MustGuard panics when any enabled store backend fails its ping
func MustGuard(ctx context.Context, st interface{ Guard(context.Context) error }) {
	if err := st.Guard(ctx); err != nil {
		panic(fmt.Errorf("store guard: %w", err))
	}
}
