// Package modkit provides module wiring and core deps
package modkit

import (
	"spoofwatch/internal/modkit/repokit"
	"spoofwatch/internal/platform/chain"
	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/logger"
	"spoofwatch/internal/platform/store"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.Queryer
	CH  store.Clickhouse

	// Chain is the Ethereum node reader, nil when a binary does not need one
	Chain chain.Reader
}
