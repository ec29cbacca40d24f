package module

import (
	"strings"

	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/store"
	"spoofwatch/internal/services/findings/service"
)

// Options holds configuration settings for the findings module
type Options struct {
	Sink      string
	HardLimit int
}

// FromConfig reads CORE_FINDINGS_*
func FromConfig(cfg config.Conf) Options {
	ff := cfg.Prefix("CORE_FINDINGS_")
	return Options{
		Sink:      strings.ToLower(ff.MayEnum("SINK", service.SinkLog, service.SinkLog, service.SinkPG, service.SinkCH)),
		HardLimit: ff.MayInt("HARD_LIMIT", 100),
	}
}

// StoreConfig enables only the backend the configured sink writes to,
// reading SERVICE_PGSQL_* or SERVICE_CLICKHOUSE_*
func StoreConfig(root config.Conf, tag string) store.Config {
	sink := FromConfig(root).Sink
	cfg := store.Config{AppName: "spoofwatch"}

	switch sink {
	case service.SinkPG:
		pgCfg := root.Prefix("SERVICE_PGSQL_")
		cfg.PG = store.PGConfig{
			Enabled:     true,
			URL:         pgCfg.MustString("DBURL"),
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", true),
		}
	case service.SinkCH:
		chCfg := root.Prefix("SERVICE_CLICKHOUSE_")
		cfg.CH = store.CHConfig{
			Enabled:    true,
			URL:        chCfg.MustString("DBURL"),
			ClientName: "spoofwatch",
			ClientTag:  tag,
		}
	}
	return cfg
}
