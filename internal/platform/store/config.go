package store

// Config selects and configures the backends Open connects
type Config struct {
	// AppName is reported to postgres as application_name
	AppName string

	PG PGConfig
	CH CHConfig
}

// PGConfig configures the findings and ledger postgres pool
type PGConfig struct {
	Enabled  bool
	URL      string
	MaxConns int32

	// LogSQL logs every statement, SlowQueryMs upgrades slow ones to warn
	LogSQL      bool
	SlowQueryMs int
}

// CHConfig configures the clickhouse findings sink
type CHConfig struct {
	Enabled bool
	URL     string

	// ClientName and ClientTag show up in system.query_log
	ClientName string
	ClientTag  string
}
