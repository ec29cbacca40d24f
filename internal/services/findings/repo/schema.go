package repo

// PGSchema creates the findings table in Postgres
const PGSchema = `
CREATE TABLE IF NOT EXISTS findings (
	id                    uuid PRIMARY KEY,
	alert_id              text        NOT NULL,
	name                  text        NOT NULL,
	description           text        NOT NULL,
	type                  text        NOT NULL,
	severity              text        NOT NULL,
	original_name         text        NOT NULL,
	original_account      text        NOT NULL,
	impersonating_name    text        NOT NULL,
	impersonating_account text        NOT NULL,
	block_number          bigint      NOT NULL,
	tx_hash               text        NOT NULL DEFAULT '',
	created_at            timestamptz NOT NULL DEFAULT now(),
	UNIQUE (tx_hash, impersonating_name, original_name)
);
CREATE INDEX IF NOT EXISTS findings_created_at_idx ON findings (created_at DESC);
`

// CHSchema creates the findings table in ClickHouse
const CHSchema = `
CREATE TABLE IF NOT EXISTS findings (
	id                    UUID,
	alert_id              LowCardinality(String),
	name                  String,
	description           String,
	type                  LowCardinality(String),
	severity              LowCardinality(String),
	original_name         String,
	original_account      FixedString(42),
	impersonating_name    String,
	impersonating_account FixedString(42),
	block_number          UInt64,
	tx_hash               String,
	created_at            DateTime64(3, 'UTC')
) ENGINE = ReplacingMergeTree
ORDER BY (tx_hash, impersonating_name, original_name)
`
