package module

import (
	"testing"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/testkit"
	"spoofwatch/internal/services/findings/service"
)

func TestFromConfig(t *testing.T) {
	t.Setenv("CORE_FINDINGS_SINK", "")
	t.Setenv("CORE_FINDINGS_HARD_LIMIT", "")
	o := FromConfig(config.New())
	if o.Sink != service.SinkLog || o.HardLimit != 100 {
		t.Fatalf("defaults = %+v", o)
	}

	t.Setenv("CORE_FINDINGS_SINK", "ch")
	t.Setenv("CORE_FINDINGS_HARD_LIMIT", "25")
	o = FromConfig(config.New())
	if o.Sink != service.SinkCH || o.HardLimit != 25 {
		t.Fatalf("overrides = %+v", o)
	}
}

func TestNew_LogSink(t *testing.T) {
	t.Setenv("CORE_FINDINGS_SINK", "log")
	m := New(modkit.Deps{Cfg: config.New()})
	if m.Name() != "findings" || m.Prefix() != "/findings" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}
	p, ok := m.Ports().(Ports)
	if !ok || p.Writer == nil || p.Query == nil {
		t.Fatalf("ports = %#v", m.Ports())
	}
	if err := m.EnsureSchema(t.Context()); err != nil {
		t.Fatalf("EnsureSchema on log sink: %v", err)
	}
}

func TestNew_StorageSinkRequiresStore(t *testing.T) {
	for _, sink := range []string{"pg", "ch"} {
		t.Run(sink, func(t *testing.T) {
			t.Setenv("CORE_FINDINGS_SINK", sink)
			testkit.MustPanic(t, func() { New(modkit.Deps{Cfg: config.New()}) })
		})
	}
}

func TestStoreConfig(t *testing.T) {
	t.Setenv("SERVICE_PGSQL_DBURL", "postgres://u:p@localhost:5432/sw")
	t.Setenv("SERVICE_CLICKHOUSE_DBURL", "clickhouse://localhost:9000/sw")

	cases := []struct {
		sink   string
		pg, ch bool
	}{
		{"log", false, false},
		{"pg", true, false},
		{"ch", false, true},
	}
	for _, tc := range cases {
		t.Run(tc.sink, func(t *testing.T) {
			t.Setenv("CORE_FINDINGS_SINK", tc.sink)
			got := StoreConfig(config.New(), "scan")
			if got.PG.Enabled != tc.pg || got.CH.Enabled != tc.ch {
				t.Fatalf("pg=%v ch=%v", got.PG.Enabled, got.CH.Enabled)
			}
			if tc.ch && got.CH.ClientTag != "scan" {
				t.Fatalf("client tag = %q", got.CH.ClientTag)
			}
		})
	}
}

func TestStoreConfig_MissingURLPanics(t *testing.T) {
	t.Setenv("CORE_FINDINGS_SINK", "pg")
	t.Setenv("SERVICE_PGSQL_DBURL", "")
	testkit.MustPanic(t, func() { StoreConfig(config.New(), "api") })
}
