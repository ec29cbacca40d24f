package module

import (
	"context"
	"testing"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/platform/config"
	"spoofwatch/internal/platform/testkit"
	"spoofwatch/internal/services/spoof/domain"

	"github.com/ethereum/go-ethereum/common"
)

type nopResolver struct{}

func (nopResolver) Resolve(context.Context, string, uint64) (common.Address, bool, error) {
	return common.Address{}, false, nil
}

type nopSink struct{}

func (nopSink) WriteBatch(context.Context, []domain.Finding) error { return nil }

func TestFromConfig_Defaults(t *testing.T) {
	for _, k := range []string{
		"CORE_SPOOF_ENS_CONTROLLER_ADDRESS", "CORE_SPOOF_DEVELOPER_ABBREVIATION",
		"CORE_SPOOF_MIN_ASCII_CHARACTERS", "CORE_SPOOF_MAX_ASCII_CHARACTERS",
		"CORE_SPOOF_MAX_ASCII_HOMOGLYPHS_COUNT", "CORE_SPOOF_MAX_ASCII_HOMOGLYPHS_PERCENT",
		"CORE_SPOOF_PAGE_BLOCKS", "CORE_SPOOF_DRY_RUN",
	} {
		t.Setenv(k, "")
	}
	o := FromConfig(config.New())
	if o.Controller != MainnetController || o.Abbreviation != "SW" {
		t.Fatalf("controller=%s abbr=%s", o.Controller.Hex(), o.Abbreviation)
	}
	c := o.Candidates
	if c.MinASCIICharacters != 5 || c.MaxASCIICharacters != 20 || c.MaxASCIIHomoglyphsCount != 3 || c.MaxASCIIHomoglyphsPercent != 30 {
		t.Fatalf("candidates = %+v", c)
	}
	if o.PageBlocks != 2000 || o.DryRun {
		t.Fatalf("options = %+v", o)
	}
}

func TestFromConfig_Overrides(t *testing.T) {
	t.Setenv("CORE_SPOOF_DEVELOPER_ABBREVIATION", "AK")
	t.Setenv("CORE_SPOOF_MAX_ASCII_HOMOGLYPHS_COUNT", "1")
	t.Setenv("CORE_SPOOF_PAGE_BLOCKS", "500")
	t.Setenv("CORE_SPOOF_DRY_RUN", "true")
	o := FromConfig(config.New())
	if o.Abbreviation != "AK" || o.Candidates.MaxASCIIHomoglyphsCount != 1 || o.PageBlocks != 500 || !o.DryRun {
		t.Fatalf("options = %+v", o)
	}
}

func TestNew_RequiresPorts(t *testing.T) {
	deps := modkit.Deps{Cfg: config.New()}
	testkit.MustPanic(t, func() { New(deps, Options{}) })
	testkit.MustPanic(t, func() {
		New(deps, Options{}, modkit.WithPorts(domain.Ports{Resolver: nopResolver{}}))
	})
}

func TestNew_Wires(t *testing.T) {
	deps := modkit.Deps{Cfg: config.New()}
	m := New(deps, Options{PageBlocks: 250}, modkit.WithPorts(domain.Ports{Resolver: nopResolver{}, Sink: nopSink{}}))
	if m.Name() != "spoof" || m.Prefix() != "/spoof" {
		t.Fatalf("name=%q prefix=%q", m.Name(), m.Prefix())
	}
	p, ok := m.Ports().(Ports)
	if !ok || p.Detector == nil || p.Runner == nil {
		t.Fatalf("ports = %#v", m.Ports())
	}
	if m.svc.Cfg.PageBlocks != 250 {
		t.Fatalf("override not applied: page blocks=%d", m.svc.Cfg.PageBlocks)
	}
}
