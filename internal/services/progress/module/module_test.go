package module

import (
	"context"
	"testing"

	"spoofwatch/internal/modkit"
	"spoofwatch/internal/platform/store"
	"spoofwatch/internal/platform/testkit"
)

type nopPG struct{}

func (nopPG) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }
func (nopPG) Query(context.Context, string, ...any) (store.Rows, error)      { return nil, nil }
func (nopPG) QueryRow(context.Context, string, ...any) store.Row             { return nil }

func TestNew(t *testing.T) {
	testkit.MustPanic(t, func() { New(modkit.Deps{}) })

	m := New(modkit.Deps{PG: nopPG{}})
	if m.Name() != "progress" {
		t.Fatalf("name = %q", m.Name())
	}
	if p, ok := m.Ports().(Ports); !ok || p.Ledger == nil {
		t.Fatalf("ports = %#v", m.Ports())
	}
	if err := m.EnsureSchema(context.Background()); err != nil {
		t.Fatalf("EnsureSchema: %v", err)
	}
}
