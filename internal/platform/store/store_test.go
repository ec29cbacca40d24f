package store

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakePG is a RowQuerier that can also ping and close
type fakePG struct {
	pingErr  error
	closeErr error
	closed   bool
}

func (f *fakePG) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (f *fakePG) Query(context.Context, string, ...any) (Rows, error)      { return nil, nil }
func (f *fakePG) QueryRow(context.Context, string, ...any) Row             { return nil }
func (f *fakePG) Ping(context.Context) error                               { return f.pingErr }
func (f *fakePG) Close() error {
	f.closed = true
	return f.closeErr
}

// bareQuerier has no Ping or Close
type bareQuerier struct{}

func (bareQuerier) Exec(context.Context, string, ...any) (CommandTag, error) { return nil, nil }
func (bareQuerier) Query(context.Context, string, ...any) (Rows, error)      { return nil, nil }
func (bareQuerier) QueryRow(context.Context, string, ...any) Row             { return nil }

func TestOpen_NothingEnabled(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{AppName: "spoofwatch"})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.PG != nil || s.CH != nil {
		t.Fatalf("backends should stay nil: %+v", s)
	}
	if err := s.Guard(context.Background()); err != nil {
		t.Fatalf("Guard with no backends: %v", err)
	}
	if err := s.Close(context.Background()); err != nil {
		t.Fatalf("Close with no backends: %v", err)
	}
}

func TestOpen_BadPostgresURL(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "postgres://%zz"}})
	if err == nil || !strings.HasPrefix(err.Error(), "store: postgres:") {
		t.Fatalf("want postgres error, got %v", err)
	}
}

func TestOpen_ClickhouseIsLazy(t *testing.T) {
	t.Parallel()

	s, err := Open(context.Background(), Config{CH: CHConfig{
		Enabled: true, URL: "clickhouse://default:@127.0.0.1:1/spoofwatch", ClientTag: "scan",
	}})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if s.CH == nil || s.PG != nil {
		t.Fatalf("only clickhouse should be set: %+v", s)
	}
	_ = s.Close(context.Background())
}

func TestGuard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	var nilStore *Store
	if err := nilStore.Guard(ctx); err == nil {
		t.Fatalf("nil store should fail")
	}

	if err := (&Store{PG: bareQuerier{}}).Guard(ctx); err != nil {
		t.Fatalf("unpingable backend should be skipped: %v", err)
	}
	if err := (&Store{PG: &fakePG{}}).Guard(ctx); err != nil {
		t.Fatalf("healthy pg: %v", err)
	}

	err := (&Store{PG: &fakePG{pingErr: errors.New("refused")}, CH: &columnar{}}).Guard(ctx)
	if err == nil {
		t.Fatalf("want joined error")
	}
	for _, want := range []string{"pg: refused", "ch: " + errCHNotConnected.Error()} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q missing %q", err, want)
		}
	}
}

func TestClose_ClosesEveryBackend(t *testing.T) {
	t.Parallel()

	pg := &fakePG{closeErr: errors.New("busy")}
	s := &Store{PG: pg, CH: &columnar{}}
	err := s.Close(context.Background())
	if !pg.closed {
		t.Fatalf("pg not closed")
	}
	if err == nil || !strings.Contains(err.Error(), "pg: busy") {
		t.Fatalf("close error = %v", err)
	}
}
