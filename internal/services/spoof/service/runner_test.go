package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	perr "spoofwatch/internal/platform/errors"
	progressdom "spoofwatch/internal/services/progress/domain"
	"spoofwatch/internal/services/spoof/domain"

	ethereum "github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// fakeLogs serves logs by block and records the windows asked for
type fakeLogs struct {
	byBlock map[uint64][]types.Log
	head    uint64
	errs    []error // returned in order before serving

	mu      sync.Mutex
	windows [][2]uint64
}

func (f *fakeLogs) FilterLogs(_ context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.errs) > 0 {
		err := f.errs[0]
		f.errs = f.errs[1:]
		return nil, err
	}
	from, to := q.FromBlock.Uint64(), q.ToBlock.Uint64()
	f.windows = append(f.windows, [2]uint64{from, to})
	var out []types.Log
	for b := from; b <= to; b++ {
		out = append(out, f.byBlock[b]...)
	}
	return out, nil
}

func (f *fakeLogs) BlockNumber(context.Context) (uint64, error) { return f.head, nil }

type fakeSink struct {
	batches [][]domain.Finding
	err     error
}

func (f *fakeSink) WriteBatch(_ context.Context, xs []domain.Finding) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, xs)
	return nil
}

type fakeLedger struct {
	started  []progressdom.PageRef
	finished []progressdom.PageFinish
	startErr error
}

func (f *fakeLedger) StartPage(_ context.Context, ref progressdom.PageRef) error {
	if f.startErr != nil {
		return f.startErr
	}
	f.started = append(f.started, ref)
	return nil
}

func (f *fakeLedger) FinishPage(_ context.Context, _ progressdom.PageRef, fin progressdom.PageFinish) error {
	f.finished = append(f.finished, fin)
	return nil
}

func (f *fakeLedger) ResumeFrom(context.Context, string) (uint64, bool, error) { return 0, false, nil }

func logAt(t *testing.T, block uint64, tx string, idx uint, name string) types.Log {
	t.Helper()
	l, err := EncodeRegistration(controller, domain.Registration{Name: name, Owner: attacker})
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	l.BlockNumber = block
	l.TxHash = common.HexToHash(tx)
	l.Index = idx
	return l
}

func newRunner(t *testing.T, logs *fakeLogs, sink *fakeSink, cfg Config) *Service {
	t.Helper()
	res := &stubResolver{accounts: map[string]common.Address{"vitalik.eth": victim, "ledgerlive.eth": victim}}
	s := newTestService(res, cfg)
	s.Logs = logs
	if sink != nil {
		s.Sink = sink
	}
	s.Cfg.RetryBase = time.Millisecond
	return s
}

func TestRunRange_PagesAndWrites(t *testing.T) {
	logs := &fakeLogs{byBlock: map[uint64][]types.Log{
		3:  {logAt(t, 3, "0x1", 0, "vita1ik")},
		15: {logAt(t, 15, "0x2", 0, "1edgerlive")},
		22: {logAt(t, 22, "0x3", 0, "unrelated")},
	}}
	sink := &fakeSink{}
	s := newRunner(t, logs, sink, Config{PageBlocks: 10})

	if err := s.RunRange(context.Background(), 1, 25); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	want := [][2]uint64{{1, 10}, {11, 20}, {21, 25}}
	if len(logs.windows) != len(want) {
		t.Fatalf("windows = %v", logs.windows)
	}
	for i := range want {
		if logs.windows[i] != want[i] {
			t.Fatalf("window %d = %v, want %v", i, logs.windows[i], want[i])
		}
	}
	if len(sink.batches) != 2 {
		t.Fatalf("batches = %d, want 2 (empty pages are not written)", len(sink.batches))
	}
	if sink.batches[0][0].ImpersonatingName != "vita1ik" || sink.batches[1][0].ImpersonatingName != "1edgerlive" {
		t.Fatalf("unexpected batches %+v", sink.batches)
	}
	if sink.batches[0][0].BlockNumber != 3 {
		t.Fatalf("block = %d", sink.batches[0][0].BlockNumber)
	}
}

func TestRunRange_SingleBlock(t *testing.T) {
	logs := &fakeLogs{}
	s := newRunner(t, logs, &fakeSink{}, Config{PageBlocks: 10})
	if err := s.RunRange(context.Background(), 7, 7); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	if len(logs.windows) != 1 || logs.windows[0] != [2]uint64{7, 7} {
		t.Fatalf("windows = %v", logs.windows)
	}
}

func TestRunRange_DryRunSkipsWrites(t *testing.T) {
	logs := &fakeLogs{byBlock: map[uint64][]types.Log{3: {logAt(t, 3, "0x1", 0, "vita1ik")}}}
	sink := &fakeSink{}
	s := newRunner(t, logs, sink, Config{PageBlocks: 10, DryRun: true})
	if err := s.RunRange(context.Background(), 1, 5); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	if len(sink.batches) != 0 {
		t.Fatalf("dry run wrote %d batches", len(sink.batches))
	}
}

func TestRunRange_RetriesTransient(t *testing.T) {
	logs := &fakeLogs{
		byBlock: map[uint64][]types.Log{2: {logAt(t, 2, "0x1", 0, "vita1ik")}},
		errs:    []error{perr.Unavailablef("rpc 502"), perr.Unavailablef("rpc 502")},
	}
	sink := &fakeSink{}
	s := newRunner(t, logs, sink, Config{PageBlocks: 10, MaxRetries: 3})
	if err := s.RunRange(context.Background(), 1, 5); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	if len(sink.batches) != 1 {
		t.Fatalf("batches = %d", len(sink.batches))
	}
}

func TestRunRange_GivesUp(t *testing.T) {
	cases := []struct {
		name string
		errs []error
		code perr.ErrorCode
		left int
	}{
		{"non-retryable", []error{perr.InvalidArgf("bad filter"), perr.Unavailablef("unused")}, perr.ErrorCodeInvalidArgument, 1},
		{"exhausted", []error{perr.Unavailablef("a"), perr.Unavailablef("b")}, perr.ErrorCodeUnavailable, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			logs := &fakeLogs{errs: tc.errs}
			s := newRunner(t, logs, &fakeSink{}, Config{PageBlocks: 10, MaxRetries: 2})
			err := s.RunRange(context.Background(), 1, 5)
			if perr.CodeOf(err) != tc.code {
				t.Fatalf("err = %v, want code %v", err, tc.code)
			}
			if len(logs.errs) != tc.left {
				t.Fatalf("attempts left unused = %d, want %d", len(logs.errs), tc.left)
			}
		})
	}
}

func TestRunRange_SinkErrorStops(t *testing.T) {
	boom := errors.New("disk full")
	logs := &fakeLogs{byBlock: map[uint64][]types.Log{
		2:  {logAt(t, 2, "0x1", 0, "vita1ik")},
		12: {logAt(t, 12, "0x2", 0, "vita1ik")},
	}}
	s := newRunner(t, logs, &fakeSink{err: boom}, Config{PageBlocks: 10})
	if err := s.RunRange(context.Background(), 1, 20); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(logs.windows) != 1 {
		t.Fatalf("scan continued after a sink failure: %v", logs.windows)
	}
}

func TestRunRange_BadInput(t *testing.T) {
	s := newRunner(t, &fakeLogs{}, &fakeSink{}, Config{})
	if err := s.RunRange(context.Background(), 10, 1); perr.CodeOf(err) != perr.ErrorCodeInvalidArgument {
		t.Fatalf("err = %v", err)
	}
	s.Logs = nil
	if err := s.RunRange(context.Background(), 1, 2); perr.CodeOf(err) != perr.ErrorCodeConfig {
		t.Fatalf("err = %v", err)
	}
}

func TestGroupByTx(t *testing.T) {
	a1 := logAt(t, 5, "0xa", 1, "x")
	a0 := logAt(t, 5, "0xa", 0, "y")
	b0 := logAt(t, 4, "0xb", 3, "z")
	b0.TxIndex = 9

	got := GroupByTx([]types.Log{a1, b0, a0})
	if len(got) != 2 {
		t.Fatalf("txs = %d", len(got))
	}
	if got[0].Hash != common.HexToHash("0xb") || got[0].BlockNumber != 4 {
		t.Fatalf("first tx = %+v", got[0])
	}
	if got[1].Hash != common.HexToHash("0xa") || len(got[1].Logs) != 2 || got[1].Logs[0].Index != 0 {
		t.Fatalf("second tx = %+v", got[1])
	}
	if GroupByTx(nil) != nil {
		t.Fatalf("nil in, nil out")
	}
}

func TestRunRange_RecordsPages(t *testing.T) {
	logs := &fakeLogs{byBlock: map[uint64][]types.Log{
		3:  {logAt(t, 3, "0x1", 0, "vita1ik"), logAt(t, 3, "0x1", 1, "unrelated")},
		15: {logAt(t, 15, "0x2", 0, "zzzzzzz")},
	}}
	ledger := &fakeLedger{}
	s := newRunner(t, logs, &fakeSink{}, Config{PageBlocks: 10})
	s.Progress = ledger

	if err := s.RunRange(context.Background(), 1, 20); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	if len(ledger.started) != 2 || len(ledger.finished) != 2 {
		t.Fatalf("started=%d finished=%d", len(ledger.started), len(ledger.finished))
	}
	if ref := ledger.started[1]; ref.From != 11 || ref.To != 20 || ref.Controller != controller.Hex() {
		t.Fatalf("second page ref = %+v", ref)
	}
	first := ledger.finished[0]
	if first.Status != progressdom.StatusDone || first.Logs != 2 || first.Transactions != 1 || first.Findings != 1 {
		t.Fatalf("first page = %+v", first)
	}
	if second := ledger.finished[1]; second.Findings != 0 || second.Transactions != 1 {
		t.Fatalf("second page = %+v", second)
	}
}

func TestRunRange_RecordsFailedPage(t *testing.T) {
	logs := &fakeLogs{errs: []error{perr.InvalidArgf("bad filter")}}
	ledger := &fakeLedger{}
	s := newRunner(t, logs, &fakeSink{}, Config{PageBlocks: 10})
	s.Progress = ledger

	if err := s.RunRange(context.Background(), 1, 20); err == nil {
		t.Fatalf("expected error")
	}
	if len(ledger.finished) != 1 {
		t.Fatalf("finished = %d", len(ledger.finished))
	}
	if fin := ledger.finished[0]; fin.Status != progressdom.StatusError || fin.ErrText == "" {
		t.Fatalf("finish = %+v", fin)
	}
}

func TestRunRange_LedgerSkippedOnDryRun(t *testing.T) {
	ledger := &fakeLedger{}
	s := newRunner(t, &fakeLogs{}, nil, Config{PageBlocks: 10, DryRun: true})
	s.Sink = nil
	s.Progress = ledger
	if err := s.RunRange(context.Background(), 1, 5); err != nil {
		t.Fatalf("RunRange: %v", err)
	}
	if len(ledger.started) != 0 {
		t.Fatalf("dry run touched the ledger")
	}
}

func TestRunRange_LedgerErrorStops(t *testing.T) {
	boom := errors.New("ledger down")
	logs := &fakeLogs{}
	s := newRunner(t, logs, &fakeSink{}, Config{PageBlocks: 10})
	s.Progress = &fakeLedger{startErr: boom}
	if err := s.RunRange(context.Background(), 1, 5); !errors.Is(err, boom) {
		t.Fatalf("err = %v", err)
	}
	if len(logs.windows) != 0 {
		t.Fatalf("scanned without a ledger row")
	}
}
