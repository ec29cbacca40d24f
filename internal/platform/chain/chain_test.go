package chain

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"spoofwatch/internal/platform/config"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/testkit"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/rpc"
)

const ownerABI = `[{"type":"function","name":"owner","stateMutability":"view","inputs":[{"name":"node","type":"bytes32"}],"outputs":[{"name":"","type":"address"}]}]`

var testABI = MustParseABI(ownerABI)

type fakeCaller struct {
	gotBlock *big.Int
	gotTo    common.Address
	ret      []byte
	err      error
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, block *big.Int) ([]byte, error) {
	f.gotBlock = block
	if msg.To != nil {
		f.gotTo = *msg.To
	}
	return f.ret, f.err
}

func TestReadContract_PinsBlockAndDecodes(t *testing.T) {
	want := common.HexToAddress("0x00000000000000000000000000000000000000aa")
	ret, err := testABI.Methods["owner"].Outputs.Pack(want)
	if err != nil {
		t.Fatal(err)
	}
	fc := &fakeCaller{ret: ret}
	contract := common.HexToAddress("0x0000000000000000000000000000000000000001")

	out, err := ReadContract(context.Background(), fc, AtBlock(12345), contract, &testABI, "owner", [32]byte{1})
	if err != nil {
		t.Fatalf("ReadContract: %v", err)
	}
	if got := out[0].(common.Address); got != want {
		t.Fatalf("owner = %s, want %s", got.Hex(), want.Hex())
	}
	if fc.gotBlock == nil || fc.gotBlock.Uint64() != 12345 {
		t.Fatalf("block not pinned: %v", fc.gotBlock)
	}
	if fc.gotTo != contract {
		t.Fatalf("call sent to %s", fc.gotTo.Hex())
	}
}

func TestReadContract_Failures(t *testing.T) {
	contract := common.HexToAddress("0x0000000000000000000000000000000000000001")

	tests := []struct {
		name string
		fc   *fakeCaller
	}{
		{name: "call error", fc: &fakeCaller{err: errors.New("connection refused")}},
		{name: "empty return", fc: &fakeCaller{ret: nil}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ReadContract(context.Background(), tc.fc, AtBlock(1), contract, &testABI, "owner", [32]byte{})
			if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
				t.Fatalf("want unavailable, got %v", err)
			}
		})
	}

	_, err := ReadContract(context.Background(), &fakeCaller{}, AtBlock(1), contract, &testABI, "nope")
	if !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("unknown method: want unavailable, got %v", err)
	}
}

func TestMustParseABI_PanicsOnGarbage(t *testing.T) {
	testkit.MustPanic(t, func() { MustParseABI("{not json") })
}

func TestNode_Unconfigured(t *testing.T) {
	n := New(Config{})
	_, err := n.CallContract(context.Background(), ethereum.CallMsg{}, nil)
	if !perr.IsCode(err, perr.ErrorCodeConfig) {
		t.Fatalf("want config error, got %v", err)
	}
}

func TestNode_DialFailureIsUnavailable(t *testing.T) {
	testkit.Swap(t, &dial, func(ctx context.Context, url string) (*rpc.Client, error) {
		return nil, errors.New("dial tcp: refused")
	})
	n := New(Config{URL: "http://127.0.0.1:1"})
	if err := n.Ping(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
	if _, err := n.BlockNumber(context.Background()); !perr.IsCode(err, perr.ErrorCodeUnavailable) {
		t.Fatalf("want unavailable, got %v", err)
	}
}

func TestNode_DefaultTimeout(t *testing.T) {
	n := New(Config{URL: "http://x"})
	if n.cfg.Timeout != DefaultTimeout {
		t.Fatalf("timeout = %v", n.cfg.Timeout)
	}
	if n.URL() != "http://x" {
		t.Fatalf("url = %q", n.URL())
	}
}

func TestFromConfig(t *testing.T) {
	t.Setenv("SERVICE_ETH_RPC_URL", "https://rpc.example.org/v1")
	t.Setenv("SERVICE_ETH_TIMEOUT", "")

	c := FromConfig(config.New())
	if c.URL != "https://rpc.example.org/v1" {
		t.Fatalf("url = %q", c.URL)
	}
	if c.Timeout != DefaultTimeout {
		t.Fatalf("timeout = %v, want %v", c.Timeout, DefaultTimeout)
	}

	t.Setenv("SERVICE_ETH_TIMEOUT", "9s")
	if got := FromConfig(config.New()).Timeout; got != 9*time.Second {
		t.Fatalf("timeout override = %v", got)
	}

	t.Setenv("SERVICE_ETH_RPC_URL", "/rpc")
	testkit.MustPanic(t, func() { _ = FromConfig(config.New()) })
}
