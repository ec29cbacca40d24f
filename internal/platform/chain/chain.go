// Package chain is a thin Ethereum JSON-RPC reader: pinned contract calls,
// log filtering and head lookups over one node
package chain

import (
	"context"
	"math/big"
	"sync"
	"time"

	"spoofwatch/internal/platform/config"
	perr "spoofwatch/internal/platform/errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// DefaultTimeout bounds a single RPC round trip when the caller has no deadline
const DefaultTimeout = 4 * time.Second

// Reader is what services need from a node
type Reader interface {
	ethereum.ContractCaller
	FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error)
	BlockNumber(ctx context.Context) (uint64, error)
	Ping(ctx context.Context) error
}

// Config configures the node connection
type Config struct {
	URL     string
	Timeout time.Duration
}

// FromConfig reads SERVICE_ETH_* (RPC_URL, TIMEOUT)
func FromConfig(cfg config.Conf) Config {
	c := cfg.Prefix("SERVICE_ETH_")
	return Config{
		URL:     c.MustURL("RPC_URL").String(),
		Timeout: c.MayDuration("TIMEOUT", DefaultTimeout),
	}
}

// Node dials lazily on first use and keeps the connection for the process lifetime
type Node struct {
	cfg Config

	mu     sync.Mutex
	client *rpc.Client
	eth    *ethclient.Client
}

var _ Reader = (*Node)(nil)

// New returns an undialed Node
func New(cfg Config) *Node {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Node{cfg: cfg}
}

// URL returns the configured endpoint
func (n *Node) URL() string { return n.cfg.URL }

// dial is swapped in tests
var dial = rpc.DialContext

func (n *Node) ethClient(ctx context.Context) (*ethclient.Client, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.eth != nil {
		return n.eth, nil
	}
	if n.cfg.URL == "" {
		return nil, perr.New(perr.ErrorCodeConfig, "chain: rpc url not configured")
	}
	client, err := dial(ctx, n.cfg.URL)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "chain: couldn't connect to %s", n.cfg.URL)
	}
	n.client = client
	n.eth = ethclient.NewClient(client)
	return n.eth, nil
}

// bound applies the node timeout unless ctx already carries a deadline
func (n *Node) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if _, ok := ctx.Deadline(); ok {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, n.cfg.Timeout)
}

// CallContract executes msg against the state at blockNumber (nil = latest)
func (n *Node) CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error) {
	ethcli, err := n.ethClient(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := n.bound(ctx)
	defer cancel()
	return ethcli.CallContract(ctx, msg, blockNumber)
}

// FilterLogs returns the logs matching q
func (n *Node) FilterLogs(ctx context.Context, q ethereum.FilterQuery) ([]types.Log, error) {
	ethcli, err := n.ethClient(ctx)
	if err != nil {
		return nil, err
	}
	ctx, cancel := n.bound(ctx)
	defer cancel()
	logs, err := ethcli.FilterLogs(ctx, q)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "chain: filter logs")
	}
	return logs, nil
}

// BlockNumber returns the current head
func (n *Node) BlockNumber(ctx context.Context) (uint64, error) {
	ethcli, err := n.ethClient(ctx)
	if err != nil {
		return 0, err
	}
	ctx, cancel := n.bound(ctx)
	defer cancel()
	head, err := ethcli.BlockNumber(ctx)
	if err != nil {
		return 0, perr.Wrap(err, perr.ErrorCodeUnavailable, "chain: block number")
	}
	return head, nil
}

// Ping checks the node answers eth_chainId
func (n *Node) Ping(ctx context.Context) error {
	ethcli, err := n.ethClient(ctx)
	if err != nil {
		return err
	}
	ctx, cancel := n.bound(ctx)
	defer cancel()
	if _, err := ethcli.ChainID(ctx); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "chain: ping")
	}
	return nil
}

// Close releases the connection; the Node redials on next use
func (n *Node) Close() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.client != nil {
		n.client.Close()
	}
	n.client = nil
	n.eth = nil
}
