// Package service resolves ENS names against historical chain state
package service

import (
	"context"
	"math/big"
	"sync"

	"spoofwatch/internal/core/namehash"
	"spoofwatch/internal/platform/chain"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/platform/logger"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// Config for the resolver service
type Config struct {
	Registry common.Address
}

// Service implements domain.ResolverPort
type Service struct {
	caller ethereum.ContractCaller
	cfg    Config
	log    *logger.Logger

	mu        sync.Mutex
	resolvers map[common.Address]*boundResolver
}

// boundResolver is a resolver contract bound to the service's caller
type boundResolver struct {
	address common.Address
	caller  ethereum.ContractCaller
}

func (r *boundResolver) addr(ctx context.Context, node common.Hash, block *big.Int) (common.Address, error) {
	out, err := chain.ReadContract(ctx, r.caller, block, r.address, &resolverABI, "addr", [32]byte(node))
	if err != nil {
		return common.Address{}, err
	}
	return asAddress(out, "addr")
}

// New constructs a resolver service over caller
func New(caller ethereum.ContractCaller, cfg Config) *Service {
	return &Service{
		caller:    caller,
		cfg:       cfg,
		log:       logger.Named("resolver"),
		resolvers: make(map[common.Address]*boundResolver),
	}
}

// Resolve reads registry.resolver(node) then resolver.addr(node), both pinned at atBlock.
// A name with a resolver counts as present even when its addr record is zero.
func (s *Service) Resolve(ctx context.Context, name string, atBlock uint64) (common.Address, bool, error) {
	if s == nil || s.caller == nil {
		return common.Address{}, false, perr.Configf("resolver: not initialized")
	}
	if s.cfg.Registry == (common.Address{}) {
		return common.Address{}, false, perr.Configf("resolver: registry address not configured")
	}

	node := namehash.Sum(name)
	block := chain.AtBlock(atBlock)

	out, err := chain.ReadContract(ctx, s.caller, block, s.cfg.Registry, &registryABI, "resolver", [32]byte(node))
	if err != nil {
		return common.Address{}, false, perr.WithOp(err, "registry.resolver")
	}
	resolverAddr, err := asAddress(out, "resolver")
	if err != nil {
		return common.Address{}, false, err
	}
	if resolverAddr == (common.Address{}) {
		return common.Address{}, false, nil
	}

	account, err := s.bind(resolverAddr).addr(ctx, node, block)
	if err != nil {
		return common.Address{}, false, perr.WithOp(err, "resolver.addr")
	}

	s.log.Debug().
		Str("name", name).
		Uint64("block", atBlock).
		Str("account", account.Hex()).
		Msg("resolved")
	return account, true, nil
}

// bind returns the cached resolver handle for addr, creating it on first use
func (s *Service) bind(addr common.Address) *boundResolver {
	s.mu.Lock()
	defer s.mu.Unlock()
	if r, ok := s.resolvers[addr]; ok {
		return r
	}
	r := &boundResolver{address: addr, caller: s.caller}
	s.resolvers[addr] = r
	return r
}

// cached reports how many resolver handles are held
func (s *Service) cached() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.resolvers)
}

func asAddress(out []any, method string) (common.Address, error) {
	if len(out) != 1 {
		return common.Address{}, perr.Unavailablef("resolver: %s returned %d values", method, len(out))
	}
	a, ok := out[0].(common.Address)
	if !ok {
		return common.Address{}, perr.Unavailablef("resolver: %s returned %T", method, out[0])
	}
	return a, nil
}
