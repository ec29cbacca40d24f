package service

import (
	"context"
	"strings"

	perr "spoofwatch/internal/platform/errors"
	resolverdom "spoofwatch/internal/services/resolver/domain"
	"spoofwatch/internal/services/spoof/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Candidates lists the originals name could be impersonating under the configured thresholds
func (s *Service) Candidates(_ context.Context, in domain.CandidatesInput) (domain.CandidatesOutput, error) {
	names := s.Gen.Generate(in.Name, s.Cfg.Candidates).Names()
	if names == nil {
		names = []string{}
	}
	return domain.CandidatesOutput{
		Name:       in.Name,
		Normalized: s.Gen.Normalize(in.Name),
		Count:      len(names),
		Candidates: names,
	}, nil
}

// Check runs detection for a registration that has not happened, at the
// given block or the chain head; nothing is written to the sink
func (s *Service) Check(ctx context.Context, in domain.CheckInput) ([]domain.Finding, error) {
	if !common.IsHexAddress(in.Account) {
		return nil, perr.WithField(perr.InvalidArgf("account must be a hex address"), "account")
	}
	block, err := s.blockOrHead(ctx, in.Block)
	if err != nil {
		return nil, err
	}

	l, err := EncodeRegistration(s.Cfg.Controller, domain.Registration{
		Name:  in.Name,
		Owner: common.HexToAddress(in.Account),
	})
	if err != nil {
		return nil, err
	}
	l.BlockNumber = block

	out, err := s.HandleTransaction(ctx, domain.Transaction{BlockNumber: block, Logs: []types.Log{l}})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Finding{}
	}
	return out, nil
}

// Resolve returns the account name pointed to at block (0 = chain head)
func (s *Service) Resolve(ctx context.Context, in domain.ResolveInput) (domain.ResolveOutput, error) {
	name := strings.ToLower(strings.TrimSpace(in.Name))
	if !strings.HasSuffix(name, resolverdom.TLD) {
		name += resolverdom.TLD
	}
	block, err := s.blockOrHead(ctx, in.Block)
	if err != nil {
		return domain.ResolveOutput{}, err
	}
	acct, ok, err := s.Resolver.Resolve(ctx, name, block)
	if err != nil {
		return domain.ResolveOutput{}, err
	}
	out := domain.ResolveOutput{Name: name, Block: block, Found: ok}
	if ok {
		out.Account = acct.Hex()
	}
	return out, nil
}

func (s *Service) blockOrHead(ctx context.Context, block uint64) (uint64, error) {
	if block > 0 {
		return block, nil
	}
	if s.Logs == nil {
		return 0, perr.Configf("spoof: block required without a chain reader")
	}
	head, err := s.Logs.BlockNumber(ctx)
	if err != nil {
		return 0, perr.WithOp(err, "spoof.blockOrHead")
	}
	return head, nil
}
