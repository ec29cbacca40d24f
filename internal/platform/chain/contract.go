package chain

import (
	"context"
	"math/big"
	"strings"

	perr "spoofwatch/internal/platform/errors"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// MustParseABI parses a JSON ABI and panics on error; use for package-level ABIs
func MustParseABI(def string) abi.ABI {
	parsed, err := abi.JSON(strings.NewReader(def))
	if err != nil {
		panic(err)
	}
	return parsed
}

// AtBlock returns the block selector for a pinned read
func AtBlock(n uint64) *big.Int { return new(big.Int).SetUint64(n) }

// ReadContract packs method(args...), calls contract at block and unpacks the outputs
// Any failure (pack, call, empty or undecodable return) is ErrorCodeUnavailable
func ReadContract(
	ctx context.Context,
	caller ethereum.ContractCaller,
	block *big.Int,
	contract common.Address,
	contractABI *abi.ABI,
	method string,
	args ...any,
) ([]any, error) {
	data, err := contractABI.Pack(method, args...)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "chain: pack %s", method)
	}

	raw, err := caller.CallContract(ctx, ethereum.CallMsg{To: &contract, Data: data}, block)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "chain: call %s on %s", method, contract.Hex())
	}

	out, err := contractABI.Unpack(method, raw)
	if err != nil {
		return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "chain: unpack %s from %s", method, contract.Hex())
	}
	return out, nil
}
