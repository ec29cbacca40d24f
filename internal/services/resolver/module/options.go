package module

import (
	"spoofwatch/internal/platform/config"

	"github.com/ethereum/go-ethereum/common"
)

// MainnetRegistry is the ENS registry with fallback on mainnet
var MainnetRegistry = common.HexToAddress("0x00000000000C2E074eC69A0dFb2997BA6C7d2e1e")

// Options holds configuration settings for the resolver module
type Options struct {
	Registry common.Address
}

// FromConfig reads CORE_SPOOF_ENS_REGISTRY_ADDRESS
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("CORE_SPOOF_ENS_")
	return Options{
		Registry: rf.MayAddress("REGISTRY_ADDRESS", MainnetRegistry),
	}
}
