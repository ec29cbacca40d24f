package module

import (
	"spoofwatch/internal/core/candidates"
	"spoofwatch/internal/platform/config"

	"github.com/ethereum/go-ethereum/common"
)

// MainnetController is the ENS ETH registrar controller on mainnet
var MainnetController = common.HexToAddress("0x283Af0B28c62C092C9727F1Ee09c02CA627EB7F5")

// Options holds configuration settings for the spoof module
type Options struct {
	Controller   common.Address
	Abbreviation string
	Candidates   candidates.Config

	PageBlocks uint64
	DryRun     bool
}

// FromConfig reads CORE_SPOOF_*
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("CORE_SPOOF_")
	def := candidates.DefaultConfig()
	return Options{
		Controller:   sf.MayAddress("ENS_CONTROLLER_ADDRESS", MainnetController),
		Abbreviation: sf.MayString("DEVELOPER_ABBREVIATION", "SW"),
		Candidates: candidates.Config{
			MinASCIICharacters:        sf.MayInt("MIN_ASCII_CHARACTERS", def.MinASCIICharacters),
			MaxASCIICharacters:        sf.MayInt("MAX_ASCII_CHARACTERS", def.MaxASCIICharacters),
			MaxASCIIHomoglyphsCount:   sf.MayInt("MAX_ASCII_HOMOGLYPHS_COUNT", def.MaxASCIIHomoglyphsCount),
			MaxASCIIHomoglyphsPercent: sf.MayInt("MAX_ASCII_HOMOGLYPHS_PERCENT", def.MaxASCIIHomoglyphsPercent),
		},
		PageBlocks: sf.MayUint64("PAGE_BLOCKS", 2000),
		DryRun:     sf.MayBool("DRY_RUN", false),
	}
}
