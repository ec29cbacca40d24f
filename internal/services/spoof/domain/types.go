// Package domain defines the types of the ENS spoofing detector
package domain

import (
	"math/big"

	findingsdom "spoofwatch/internal/services/findings/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// Finding is the alert the detector emits
type Finding = findingsdom.Finding

// AlertSuffix is appended to the developer abbreviation to form the alert id
const AlertSuffix = "-ENS-SPOOFING"

// FindingName is the human title of every spoofing alert
const FindingName = "Potential ENS Spoofing"

// Registration is a decoded NameRegistered event
type Registration struct {
	Name    string
	Label   common.Hash
	Owner   common.Address
	Cost    *big.Int
	Expires *big.Int

	TxHash   common.Hash
	LogIndex uint
}

// Transaction is the slice of a mined transaction the detector looks at
type Transaction struct {
	Hash        common.Hash
	BlockNumber uint64
	Logs        []types.Log
}

// Match is a candidate that resolved to an account at the registration block
type Match struct {
	Name    string         `json:"name"`
	Account common.Address `json:"account"`
}
