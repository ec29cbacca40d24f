// Package namehash implements the ENS name hash (EIP-137)
package namehash

import (
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// Sum returns the node for name; the empty name is the zero node
// Labels are folded right to left: node = keccak256(node ++ keccak256(label))
func Sum(name string) common.Hash {
	var node common.Hash
	if name == "" {
		return node
	}
	labels := strings.Split(name, ".")
	for i := len(labels) - 1; i >= 0; i-- {
		label := LabelHash(labels[i])
		node = crypto.Keccak256Hash(node.Bytes(), label.Bytes())
	}
	return node
}

// LabelHash is keccak256 of a single label
func LabelHash(label string) common.Hash {
	return crypto.Keccak256Hash([]byte(label))
}
