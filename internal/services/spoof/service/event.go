package service

import (
	"math/big"

	"spoofwatch/internal/core/namehash"
	"spoofwatch/internal/platform/chain"
	perr "spoofwatch/internal/platform/errors"
	"spoofwatch/internal/services/spoof/domain"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// NameRegistered(string name, bytes32 indexed label, address indexed owner, uint cost, uint expires)
const controllerABIJSON = `[
  {"type":"event","name":"NameRegistered","anonymous":false,
   "inputs":[
     {"name":"name","type":"string","indexed":false},
     {"name":"label","type":"bytes32","indexed":true},
     {"name":"owner","type":"address","indexed":true},
     {"name":"cost","type":"uint256","indexed":false},
     {"name":"expires","type":"uint256","indexed":false}
   ]}
]`

var (
	controllerABI = chain.MustParseABI(controllerABIJSON)
	nameRegistered = controllerABI.Events["NameRegistered"]

	// NameRegisteredTopic is topic0 of the controller event
	NameRegisteredTopic = nameRegistered.ID
)

// isRegistration reports whether l is a NameRegistered log emitted by controller
func isRegistration(l types.Log, controller common.Address) bool {
	return !l.Removed &&
		l.Address == controller &&
		len(l.Topics) > 0 &&
		l.Topics[0] == NameRegisteredTopic
}

// DecodeRegistration turns a NameRegistered log into a typed record
// label must be keccak256(name); anything else is ErrorCodeMalformedEvent
func DecodeRegistration(l types.Log) (domain.Registration, error) {
	if len(l.Topics) != 3 {
		return domain.Registration{}, perr.MalformedEventf("NameRegistered: want 3 topics, got %d", len(l.Topics))
	}
	if l.Topics[0] != NameRegisteredTopic {
		return domain.Registration{}, perr.MalformedEventf("NameRegistered: unexpected topic0 %s", l.Topics[0].Hex())
	}

	vals, err := nameRegistered.Inputs.NonIndexed().Unpack(l.Data)
	if err != nil {
		return domain.Registration{}, perr.Wrap(err, perr.ErrorCodeMalformedEvent, "NameRegistered: undecodable data")
	}
	if len(vals) != 3 {
		return domain.Registration{}, perr.MalformedEventf("NameRegistered: want 3 values, got %d", len(vals))
	}
	name, ok1 := vals[0].(string)
	cost, ok2 := vals[1].(*big.Int)
	expires, ok3 := vals[2].(*big.Int)
	if !ok1 || !ok2 || !ok3 {
		return domain.Registration{}, perr.MalformedEventf("NameRegistered: unexpected value types")
	}
	if name == "" {
		return domain.Registration{}, perr.MalformedEventf("NameRegistered: empty name")
	}

	label := l.Topics[1]
	if namehash.LabelHash(name) != label {
		return domain.Registration{}, perr.MalformedEventf("NameRegistered: label %s does not hash name %q", label.Hex(), name)
	}

	return domain.Registration{
		Name:     name,
		Label:    label,
		Owner:    common.BytesToAddress(l.Topics[2].Bytes()),
		Cost:     cost,
		Expires:  expires,
		TxHash:   l.TxHash,
		LogIndex: l.Index,
	}, nil
}

// EncodeRegistration builds the log a controller would emit for reg
func EncodeRegistration(controller common.Address, reg domain.Registration) (types.Log, error) {
	cost, expires := reg.Cost, reg.Expires
	if cost == nil {
		cost = new(big.Int)
	}
	if expires == nil {
		expires = new(big.Int)
	}
	data, err := nameRegistered.Inputs.NonIndexed().Pack(reg.Name, cost, expires)
	if err != nil {
		return types.Log{}, perr.Wrap(err, perr.ErrorCodeInvalidArgument, "NameRegistered: pack")
	}
	return types.Log{
		Address: controller,
		Topics: []common.Hash{
			NameRegisteredTopic,
			namehash.LabelHash(reg.Name),
			common.BytesToHash(reg.Owner.Bytes()),
		},
		Data:   data,
		TxHash: reg.TxHash,
		Index:  reg.LogIndex,
	}, nil
}
