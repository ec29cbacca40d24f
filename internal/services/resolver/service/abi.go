package service

import "spoofwatch/internal/platform/chain"

const registryABIJSON = `[
  {"type":"function","name":"resolver","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],
   "outputs":[{"name":"","type":"address"}]}
]`

const resolverABIJSON = `[
  {"type":"function","name":"addr","stateMutability":"view",
   "inputs":[{"name":"node","type":"bytes32"}],
   "outputs":[{"name":"","type":"address"}]}
]`

var (
	registryABI = chain.MustParseABI(registryABIJSON)
	resolverABI = chain.MustParseABI(resolverABIJSON)
)
