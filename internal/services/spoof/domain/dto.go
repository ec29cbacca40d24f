package domain

// CandidatesInput asks for the lookalike originals of a name
type CandidatesInput struct {
	Name string `json:"name" validate:"required,max=255" example:"vita1ik"`
}

// CandidatesOutput lists the candidates the detector would resolve
type CandidatesOutput struct {
	Name       string   `json:"name"`
	Normalized string   `json:"normalized"`
	Count      int      `json:"count"`
	Candidates []string `json:"candidates"`
}

// CheckInput is a hypothetical registration
type CheckInput struct {
	Name    string `json:"name" validate:"required,max=255" example:"vita1ik"`
	Account string `json:"account" validate:"required,eth_addr" example:"0x000000000000000000000000000000000000dEaD"`
	Block   uint64 `json:"block" validate:"omitempty,min=1" example:"19000000"`
}

// ResolveInput asks which account a name pointed to
type ResolveInput struct {
	Name  string `json:"name" validate:"required,max=255"`
	Block uint64 `json:"block"`
}

// ResolveOutput is the account a name resolved to at Block
type ResolveOutput struct {
	Name    string `json:"name"`
	Block   uint64 `json:"block"`
	Found   bool   `json:"found"`
	Account string `json:"account,omitempty"`
}
