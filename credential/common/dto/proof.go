package dto

// Proof represents a Data Integrity proof attached to a signed document.
type Proof struct {
	Type               string `json:"type"`
	Created            string `json:"created"`
	VerificationMethod string `json:"verificationMethod"`
	ProofPurpose       string `json:"proofPurpose"`
	ProofValue         string `json:"proofValue,omitempty"`
	Cryptosuite        string `json:"cryptosuite,omitempty"`
	Challenge          string `json:"challenge,omitempty"`
	Domain             string `json:"domain,omitempty"`
}

// Options returns the proof as a map suitable for digest computation. The
// proofValue is never included: the value being computed cannot be part of
// its own input.
func (p *Proof) Options() map[string]any {
	opts := map[string]any{
		"type":               p.Type,
		"created":            p.Created,
		"verificationMethod": p.VerificationMethod,
		"proofPurpose":       p.ProofPurpose,
	}
	if p.Cryptosuite != "" {
		opts["cryptosuite"] = p.Cryptosuite
	}
	if p.Challenge != "" {
		opts["challenge"] = p.Challenge
	}
	if p.Domain != "" {
		opts["domain"] = p.Domain
	}

	return opts
}
