// Package credential issues signed verifiable credentials for list events.
//
// A credential is constructed unsigned, digested, signed through an injected
// Signer, and returned with its proof attached. Issued credentials are
// append-only facts: a later change of state issues a new credential rather
// than mutating an old one.
package credential

import (
	"crypto/ed25519"
	"encoding/json"
	"fmt"

	"github.com/listline/identity-core/credential/common/digest"
	"github.com/listline/identity-core/credential/common/dto"
	"github.com/listline/identity-core/signer"
)

// Credential is a W3C-shaped verifiable credential. It is immutable once
// signed; the calling layer persists it as an opaque JSON string.
type Credential struct {
	Context           []string       `json:"@context"`
	Type              []string       `json:"type"`
	ID                string         `json:"id"`
	Issuer            string         `json:"issuer"`
	IssuanceDate      string         `json:"issuanceDate"`
	CredentialSubject map[string]any `json:"credentialSubject"`
	Proof             *dto.Proof     `json:"proof,omitempty"`
}

// document returns the credential without its proof as a generic JSON map,
// the form the digest is computed over.
func (c *Credential) document() (map[string]any, error) {
	unsigned := *c
	unsigned.Proof = nil

	encoded, err := json.Marshal(&unsigned)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credential: %w", err)
	}

	var doc map[string]any
	if err := json.Unmarshal(encoded, &doc); err != nil {
		return nil, fmt.Errorf("failed to rebuild credential document: %w", err)
	}

	return doc, nil
}

// SigningInput computes the digest that the credential's proof signs. The
// proof options must already be populated.
func (c *Credential) SigningInput() ([]byte, error) {
	if c.Proof == nil {
		return nil, fmt.Errorf("credential has no proof options")
	}

	doc, err := c.document()
	if err != nil {
		return nil, err
	}

	return digest.Compute(doc, c.Proof.Options())
}

// Verify checks the credential's proof against the given Ed25519 public key.
func (c *Credential) Verify(pub ed25519.PublicKey) error {
	if c.Proof == nil || c.Proof.ProofValue == "" {
		return fmt.Errorf("credential has no proof value")
	}

	signingInput, err := c.SigningInput()
	if err != nil {
		return err
	}

	sig, err := signer.DecodeProofValue(c.Proof.ProofValue)
	if err != nil {
		return err
	}

	if !signer.VerifyDigest(pub, signingInput, sig) {
		return fmt.Errorf("proof value does not verify")
	}

	return nil
}

// Serialize returns the credential as JSON, the form the calling layer
// persists.
func (c *Credential) Serialize() ([]byte, error) {
	data, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credential: %w", err)
	}

	return data, nil
}

// ParseCredential parses a persisted credential.
func ParseCredential(raw []byte) (*Credential, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("credential JSON is empty")
	}

	var c Credential
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal credential: %w", err)
	}

	return &c, nil
}
