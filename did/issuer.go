// Package did creates self-certifying decentralized identifiers backed by a
// custodial signing key.
package did

import (
	"context"
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/multiformats/go-multibase"

	"github.com/listline/identity-core/kms"
	"github.com/listline/identity-core/signer"
)

// multicodec varint code for ed25519-pub.
const (
	multicodecEd25519Hi = 0xed
	multicodecEd25519Lo = 0x01
)

// Issuer mints identities. The DID method is injectable; the default is the
// versioned-history web method.
type Issuer struct {
	method Method
}

// IssuerOption configures an Issuer.
type IssuerOption func(*Issuer)

// WithMethod sets the DID method implementation.
func WithMethod(m Method) IssuerOption {
	return func(i *Issuer) {
		i.method = m
	}
}

// NewIssuer creates a DID issuer.
func NewIssuer(opts ...IssuerOption) *Issuer {
	issuer := &Issuer{
		method: NewWebVH(),
	}
	for _, opt := range opts {
		opt(issuer)
	}

	return issuer
}

// CreateDID builds an identifier document for the resolved key and delegates
// self-certification to the DID method. Two verification methods are always
// minted over the same key material: one for authentication, one for
// assertions. Creation is fatal on failure; callers surface it rather than
// degrade.
func (i *Issuer) CreateDID(ctx context.Context, key *kms.SigningKeyHandle, s signer.Signer, domain, pathSlug string) (*Identity, error) {
	if key == nil {
		return nil, fmt.Errorf("signing key handle required")
	}
	if s == nil {
		return nil, fmt.Errorf("signer required")
	}
	if domain == "" || pathSlug == "" {
		return nil, fmt.Errorf("domain and path slug required")
	}

	publicKeyMultibase, err := multikey(key.Address)
	if err != nil {
		return nil, err
	}

	base := fmt.Sprintf("did:webvh:%s:%s:%s", scidPlaceholder, domain, pathSlug)
	doc := Document{
		Context: []string{
			"https://www.w3.org/ns/did/v1",
			"https://w3id.org/security/multikey/v1",
		},
		ID: base,
		VerificationMethod: []VerificationMethod{
			{
				ID:                 base + FragmentAuthentication,
				Type:               "Multikey",
				Controller:         base,
				PublicKeyMultibase: publicKeyMultibase,
			},
			{
				ID:                 base + FragmentAssertionMethod,
				Type:               "Multikey",
				Controller:         base,
				PublicKeyMultibase: publicKeyMultibase,
			},
		},
		Authentication:  []string{FragmentAuthentication},
		AssertionMethod: []string{FragmentAssertionMethod},
	}

	params := Parameters{
		UpdateKeys: []string{key.VerificationMethodID},
		Portable:   false,
	}

	identity, err := i.method.Create(ctx, doc, params, s)
	if err != nil {
		return nil, fmt.Errorf("failed to create identity: %w", err)
	}

	return identity, nil
}

// multikey converts a base58 account address to the multibase encoding of the
// multicodec-prefixed Ed25519 public key.
func multikey(address string) (string, error) {
	pub, err := base58.Decode(address)
	if err != nil {
		return "", fmt.Errorf("failed to decode account address %q: %w", address, err)
	}

	prefixed := append([]byte{multicodecEd25519Hi, multicodecEd25519Lo}, pub...)
	encoded, err := multibase.Encode(multibase.Base58BTC, prefixed)
	if err != nil {
		return "", fmt.Errorf("failed to encode public key: %w", err)
	}

	return encoded, nil
}
