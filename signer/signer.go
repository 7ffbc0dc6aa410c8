// Package signer produces data-integrity proof values over signing digests.
// Private key material never enters the process; signing is delegated to the
// custodial key-management service.
package signer

import (
	"context"
	"crypto/ed25519"
	"errors"
)

// ErrInvalidSignatureLength is returned when the normalized signature is not
// exactly 64 bytes.
var ErrInvalidSignatureLength = errors.New("invalid signature length")

// Signer signs a precomputed digest and returns a multibase-encoded proof
// value. Implementations are injected into the credential and DID issuers.
type Signer interface {
	// Sign signs the digest as-is and returns the base58-btc multibase
	// proof value.
	Sign(ctx context.Context, digest []byte) (string, error)

	// VerificationMethodID identifies the verification method holding the
	// public half of the signing key.
	VerificationMethodID() string
}

// VerifyDigest reports whether sig is a valid Ed25519 signature over digest
// by pub. All inputs are passed explicitly; nothing is read from package or
// library globals.
func VerifyDigest(pub ed25519.PublicKey, digest, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}

	return ed25519.Verify(pub, digest, sig)
}
