package signer

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/multiformats/go-multibase"

	"github.com/listline/identity-core/kms"
)

// RemoteSigner signs digests with a custodial key through the key-management
// service. One Sign call is exactly one signing round trip.
type RemoteSigner struct {
	client *kms.Client
	key    *kms.SigningKeyHandle
}

// NewRemoteSigner creates a signer for the given resolved key handle.
func NewRemoteSigner(client *kms.Client, key *kms.SigningKeyHandle) (*RemoteSigner, error) {
	if client == nil {
		return nil, fmt.Errorf("kms client required")
	}
	if key == nil {
		return nil, fmt.Errorf("signing key handle required")
	}

	return &RemoteSigner{client: client, key: key}, nil
}

// Sign submits the digest for remote signing and returns the normalized,
// multibase-encoded proof value.
func (s *RemoteSigner) Sign(ctx context.Context, digest []byte) (string, error) {
	parts, err := s.client.SignRawPayload(ctx, s.key.OrgID, s.key.Address, digest)
	if err != nil {
		return "", err
	}

	sig, err := NormalizeSignature(parts.R, parts.S)
	if err != nil {
		return "", err
	}

	encoded, err := multibase.Encode(multibase.Base58BTC, sig)
	if err != nil {
		return "", fmt.Errorf("failed to encode proof value: %w", err)
	}

	return encoded, nil
}

// VerificationMethodID returns the verification method id of the custodial key.
func (s *RemoteSigner) VerificationMethodID() string {
	return s.key.VerificationMethodID
}

// NormalizeSignature converts the two hex-encoded signature halves returned
// by the signing service into a canonical 64-byte Ed25519 signature. A
// 65-byte concatenation has its trailing byte dropped; the service appends a
// recovery-style byte there that carries no meaning for Ed25519. Any other
// length fails hard, never pads.
func NormalizeSignature(r, s string) ([]byte, error) {
	raw, err := hex.DecodeString(strings.TrimPrefix(r, "0x") + strings.TrimPrefix(s, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to decode signature parts: %w", err)
	}

	switch len(raw) {
	case 64:
		return raw, nil
	case 65:
		return raw[:64], nil
	default:
		return nil, fmt.Errorf("%w: expected 64 or 65 bytes, got %d", ErrInvalidSignatureLength, len(raw))
	}
}

// DecodeProofValue decodes a multibase proof value back to signature bytes.
func DecodeProofValue(proofValue string) ([]byte, error) {
	_, sig, err := multibase.Decode(proofValue)
	if err != nil {
		return nil, fmt.Errorf("failed to decode proof value: %w", err)
	}

	return sig, nil
}
