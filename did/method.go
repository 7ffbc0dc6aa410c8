package did

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/mr-tron/base58"

	"github.com/listline/identity-core/credential/common/canonical"
	"github.com/listline/identity-core/credential/common/digest"
	"github.com/listline/identity-core/credential/common/dto"
	"github.com/listline/identity-core/signer"
)

// scidPlaceholder stands in for the self-certifying identifier while it is
// being derived from the document that will contain it.
const scidPlaceholder = "{SCID}"

const methodVersion = "did:webvh:1.0"

// Method self-certifies a DID document and produces its log. The signer is an
// injected capability: the method calls back into it whenever it needs a
// signature over its own canonical entry form.
type Method interface {
	Create(ctx context.Context, doc Document, params Parameters, s signer.Signer) (*Identity, error)
}

// WebVH creates versioned-history DIDs with a web-servable log. Creation is
// single-shot; there is no update or rotation flow.
type WebVH struct{}

// NewWebVH returns the default DID method implementation.
func NewWebVH() *WebVH {
	return &WebVH{}
}

// Create derives the SCID from the placeholder form of the first log entry,
// substitutes it throughout, and self-certifies the entry with s.
func (m *WebVH) Create(ctx context.Context, doc Document, params Parameters, s signer.Signer) (*Identity, error) {
	if !strings.Contains(doc.ID, scidPlaceholder) {
		return nil, fmt.Errorf("document id must contain the SCID placeholder")
	}
	if len(params.UpdateKeys) == 0 {
		return nil, fmt.Errorf("update keys required")
	}
	if params.Method == "" {
		params.Method = methodVersion
	}
	params.SCID = scidPlaceholder

	entry := LogEntry{
		VersionID:   scidPlaceholder,
		VersionTime: time.Now().UTC().Format(time.RFC3339),
		Parameters:  params,
		State:       doc,
	}

	scid, err := entryHash(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to derive SCID: %w", err)
	}

	entry, err = substituteSCID(entry, scid)
	if err != nil {
		return nil, err
	}

	versionHash, err := entryHash(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to hash log entry: %w", err)
	}
	entry.VersionID = "1-" + versionHash

	proof, err := certifyEntry(ctx, entry, s)
	if err != nil {
		return nil, err
	}
	entry.Proof = []dto.Proof{*proof}

	return &Identity{
		DID:      entry.State.ID,
		Document: entry.State,
		Log:      []LogEntry{entry},
	}, nil
}

// entryHash returns the base58 encoding of the SHA-256 hash of the entry's
// canonical form, proof excluded.
func entryHash(entry LogEntry) (string, error) {
	entry.Proof = nil

	data, err := canonical.Marshal(entry)
	if err != nil {
		return "", err
	}

	hash := sha256.Sum256(data)

	return base58.Encode(hash[:]), nil
}

// substituteSCID replaces the placeholder with the derived SCID everywhere in
// the entry, including inside verification method ids.
func substituteSCID(entry LogEntry, scid string) (LogEntry, error) {
	encoded, err := json.Marshal(entry)
	if err != nil {
		return LogEntry{}, fmt.Errorf("failed to marshal log entry: %w", err)
	}

	replaced := strings.ReplaceAll(string(encoded), scidPlaceholder, scid)

	var out LogEntry
	if err := json.Unmarshal([]byte(replaced), &out); err != nil {
		return LogEntry{}, fmt.Errorf("failed to rebuild log entry: %w", err)
	}

	return out, nil
}

// certifyEntry signs the log entry with the same digest pipeline used for
// credentials.
func certifyEntry(ctx context.Context, entry LogEntry, s signer.Signer) (*dto.Proof, error) {
	proof := &dto.Proof{
		Type:               "DataIntegrityProof",
		Created:            time.Now().UTC().Format(time.RFC3339),
		VerificationMethod: s.VerificationMethodID(),
		ProofPurpose:       "assertionMethod",
		Cryptosuite:        "eddsa-jcs-2022",
	}

	entry.Proof = nil
	encoded, err := json.Marshal(entry)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal log entry: %w", err)
	}

	var entryDoc map[string]any
	if err := json.Unmarshal(encoded, &entryDoc); err != nil {
		return nil, fmt.Errorf("failed to rebuild log entry document: %w", err)
	}

	signingInput, err := digest.Compute(entryDoc, proof.Options())
	if err != nil {
		return nil, err
	}

	proofValue, err := s.Sign(ctx, signingInput)
	if err != nil {
		return nil, fmt.Errorf("failed to self-certify log entry: %w", err)
	}
	proof.ProofValue = proofValue

	return proof, nil
}
