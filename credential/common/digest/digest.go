// Package digest computes the signing input for data-integrity proofs.
package digest

import (
	"crypto/sha256"
	"fmt"

	"github.com/listline/identity-core/credential/common/canonical"
)

// Size is the length in bytes of a computed signing digest.
const Size = 2 * sha256.Size

// Compute returns the digest signed by a data-integrity proof: the SHA-256
// hash of the canonicalized proof options concatenated with the SHA-256 hash
// of the canonicalized document, proof hash first. The order is part of the
// signing contract; verification reconstructs the same concatenation.
//
// Any proofValue already present in proofOptions is stripped before hashing,
// since the signature cannot be part of its own input.
func Compute(document, proofOptions map[string]any) ([]byte, error) {
	optsCopy := make(map[string]any, len(proofOptions))
	for k, v := range proofOptions {
		if k != "proofValue" {
			optsCopy[k] = v
		}
	}

	proofCanonical, err := canonical.Marshal(optsCopy)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize proof options: %w", err)
	}

	docCanonical, err := canonical.Marshal(document)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}

	proofHash := sha256.Sum256(proofCanonical)
	docHash := sha256.Sum256(docCanonical)

	out := make([]byte, 0, Size)
	out = append(out, proofHash[:]...)
	out = append(out, docHash[:]...)

	return out, nil
}
