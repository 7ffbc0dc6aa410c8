// Package canonical produces deterministic JSON encodings for signing.
//
// Structurally equal documents always canonicalize to byte-identical output:
// object keys are sorted recursively, whitespace is removed, numbers use the
// fixed RFC 8785 formatting. Array element order is preserved.
package canonical

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gowebpki/jcs"
)

// ErrNotSerializable is returned when a value cannot be represented as JSON.
var ErrNotSerializable = errors.New("value is not JSON-serializable")

// Marshal returns the canonical JSON encoding of v.
func Marshal(v any) ([]byte, error) {
	encoded, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotSerializable, err)
	}

	return Transform(encoded)
}

// Transform canonicalizes raw JSON bytes. It preserves fields that are not
// represented in strongly-typed structs, which matters when hashing documents
// verbatim.
func Transform(raw []byte) ([]byte, error) {
	canonicalized, err := jcs.Transform(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize JSON: %w", err)
	}

	return canonicalized, nil
}
