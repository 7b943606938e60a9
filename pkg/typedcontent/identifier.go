package typedcontent

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// identifierPrefix is the algorithm tag carried by the textual form.
// Only SHA-256 identifiers are produced or accepted.
const identifierPrefix = "sha256:"

// Identifier is the content-derived address of a stored block. The zero
// value means "no identifier" and is what store operations return when
// classification skips the payload. Identifiers are comparable with ==.
type Identifier struct {
	digest string // lowercase hex SHA-256, empty for the zero value
}

// IdentifyBlock derives the identifier for a canonically encoded block.
// Byte-identical encodings always map to the same identifier.
func IdentifyBlock(encoded []byte) Identifier {
	sum := sha256.Sum256(encoded)
	return Identifier{digest: hex.EncodeToString(sum[:])}
}

// ParseIdentifier parses the textual form "sha256:<64 lowercase hex>".
// Malformed input is reported as ErrMalformedIdentifier; it is an input
// error, distinct from any store failure.
func ParseIdentifier(s string) (Identifier, error) {
	digest, ok := strings.CutPrefix(s, identifierPrefix)
	if !ok {
		return Identifier{}, fmt.Errorf("%w: missing %q prefix in %q", ErrMalformedIdentifier, identifierPrefix, s)
	}

	raw, err := hex.DecodeString(digest)
	if err != nil {
		return Identifier{}, fmt.Errorf("%w: non-hex digest in %q: %v", ErrMalformedIdentifier, s, err)
	}
	if len(raw) != sha256.Size {
		return Identifier{}, fmt.Errorf("%w: digest length %d, want %d bytes", ErrMalformedIdentifier, len(raw), sha256.Size)
	}
	if digest != strings.ToLower(digest) {
		return Identifier{}, fmt.Errorf("%w: digest must be lowercase hex in %q", ErrMalformedIdentifier, s)
	}

	return Identifier{digest: digest}, nil
}

// String returns the canonical textual form, or "" for the zero value.
func (id Identifier) String() string {
	if id.digest == "" {
		return ""
	}
	return identifierPrefix + id.digest
}

// IsZero reports whether the identifier is the zero value.
func (id Identifier) IsZero() bool {
	return id.digest == ""
}

// Hex returns the bare lowercase hex digest without the algorithm prefix.
// Store backends use it to build object keys.
func (id Identifier) Hex() string {
	return id.digest
}
