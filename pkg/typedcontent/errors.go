package typedcontent

import (
	"errors"
	"fmt"
)

// Error types
var (
	// ErrMalformedIdentifier indicates identifier text that does not parse
	ErrMalformedIdentifier = errors.New("malformed content identifier")

	// ErrBlockNotFound indicates no block is stored under an identifier
	ErrBlockNotFound = errors.New("block not found")

	// ErrUnknownKind indicates a block encoding with an unrecognized content kind
	ErrUnknownKind = errors.New("unknown content kind")

	// ErrMissingVariant indicates a block encoding whose kind tag has no matching payload
	ErrMissingVariant = errors.New("block encoding missing variant payload")
)

// ClassificationError represents a payload that sniffed as an image but
// whose dimensions could not be decoded. It is fatal: the payload must not
// be misfiled as text or silently skipped.
type ClassificationError struct {
	MimeType string
	Err      error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification failed for sniffed type %s: %v", e.MimeType, e.Err)
}

func (e *ClassificationError) Unwrap() error {
	return e.Err
}

// StoreError represents a block store failure during an add or get
// operation. Identifier is empty for add failures, where no identifier
// was produced.
type StoreError struct {
	Op         string
	Identifier string
	Err        error
}

func (e *StoreError) Error() string {
	if e.Identifier == "" {
		return fmt.Sprintf("store operation %s failed: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store operation %s failed for %s: %v", e.Op, e.Identifier, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
