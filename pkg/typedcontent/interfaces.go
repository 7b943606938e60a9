package typedcontent

import (
	"context"
)

// BlockStore defines the client interface for content-addressable block
// store backends. Backends derive identifiers from block content (see
// IdentifyBlock), so adding the same bytes twice yields the same
// identifier on every backend.
type BlockStore interface {
	// Add writes an encoded block and returns its content-derived identifier.
	// Adding bytes that are already stored is not an error.
	Add(ctx context.Context, data []byte) (Identifier, error)

	// Get returns the encoded block stored under the given identifier.
	// Unknown identifiers are reported as ErrBlockNotFound.
	Get(ctx context.Context, id Identifier) ([]byte, error)
}

// Gateway defines the typed store/load surface over a block store client.
//
// All Gateway methods share one client handle: loads run concurrently with
// each other, while stores are exclusive with everything else.
type Gateway interface {
	// StoreFile classifies the file at path and stores the resulting block.
	// A zero Identifier with a nil error means the payload was skipped
	// (neither image nor UTF-8 text); nothing was written.
	StoreFile(ctx context.Context, path string) (Identifier, error)

	// StoreBytes classifies an in-memory buffer and stores the resulting
	// block. Skip semantics match StoreFile.
	StoreBytes(ctx context.Context, buf []byte) (Identifier, error)

	// Load parses identifier text, fetches the block it names, and returns
	// the typed content item. Malformed identifier text is an input error
	// (ErrMalformedIdentifier), never a store error.
	Load(ctx context.Context, identifier string) (ContentItem, error)
}

// EventSink defines the interface for gateway event handling
type EventSink interface {
	// BlockStored is fired after a block is written to the store
	BlockStored(ctx context.Context, id Identifier, block *ContentItemBlock) error

	// BlockLoaded is fired after a block is fetched and decoded
	BlockLoaded(ctx context.Context, id Identifier, item ContentItem) error

	// BlockSkipped is fired when classification produces no block
	BlockSkipped(ctx context.Context, source string, sizeBytes uint64) error
}
