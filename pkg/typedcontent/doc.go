// Package typedcontent provides a typed wrapper over content-addressable
// block storage with pluggable store backends.
//
// It exposes a single Gateway interface that classifies raw file payloads
// into typed content items (images with pixel dimensions, UTF-8 text),
// packages them into immutable blocks, and stores or loads those blocks
// through a BlockStore client. Implementations of block stores (e.g.,
// memory, filesystem, S3, Redis) and annotation repositories (e.g., memory,
// Postgres) are provided under subpackages.
//
// # Classification Outcomes
//
// Building a block from a buffer has three outcomes: an image block when
// the payload sniffs as an image and its dimensions decode, a text block
// when the payload is valid UTF-8, or no block at all when the payload is
// neither. The last case is an intentional skip, reported as a nil block
// with a nil error (zero Identifier from the gateway), never as a failure.
// A payload that sniffs as an image but cannot be decoded is a hard error;
// it must not fall through to the text path.
package typedcontent
