package memory

import (
	"bytes"
	"context"
	"sync"

	"github.com/candell/typed-content/pkg/typedcontent"
)

// Backend is an in-memory implementation of the typedcontent.BlockStore interface
type Backend struct {
	mu     sync.RWMutex
	blocks map[string][]byte
}

// New creates a new in-memory block store
func New() typedcontent.BlockStore {
	return &Backend{
		blocks: make(map[string][]byte),
	}
}

// Add stores an encoded block under its content-derived identifier.
// Re-adding bytes that are already stored is a no-op.
func (b *Backend) Add(ctx context.Context, data []byte) (typedcontent.Identifier, error) {
	id := typedcontent.IdentifyBlock(data)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.blocks[id.Hex()]; !exists {
		b.blocks[id.Hex()] = bytes.Clone(data)
	}
	return id, nil
}

// Get returns the encoded block stored under the given identifier
func (b *Backend) Get(ctx context.Context, id typedcontent.Identifier) ([]byte, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.blocks[id.Hex()]
	if !exists {
		return nil, typedcontent.ErrBlockNotFound
	}

	return bytes.Clone(data), nil
}

// Len reports how many distinct blocks are stored
func (b *Backend) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.blocks)
}
