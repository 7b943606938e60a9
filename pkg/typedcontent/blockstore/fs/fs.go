package fs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/candell/typed-content/pkg/typedcontent"
)

// Config options for the filesystem block store
type Config struct {
	BaseDir string // Base directory for storing blocks
}

// Backend is a filesystem implementation of the typedcontent.BlockStore
// interface. Blocks live under BaseDir sharded by the first two hex
// characters of their digest, e.g. ab/abcdef....blob.
type Backend struct {
	mu      sync.RWMutex
	baseDir string
}

// New creates a new filesystem block store
func New(config Config) (typedcontent.BlockStore, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{baseDir: config.BaseDir}, nil
}

// Add writes an encoded block under its content-derived identifier.
// The write goes to a temp file first and is committed with a rename, so
// a crash never leaves a partial block behind. Re-adding existing bytes
// is a no-op.
func (b *Backend) Add(ctx context.Context, data []byte) (typedcontent.Identifier, error) {
	id := typedcontent.IdentifyBlock(data)
	path := b.blockPath(id)

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, err := os.Stat(path); err == nil {
		return id, nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return typedcontent.Identifier{}, fmt.Errorf("failed to create shard directory: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return typedcontent.Identifier{}, fmt.Errorf("failed to write block: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return typedcontent.Identifier{}, fmt.Errorf("failed to commit block: %w", err)
	}

	return id, nil
}

// Get returns the encoded block stored under the given identifier
func (b *Backend) Get(ctx context.Context, id typedcontent.Identifier) ([]byte, error) {
	if id.IsZero() {
		return nil, typedcontent.ErrBlockNotFound
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	data, err := os.ReadFile(b.blockPath(id))
	if os.IsNotExist(err) {
		return nil, typedcontent.ErrBlockNotFound
	} else if err != nil {
		return nil, fmt.Errorf("failed to read block: %w", err)
	}

	return data, nil
}

// blockPath maps an identifier to its sharded location under baseDir
func (b *Backend) blockPath(id typedcontent.Identifier) string {
	digest := id.Hex()
	return filepath.Join(b.baseDir, digest[:2], digest+".blob")
}
