package typedcontent

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"
)

// gateway implements the Gateway interface
type gateway struct {
	mu     sync.RWMutex
	client BlockStore
	events EventSink
	logger *slog.Logger
}

// Option represents a functional option for configuring the gateway
type Option func(*gateway)

// WithEventSink sets the event sink for the gateway
func WithEventSink(sink EventSink) Option {
	return func(g *gateway) {
		g.events = sink
	}
}

// WithLogger sets the logger for the gateway
func WithLogger(logger *slog.Logger) Option {
	return func(g *gateway) {
		g.logger = logger
	}
}

// New creates a new gateway over the given block store client
func New(client BlockStore, options ...Option) (Gateway, error) {
	if client == nil {
		return nil, fmt.Errorf("block store client is required")
	}

	g := &gateway{client: client}

	for _, option := range options {
		option(g)
	}

	if g.events == nil {
		g.events = NewNoopEventSink()
	}
	if g.logger == nil {
		g.logger = slog.Default()
	}

	return g, nil
}

// Store operations

func (g *gateway) StoreFile(ctx context.Context, path string) (Identifier, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Identifier{}, fmt.Errorf("stat %s: %w", path, err)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return Identifier{}, fmt.Errorf("read %s: %w", path, err)
	}

	g.logger.Debug("classifying file", "path", path, "size_bytes", info.Size())

	return g.store(ctx, buf, path)
}

func (g *gateway) StoreBytes(ctx context.Context, buf []byte) (Identifier, error) {
	return g.store(ctx, buf, "(buffer)")
}

// store runs the shared classify/encode/add pipeline. The write lock is
// held only around the client call, not around classification.
func (g *gateway) store(ctx context.Context, buf []byte, source string) (Identifier, error) {
	start := time.Now()

	block, err := BuildBlock(buf)
	if err != nil {
		return Identifier{}, err
	}
	if block == nil {
		g.logger.Debug("skipping unclassifiable payload", "source", source, "size_bytes", len(buf))
		if err := g.events.BlockSkipped(ctx, source, uint64(len(buf))); err != nil {
			g.logger.Error("block skipped event failed", "source", source, "error", err)
		}
		return Identifier{}, nil
	}

	encoded, err := EncodeBlock(block)
	if err != nil {
		return Identifier{}, err
	}

	g.mu.Lock()
	id, err := g.client.Add(ctx, encoded)
	g.mu.Unlock()
	if err != nil {
		return Identifier{}, &StoreError{Op: "add", Err: err}
	}

	g.logger.Info("stored content block",
		"identifier", id.String(),
		"kind", block.Item.Kind(),
		"size_mb", float64(block.SizeBytes)/(1024*1024),
		"elapsed", time.Since(start))

	if err := g.events.BlockStored(ctx, id, block); err != nil {
		g.logger.Error("block stored event failed", "identifier", id.String(), "error", err)
	}

	return id, nil
}

// Load operations

func (g *gateway) Load(ctx context.Context, identifier string) (ContentItem, error) {
	start := time.Now()

	id, err := ParseIdentifier(identifier)
	if err != nil {
		return nil, err
	}

	g.mu.RLock()
	data, err := g.client.Get(ctx, id)
	g.mu.RUnlock()
	if err != nil {
		return nil, &StoreError{Op: "get", Identifier: identifier, Err: err}
	}

	block, err := DecodeBlock(data)
	if err != nil {
		return nil, fmt.Errorf("block %s: %w", identifier, err)
	}

	g.logger.Info("loaded content block",
		"identifier", identifier,
		"kind", block.Item.Kind(),
		"size_mb", float64(block.SizeBytes)/(1024*1024),
		"elapsed", time.Since(start))

	if err := g.events.BlockLoaded(ctx, id, block.Item); err != nil {
		g.logger.Error("block loaded event failed", "identifier", identifier, "error", err)
	}

	return block.Item, nil
}
