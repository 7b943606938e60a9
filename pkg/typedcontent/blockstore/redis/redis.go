package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/candell/typed-content/pkg/typedcontent"
)

const (
	defaultURL       = "redis://localhost:6379"
	defaultKeyPrefix = "blk:"
)

// Config options for the Redis block store
type Config struct {
	URL       string        // Redis connection URL (default: redis://localhost:6379)
	KeyPrefix string        // Key prefix for block entries (default: "blk:")
	TTL       time.Duration // Optional expiry for stored blocks; 0 keeps them forever
}

// Backend is a Redis implementation of the typedcontent.BlockStore interface
type Backend struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// New creates a new Redis block store and verifies connectivity
func New(config Config) (typedcontent.BlockStore, error) {
	if config.URL == "" {
		config.URL = defaultURL
	}
	if config.KeyPrefix == "" {
		config.KeyPrefix = defaultKeyPrefix
	}

	opts, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect redis: %w", err)
	}

	return &Backend{
		client:    client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

// Add writes an encoded block under its content-derived identifier.
// SetNX keeps re-adds from resetting the TTL of an existing block.
func (b *Backend) Add(ctx context.Context, data []byte) (typedcontent.Identifier, error) {
	id := typedcontent.IdentifyBlock(data)

	if err := b.client.SetNX(ctx, b.key(id), data, b.ttl).Err(); err != nil {
		return typedcontent.Identifier{}, fmt.Errorf("redis set: %w", err)
	}

	return id, nil
}

// Get returns the encoded block stored under the given identifier
func (b *Backend) Get(ctx context.Context, id typedcontent.Identifier) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, typedcontent.ErrBlockNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get: %w", err)
	}

	return data, nil
}

// Close closes the underlying Redis client
func (b *Backend) Close() error {
	return b.client.Close()
}

// key maps an identifier to its Redis key
func (b *Backend) key(id typedcontent.Identifier) string {
	return b.keyPrefix + id.Hex()
}
