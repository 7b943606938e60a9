package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/annotation"
	annomemory "github.com/candell/typed-content/pkg/typedcontent/annotation/memory"
	annopg "github.com/candell/typed-content/pkg/typedcontent/annotation/postgres"
	fsstore "github.com/candell/typed-content/pkg/typedcontent/blockstore/fs"
	memorystore "github.com/candell/typed-content/pkg/typedcontent/blockstore/memory"
	redisstore "github.com/candell/typed-content/pkg/typedcontent/blockstore/redis"
	s3store "github.com/candell/typed-content/pkg/typedcontent/blockstore/s3"
)

// Option applies configuration to a ServerConfig instance.
type Option func(*ServerConfig) error

// Load constructs a ServerConfig by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*ServerConfig, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() ServerConfig {
	return ServerConfig{
		Port:         "8080",
		Environment:  "development",
		DatabaseType: "memory",
		StoreBackend: StoreBackendConfig{
			Type:   "memory",
			Config: map[string]interface{}{},
		},
		EnableEventLogging: true,
	}
}

// ServerConfig represents server configuration for the typed-content service
type ServerConfig struct {
	Port        string
	Environment string // development, production, testing

	// Annotation database configuration
	DatabaseURL  string
	DatabaseType string // "memory", "postgres"
	DBSchema     string // Postgres schema to use (empty leaves search_path alone)

	// Block store configuration
	StoreBackend StoreBackendConfig

	// Server options
	EnableEventLogging bool
}

// StoreBackendConfig represents configuration for a block store backend
type StoreBackendConfig struct {
	Type   string // "memory", "fs", "s3", "redis"
	Config map[string]interface{}
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseType != "memory" && c.DatabaseType != "postgres" {
		return errors.New("database_type must be 'memory' or 'postgres'")
	}

	if c.DatabaseType == "postgres" && c.DatabaseURL == "" {
		return errors.New("database_url is required when using postgres")
	}

	switch c.StoreBackend.Type {
	case "memory", "fs", "s3", "redis":
	default:
		return fmt.Errorf("store backend type must be one of 'memory', 'fs', 's3', 'redis', got %q", c.StoreBackend.Type)
	}

	return nil
}

// BuildGateway creates a Gateway instance from the server configuration
func (c *ServerConfig) BuildGateway() (typedcontent.Gateway, error) {
	store, err := c.BuildBlockStore()
	if err != nil {
		return nil, fmt.Errorf("failed to build block store: %w", err)
	}

	var options []typedcontent.Option
	if c.EnableEventLogging {
		options = append(options, typedcontent.WithEventSink(typedcontent.NewLoggingEventSink(slog.Default())))
	}

	return typedcontent.New(store, options...)
}

// BuildAnnotationRepository creates an annotation Repository based on the configuration
func (c *ServerConfig) BuildAnnotationRepository() (annotation.Repository, error) {
	switch c.DatabaseType {
	case "memory":
		return annomemory.New(), nil
	case "postgres":
		if c.DatabaseURL == "" {
			return nil, errors.New("database_url is required for postgres")
		}
		cfg, err := pgxpool.ParseConfig(c.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse DATABASE_URL: %w", err)
		}
		// Optionally set search_path for the connection
		schema := c.DBSchema
		if schema != "" {
			cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
				_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
				return err
			}
		}
		pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create pgx pool: %w", err)
		}
		return annopg.NewWithPool(pool), nil
	default:
		return nil, fmt.Errorf("unsupported database type: %s", c.DatabaseType)
	}
}

// PingPostgres verifies connectivity to Postgres and optionally sets search_path for the session.
// It fails if the schema (when provided) does not exist.
func PingPostgres(databaseURL, schema string) error {
	if databaseURL == "" {
		return errors.New("database_url is required")
	}
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return fmt.Errorf("failed to parse DATABASE_URL: %w", err)
	}
	if schema != "" {
		cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
			_, err := conn.Exec(ctx, fmt.Sprintf("SET search_path TO %s", schema))
			return err
		}
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool: %w", err)
	}
	defer pool.Close()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	return nil
}

// BuildBlockStore creates a BlockStore based on the backend configuration
func (c *ServerConfig) BuildBlockStore() (typedcontent.BlockStore, error) {
	backend := c.StoreBackend
	switch backend.Type {
	case "memory":
		return memorystore.New(), nil

	case "fs":
		fsConfig := fsstore.Config{
			BaseDir: getString(backend.Config, "base_dir", "./data/blocks"),
		}
		return fsstore.New(fsConfig)

	case "s3":
		s3Config := s3store.Config{
			Region:                 getString(backend.Config, "region", "us-east-1"),
			Bucket:                 getString(backend.Config, "bucket", ""),
			AccessKeyID:            getString(backend.Config, "access_key_id", ""),
			SecretAccessKey:        getString(backend.Config, "secret_access_key", ""),
			Endpoint:               getString(backend.Config, "endpoint", ""),
			UsePathStyle:           getBool(backend.Config, "use_path_style", false),
			KeyPrefix:              getString(backend.Config, "key_prefix", ""),
			CreateBucketIfNotExist: getBool(backend.Config, "create_bucket_if_not_exist", false),
		}
		return s3store.New(s3Config)

	case "redis":
		redisConfig := redisstore.Config{
			URL:       getString(backend.Config, "url", ""),
			KeyPrefix: getString(backend.Config, "key_prefix", ""),
			TTL:       time.Duration(getInt(backend.Config, "ttl_seconds", 0)) * time.Second,
		}
		return redisstore.New(redisConfig)

	default:
		return nil, fmt.Errorf("unsupported store backend type: %s", backend.Type)
	}
}

func getString(config map[string]interface{}, key string, defaultValue string) string {
	if value, exists := config[key]; exists {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}

func getBool(config map[string]interface{}, key string, defaultValue bool) bool {
	if value, exists := config[key]; exists {
		if b, ok := value.(bool); ok {
			return b
		}
		if str, ok := value.(string); ok {
			if b, err := strconv.ParseBool(str); err == nil {
				return b
			}
		}
	}
	return defaultValue
}

func getInt(config map[string]interface{}, key string, defaultValue int) int {
	if value, exists := config[key]; exists {
		if i, ok := value.(int); ok {
			return i
		}
		if str, ok := value.(string); ok {
			if i, err := strconv.Atoi(str); err == nil {
				return i
			}
		}
		if f, ok := value.(float64); ok {
			return int(f)
		}
	}
	return defaultValue
}
