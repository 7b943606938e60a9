package config

import (
	"fmt"
	"time"
)

// WithPort sets the server port
func WithPort(port string) Option {
	return func(c *ServerConfig) error {
		if port == "" {
			return fmt.Errorf("port cannot be empty")
		}
		c.Port = port
		return nil
	}
}

// WithEnvironment sets the environment (development, production, testing)
func WithEnvironment(env string) Option {
	return func(c *ServerConfig) error {
		if env == "" {
			return fmt.Errorf("environment cannot be empty")
		}
		c.Environment = env
		return nil
	}
}

// WithDatabase configures the annotation database backend
func WithDatabase(dbType, url string) Option {
	return func(c *ServerConfig) error {
		if dbType != "memory" && dbType != "postgres" {
			return fmt.Errorf("database type must be 'memory' or 'postgres', got: %s", dbType)
		}
		if dbType == "postgres" && url == "" {
			return fmt.Errorf("database URL is required for postgres")
		}
		c.DatabaseType = dbType
		c.DatabaseURL = url
		return nil
	}
}

// WithDatabaseURL selects the annotation database from a connection URL,
// accepting the same forms WithEnv accepts for DATABASE_URL.
func WithDatabaseURL(rawURL string) Option {
	return func(c *ServerConfig) error {
		return applyDatabaseURL(rawURL, c)
	}
}

// WithDatabaseSchema sets the database schema (for Postgres)
func WithDatabaseSchema(schema string) Option {
	return func(c *ServerConfig) error {
		c.DBSchema = schema
		return nil
	}
}

// WithMemoryStore selects the in-memory block store (for testing)
func WithMemoryStore() Option {
	return func(c *ServerConfig) error {
		c.StoreBackend = StoreBackendConfig{
			Type:   "memory",
			Config: map[string]interface{}{},
		}
		return nil
	}
}

// WithFilesystemStore selects the filesystem block store
func WithFilesystemStore(baseDir string) Option {
	return func(c *ServerConfig) error {
		if baseDir == "" {
			return fmt.Errorf("filesystem base directory cannot be empty")
		}
		backend := ensureStoreBackend(c, "fs")
		backend.Config["base_dir"] = baseDir
		return nil
	}
}

// WithS3Store selects the S3 block store
func WithS3Store(bucket, region string) Option {
	return func(c *ServerConfig) error {
		if bucket == "" {
			return fmt.Errorf("S3 bucket cannot be empty")
		}
		if region == "" {
			region = "us-east-1" // Default region
		}
		backend := ensureStoreBackend(c, "s3")
		backend.Config["bucket"] = bucket
		backend.Config["region"] = region
		return nil
	}
}

// WithS3Credentials sets AWS credentials for the S3 block store
func WithS3Credentials(accessKeyID, secretAccessKey string) Option {
	return func(c *ServerConfig) error {
		backend := ensureStoreBackend(c, "s3")
		backend.Config["access_key_id"] = accessKeyID
		backend.Config["secret_access_key"] = secretAccessKey
		return nil
	}
}

// WithS3Endpoint sets a custom S3 endpoint (for MinIO, LocalStack, etc.)
func WithS3Endpoint(endpoint string, usePathStyle bool) Option {
	return func(c *ServerConfig) error {
		backend := ensureStoreBackend(c, "s3")
		backend.Config["endpoint"] = endpoint
		backend.Config["use_path_style"] = usePathStyle
		return nil
	}
}

// WithStoreURL selects the block store backend from a connection URL,
// accepting the same schemes WithEnv accepts for STORE_URL.
func WithStoreURL(rawURL string) Option {
	return func(c *ServerConfig) error {
		return applyStoreURL(rawURL, "", c)
	}
}

// WithRedisStore selects the Redis block store. A zero ttl keeps blocks forever.
func WithRedisStore(url string, ttl time.Duration) Option {
	return func(c *ServerConfig) error {
		backend := ensureStoreBackend(c, "redis")
		if url != "" {
			backend.Config["url"] = url
		}
		if ttl > 0 {
			backend.Config["ttl_seconds"] = int(ttl / time.Second)
		}
		return nil
	}
}

// WithEventLogging enables or disables event logging
func WithEventLogging(enabled bool) Option {
	return func(c *ServerConfig) error {
		c.EnableEventLogging = enabled
		return nil
	}
}

// WithDefaults is a convenience option that resets the configuration to library defaults
// This is useful as a base before applying more specific options
func WithDefaults() Option {
	return func(c *ServerConfig) error {
		*c = defaults()
		return nil
	}
}

// ensureStoreBackend switches the configured backend to the given type,
// keeping existing settings when the type already matches.
func ensureStoreBackend(c *ServerConfig, backendType string) *StoreBackendConfig {
	if c.StoreBackend.Type != backendType || c.StoreBackend.Config == nil {
		c.StoreBackend = StoreBackendConfig{
			Type:   backendType,
			Config: map[string]interface{}{},
		}
	}
	return &c.StoreBackend
}
