package s3

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candell/typed-content/pkg/typedcontent"
)

// TestS3Backend_Configuration exercises config validation and defaults.
// Round-trip coverage against MinIO lives in TestS3Backend_Integration.
func TestS3Backend_Configuration(t *testing.T) {
	t.Run("EmptyBucket", func(t *testing.T) {
		_, err := New(Config{Region: "us-east-1"})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "bucket name is required")
	})

	t.Run("StaticCredentials", func(t *testing.T) {
		backend, err := New(Config{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)
		require.NotNil(t, backend)
	})

	t.Run("KeyPrefixDefault", func(t *testing.T) {
		backend, err := New(Config{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
		})
		require.NoError(t, err)

		id := typedcontent.IdentifyBlock([]byte("encoded block bytes"))
		key := backend.(*Backend).objectKey(id)
		assert.Equal(t, "blocks/"+id.Hex()+".blob", key)
	})

	t.Run("CustomKeyPrefix", func(t *testing.T) {
		backend, err := New(Config{
			Bucket:          "test-bucket",
			AccessKeyID:     "test-key",
			SecretAccessKey: "test-secret",
			KeyPrefix:       "cas/v1/",
		})
		require.NoError(t, err)

		id := typedcontent.IdentifyBlock([]byte("encoded block bytes"))
		key := backend.(*Backend).objectKey(id)
		assert.Equal(t, "cas/v1/"+id.Hex()+".blob", key)
	})
}

func TestIsNotFound(t *testing.T) {
	assert.False(t, isNotFound(nil))
	assert.False(t, isNotFound(errors.New("connection refused")))
}

// TestS3Backend_Integration tests actual S3/MinIO operations
// This test requires a running MinIO instance or S3 credentials
func TestS3Backend_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	endpoint := os.Getenv("AWS_S3_ENDPOINT")
	accessKey := os.Getenv("AWS_ACCESS_KEY_ID")
	secretKey := os.Getenv("AWS_SECRET_ACCESS_KEY")
	bucket := os.Getenv("AWS_S3_BUCKET")

	if endpoint == "" || accessKey == "" || secretKey == "" || bucket == "" {
		t.Skip("Skipping integration test: S3/MinIO environment variables not set")
	}

	backend, err := New(Config{
		Bucket:                 bucket,
		Region:                 "us-east-1",
		AccessKeyID:            accessKey,
		SecretAccessKey:        secretKey,
		Endpoint:               endpoint,
		UsePathStyle:           true,
		CreateBucketIfNotExist: true,
	})
	require.NoError(t, err, "Failed to create S3 backend")

	ctx := context.Background()
	data := []byte("encoded block bytes for integration")

	t.Run("AddAndGet", func(t *testing.T) {
		id, err := backend.Add(ctx, data)
		require.NoError(t, err)
		require.False(t, id.IsZero())

		got, err := backend.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	})

	t.Run("AddIsIdempotent", func(t *testing.T) {
		first, err := backend.Add(ctx, data)
		require.NoError(t, err)
		second, err := backend.Add(ctx, data)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})

	t.Run("GetMissing", func(t *testing.T) {
		missing := typedcontent.IdentifyBlock([]byte("never stored in s3"))
		_, err := backend.Get(ctx, missing)
		assert.ErrorIs(t, err, typedcontent.ErrBlockNotFound)
	})
}
