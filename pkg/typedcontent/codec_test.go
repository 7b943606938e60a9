package typedcontent_test

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candell/typed-content/pkg/typedcontent"
)

func TestBlockCodec(t *testing.T) {
	t.Run("ImageBlock", func(t *testing.T) {
		block, err := typedcontent.BuildBlock(smallestGIF)
		require.NoError(t, err)

		encoded, err := typedcontent.EncodeBlock(block)
		require.NoError(t, err)
		require.NotEmpty(t, encoded)

		decoded, err := typedcontent.DecodeBlock(encoded)
		require.NoError(t, err)
		assert.Equal(t, block, decoded)
	})

	t.Run("TextBlock", func(t *testing.T) {
		block, err := typedcontent.BuildBlock([]byte("howdy"))
		require.NoError(t, err)

		encoded, err := typedcontent.EncodeBlock(block)
		require.NoError(t, err)

		decoded, err := typedcontent.DecodeBlock(encoded)
		require.NoError(t, err)
		assert.Equal(t, block, decoded)
	})

	t.Run("DeterministicEncoding", func(t *testing.T) {
		block, err := typedcontent.BuildBlock(smallestGIF)
		require.NoError(t, err)

		first, err := typedcontent.EncodeBlock(block)
		require.NoError(t, err)
		second, err := typedcontent.EncodeBlock(block)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, typedcontent.IdentifyBlock(first), typedcontent.IdentifyBlock(second))
	})

	t.Run("UnknownKindRejected", func(t *testing.T) {
		encoded, err := cbor.Marshal(map[string]any{
			"kind":       "video",
			"size_bytes": 3,
		})
		require.NoError(t, err)

		block, err := typedcontent.DecodeBlock(encoded)
		assert.Nil(t, block)
		assert.ErrorIs(t, err, typedcontent.ErrUnknownKind)
	})

	t.Run("MissingVariantRejected", func(t *testing.T) {
		encoded, err := cbor.Marshal(map[string]any{
			"kind":       "image",
			"size_bytes": 14,
		})
		require.NoError(t, err)

		block, err := typedcontent.DecodeBlock(encoded)
		assert.Nil(t, block)
		assert.ErrorIs(t, err, typedcontent.ErrMissingVariant)
	})

	t.Run("GarbageRejected", func(t *testing.T) {
		_, err := typedcontent.DecodeBlock([]byte{0xff, 0x00, 0x01})
		assert.Error(t, err)
	})

	t.Run("UnsupportedItemRejected", func(t *testing.T) {
		_, err := typedcontent.EncodeBlock(&typedcontent.ContentItemBlock{})
		assert.ErrorIs(t, err, typedcontent.ErrUnknownKind)
	})
}
