package memory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/blockstore/memory"
)

func TestMemoryBackend(t *testing.T) {
	backend := memory.New()
	ctx := context.Background()
	testData := []byte("encoded block bytes")

	var id typedcontent.Identifier

	t.Run("Add", func(t *testing.T) {
		var err error
		id, err = backend.Add(ctx, testData)
		require.NoError(t, err)
		assert.False(t, id.IsZero())
		assert.Equal(t, typedcontent.IdentifyBlock(testData), id)
	})

	t.Run("Get", func(t *testing.T) {
		data, err := backend.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, testData, data)
	})

	t.Run("AddIsIdempotent", func(t *testing.T) {
		again, err := backend.Add(ctx, testData)
		require.NoError(t, err)
		assert.Equal(t, id, again)

		concrete := backend.(*memory.Backend)
		assert.Equal(t, 1, concrete.Len())
	})

	t.Run("GetMissing", func(t *testing.T) {
		missing := typedcontent.IdentifyBlock([]byte("never added"))
		data, err := backend.Get(ctx, missing)
		assert.Nil(t, data)
		assert.ErrorIs(t, err, typedcontent.ErrBlockNotFound)
	})

	t.Run("GetCopiesData", func(t *testing.T) {
		data, err := backend.Get(ctx, id)
		require.NoError(t, err)

		data[0] = 'X'
		fresh, err := backend.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, testData, fresh)
	})
}
