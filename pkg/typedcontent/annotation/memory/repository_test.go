package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candell/typed-content/pkg/typedcontent"
	"github.com/candell/typed-content/pkg/typedcontent/annotation"
	"github.com/candell/typed-content/pkg/typedcontent/annotation/memory"
)

func newRecord(identifier string, parentID *uuid.UUID) *annotation.Record {
	return &annotation.Record{
		ID:         uuid.New(),
		Identifier: identifier,
		Value:      "value",
		Category:   typedcontent.CategoryAttribute,
		ParentID:   parentID,
		CreatedAt:  time.Now().UTC(),
	}
}

func TestRepository(t *testing.T) {
	repo := memory.New()
	ctx := context.Background()
	identifier := typedcontent.IdentifyBlock([]byte("annotated block")).String()

	parent := newRecord(identifier, nil)
	child := newRecord(identifier, &parent.ID)

	t.Run("SaveAndGet", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, parent))
		require.NoError(t, repo.Save(ctx, child))

		got, err := repo.Get(ctx, parent.ID)
		require.NoError(t, err)
		assert.Equal(t, parent, got)
	})

	t.Run("DuplicateSaveRejected", func(t *testing.T) {
		err := repo.Save(ctx, parent)
		assert.Error(t, err)
	})

	t.Run("MissingParentRejected", func(t *testing.T) {
		orphanParent := uuid.New()
		err := repo.Save(ctx, newRecord(identifier, &orphanParent))
		assert.ErrorIs(t, err, annotation.ErrRecordNotFound)
	})

	t.Run("GetMissing", func(t *testing.T) {
		_, err := repo.Get(ctx, uuid.New())
		assert.ErrorIs(t, err, annotation.ErrRecordNotFound)
	})

	t.Run("ListByIdentifier", func(t *testing.T) {
		records, err := repo.ListByIdentifier(ctx, identifier)
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, parent.ID, records[0].ID)
		assert.Equal(t, child.ID, records[1].ID)
	})

	t.Run("ListUnknownIdentifier", func(t *testing.T) {
		records, err := repo.ListByIdentifier(ctx, typedcontent.IdentifyBlock([]byte("other")).String())
		require.NoError(t, err)
		assert.Empty(t, records)
	})

	t.Run("GetReturnsCopy", func(t *testing.T) {
		got, err := repo.Get(ctx, parent.ID)
		require.NoError(t, err)

		got.Value = "mutated"
		fresh, err := repo.Get(ctx, parent.ID)
		require.NoError(t, err)
		assert.Equal(t, "value", fresh.Value)
	})
}
