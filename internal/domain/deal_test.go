package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPatchFromDeal(t *testing.T) {
	t.Run("todos preenchidos", func(t *testing.T) {
		patch := PatchFromDeal(&Deal{ID: 1, Title: "A", DateCreate: "2024-01-01", DocumentsIDs: "d1"})

		require.NotNil(t, patch.Title)
		require.NotNil(t, patch.DateCreate)
		require.NotNil(t, patch.DocumentsIDs)
		assert.Equal(t, "A", *patch.Title)
		assert.Equal(t, "2024-01-01", *patch.DateCreate)
		assert.Equal(t, "d1", *patch.DocumentsIDs)
	})

	t.Run("campos em branco ficam de fora", func(t *testing.T) {
		patch := PatchFromDeal(&Deal{ID: 1, Title: "B", DateCreate: "", DocumentsIDs: " "})

		require.NotNil(t, patch.Title)
		assert.Equal(t, "B", *patch.Title)
		assert.Nil(t, patch.DateCreate)
		assert.Nil(t, patch.DocumentsIDs)
		assert.False(t, patch.IsEmpty())
	})

	t.Run("nada preenchido", func(t *testing.T) {
		assert.True(t, PatchFromDeal(&Deal{ID: 1}).IsEmpty())
	})
}

func TestDealRef_Raw(t *testing.T) {
	assert.Equal(t, "5", DealRef{QueryID: " 5 ", BodyID: "6"}.Raw())
	assert.Equal(t, "6", DealRef{BodyID: "6"}.Raw())
	assert.Empty(t, DealRef{}.Raw())
}
