package models

import (
	"testing"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryUpdateName(t *testing.T) {
	category := NewAssetCategory("Laptops")

	require.NoError(t, category.UpdateName("Notebooks"))
	assert.Equal(t, "Notebooks", category.Name)

	for _, empty := range []string{"", "   ", "\t"} {
		err := category.UpdateName(empty)

		var conflict *apperrors.ConflictError
		require.ErrorAs(t, err, &conflict)
		assert.Equal(t, "Notebooks", category.Name)
	}
}

func TestCategorySoftDelete(t *testing.T) {
	category := NewAssetCategory("Laptops")
	assert.False(t, category.IsDeleted())

	require.NoError(t, category.SoftDelete())
	assert.True(t, category.IsDeleted())
	require.NotNil(t, category.DeletedAt)

	err := category.SoftDelete()
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
}

func TestCategoryRestore(t *testing.T) {
	category := NewAssetCategory("Laptops")
	require.NoError(t, category.SoftDelete())

	category.Restore()
	assert.False(t, category.IsDeleted())
	assert.Nil(t, category.DeletedAt)

	// restoring an active category stays a no-op
	category.Restore()
	assert.False(t, category.IsDeleted())
}
