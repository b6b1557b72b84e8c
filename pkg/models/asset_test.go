package models

import (
	"testing"
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/metadata"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAsset(status metadata.Status, owner *int) *Asset {
	return &Asset{
		ID:               42,
		AssetCode:        "LAP-100",
		Name:             "Dell Latitude",
		CategoryID:       1,
		Status:           status,
		PurchaseDate:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		Location:         "HQ",
		AssignedToUserID: owner,
	}
}

func TestNewAssetStartsInStock(t *testing.T) {
	asset := NewAsset("LAP-100", "Dell Latitude", 1, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), "HQ")

	assert.Equal(t, metadata.StatusInStock, asset.Status)
	assert.Nil(t, asset.AssignedToUserID)
}

func TestAssignTo(t *testing.T) {
	t.Run("succeeds from in stock", func(t *testing.T) {
		asset := testAsset(metadata.StatusInStock, nil)

		events, err := asset.AssignTo(7)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusAssigned, asset.Status)
		require.NotNil(t, asset.AssignedToUserID)
		assert.Equal(t, 7, *asset.AssignedToUserID)

		require.Len(t, events, 2)
		assigned, ok := events[0].(AssetAssigned)
		require.True(t, ok)
		assert.Equal(t, 42, assigned.AssetID)
		assert.Equal(t, 7, assigned.UserID)

		changed, ok := events[1].(AssetStatusChanged)
		require.True(t, ok)
		assert.Equal(t, metadata.StatusInStock, changed.OldStatus)
		assert.Equal(t, metadata.StatusAssigned, changed.NewStatus)
	})

	otherOwner := 3
	blocked := []struct {
		name   string
		status metadata.Status
		owner  *int
	}{
		{name: "already assigned", status: metadata.StatusAssigned, owner: &otherOwner},
		{name: "under maintenance", status: metadata.StatusMaintenance},
		{name: "retired", status: metadata.StatusRetired},
	}

	for _, tt := range blocked {
		t.Run("fails when "+tt.name, func(t *testing.T) {
			asset := testAsset(tt.status, tt.owner)

			events, err := asset.AssignTo(7)

			var conflict *apperrors.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Nil(t, events)
			assert.Equal(t, tt.status, asset.Status)
			assert.Equal(t, tt.owner, asset.AssignedToUserID)
		})
	}
}

func TestReturn(t *testing.T) {
	t.Run("succeeds from assigned", func(t *testing.T) {
		owner := 7
		asset := testAsset(metadata.StatusAssigned, &owner)

		events, err := asset.Return()

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusInStock, asset.Status)
		assert.Nil(t, asset.AssignedToUserID)

		require.Len(t, events, 2)
		_, ok := events[0].(AssetReturned)
		require.True(t, ok)
		changed, ok := events[1].(AssetStatusChanged)
		require.True(t, ok)
		assert.Equal(t, metadata.StatusAssigned, changed.OldStatus)
		assert.Equal(t, metadata.StatusInStock, changed.NewStatus)
	})

	blocked := []metadata.Status{metadata.StatusInStock, metadata.StatusMaintenance, metadata.StatusRetired}
	for _, status := range blocked {
		t.Run("fails from "+string(status), func(t *testing.T) {
			asset := testAsset(status, nil)

			events, err := asset.Return()

			var conflict *apperrors.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Nil(t, events)
			assert.Equal(t, status, asset.Status)
		})
	}
}

func TestChangeStatus(t *testing.T) {
	t.Run("same status is a no-op", func(t *testing.T) {
		asset := testAsset(metadata.StatusInStock, nil)

		events, err := asset.ChangeStatus(metadata.StatusInStock)

		require.NoError(t, err)
		assert.Empty(t, events)
		assert.Equal(t, metadata.StatusInStock, asset.Status)
	})

	t.Run("blocked while assigned", func(t *testing.T) {
		owner := 7
		for _, next := range []metadata.Status{metadata.StatusRetired, metadata.StatusMaintenance, metadata.StatusInStock} {
			asset := testAsset(metadata.StatusAssigned, &owner)

			events, err := asset.ChangeStatus(next)

			var conflict *apperrors.ConflictError
			require.ErrorAs(t, err, &conflict)
			assert.Nil(t, events)
			assert.Equal(t, metadata.StatusAssigned, asset.Status)
			assert.Equal(t, &owner, asset.AssignedToUserID)
		}
	})

	t.Run("in stock to maintenance", func(t *testing.T) {
		asset := testAsset(metadata.StatusInStock, nil)

		events, err := asset.ChangeStatus(metadata.StatusMaintenance)

		require.NoError(t, err)
		require.Len(t, events, 1)
		changed := events[0].(AssetStatusChanged)
		assert.Equal(t, metadata.StatusInStock, changed.OldStatus)
		assert.Equal(t, metadata.StatusMaintenance, changed.NewStatus)
		assert.Equal(t, metadata.StatusMaintenance, asset.Status)
	})

	t.Run("retired is not terminal", func(t *testing.T) {
		asset := testAsset(metadata.StatusRetired, nil)

		_, err := asset.ChangeStatus(metadata.StatusInStock)

		require.NoError(t, err)
		assert.Equal(t, metadata.StatusInStock, asset.Status)
	})
}

func TestAssignReturnRoundTrip(t *testing.T) {
	asset := testAsset(metadata.StatusInStock, nil)

	_, err := asset.AssignTo(7)
	require.NoError(t, err)
	_, err = asset.Return()
	require.NoError(t, err)

	assert.Equal(t, metadata.StatusInStock, asset.Status)
	assert.Nil(t, asset.AssignedToUserID)
}
