package models

import (
	"testing"
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentClose(t *testing.T) {
	assignedAt := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	assignment := NewAssetAssignment(42, 7, assignedAt)
	assert.Nil(t, assignment.ReturnedAt)

	returnedAt := assignedAt.Add(48 * time.Hour)
	require.NoError(t, assignment.Close(returnedAt))
	require.NotNil(t, assignment.ReturnedAt)
	assert.True(t, !assignment.ReturnedAt.Before(assignment.AssignedAt))

	// closing twice is refused and keeps the original date
	err := assignment.Close(returnedAt.Add(time.Hour))
	var conflict *apperrors.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, returnedAt, *assignment.ReturnedAt)
}
