package models

import (
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
)

// AssetAssignment is the historical record of one assignment period. A
// nil ReturnedAt marks the active assignment; at most one per asset may
// be open at a time.
type AssetAssignment struct {
	ID         int        `json:"id" db:"assignment_id"`
	AssetID    int        `json:"asset_id" db:"asset_id"`
	UserID     int        `json:"user_id" db:"user_id"`
	AssignedAt time.Time  `json:"assigned_at" db:"assigned_at"`
	ReturnedAt *time.Time `json:"returned_at,omitempty" db:"returned_at"`
}

func NewAssetAssignment(assetID, userID int, assignedAt time.Time) *AssetAssignment {
	return &AssetAssignment{
		AssetID:    assetID,
		UserID:     userID,
		AssignedAt: assignedAt,
	}
}

// Close stamps the return date. Closing an already closed assignment is
// a conflict, so the date can be set at most once.
func (a *AssetAssignment) Close(returnedOn time.Time) error {
	if a.ReturnedAt != nil {
		return apperrors.NewConflict("assignment %d is already returned", a.ID)
	}
	a.ReturnedAt = &returnedOn
	return nil
}
