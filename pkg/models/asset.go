package models

import (
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/metadata"
)

type Asset struct {
	ID               int             `json:"id" db:"asset_id"`
	AssetCode        string          `json:"asset_code" db:"asset_code"`
	Name             string          `json:"name" db:"name"`
	CategoryID       int             `json:"category_id" db:"category_id"`
	Status           metadata.Status `json:"status" db:"status"`
	PurchaseDate     time.Time       `json:"purchase_date" db:"purchase_date"`
	Location         string          `json:"location" db:"location"`
	AssignedToUserID *int            `json:"assigned_to_user_id,omitempty" db:"assigned_to_user_id"`
}

// NewAsset creates an asset in stock with no owner.
func NewAsset(assetCode, name string, categoryID int, purchaseDate time.Time, location string) *Asset {
	return &Asset{
		AssetCode:    assetCode,
		Name:         name,
		CategoryID:   categoryID,
		Status:       metadata.StatusInStock,
		PurchaseDate: purchaseDate,
		Location:     location,
	}
}

// SeedAsset builds an asset with explicit full state. Only the database
// seeder uses it; regular creation goes through NewAsset.
func SeedAsset(assetCode, name string, categoryID int, purchaseDate time.Time, location string, status metadata.Status, assignedTo *int) *Asset {
	return &Asset{
		AssetCode:        assetCode,
		Name:             name,
		CategoryID:       categoryID,
		Status:           status,
		PurchaseDate:     purchaseDate,
		Location:         location,
		AssignedToUserID: assignedTo,
	}
}

// AssignTo hands the asset to a user. Legal only while in stock; any
// other status yields a conflict keyed by that status and leaves the
// asset untouched.
func (a *Asset) AssignTo(userID int) ([]Event, error) {
	if a.Status != metadata.StatusInStock {
		return nil, apperrors.NewConflict("cannot assign asset '%s': asset is %s", a.AssetCode, a.Status.Describe())
	}

	previous := a.Status
	a.Status = metadata.StatusAssigned
	a.AssignedToUserID = &userID

	return []Event{
		AssetAssigned{AssetID: a.ID, UserID: userID, AssignedAt: time.Now().UTC()},
		AssetStatusChanged{AssetID: a.ID, OldStatus: previous, NewStatus: metadata.StatusAssigned},
	}, nil
}

// Return puts an assigned asset back in stock and clears its owner.
func (a *Asset) Return() ([]Event, error) {
	if a.Status != metadata.StatusAssigned {
		return nil, apperrors.NewConflict("cannot return asset '%s': asset is %s", a.AssetCode, a.Status.Describe())
	}

	previous := a.Status
	a.Status = metadata.StatusInStock
	a.AssignedToUserID = nil

	return []Event{
		AssetReturned{AssetID: a.ID, ReturnedAt: time.Now().UTC()},
		AssetStatusChanged{AssetID: a.ID, OldStatus: previous, NewStatus: metadata.StatusInStock},
	}, nil
}

// ChangeStatus moves the asset to newStatus. Same-status calls are a
// no-op and emit nothing. Leaving assigned is only possible through
// Return; retired is deliberately not terminal.
func (a *Asset) ChangeStatus(newStatus metadata.Status) ([]Event, error) {
	if a.Status == newStatus {
		return nil, nil
	}

	if a.Status == metadata.StatusAssigned {
		return nil, apperrors.NewConflict("cannot change status of asset '%s' while it is assigned: return it first", a.AssetCode)
	}

	previous := a.Status
	a.Status = newStatus
	if newStatus != metadata.StatusAssigned {
		a.AssignedToUserID = nil
	}

	return []Event{
		AssetStatusChanged{AssetID: a.ID, OldStatus: previous, NewStatus: newStatus},
	}, nil
}

func (a *Asset) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   a.ID,
		ResourceType: "asset",
	}
}
