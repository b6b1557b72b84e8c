package models

import (
	"strings"
	"time"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
)

// AssetCategory groups assets under a unique (among non-deleted) name.
// DeletedAt doubles as the soft-delete flag: nil means active.
type AssetCategory struct {
	ID        int        `json:"id" db:"category_id"`
	Name      string     `json:"name" db:"name"`
	DeletedAt *time.Time `json:"deleted_at,omitempty" db:"deleted_at"`
}

func NewAssetCategory(name string) *AssetCategory {
	return &AssetCategory{Name: name}
}

func (c *AssetCategory) IsDeleted() bool {
	return c.DeletedAt != nil
}

func (c *AssetCategory) UpdateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewConflict("category name cannot be empty")
	}
	c.Name = name
	return nil
}

func (c *AssetCategory) SoftDelete() error {
	if c.IsDeleted() {
		return apperrors.NewConflict("category '%s' is already deleted", c.Name)
	}
	now := time.Now().UTC()
	c.DeletedAt = &now
	return nil
}

// Restore reinstates the category. Calling it on an active category is a
// no-op.
func (c *AssetCategory) Restore() {
	c.DeletedAt = nil
}

func (c *AssetCategory) CreateLogView() AuditLog {
	return AuditLog{
		ResourceID:   c.ID,
		ResourceType: "category",
	}
}
