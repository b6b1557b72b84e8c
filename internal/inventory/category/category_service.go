package category

import (
	"fmt"
	"strings"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/auditlog"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type CategoryStore interface {
	GetCategories() ([]models.AssetCategory, error)
	GetCategory(categoryID int) (*models.AssetCategory, error)
	GetCategoryByName(name string) (*models.AssetCategory, error)
	PersistCategory(tx *goqu.TxDatabase, category *models.AssetCategory) error
	UpdateCategory(tx *goqu.TxDatabase, category *models.AssetCategory) error
	CountAssetsInCategory(categoryID int) (int, error)
}

type AuditSink interface {
	Log(tx *goqu.TxDatabase, action string, item auditlog.Auditable, userID *int, details string) error
}

type TransactionRunner interface {
	RunInTransaction(fn func(tx *goqu.TxDatabase) error) error
}

type CategoryService struct {
	uow      TransactionRunner
	store    CategoryStore
	auditLog AuditSink
}

func NewCategoryService(uow TransactionRunner, store CategoryStore, auditLog AuditSink) *CategoryService {
	return &CategoryService{
		uow:      uow,
		store:    store,
		auditLog: auditLog,
	}
}

// GetCategories lists active categories only; soft-deleted ones are
// excluded from lookups.
func (s *CategoryService) GetCategories() ([]models.AssetCategory, error) {
	return s.store.GetCategories()
}

func (s *CategoryService) CreateCategory(req models.CategoryRequest, actorID *int) (*models.AssetCategory, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	// duplicate check is a case-sensitive exact match among non-deleted rows
	existing, err := s.store.GetCategoryByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("category with name '%s' already exists", req.Name)
	}

	category := models.NewAssetCategory(req.Name)

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.store.PersistCategory(tx, category); err != nil {
			return err
		}
		details := fmt.Sprintf("Created category '%s'", category.Name)
		return s.auditLog.Log(tx, models.ActionCreate, category, actorID, details)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func (s *CategoryService) UpdateCategory(categoryID int, req models.CategoryRequest, actorID *int) (*models.AssetCategory, error) {
	if err := validateName(req.Name); err != nil {
		return nil, err
	}

	category, err := s.store.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetCategoryByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.ID != categoryID {
		return nil, apperrors.NewConflict("category with name '%s' already exists", req.Name)
	}

	oldName := category.Name
	if err := category.UpdateName(req.Name); err != nil {
		return nil, err
	}

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateCategory(tx, category); err != nil {
			return err
		}
		details := fmt.Sprintf("Updated category name from '%s' to '%s'", oldName, category.Name)
		return s.auditLog.Log(tx, models.ActionUpdate, category, actorID, details)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft-deletes: the row stays so historical assets keep a
// valid category id, but lookups stop returning it. A category with
// assets cannot be deleted.
func (s *CategoryService) DeleteCategory(categoryID int, actorID *int) error {
	category, err := s.store.GetCategory(categoryID)
	if err != nil {
		return err
	}

	count, err := s.store.CountAssetsInCategory(categoryID)
	if err != nil {
		return err
	}
	if count > 0 {
		return apperrors.NewConflict("cannot delete category '%s': %d assets still reference it", category.Name, count)
	}

	if err := category.SoftDelete(); err != nil {
		return err
	}

	return s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateCategory(tx, category); err != nil {
			return err
		}
		details := fmt.Sprintf("Deleted category '%s'", category.Name)
		return s.auditLog.Log(tx, models.ActionDelete, category, actorID, details)
	})
}

func (s *CategoryService) RestoreCategory(categoryID int, actorID *int) (*models.AssetCategory, error) {
	category, err := s.store.GetCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if !category.IsDeleted() {
		return category, nil
	}

	category.Restore()

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.store.UpdateCategory(tx, category); err != nil {
			return err
		}
		details := fmt.Sprintf("Restored category '%s'", category.Name)
		return s.auditLog.Log(tx, models.ActionUpdate, category, actorID, details)
	})
	if err != nil {
		return nil, err
	}

	return category, nil
}

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return apperrors.NewValidation(apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	return nil
}
