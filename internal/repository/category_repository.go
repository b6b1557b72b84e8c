package repository

import (
	"fmt"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

// GetCategories lists all non-deleted categories.
func (r *Repository) GetCategories() ([]models.AssetCategory, error) {
	var categories []models.AssetCategory
	query := r.GoquDBWrapper.
		Select(goqu.I("id").As("category_id"), "name", "deleted_at").
		From("asset_categories").
		Where(goqu.Ex{"deleted_at": nil}).
		Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&categories); err != nil {
		return nil, fmt.Errorf("unable to select categories from database: %w", err)
	}

	return categories, nil
}

// GetCategory loads a category regardless of its deletion state. Deleted
// ids stay resolvable for historical assets.
func (r *Repository) GetCategory(categoryID int) (*models.AssetCategory, error) {
	var category models.AssetCategory
	query := r.GoquDBWrapper.
		Select(goqu.I("id").As("category_id"), "name", "deleted_at").
		From("asset_categories").
		Where(goqu.Ex{"id": categoryID})

	found, err := query.Executor().ScanStruct(&category)
	if err != nil {
		return nil, fmt.Errorf("unable to select category from database: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("category", categoryID)
	}

	return &category, nil
}

// GetCategoryByName resolves a non-deleted category by exact name.
// Returns nil without error when no such category exists.
func (r *Repository) GetCategoryByName(name string) (*models.AssetCategory, error) {
	var category models.AssetCategory
	query := r.GoquDBWrapper.
		Select(goqu.I("id").As("category_id"), "name", "deleted_at").
		From("asset_categories").
		Where(goqu.Ex{"name": name, "deleted_at": nil})

	found, err := query.Executor().ScanStruct(&category)
	if err != nil {
		return nil, fmt.Errorf("unable to select category from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &category, nil
}

func (r *Repository) PersistCategory(tx *goqu.TxDatabase, category *models.AssetCategory) error {
	query := tx.Insert("asset_categories").
		Rows(goqu.Record{"name": category.Name}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&category.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return apperrors.WrapDBError(fmt.Sprintf("category name '%s' already exists", category.Name), string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert category record: %w", err)
	}

	return nil
}

func (r *Repository) UpdateCategory(tx *goqu.TxDatabase, category *models.AssetCategory) error {
	record := goqu.Record{
		"name":       category.Name,
		"deleted_at": category.DeletedAt,
	}

	result, err := tx.Update("asset_categories").
		Set(record).
		Where(goqu.Ex{"id": category.ID}).
		Executor().
		Exec()
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return apperrors.WrapDBError(fmt.Sprintf("category name '%s' already exists", category.Name), string(pqErr.Code))
		}
		return fmt.Errorf("failed to update category: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFound("category", category.ID)
	}

	return nil
}

func (r *Repository) CountAssetsInCategory(categoryID int) (int, error) {
	var count int
	query := r.GoquDBWrapper.
		Select(goqu.COUNT("*")).
		From("assets").
		Where(goqu.Ex{"category_id": categoryID})

	if _, err := query.Executor().ScanVal(&count); err != nil {
		return 0, fmt.Errorf("failed to count assets in category: %w", err)
	}

	return count, nil
}
