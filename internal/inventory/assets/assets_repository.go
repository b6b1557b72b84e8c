package assets

import (
	"fmt"

	"github.com/achmadwirra/inventory-asset/internal/repository"
	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/metadata"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"
)

type AssetsRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssetsRepository {
	return &AssetsRepository{
		repository: r,
	}
}

func (r *AssetsRepository) GetAsset(id int) (*models.Asset, error) {
	return r.fetchAssetByCondition(goqu.Ex{"id": id}, id)
}

// GetAssetByCode resolves an asset by its unique code. Returns nil
// without error when the code is unused.
func (r *AssetsRepository) GetAssetByCode(code string) (*models.Asset, error) {
	var asset models.Asset
	query := r.getAssetQuery().Where(goqu.Ex{"asset_code": code})

	found, err := query.Executor().ScanStruct(&asset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &asset, nil
}

func (r *AssetsRepository) GetAssetList() ([]models.Asset, error) {
	var assets []models.Asset
	query := r.getAssetQuery().Order(goqu.I("id").Asc())

	if err := query.Executor().ScanStructs(&assets); err != nil {
		return nil, fmt.Errorf("unable to select assets from database: %w", err)
	}

	return assets, nil
}

func (r *AssetsRepository) PersistAsset(tx *goqu.TxDatabase, asset *models.Asset) error {
	record := goqu.Record{
		"asset_code":          asset.AssetCode,
		"name":                asset.Name,
		"category_id":         asset.CategoryID,
		"status":              string(asset.Status),
		"purchase_date":       asset.PurchaseDate,
		"location":            asset.Location,
		"assigned_to_user_id": asset.AssignedToUserID,
	}

	query := tx.Insert("assets").
		Rows(record).
		Returning("id")

	if _, err := query.Executor().ScanVal(&asset.ID); err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			return apperrors.WrapDBError(fmt.Sprintf("asset code '%s' already exists", asset.AssetCode), string(pqErr.Code))
		}
		return fmt.Errorf("failed to insert asset record: %w", err)
	}

	return nil
}

// UpdateAssetState writes the asset's status and owner, conditioned on
// the status the caller read before mutating. Zero affected rows means
// another writer got there first and the transition is rejected.
func (r *AssetsRepository) UpdateAssetState(tx *goqu.TxDatabase, asset *models.Asset, expected metadata.Status) error {
	result, err := tx.Update("assets").
		Set(goqu.Record{
			"status":              string(asset.Status),
			"assigned_to_user_id": asset.AssignedToUserID,
		}).
		Where(goqu.Ex{
			"id":     asset.ID,
			"status": string(expected),
		}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to update asset state: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewConflict("asset '%s' was modified concurrently: transition rejected", asset.AssetCode)
	}

	return nil
}

func (r *AssetsRepository) fetchAssetByCondition(condition goqu.Expression, id int) (*models.Asset, error) {
	var asset models.Asset
	query := r.getAssetQuery().Where(condition)

	found, err := query.Executor().ScanStruct(&asset)
	if err != nil {
		return nil, fmt.Errorf("unable to select asset from database: %w", err)
	}
	if !found {
		return nil, apperrors.NewNotFound("asset", id)
	}

	return &asset, nil
}

func (r *AssetsRepository) getAssetQuery() *goqu.SelectDataset {
	return r.repository.GoquDBWrapper.Select(
		goqu.I("id").As("asset_id"),
		"asset_code",
		"name",
		"category_id",
		"status",
		"purchase_date",
		"location",
		"assigned_to_user_id",
	).From("assets")
}
