package assignments

import (
	"fmt"

	"github.com/achmadwirra/inventory-asset/internal/repository"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AssignmentRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AssignmentRepository {
	return &AssignmentRepository{
		repository: r,
	}
}

func (r *AssignmentRepository) PersistAssignment(tx *goqu.TxDatabase, assignment *models.AssetAssignment) error {
	query := tx.Insert("asset_assignments").
		Rows(goqu.Record{
			"asset_id":    assignment.AssetID,
			"user_id":     assignment.UserID,
			"assigned_at": assignment.AssignedAt,
		}).
		Returning("id")

	if _, err := query.Executor().ScanVal(&assignment.ID); err != nil {
		return fmt.Errorf("failed to insert assignment record: %w", err)
	}

	return nil
}

// GetOpenAssignment returns the most recently started assignment of the
// asset that has no return date, or nil when the asset has none.
func (r *AssignmentRepository) GetOpenAssignment(assetID int) (*models.AssetAssignment, error) {
	var assignment models.AssetAssignment
	query := r.repository.GoquDBWrapper.
		Select(goqu.I("id").As("assignment_id"), "asset_id", "user_id", "assigned_at", "returned_at").
		From("asset_assignments").
		Where(goqu.Ex{"asset_id": assetID, "returned_at": nil}).
		Order(goqu.I("assigned_at").Desc()).
		Limit(1)

	found, err := query.Executor().ScanStruct(&assignment)
	if err != nil {
		return nil, fmt.Errorf("unable to select assignment from database: %w", err)
	}
	if !found {
		return nil, nil
	}

	return &assignment, nil
}

func (r *AssignmentRepository) CloseAssignment(tx *goqu.TxDatabase, assignment *models.AssetAssignment) error {
	result, err := tx.Update("asset_assignments").
		Set(goqu.Record{"returned_at": assignment.ReturnedAt}).
		Where(goqu.Ex{"id": assignment.ID, "returned_at": nil}).
		Executor().
		Exec()
	if err != nil {
		return fmt.Errorf("failed to close assignment: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("assignment %d was already closed", assignment.ID)
	}

	return nil
}

// GetAssignmentsByAsset returns the full assignment history of an asset,
// newest first.
func (r *AssignmentRepository) GetAssignmentsByAsset(assetID int) ([]models.AssetAssignment, error) {
	var history []models.AssetAssignment
	query := r.repository.GoquDBWrapper.
		Select(goqu.I("id").As("assignment_id"), "asset_id", "user_id", "assigned_at", "returned_at").
		From("asset_assignments").
		Where(goqu.Ex{"asset_id": assetID}).
		Order(goqu.I("assigned_at").Desc())

	if err := query.Executor().ScanStructs(&history); err != nil {
		return nil, fmt.Errorf("unable to select assignments from database: %w", err)
	}

	return history, nil
}
