package assets

import (
	"fmt"
	"strings"

	"github.com/achmadwirra/inventory-asset/pkg/apperrors"
	"github.com/achmadwirra/inventory-asset/pkg/auditlog"
	"github.com/achmadwirra/inventory-asset/pkg/metadata"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AssetRepository interface {
	GetAsset(id int) (*models.Asset, error)
	GetAssetByCode(code string) (*models.Asset, error)
	GetAssetList() ([]models.Asset, error)
	PersistAsset(tx *goqu.TxDatabase, asset *models.Asset) error
	UpdateAssetState(tx *goqu.TxDatabase, asset *models.Asset, expected metadata.Status) error
}

type AssignmentRepository interface {
	PersistAssignment(tx *goqu.TxDatabase, assignment *models.AssetAssignment) error
	GetOpenAssignment(assetID int) (*models.AssetAssignment, error)
	CloseAssignment(tx *goqu.TxDatabase, assignment *models.AssetAssignment) error
}

type CategoryRepository interface {
	GetCategory(categoryID int) (*models.AssetCategory, error)
}

type AuditSink interface {
	Log(tx *goqu.TxDatabase, action string, item auditlog.Auditable, userID *int, details string) error
}

type TransactionRunner interface {
	RunInTransaction(fn func(tx *goqu.TxDatabase) error) error
}

// AssetService orchestrates asset lifecycle operations: it loads the
// asset, applies the domain transition, and persists the asset, its
// assignment record, and the audit entry as one unit of work.
type AssetService struct {
	uow            TransactionRunner
	assetsRepo     AssetRepository
	assignmentRepo AssignmentRepository
	categoryRepo   CategoryRepository
	auditLog       AuditSink
}

func NewAssetService(uow TransactionRunner, assetsRepo AssetRepository, assignmentRepo AssignmentRepository, categoryRepo CategoryRepository, auditLog AuditSink) *AssetService {
	return &AssetService{
		uow:            uow,
		assetsRepo:     assetsRepo,
		assignmentRepo: assignmentRepo,
		categoryRepo:   categoryRepo,
		auditLog:       auditLog,
	}
}

func (s *AssetService) CreateAsset(req models.CreateAssetRequest, actorID *int) (*models.Asset, error) {
	if err := validateCreateAsset(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetCategory(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() {
		return nil, apperrors.NewNotFound("category", req.CategoryID)
	}

	existing, err := s.assetsRepo.GetAssetByCode(req.AssetCode)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, apperrors.NewConflict("asset with code '%s' already exists", req.AssetCode)
	}

	asset := models.NewAsset(req.AssetCode, req.Name, req.CategoryID, req.PurchaseDate, req.Location)

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.assetsRepo.PersistAsset(tx, asset); err != nil {
			return err
		}
		details := fmt.Sprintf("Created asset %s (%s)", asset.AssetCode, asset.Name)
		return s.auditLog.Log(tx, models.ActionCreate, asset, actorID, details)
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func (s *AssetService) AssignAsset(assetID, userID int, actorID *int) (*models.Asset, error) {
	asset, err := s.assetsRepo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	expected := asset.Status
	events, err := asset.AssignTo(userID)
	if err != nil {
		return nil, err
	}

	assignedAt := events[0].(models.AssetAssigned).AssignedAt
	assignment := models.NewAssetAssignment(asset.ID, userID, assignedAt)

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.assetsRepo.UpdateAssetState(tx, asset, expected); err != nil {
			return err
		}
		if err := s.assignmentRepo.PersistAssignment(tx, assignment); err != nil {
			return err
		}
		return s.auditLog.Log(tx, models.ActionAssign, asset, actorID, describeEvents(asset, events))
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

// ReturnAsset closes the asset's open assignment and puts it back in
// stock. The asset's status is authoritative: when no open assignment
// record exists the transition still happens and only the best-effort
// history is skipped.
func (s *AssetService) ReturnAsset(assetID int, actorID *int) (*models.Asset, error) {
	asset, err := s.assetsRepo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	expected := asset.Status
	events, err := asset.Return()
	if err != nil {
		return nil, err
	}

	returnedAt := events[0].(models.AssetReturned).ReturnedAt

	open, err := s.assignmentRepo.GetOpenAssignment(assetID)
	if err != nil {
		return nil, err
	}
	if open != nil {
		if err := open.Close(returnedAt); err != nil {
			return nil, err
		}
	}

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.assetsRepo.UpdateAssetState(tx, asset, expected); err != nil {
			return err
		}
		if open != nil {
			if err := s.assignmentRepo.CloseAssignment(tx, open); err != nil {
				return err
			}
		}
		return s.auditLog.Log(tx, models.ActionReturn, asset, actorID, describeEvents(asset, events))
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func (s *AssetService) ChangeAssetStatus(assetID int, newStatus metadata.Status, actorID *int) (*models.Asset, error) {
	asset, err := s.assetsRepo.GetAsset(assetID)
	if err != nil {
		return nil, err
	}

	expected := asset.Status
	events, err := asset.ChangeStatus(newStatus)
	if err != nil {
		return nil, err
	}
	if len(events) == 0 {
		// same status, nothing to persist or audit
		return asset, nil
	}

	err = s.uow.RunInTransaction(func(tx *goqu.TxDatabase) error {
		if err := s.assetsRepo.UpdateAssetState(tx, asset, expected); err != nil {
			return err
		}
		return s.auditLog.Log(tx, models.ActionUpdate, asset, actorID, describeEvents(asset, events))
	})
	if err != nil {
		return nil, err
	}

	return asset, nil
}

func (s *AssetService) GetAssets() ([]models.Asset, error) {
	return s.assetsRepo.GetAssetList()
}

func (s *AssetService) GetAsset(assetID int) (*models.Asset, error) {
	return s.assetsRepo.GetAsset(assetID)
}

// describeEvents renders the facts a mutation produced into the audit
// details line.
func describeEvents(asset *models.Asset, events []models.Event) string {
	var parts []string
	for _, event := range events {
		switch e := event.(type) {
		case models.AssetAssigned:
			parts = append(parts, fmt.Sprintf("Assigned asset %s (%s) to user %d.", asset.AssetCode, asset.Name, e.UserID))
		case models.AssetReturned:
			parts = append(parts, fmt.Sprintf("Returned asset %s (%s).", asset.AssetCode, asset.Name))
		case models.AssetStatusChanged:
			parts = append(parts, fmt.Sprintf("Status changed from %s to %s.", e.OldStatus, e.NewStatus))
		}
	}
	return strings.Join(parts, " ")
}

func validateCreateAsset(req models.CreateAssetRequest) error {
	var fields []apperrors.FieldError
	if strings.TrimSpace(req.AssetCode) == "" {
		fields = append(fields, apperrors.FieldError{Field: "asset_code", Message: "asset code is required"})
	}
	if strings.TrimSpace(req.Name) == "" {
		fields = append(fields, apperrors.FieldError{Field: "name", Message: "name is required"})
	}
	if req.CategoryID <= 0 {
		fields = append(fields, apperrors.FieldError{Field: "category_id", Message: "category id is required"})
	}
	if req.PurchaseDate.IsZero() {
		fields = append(fields, apperrors.FieldError{Field: "purchase_date", Message: "purchase date is required"})
	}
	if len(fields) > 0 {
		return apperrors.NewValidation(fields...)
	}
	return nil
}
