package auditlog

import (
	"fmt"

	"github.com/achmadwirra/inventory-asset/internal/repository"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type AuditLogRepository struct {
	repository *repository.Repository
}

func NewRepository(r *repository.Repository) *AuditLogRepository {
	return &AuditLogRepository{repository: r}
}

// PersistLog appends one audit entry. When tx is non-nil the insert
// joins the caller's transaction, so a failed append rolls the whole
// operation back.
func (r *AuditLogRepository) PersistLog(tx *goqu.TxDatabase, entry models.AuditLog) error {
	record := goqu.Record{
		"resource_id":   entry.ResourceID,
		"resource_type": entry.ResourceType,
		"action":        entry.Action,
		"user_id":       entry.UserID,
		"details":       entry.Details,
	}

	var err error
	if tx != nil {
		_, err = tx.Insert("audit_logs").Rows(record).Executor().Exec()
	} else {
		_, err = r.repository.GoquDBWrapper.Insert("audit_logs").Rows(record).Executor().Exec()
	}

	if err != nil {
		return fmt.Errorf("failed to insert audit log: %w", err)
	}

	return nil
}

// GetResourceLog returns every entry recorded for one resource, newest
// first.
func (r *AuditLogRepository) GetResourceLog(id int, resourceType string) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	query := r.repository.GoquDBWrapper.
		From(goqu.T("audit_logs").As("a")).
		Select(
			goqu.I("a.id").As("id"),
			goqu.I("a.resource_id").As("resource_id"),
			goqu.I("a.resource_type").As("resource_type"),
			goqu.I("a.action").As("action"),
			goqu.I("a.user_id").As("user_id"),
			goqu.I("a.details").As("details"),
			goqu.I("a.created_at").As("created_at"),
		).
		Where(goqu.Ex{
			"a.resource_id":   id,
			"a.resource_type": resourceType,
		}).
		Order(goqu.I("a.created_at").Desc())

	if err := query.Executor().ScanStructs(&entries); err != nil {
		return nil, fmt.Errorf("error executing SQL statement: %w", err)
	}

	return entries, nil
}
