package auditlog

import (
	"github.com/achmadwirra/inventory-asset/internal/auditlog"
	"github.com/achmadwirra/inventory-asset/pkg/models"

	"github.com/doug-martin/goqu/v9"
)

type Auditlog struct {
	r *auditlog.AuditLogRepository
}

type Auditable interface {
	CreateLogView() models.AuditLog
}

func NewAuditLog(repository *auditlog.AuditLogRepository) *Auditlog {
	return &Auditlog{r: repository}
}

// Log appends one entry for a state-changing action on item. The append
// runs inside tx and its failure fails the caller's whole operation;
// the audit trail is not best-effort.
func (a *Auditlog) Log(tx *goqu.TxDatabase, action string, item Auditable, userID *int, details string) error {
	entry := item.CreateLogView()
	entry.Action = action
	entry.UserID = userID
	entry.Details = details

	return a.r.PersistLog(tx, entry)
}
