package contract

import (
	"context"

	"lendhub-be/internal/model"
	"lendhub-be/internal/repository/specification"

	"github.com/google/uuid"
)

// AuditLogRepository is append-only by convention: no Update or Delete beyond
// the notification back-reference set within the creating transaction.
type AuditLogRepository interface {
	Create(ctx context.Context, entry *model.AuditEntry) error
	SetNotification(ctx context.Context, entryId, notificationId uuid.UUID) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.AuditEntry, error)
}
