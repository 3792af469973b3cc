package implementation

import (
	"context"

	"lendhub-be/internal/model"
	"lendhub-be/internal/repository/contract"
	"lendhub-be/internal/repository/specification"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AuditLogRepositoryImpl struct {
	db *gorm.DB
}

func NewAuditLogRepository(db *gorm.DB) contract.AuditLogRepository {
	return &AuditLogRepositoryImpl{db: db}
}

func (r *AuditLogRepositoryImpl) Create(ctx context.Context, entry *model.AuditEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// SetNotification links the notification produced by the same mutation. Only
// legal inside the transaction that created the entry.
func (r *AuditLogRepositoryImpl) SetNotification(ctx context.Context, entryId, notificationId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&model.AuditEntry{}).
		Where("id = ?", entryId).
		Update("notification_id", notificationId).Error
}

func (r *AuditLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.AuditEntry, error) {
	var entries []*model.AuditEntry
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
