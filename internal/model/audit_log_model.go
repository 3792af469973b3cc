package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AuditEntry rows are append-only: created inside the mutation transaction,
// never updated afterwards except for the notification back-reference set in
// the same transaction.
type AuditEntry struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ActorId        uuid.UUID      `gorm:"type:uuid;not null;index"`
	ActorEmail     string         `gorm:"type:varchar(255);not null"`
	ActorName      string         `gorm:"type:varchar(255)"`
	TargetType     string         `gorm:"type:varchar(50);not null;index:idx_audit_target,priority:1"`
	TargetId       uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_target,priority:2"`
	MutationType   string         `gorm:"type:varchar(50);not null"`
	OldValue       datatypes.JSON `gorm:"type:jsonb"`
	NewValue       datatypes.JSON `gorm:"type:jsonb"`
	Reason         string         `gorm:"type:varchar(500);not null"`
	NotificationId *uuid.UUID     `gorm:"type:uuid"`
	CreatedAt      time.Time      `gorm:"autoCreateTime;index"`
}

func (AuditEntry) TableName() string {
	return "admin_modification_log"
}
