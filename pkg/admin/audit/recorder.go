// Package audit records administrative mutations into the append-only
// admin_modification_log table.
package audit

import (
	"context"
	"encoding/json"
	"fmt"

	"lendhub-be/internal/model"
	"lendhub-be/internal/repository/contract"
	"lendhub-be/pkg/admin/diff"
	"lendhub-be/pkg/admin/guard"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type Record struct {
	Actor      *guard.Actor
	TargetType string
	TargetId   uuid.UUID
	Change     diff.Classification
	Reason     string
}

type IRecorder interface {
	Record(ctx context.Context, logs contract.AuditLogRepository, rec Record) (*model.AuditEntry, error)
	LinkNotification(ctx context.Context, logs contract.AuditLogRepository, entryId, notificationId uuid.UUID) error
}

type Recorder struct{}

func NewRecorder() IRecorder {
	return &Recorder{}
}

// Record writes the audit entry through the repository handed to it so the
// insert is part of the mutation transaction. The before/after snapshots
// hold only the fields that changed.
func (r *Recorder) Record(ctx context.Context, logs contract.AuditLogRepository, rec Record) (*model.AuditEntry, error) {
	oldValue, err := snapshotJSON(rec.Change.Old)
	if err != nil {
		return nil, err
	}
	newValue, err := snapshotJSON(rec.Change.New)
	if err != nil {
		return nil, err
	}

	entry := &model.AuditEntry{
		ActorId:      rec.Actor.Id,
		ActorEmail:   rec.Actor.Email,
		ActorName:    rec.Actor.Name,
		TargetType:   rec.TargetType,
		TargetId:     rec.TargetId,
		MutationType: string(rec.Change.Type),
		OldValue:     oldValue,
		NewValue:     newValue,
		Reason:       rec.Reason,
	}

	if err := logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}

// LinkNotification sets the nullable back-reference from the audit entry to
// the notification created in the same transaction.
func (r *Recorder) LinkNotification(ctx context.Context, logs contract.AuditLogRepository, entryId, notificationId uuid.UUID) error {
	return logs.SetNotification(ctx, entryId, notificationId)
}

func snapshotJSON(snapshot diff.Snapshot) (datatypes.JSON, error) {
	if len(snapshot) == 0 {
		return datatypes.JSON([]byte("{}")), nil
	}
	raw, err := json.Marshal(snapshot)
	if err != nil {
		return nil, fmt.Errorf("failed to encode audit snapshot: %w", err)
	}
	return datatypes.JSON(raw), nil
}
