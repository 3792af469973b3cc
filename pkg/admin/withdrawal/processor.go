// Package withdrawal implements the administrative withdrawal review
// workflow. Approval releases funds and therefore requires superadmin.
package withdrawal

import (
	"context"
	"time"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/pkg/logger"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/internal/repository/unitofwork"
	"lendhub-be/pkg/admin/audit"
	"lendhub-be/pkg/admin/diff"
	"lendhub-be/pkg/admin/guard"
	"lendhub-be/pkg/admin/notify"
	"lendhub-be/pkg/admin/transition"
	"lendhub-be/pkg/admin/validate"

	"github.com/google/uuid"
)

type UpdateResult struct {
	Withdrawal   *entity.Withdrawal
	Change       diff.Classification
	AuditEntry   *model.AuditEntry
	Notification *model.Notification
}

// Processor orchestrates withdrawal mutations.
type Processor struct {
	logger     logger.ILogger
	validator  validate.IValidator
	recorder   audit.IRecorder
	dispatcher notify.IDispatcher
}

func NewProcessor(logger logger.ILogger, validator validate.IValidator, recorder audit.IRecorder, dispatcher notify.IDispatcher) *Processor {
	return &Processor{
		logger:     logger,
		validator:  validator,
		recorder:   recorder,
		dispatcher: dispatcher,
	}
}

// GetAll retrieves paginated withdrawal requests with optional status filter.
func (p *Processor) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.Withdrawal, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	offset := (page - 1) * limit

	var filters []specification.Specification
	if status != "" {
		filters = append(filters, specification.Filter("status", status))
	}

	total, err := uow.WithdrawalRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.Pagination{Limit: limit, Offset: offset},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	withdrawals, err := uow.WithdrawalRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return withdrawals, total, nil
}

// Update applies an administrative mutation to a withdrawal request in one
// all-or-nothing transaction.
func (p *Processor) Update(ctx context.Context, uow unitofwork.UnitOfWork, actor *guard.Actor, withdrawalId uuid.UUID, req *dto.AdminWithdrawalUpdateRequest) (*UpdateResult, error) {
	if err := p.validator.WithdrawalUpdate(req); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Transactional("Failed to start transaction", err)
	}
	defer uow.Rollback()

	withdrawal, err := uow.WithdrawalRepository().FindOne(ctx, specification.ByID{ID: withdrawalId})
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, apperror.NotFound("Withdrawal request not found")
	}

	if req.ExpectedUpdatedAt != nil && !withdrawal.UpdatedAt.Equal(*req.ExpectedUpdatedAt) {
		return nil, apperror.Conflict("Withdrawal was modified by someone else, reload and retry")
	}

	before := withdrawalSnapshot(withdrawal)
	previousStatus := withdrawal.Status

	if req.AdminNotes != nil {
		withdrawal.AdminNotes = *req.AdminNotes
	}
	if req.Status != nil {
		next := entity.WithdrawalStatus(*req.Status)
		if err := transition.ValidateWithdrawal(previousStatus, next, actor.Role); err != nil {
			return nil, err
		}
		withdrawal.Status = next
		// Terminal decisions stamp the processing time
		if next == entity.WithdrawalStatusApproved || next == entity.WithdrawalStatusRejected {
			now := time.Now()
			withdrawal.ProcessedAt = &now
		}
	}

	change := diff.Classify(before, withdrawalSnapshot(withdrawal))
	if change.Type == diff.TypeNoOp {
		return nil, apperror.Validation([]string{"the submitted values match the current record, nothing to update"})
	}

	if err := uow.WithdrawalRepository().Update(ctx, withdrawal); err != nil {
		return nil, apperror.Transactional("Failed to persist withdrawal", err)
	}

	entry, err := p.recorder.Record(ctx, uow.AuditLogRepository(), audit.Record{
		Actor:      actor,
		TargetType: notify.EntityWithdrawal,
		TargetId:   withdrawal.Id,
		Change:     change,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, apperror.Transactional("Failed to record audit entry", err)
	}

	notification, err := p.dispatcher.Dispatch(ctx, uow.NotificationRepository(), notify.Request{
		OwnerId:    withdrawal.UserId,
		ActorId:    actor.Id,
		ActorName:  actor.Name,
		EntityType: notify.EntityWithdrawal,
		EntityId:   withdrawal.Id,
		Change:     change,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, apperror.Transactional("Failed to create notification", err)
	}
	if err := p.recorder.LinkNotification(ctx, uow.AuditLogRepository(), entry.Id, notification.ID); err != nil {
		return nil, apperror.Transactional("Failed to link notification to audit entry", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Transactional("Failed to commit withdrawal mutation", err)
	}

	p.logger.Info("ADMIN", "Withdrawal updated", map[string]interface{}{
		"withdrawalId": withdrawal.Id.String(),
		"actorId":      actor.Id.String(),
		"mutationType": string(change.Type),
		"reason":       req.Reason,
	})

	return &UpdateResult{
		Withdrawal:   withdrawal,
		Change:       change,
		AuditEntry:   entry,
		Notification: notification,
	}, nil
}

func withdrawalSnapshot(w *entity.Withdrawal) diff.Snapshot {
	return diff.Snapshot{
		"status":      string(w.Status),
		"admin_notes": w.AdminNotes,
	}
}
