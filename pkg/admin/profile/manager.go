// Package profile implements administrative corrections to user activation
// profiles.
package profile

import (
	"context"

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
	"lendhub-be/pkg/admin/validate"

	"github.com/google/uuid"
)

type UpdateResult struct {
	Profile      *entity.ActivationProfile
	Change       diff.Classification
	AuditEntry   *model.AuditEntry
	Notification *model.Notification
}

// Manager orchestrates profile mutations.
type Manager struct {
	logger     logger.ILogger
	validator  validate.IValidator
	recorder   audit.IRecorder
	dispatcher notify.IDispatcher
}

func NewManager(logger logger.ILogger, validator validate.IValidator, recorder audit.IRecorder, dispatcher notify.IDispatcher) *Manager {
	return &Manager{
		logger:     logger,
		validator:  validator,
		recorder:   recorder,
		dispatcher: dispatcher,
	}
}

// Update corrects a user's activation profile. Profiles carry no status, so
// every change classifies as profile_updated.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, actor *guard.Actor, userId uuid.UUID, req *dto.AdminProfileUpdateRequest) (*UpdateResult, error) {
	if err := m.validator.ProfileUpdate(req); err != nil {
		return nil, err
	}

	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Transactional("Failed to start transaction", err)
	}
	defer uow.Rollback()

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Activation profile not found")
	}

	if req.ExpectedUpdatedAt != nil && !profile.UpdatedAt.Equal(*req.ExpectedUpdatedAt) {
		return nil, apperror.Conflict("Profile was modified by someone else, reload and retry")
	}

	before := profileSnapshot(profile)
	applyProfileFields(profile, req)

	change := diff.ClassifyProfile(before, profileSnapshot(profile))
	if change.Type == diff.TypeNoOp {
		return nil, apperror.Validation([]string{"the submitted values match the current record, nothing to update"})
	}

	if err := uow.ProfileRepository().Update(ctx, profile); err != nil {
		return nil, apperror.Transactional("Failed to persist profile", err)
	}

	entry, err := m.recorder.Record(ctx, uow.AuditLogRepository(), audit.Record{
		Actor:      actor,
		TargetType: notify.EntityProfile,
		TargetId:   profile.Id,
		Change:     change,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, apperror.Transactional("Failed to record audit entry", err)
	}

	notification, err := m.dispatcher.Dispatch(ctx, uow.NotificationRepository(), notify.Request{
		OwnerId:    profile.UserId,
		ActorId:    actor.Id,
		ActorName:  actor.Name,
		EntityType: notify.EntityProfile,
		EntityId:   profile.Id,
		Change:     change,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, apperror.Transactional("Failed to create notification", err)
	}
	if err := m.recorder.LinkNotification(ctx, uow.AuditLogRepository(), entry.Id, notification.ID); err != nil {
		return nil, apperror.Transactional("Failed to link notification to audit entry", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Transactional("Failed to commit profile mutation", err)
	}

	m.logger.Info("ADMIN", "Profile updated", map[string]interface{}{
		"profileId": profile.Id.String(),
		"userId":    profile.UserId.String(),
		"actorId":   actor.Id.String(),
		"reason":    req.Reason,
	})

	return &UpdateResult{
		Profile:      profile,
		Change:       change,
		AuditEntry:   entry,
		Notification: notification,
	}, nil
}

func applyProfileFields(profile *entity.ActivationProfile, req *dto.AdminProfileUpdateRequest) {
	if req.FullName != nil {
		profile.FullName = *req.FullName
	}
	if req.PhoneNumber != nil {
		profile.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Occupation != nil {
		profile.Occupation = *req.Occupation
	}
	if req.MonthlyIncome != nil {
		profile.MonthlyIncome = *req.MonthlyIncome
	}
}

func profileSnapshot(p *entity.ActivationProfile) diff.Snapshot {
	return diff.Snapshot{
		"full_name":      p.FullName,
		"phone_number":   p.PhoneNumber,
		"address":        p.Address,
		"occupation":     p.Occupation,
		"monthly_income": p.MonthlyIncome,
	}
}
