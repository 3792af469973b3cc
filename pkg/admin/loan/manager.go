// Package loan implements the administrative loan mutation workflow: field
// validation, optimistic-concurrency check, financial recomputation, status
// transition enforcement, audit recording and owner notification, all inside
// one transaction.
package loan

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
	"lendhub-be/pkg/admin/transition"
	"lendhub-be/pkg/admin/validate"
	"lendhub-be/pkg/finance"

	"github.com/google/uuid"
)

// UpdateResult contains the committed loan plus the audit and notification
// rows created with it.
type UpdateResult struct {
	Loan         *entity.Loan
	Change       diff.Classification
	AuditEntry   *model.AuditEntry
	Notification *model.Notification
}

// Manager orchestrates loan mutations.
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

// GetAll retrieves paginated loans with optional status filter.
func (m *Manager) GetAll(ctx context.Context, uow unitofwork.UnitOfWork, page, limit int, status string) ([]*entity.Loan, int64, error) {
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

	total, err := uow.LoanRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.Pagination{Limit: limit, Offset: offset},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	loans, err := uow.LoanRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}
	return loans, total, nil
}

// Update applies an administrative mutation to a loan. Either every write
// (loan row, audit entry, notification) commits or none of them do.
func (m *Manager) Update(ctx context.Context, uow unitofwork.UnitOfWork, actor *guard.Actor, loanId uuid.UUID, req *dto.AdminLoanUpdateRequest) (*UpdateResult, error) {
	// 1. Validate the payload before touching the database
	if err := m.validator.LoanUpdate(req); err != nil {
		return nil, err
	}

	// 2. Start transaction; the load happens inside it so the concurrency
	// check and the update see the same row version
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Transactional("Failed to start transaction", err)
	}
	defer uow.Rollback()

	loan, err := uow.LoanRepository().FindOne(ctx, specification.ByID{ID: loanId})
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, apperror.NotFound("Loan not found")
	}

	// 3. Optimistic concurrency: the token the console last saw must still
	// match the stored row
	if req.ExpectedUpdatedAt != nil && !loan.UpdatedAt.Equal(*req.ExpectedUpdatedAt) {
		return nil, apperror.Conflict("Loan was modified by someone else, reload and retry")
	}

	before := loanSnapshot(loan)
	previousStatus := loan.Status

	// 4. Apply the allow-listed fields
	termsChanged := applyLoanFields(loan, req)

	if req.Status != nil {
		next := entity.LoanStatus(*req.Status)
		if err := transition.ValidateLoan(previousStatus, next, actor.Role); err != nil {
			return nil, err
		}
		loan.Status = next
	}

	// 5. Recompute the repayment schedule whenever a financial input moved;
	// stored figures are never taken from the caller
	if termsChanged {
		schedule := finance.Amortize(loan.LoanAmount, loan.InterestRate, loan.DurationMonths)
		loan.MonthlyPayment = schedule.MonthlyPayment
		loan.TotalInterest = schedule.TotalInterest
		loan.TotalAmount = schedule.TotalAmount
	}

	change := diff.Classify(before, loanSnapshot(loan))
	if change.Type == diff.TypeNoOp {
		return nil, apperror.Validation([]string{"the submitted values match the current record, nothing to update"})
	}

	// 6. Persist
	if err := uow.LoanRepository().Update(ctx, loan); err != nil {
		return nil, apperror.Transactional("Failed to persist loan", err)
	}

	// 7. Audit
	entry, err := m.recorder.Record(ctx, uow.AuditLogRepository(), audit.Record{
		Actor:      actor,
		TargetType: notify.EntityLoan,
		TargetId:   loan.Id,
		Change:     change,
		Reason:     req.Reason,
	})
	if err != nil {
		return nil, apperror.Transactional("Failed to record audit entry", err)
	}

	// 8. Notify the loan owner and back-reference the notification from the
	// audit entry
	notification, err := m.dispatcher.Dispatch(ctx, uow.NotificationRepository(), notify.Request{
		OwnerId:    loan.UserId,
		ActorId:    actor.Id,
		ActorName:  actor.Name,
		EntityType: notify.EntityLoan,
		EntityId:   loan.Id,
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
		return nil, apperror.Transactional("Failed to commit loan mutation", err)
	}

	m.logger.Info("ADMIN", "Loan updated", map[string]interface{}{
		"loanId":       loan.Id.String(),
		"actorId":      actor.Id.String(),
		"mutationType": string(change.Type),
		"reason":       req.Reason,
	})

	return &UpdateResult{
		Loan:         loan,
		Change:       change,
		AuditEntry:   entry,
		Notification: notification,
	}, nil
}

func applyLoanFields(loan *entity.Loan, req *dto.AdminLoanUpdateRequest) (termsChanged bool) {
	if req.LoanAmount != nil && *req.LoanAmount != loan.LoanAmount {
		loan.LoanAmount = *req.LoanAmount
		termsChanged = true
	}
	if req.InterestRate != nil && *req.InterestRate != loan.InterestRate {
		loan.InterestRate = *req.InterestRate
		termsChanged = true
	}
	if req.DurationMonths != nil && *req.DurationMonths != loan.DurationMonths {
		loan.DurationMonths = *req.DurationMonths
		termsChanged = true
	}
	if req.Notes != nil {
		loan.Notes = *req.Notes
	}
	return termsChanged
}

// loanSnapshot captures the tracked loan fields for diffing and auditing.
func loanSnapshot(loan *entity.Loan) diff.Snapshot {
	return diff.Snapshot{
		"status":          string(loan.Status),
		"loan_amount":     loan.LoanAmount,
		"interest_rate":   loan.InterestRate,
		"duration_months": loan.DurationMonths,
		"notes":           loan.Notes,
		"monthly_payment": loan.MonthlyPayment,
		"total_interest":  loan.TotalInterest,
		"total_amount":    loan.TotalAmount,
	}
}
