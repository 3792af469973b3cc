package loan

import (
	"context"
	"errors"
	"testing"
	"time"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/pkg/logger"
	"lendhub-be/internal/repository"
	"lendhub-be/internal/repository/contract"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/pkg/admin/audit"
	"lendhub-be/pkg/admin/diff"
	"lendhub-be/pkg/admin/guard"
	"lendhub-be/pkg/admin/notify"
	"lendhub-be/pkg/admin/validate"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeUow is an in-memory unit of work with real staging semantics: writes
// land in a staging area and only reach the committed state on Commit, so
// the all-or-nothing behavior of the pipeline is observable.
type fakeUow struct {
	loans map[uuid.UUID]entity.Loan

	stagedLoans  map[uuid.UUID]entity.Loan
	stagedAudit  []*model.AuditEntry
	stagedNotifs []*model.Notification

	auditEntries  []*model.AuditEntry
	notifications []*model.Notification

	inTx       bool
	committed  bool
	rolledBack bool

	failLoanUpdate bool
	failAudit      bool
	failNotify     bool
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		loans:       make(map[uuid.UUID]entity.Loan),
		stagedLoans: make(map[uuid.UUID]entity.Loan),
	}
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUow) Commit() error {
	for id, loan := range u.stagedLoans {
		u.loans[id] = loan
	}
	u.auditEntries = append(u.auditEntries, u.stagedAudit...)
	u.notifications = append(u.notifications, u.stagedNotifs...)
	u.stagedLoans = make(map[uuid.UUID]entity.Loan)
	u.stagedAudit = nil
	u.stagedNotifs = nil
	u.inTx = false
	u.committed = true
	return nil
}

func (u *fakeUow) Rollback() error {
	if !u.inTx {
		return errors.New("no transaction to rollback")
	}
	u.stagedLoans = make(map[uuid.UUID]entity.Loan)
	u.stagedAudit = nil
	u.stagedNotifs = nil
	u.inTx = false
	u.rolledBack = true
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository             { return nil }
func (u *fakeUow) WithdrawalRepository() contract.WithdrawalRepository { return nil }
func (u *fakeUow) ProfileRepository() contract.ProfileRepository       { return nil }

func (u *fakeUow) LoanRepository() contract.LoanRepository {
	return &fakeLoanRepo{uow: u}
}

func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository {
	return &fakeAuditRepo{uow: u}
}

func (u *fakeUow) NotificationRepository() repository.NotificationRepository {
	return &fakeNotificationRepo{uow: u}
}

type fakeLoanRepo struct{ uow *fakeUow }

func (r *fakeLoanRepo) Create(ctx context.Context, loan *entity.Loan) error { return nil }

func (r *fakeLoanRepo) Update(ctx context.Context, loan *entity.Loan) error {
	if r.uow.failLoanUpdate {
		return errors.New("write failed")
	}
	r.uow.stagedLoans[loan.Id] = *loan
	return nil
}

func (r *fakeLoanRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Loan, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if loan, found := r.uow.loans[byID.ID]; found {
				copied := loan
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeLoanRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Loan, error) {
	var out []*entity.Loan
	for id := range r.uow.loans {
		loan := r.uow.loans[id]
		out = append(out, &loan)
	}
	return out, nil
}

func (r *fakeLoanRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return int64(len(r.uow.loans)), nil
}

type fakeAuditRepo struct{ uow *fakeUow }

func (r *fakeAuditRepo) Create(ctx context.Context, entry *model.AuditEntry) error {
	if r.uow.failAudit {
		return errors.New("audit insert failed")
	}
	entry.Id = uuid.New()
	r.uow.stagedAudit = append(r.uow.stagedAudit, entry)
	return nil
}

func (r *fakeAuditRepo) SetNotification(ctx context.Context, entryId, notificationId uuid.UUID) error {
	for _, entry := range r.uow.stagedAudit {
		if entry.Id == entryId {
			entry.NotificationId = &notificationId
			return nil
		}
	}
	return errors.New("entry not found")
}

func (r *fakeAuditRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*model.AuditEntry, error) {
	return r.uow.auditEntries, nil
}

type fakeNotificationRepo struct{ uow *fakeUow }

func (r *fakeNotificationRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	if r.uow.failNotify {
		return errors.New("notification insert failed")
	}
	n.ID = uuid.New()
	r.uow.stagedNotifs = append(r.uow.stagedNotifs, n)
	return nil
}

func (r *fakeNotificationRepo) GetNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	return nil, nil
}

func (r *fakeNotificationRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (r *fakeNotificationRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *fakeNotificationRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return nil
}

func (r *fakeNotificationRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }
func (noopLogger) GetLogs(level string, limit, offset int) ([]logger.LogEntry, error) {
	return nil, nil
}
func (noopLogger) GetLogById(id string) (*logger.LogEntry, error) { return nil, nil }

func newTestManager() *Manager {
	return NewManager(noopLogger{}, validate.NewValidator(), audit.NewRecorder(), notify.NewDispatcher())
}

func adminActor() *guard.Actor {
	return &guard.Actor{
		Id:    uuid.New(),
		Email: "admin@lendhub.local",
		Name:  "Console Administrator",
		Role:  entity.UserRoleAdmin,
	}
}

func pendingLoan() entity.Loan {
	return entity.Loan{
		Id:             uuid.New(),
		UserId:         uuid.New(),
		LoanAmount:     50000,
		InterestRate:   5.0,
		DurationMonths: 24,
		Purpose:        "Working capital",
		Status:         entity.LoanStatusPendingApproval,
		MonthlyPayment: 2193.57,
		TotalInterest:  2645.68,
		TotalAmount:    52645.68,
		UpdatedAt:      time.Now().Add(-time.Hour),
	}
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

const testReason = "customer asked for a higher principal"

func TestUpdateRecomputesScheduleOnAmountChange(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan

	result, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(60000),
		Reason:     testReason,
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeDetailsModified, result.Change.Type)
	assert.Equal(t, 60000.0, result.Loan.LoanAmount)
	assert.NotEqual(t, loan.MonthlyPayment, result.Loan.MonthlyPayment, "monthly payment must be re-derived")
	assert.InDelta(t, result.Loan.MonthlyPayment*24, result.Loan.TotalAmount, 0.01)

	assert.True(t, uow.committed)
	stored := uow.loans[loan.Id]
	assert.Equal(t, 60000.0, stored.LoanAmount)
}

func TestUpdateStatusChange(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan

	result, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		Status: strPtr(string(entity.LoanStatusRejected)),
		Reason: "income verification failed twice",
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeStatusChanged, result.Change.Type)
	assert.Equal(t, string(entity.LoanStatusPendingApproval), result.Change.OldStatus)
	assert.Equal(t, string(entity.LoanStatusRejected), result.Change.NewStatus)

	// Rejecting does not touch the financials
	assert.Equal(t, loan.MonthlyPayment, result.Loan.MonthlyPayment)
}

func TestUpdateWritesCompleteAuditTrail(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan
	actor := adminActor()

	result, err := newTestManager().Update(context.Background(), uow, actor, loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(60000),
		Reason:     testReason,
	})
	require.NoError(t, err)

	require.Len(t, uow.auditEntries, 1)
	entry := uow.auditEntries[0]
	assert.Equal(t, actor.Id, entry.ActorId)
	assert.Equal(t, actor.Email, entry.ActorEmail)
	assert.Equal(t, "loan", entry.TargetType)
	assert.Equal(t, loan.Id, entry.TargetId)
	assert.Equal(t, string(diff.TypeDetailsModified), entry.MutationType)
	assert.Equal(t, testReason, entry.Reason)
	assert.NotEmpty(t, entry.OldValue)
	assert.NotEmpty(t, entry.NewValue)

	// Notification row exists for the owner and is back-referenced
	require.Len(t, uow.notifications, 1)
	notification := uow.notifications[0]
	assert.Equal(t, loan.UserId, notification.UserID)
	assert.Equal(t, "details_modified", notification.Type)
	assert.Equal(t, "loan", notification.EntityType)
	assert.False(t, notification.IsRead)
	require.NotNil(t, entry.NotificationId)
	assert.Equal(t, notification.ID, *entry.NotificationId)
	assert.Equal(t, notification.ID, result.Notification.ID)
}

func TestUpdateUnknownLoan(t *testing.T) {
	uow := newFakeUow()

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), uuid.New(), &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(60000),
		Reason:     testReason,
	})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.False(t, uow.committed)
	assert.Empty(t, uow.auditEntries)
	assert.Empty(t, uow.notifications)
}

func TestUpdateValidationFailureTouchesNothing(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(60000),
		Reason:     "short",
	})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.False(t, uow.inTx, "validation must run before the transaction starts")
	assert.False(t, uow.committed)
}

func TestUpdateStaleToken(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan

	stale := loan.UpdatedAt.Add(-time.Minute)
	_, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount:        floatPtr(60000),
		Reason:            testReason,
		ExpectedUpdatedAt: &stale,
	})

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
	assert.Equal(t, 50000.0, uow.loans[loan.Id].LoanAmount)
}

func TestUpdateIllegalTransitionForAdmin(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		Status: strPtr(string(entity.LoanStatusCompleted)),
		Reason: "trying to shortcut the lifecycle",
	})

	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
}

func TestUpdateSuperadminOverridesTransitionGraph(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	loan.Status = entity.LoanStatusRejected
	uow.loans[loan.Id] = loan

	actor := adminActor()
	actor.Role = entity.UserRoleSuperadmin

	result, err := newTestManager().Update(context.Background(), uow, actor, loan.Id, &dto.AdminLoanUpdateRequest{
		Status: strPtr(string(entity.LoanStatusApproved)),
		Reason: "reversing an incorrect rejection",
	})
	require.NoError(t, err)
	assert.Equal(t, entity.LoanStatusApproved, result.Loan.Status)
}

func TestUpdateAuditFailureRollsEverythingBack(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan
	uow.failAudit = true

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(60000),
		Reason:     testReason,
	})

	assert.Equal(t, apperror.KindTransactional, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
	assert.False(t, uow.committed)
	assert.Equal(t, 50000.0, uow.loans[loan.Id].LoanAmount, "loan write must not survive the failed audit")
	assert.Empty(t, uow.notifications)
}

func TestUpdateNotificationFailureRollsEverythingBack(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan
	uow.failNotify = true

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(60000),
		Reason:     testReason,
	})

	assert.Equal(t, apperror.KindTransactional, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
	assert.Equal(t, 50000.0, uow.loans[loan.Id].LoanAmount)
	assert.Empty(t, uow.auditEntries, "no orphaned audit entry without its notification")
}

func TestUpdateNoOpSubmission(t *testing.T) {
	uow := newFakeUow()
	loan := pendingLoan()
	uow.loans[loan.Id] = loan

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), loan.Id, &dto.AdminLoanUpdateRequest{
		LoanAmount: floatPtr(loan.LoanAmount),
		Reason:     "resubmitting the very same values",
	})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
	assert.Empty(t, uow.auditEntries)
}
