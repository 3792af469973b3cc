package withdrawal

import (
	"context"
	"errors"
	"testing"

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

type fakeUow struct {
	withdrawals map[uuid.UUID]entity.Withdrawal

	stagedWithdrawals map[uuid.UUID]entity.Withdrawal
	stagedAudit       []*model.AuditEntry
	stagedNotifs      []*model.Notification

	auditEntries  []*model.AuditEntry
	notifications []*model.Notification

	inTx       bool
	committed  bool
	rolledBack bool
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		withdrawals:       make(map[uuid.UUID]entity.Withdrawal),
		stagedWithdrawals: make(map[uuid.UUID]entity.Withdrawal),
	}
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUow) Commit() error {
	for id, w := range u.stagedWithdrawals {
		u.withdrawals[id] = w
	}
	u.auditEntries = append(u.auditEntries, u.stagedAudit...)
	u.notifications = append(u.notifications, u.stagedNotifs...)
	u.stagedWithdrawals = make(map[uuid.UUID]entity.Withdrawal)
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
	u.stagedWithdrawals = make(map[uuid.UUID]entity.Withdrawal)
	u.stagedAudit = nil
	u.stagedNotifs = nil
	u.inTx = false
	u.rolledBack = true
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository       { return nil }
func (u *fakeUow) LoanRepository() contract.LoanRepository       { return nil }
func (u *fakeUow) ProfileRepository() contract.ProfileRepository { return nil }

func (u *fakeUow) WithdrawalRepository() contract.WithdrawalRepository {
	return &fakeWithdrawalRepo{uow: u}
}

func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository {
	return &fakeAuditRepo{uow: u}
}

func (u *fakeUow) NotificationRepository() repository.NotificationRepository {
	return &fakeNotificationRepo{uow: u}
}

type fakeWithdrawalRepo struct{ uow *fakeUow }

func (r *fakeWithdrawalRepo) Create(ctx context.Context, w *entity.Withdrawal) error { return nil }

func (r *fakeWithdrawalRepo) Update(ctx context.Context, w *entity.Withdrawal) error {
	r.uow.stagedWithdrawals[w.Id] = *w
	return nil
}

func (r *fakeWithdrawalRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Withdrawal, error) {
	for _, spec := range specs {
		if byID, ok := spec.(specification.ByID); ok {
			if w, found := r.uow.withdrawals[byID.ID]; found {
				copied := w
				return &copied, nil
			}
		}
	}
	return nil, nil
}

func (r *fakeWithdrawalRepo) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Withdrawal, error) {
	return nil, nil
}

func (r *fakeWithdrawalRepo) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeAuditRepo struct{ uow *fakeUow }

func (r *fakeAuditRepo) Create(ctx context.Context, entry *model.AuditEntry) error {
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

func newTestProcessor() *Processor {
	return NewProcessor(noopLogger{}, validate.NewValidator(), audit.NewRecorder(), notify.NewDispatcher())
}

func strPtr(v string) *string { return &v }

func pendingWithdrawal() entity.Withdrawal {
	return entity.Withdrawal{
		Id:            uuid.New(),
		UserId:        uuid.New(),
		Amount:        2500,
		BankName:      "First National",
		AccountNumber: "000123456",
		AccountHolder: "Demo Borrower",
		Status:        entity.WithdrawalStatusPending,
	}
}

func actorWithRole(role entity.UserRole) *guard.Actor {
	return &guard.Actor{
		Id:    uuid.New(),
		Email: "staff@lendhub.local",
		Name:  "Lending Staff",
		Role:  role,
	}
}

func TestUpdateMoveToReview(t *testing.T) {
	uow := newFakeUow()
	w := pendingWithdrawal()
	uow.withdrawals[w.Id] = w

	result, err := newTestProcessor().Update(context.Background(), uow, actorWithRole(entity.UserRoleAdmin), w.Id, &dto.AdminWithdrawalUpdateRequest{
		Status: strPtr(string(entity.WithdrawalStatusReview)),
		Reason: "destination account needs manual verification",
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeStatusChanged, result.Change.Type)
	assert.Equal(t, entity.WithdrawalStatusReview, result.Withdrawal.Status)
	assert.Nil(t, result.Withdrawal.ProcessedAt, "review is not a terminal decision")
	assert.True(t, uow.committed)
}

func TestUpdateApprovalRequiresSuperadmin(t *testing.T) {
	uow := newFakeUow()
	w := pendingWithdrawal()
	w.Status = entity.WithdrawalStatusReview
	uow.withdrawals[w.Id] = w

	_, err := newTestProcessor().Update(context.Background(), uow, actorWithRole(entity.UserRoleAdmin), w.Id, &dto.AdminWithdrawalUpdateRequest{
		Status: strPtr(string(entity.WithdrawalStatusApproved)),
		Reason: "account verified against the bank registry",
	})

	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
	assert.Equal(t, entity.WithdrawalStatusReview, uow.withdrawals[w.Id].Status)
}

func TestUpdateSuperadminApprovalStampsProcessedAt(t *testing.T) {
	uow := newFakeUow()
	w := pendingWithdrawal()
	w.Status = entity.WithdrawalStatusReview
	uow.withdrawals[w.Id] = w

	result, err := newTestProcessor().Update(context.Background(), uow, actorWithRole(entity.UserRoleSuperadmin), w.Id, &dto.AdminWithdrawalUpdateRequest{
		Status: strPtr(string(entity.WithdrawalStatusApproved)),
		Reason: "account verified against the bank registry",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.WithdrawalStatusApproved, result.Withdrawal.Status)
	require.NotNil(t, result.Withdrawal.ProcessedAt)

	stored := uow.withdrawals[w.Id]
	assert.NotNil(t, stored.ProcessedAt)
}

func TestUpdateRejectionByAdmin(t *testing.T) {
	uow := newFakeUow()
	w := pendingWithdrawal()
	uow.withdrawals[w.Id] = w

	result, err := newTestProcessor().Update(context.Background(), uow, actorWithRole(entity.UserRoleAdmin), w.Id, &dto.AdminWithdrawalUpdateRequest{
		Status:     strPtr(string(entity.WithdrawalStatusRejected)),
		AdminNotes: strPtr("account holder name does not match"),
		Reason:     "the account holder name does not match the user record",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.WithdrawalStatusRejected, result.Withdrawal.Status)
	assert.NotNil(t, result.Withdrawal.ProcessedAt)

	require.Len(t, uow.auditEntries, 1)
	assert.Equal(t, "withdrawal", uow.auditEntries[0].TargetType)
	require.Len(t, uow.notifications, 1)
	assert.Equal(t, w.UserId, uow.notifications[0].UserID)
}

func TestUpdateNotesOnlyIsDetailsModified(t *testing.T) {
	uow := newFakeUow()
	w := pendingWithdrawal()
	uow.withdrawals[w.Id] = w

	result, err := newTestProcessor().Update(context.Background(), uow, actorWithRole(entity.UserRoleAdmin), w.Id, &dto.AdminWithdrawalUpdateRequest{
		AdminNotes: strPtr("awaiting bank statement from the customer"),
		Reason:     "documenting the pending verification step",
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeDetailsModified, result.Change.Type)
	assert.Equal(t, entity.WithdrawalStatusPending, result.Withdrawal.Status)
}

func TestUpdateUnknownWithdrawal(t *testing.T) {
	uow := newFakeUow()

	_, err := newTestProcessor().Update(context.Background(), uow, actorWithRole(entity.UserRoleAdmin), uuid.New(), &dto.AdminWithdrawalUpdateRequest{
		Status: strPtr(string(entity.WithdrawalStatusReview)),
		Reason: "routing to the verification queue",
	})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.Empty(t, uow.auditEntries)
	assert.Empty(t, uow.notifications)
}
