package profile

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
	profiles map[uuid.UUID]entity.ActivationProfile // keyed by user id

	stagedProfiles map[uuid.UUID]entity.ActivationProfile
	stagedAudit    []*model.AuditEntry
	stagedNotifs   []*model.Notification

	auditEntries  []*model.AuditEntry
	notifications []*model.Notification

	inTx       bool
	committed  bool
	rolledBack bool
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		profiles:       make(map[uuid.UUID]entity.ActivationProfile),
		stagedProfiles: make(map[uuid.UUID]entity.ActivationProfile),
	}
}

func (u *fakeUow) Begin(ctx context.Context) error {
	u.inTx = true
	return nil
}

func (u *fakeUow) Commit() error {
	for userId, p := range u.stagedProfiles {
		u.profiles[userId] = p
	}
	u.auditEntries = append(u.auditEntries, u.stagedAudit...)
	u.notifications = append(u.notifications, u.stagedNotifs...)
	u.stagedProfiles = make(map[uuid.UUID]entity.ActivationProfile)
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
	u.stagedProfiles = make(map[uuid.UUID]entity.ActivationProfile)
	u.stagedAudit = nil
	u.stagedNotifs = nil
	u.inTx = false
	u.rolledBack = true
	return nil
}

func (u *fakeUow) UserRepository() contract.UserRepository             { return nil }
func (u *fakeUow) LoanRepository() contract.LoanRepository             { return nil }
func (u *fakeUow) WithdrawalRepository() contract.WithdrawalRepository { return nil }

func (u *fakeUow) ProfileRepository() contract.ProfileRepository {
	return &fakeProfileRepo{uow: u}
}

func (u *fakeUow) AuditLogRepository() contract.AuditLogRepository {
	return &fakeAuditRepo{uow: u}
}

func (u *fakeUow) NotificationRepository() repository.NotificationRepository {
	return &fakeNotificationRepo{uow: u}
}

type fakeProfileRepo struct{ uow *fakeUow }

func (r *fakeProfileRepo) Create(ctx context.Context, p *entity.ActivationProfile) error { return nil }

func (r *fakeProfileRepo) Update(ctx context.Context, p *entity.ActivationProfile) error {
	r.uow.stagedProfiles[p.UserId] = *p
	return nil
}

func (r *fakeProfileRepo) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ActivationProfile, error) {
	for _, spec := range specs {
		if byUser, ok := spec.(specification.ByUserID); ok {
			if p, found := r.uow.profiles[byUser.UserID]; found {
				copied := p
				return &copied, nil
			}
		}
	}
	return nil, nil
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

func newTestManager() *Manager {
	return NewManager(noopLogger{}, validate.NewValidator(), audit.NewRecorder(), notify.NewDispatcher())
}

func floatPtr(v float64) *float64 { return &v }
func strPtr(v string) *string     { return &v }

func demoProfile() entity.ActivationProfile {
	return entity.ActivationProfile{
		Id:            uuid.New(),
		UserId:        uuid.New(),
		FullName:      "Demo Borrower",
		PhoneNumber:   "+15550100",
		Address:       "1 Demo Street",
		Occupation:    "Engineer",
		MonthlyIncome: 6500,
	}
}

func adminActor() *guard.Actor {
	return &guard.Actor{
		Id:    uuid.New(),
		Email: "admin@lendhub.local",
		Name:  "Console Administrator",
		Role:  entity.UserRoleAdmin,
	}
}

func TestUpdateProfileCorrection(t *testing.T) {
	uow := newFakeUow()
	p := demoProfile()
	uow.profiles[p.UserId] = p

	result, err := newTestManager().Update(context.Background(), uow, adminActor(), p.UserId, &dto.AdminProfileUpdateRequest{
		MonthlyIncome: floatPtr(7200),
		Reason:        "income corrected after payslip review",
	})
	require.NoError(t, err)

	assert.Equal(t, diff.TypeProfileUpdated, result.Change.Type)
	assert.Equal(t, []string{"monthly_income"}, result.Change.ChangedFields)
	assert.Equal(t, 7200.0, result.Profile.MonthlyIncome)
	assert.True(t, uow.committed)

	require.Len(t, uow.auditEntries, 1)
	assert.Equal(t, "profile", uow.auditEntries[0].TargetType)
	assert.Equal(t, p.Id, uow.auditEntries[0].TargetId)

	// Notification goes to the profile owner, not the actor
	require.Len(t, uow.notifications, 1)
	assert.Equal(t, p.UserId, uow.notifications[0].UserID)
}

func TestUpdateProfileMissing(t *testing.T) {
	uow := newFakeUow()

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), uuid.New(), &dto.AdminProfileUpdateRequest{
		FullName: strPtr("Renamed Borrower"),
		Reason:   "legal name change request from the customer",
	})

	assert.Equal(t, apperror.KindNotFound, apperror.KindOf(err))
	assert.False(t, uow.committed)
}

func TestUpdateProfileNoOp(t *testing.T) {
	uow := newFakeUow()
	p := demoProfile()
	uow.profiles[p.UserId] = p

	_, err := newTestManager().Update(context.Background(), uow, adminActor(), p.UserId, &dto.AdminProfileUpdateRequest{
		FullName: strPtr(p.FullName),
		Reason:   "resubmitting the current name unchanged",
	})

	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.True(t, uow.rolledBack)
	assert.Empty(t, uow.auditEntries)
	assert.Empty(t, uow.notifications)
}
