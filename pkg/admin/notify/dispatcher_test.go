package notify

import (
	"context"
	"encoding/json"
	"testing"

	"lendhub-be/internal/model"
	"lendhub-be/pkg/admin/diff"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captureRepo struct {
	created *model.Notification
}

func (r *captureRepo) CreateNotification(ctx context.Context, n *model.Notification) error {
	n.ID = uuid.New()
	r.created = n
	return nil
}

func (r *captureRepo) GetNotificationByID(ctx context.Context, id uuid.UUID) (*model.Notification, error) {
	return nil, nil
}

func (r *captureRepo) GetNotificationsByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	return nil, 0, nil
}

func (r *captureRepo) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return 0, nil
}

func (r *captureRepo) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return nil
}

func (r *captureRepo) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return nil
}

func dispatch(t *testing.T, req Request) *model.Notification {
	t.Helper()
	repo := &captureRepo{}
	n, err := NewDispatcher().Dispatch(context.Background(), repo, req)
	require.NoError(t, err)
	require.Same(t, repo.created, n)
	return n
}

// The type tag is the change classification itself; the entity kind is
// carried in its own column, never folded into the tag.
func TestDispatchTypeTag(t *testing.T) {
	tests := []struct {
		name       string
		entityType string
		changeType diff.Type
		wantType   string
	}{
		{"loan detail change", EntityLoan, diff.TypeDetailsModified, "details_modified"},
		{"loan status change", EntityLoan, diff.TypeStatusChanged, "status_changed"},
		{"withdrawal status change", EntityWithdrawal, diff.TypeStatusChanged, "status_changed"},
		{"profile correction", EntityProfile, diff.TypeProfileUpdated, "profile_updated"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := dispatch(t, Request{
				OwnerId:    uuid.New(),
				ActorId:    uuid.New(),
				EntityType: tt.entityType,
				EntityId:   uuid.New(),
				Change:     diff.Classification{Type: tt.changeType},
				Reason:     "routine correction by the console",
			})

			assert.Equal(t, tt.wantType, n.Type)
			assert.Equal(t, tt.entityType, n.EntityType)
		})
	}
}

func TestDispatchTargetsOwner(t *testing.T) {
	ownerId := uuid.New()
	actorId := uuid.New()
	entityId := uuid.New()

	n := dispatch(t, Request{
		OwnerId:    ownerId,
		ActorId:    actorId,
		EntityType: EntityLoan,
		EntityId:   entityId,
		Change: diff.Classification{
			Type:          diff.TypeDetailsModified,
			ChangedFields: []string{"loan_amount"},
			Old:           diff.Snapshot{"loan_amount": 50000.0},
			New:           diff.Snapshot{"loan_amount": 60000.0},
		},
		Reason: "customer asked for a higher principal",
	})

	assert.Equal(t, ownerId, n.UserID)
	require.NotNil(t, n.ActorID)
	assert.Equal(t, actorId, *n.ActorID)
	require.NotNil(t, n.EntityID)
	assert.Equal(t, entityId, *n.EntityID)
	assert.False(t, n.IsRead)

	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(n.Payload, &payload))
	assert.Equal(t, "customer asked for a higher principal", payload["reason"])
	assert.Contains(t, payload, "changed_fields")
	assert.Contains(t, payload, "old")
	assert.Contains(t, payload, "new")
}

func TestDispatchActorDisplayName(t *testing.T) {
	t.Run("named actor appears in the message", func(t *testing.T) {
		n := dispatch(t, Request{
			OwnerId:    uuid.New(),
			ActorId:    uuid.New(),
			ActorName:  "Jordan Reyes",
			EntityType: EntityLoan,
			EntityId:   uuid.New(),
			Change:     diff.Classification{Type: diff.TypeDetailsModified},
			Reason:     "terms corrected after customer call",
		})
		assert.Contains(t, n.Message, "Jordan Reyes")
	})

	t.Run("missing name falls back to a generic actor", func(t *testing.T) {
		n := dispatch(t, Request{
			OwnerId:    uuid.New(),
			ActorId:    uuid.New(),
			EntityType: EntityProfile,
			EntityId:   uuid.New(),
			Change:     diff.Classification{Type: diff.TypeProfileUpdated},
			Reason:     "income corrected after payslip review",
		})
		assert.Contains(t, n.Message, "An administrator")
	})
}

func TestDispatchStatusTemplates(t *testing.T) {
	n := dispatch(t, Request{
		OwnerId:    uuid.New(),
		ActorId:    uuid.New(),
		EntityType: EntityLoan,
		EntityId:   uuid.New(),
		Change: diff.Classification{
			Type:      diff.TypeStatusChanged,
			OldStatus: "Pending Approval",
			NewStatus: "Approved",
		},
		Reason: "all verification checks passed",
	})
	assert.Equal(t, "Loan approved", n.Title)

	n = dispatch(t, Request{
		OwnerId:    uuid.New(),
		ActorId:    uuid.New(),
		EntityType: EntityWithdrawal,
		EntityId:   uuid.New(),
		Change: diff.Classification{
			Type:      diff.TypeStatusChanged,
			OldStatus: "review",
			NewStatus: "rejected",
		},
		Reason: "the account holder name does not match",
	})
	assert.Equal(t, "Withdrawal rejected", n.Title)
}
