// Package notify turns a diff classification into the owner-facing
// notification row. The dispatcher writes through the repository handed to
// it, so the insert shares the mutation's transaction.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
	"lendhub-be/internal/repository"
	"lendhub-be/pkg/admin/diff"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	EntityLoan       = "loan"
	EntityWithdrawal = "withdrawal"
	EntityProfile    = "profile"
)

type Request struct {
	OwnerId    uuid.UUID
	ActorId    uuid.UUID
	ActorName  string
	EntityType string
	EntityId   uuid.UUID
	Change     diff.Classification
	Reason     string
}

type IDispatcher interface {
	Dispatch(ctx context.Context, notifications repository.NotificationRepository, req Request) (*model.Notification, error)
}

type Dispatcher struct{}

func NewDispatcher() IDispatcher {
	return &Dispatcher{}
}

// Dispatch creates the unread notification for the mutated entity's owner.
// The template is selected by entity kind and change classification; the
// payload carries the changed values and the admin's reason so the client
// can render the detail view without another fetch.
func (d *Dispatcher) Dispatch(ctx context.Context, notifications repository.NotificationRepository, req Request) (*model.Notification, error) {
	title, message := d.template(req)

	payload, err := json.Marshal(map[string]interface{}{
		"changed_fields": req.Change.ChangedFields,
		"old":            req.Change.Old,
		"new":            req.Change.New,
		"reason":         req.Reason,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode notification payload: %w", err)
	}

	actorId := req.ActorId
	entityId := req.EntityId
	notification := &model.Notification{
		UserID:  req.OwnerId,
		ActorID: &actorId,
		// Type is the change classification itself; the entity kind lives in
		// its own column.
		Type:       string(req.Change.Type),
		EntityType: req.EntityType,
		EntityID:   &entityId,
		Title:      title,
		Message:    message,
		Payload:    datatypes.JSON(payload),
	}

	if err := notifications.CreateNotification(ctx, notification); err != nil {
		return nil, err
	}
	return notification, nil
}

func (d *Dispatcher) template(req Request) (title, message string) {
	actor := actorDisplayName(req.ActorName)
	switch req.EntityType {
	case EntityLoan:
		return loanTemplate(req.Change, actor)
	case EntityWithdrawal:
		return withdrawalTemplate(req.Change, actor)
	case EntityProfile:
		return "Profile updated",
			fmt.Sprintf("%s updated your activation profile. Open your profile to review the changes.", actor)
	default:
		return "Account updated", fmt.Sprintf("%s updated your account.", actor)
	}
}

func actorDisplayName(name string) string {
	if name == "" {
		return "An administrator"
	}
	return name
}

func loanTemplate(change diff.Classification, actor string) (string, string) {
	if change.Type == diff.TypeStatusChanged {
		switch entity.LoanStatus(change.NewStatus) {
		case entity.LoanStatusApproved:
			return "Loan approved", "Congratulations, your loan application has been approved."
		case entity.LoanStatusRejected:
			return "Loan rejected", "Unfortunately, your loan application has been rejected. See the details for the reason."
		case entity.LoanStatusInRepayment:
			return "Loan disbursed", "Your loan has been disbursed and is now in repayment."
		case entity.LoanStatusCompleted:
			return "Loan completed", "Your loan has been fully repaid. Thank you."
		default:
			return "Loan status updated",
				fmt.Sprintf("Your loan status changed from %s to %s.", change.OldStatus, change.NewStatus)
		}
	}
	return "Loan terms updated",
		fmt.Sprintf("%s adjusted the terms of your loan. Your repayment schedule has been recalculated.", actor)
}

func withdrawalTemplate(change diff.Classification, actor string) (string, string) {
	if change.Type == diff.TypeStatusChanged {
		switch entity.WithdrawalStatus(change.NewStatus) {
		case entity.WithdrawalStatusApproved:
			return "Withdrawal approved", "Your withdrawal request has been approved and will be transferred shortly."
		case entity.WithdrawalStatusRejected:
			return "Withdrawal rejected", "Your withdrawal request has been rejected. See the details for the reason."
		case entity.WithdrawalStatusReview:
			return "Withdrawal under review", "Your withdrawal request is being reviewed by our team."
		default:
			return "Withdrawal status updated",
				fmt.Sprintf("Your withdrawal status changed from %s to %s.", change.OldStatus, change.NewStatus)
		}
	}
	return "Withdrawal updated", fmt.Sprintf("%s updated your withdrawal request.", actor)
}
