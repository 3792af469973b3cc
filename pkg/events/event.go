package events

import (
	"time"

	"github.com/google/uuid"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "LOAN_UPDATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// Event codes published by the admin mutation pipeline after commit.
const (
	TypeLoanUpdated       = "LOAN_UPDATED"
	TypeWithdrawalUpdated = "WITHDRAWAL_UPDATED"
	TypeProfileUpdated    = "PROFILE_UPDATED"
)

// NewAdminMutationEvent wraps a committed mutation into a bus event. The
// notification id lets downstream consumers correlate the push they deliver
// with the row already stored for the owner.
func NewAdminMutationEvent(eventType string, ownerId, entityId uuid.UUID, notificationId *uuid.UUID, mutationType string) BaseEvent {
	data := map[string]interface{}{
		"owner_id":      ownerId.String(),
		"entity_id":     entityId.String(),
		"mutation_type": mutationType,
	}
	if notificationId != nil {
		data["notification_id"] = notificationId.String()
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
