package events

import (
	"context"

	"lendhub-be/internal/pkg/logger"
	pkgEvents "lendhub-be/pkg/events"
	pkgNats "lendhub-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts event publishing for admin mutations. Events go out
// only after the mutation transaction has committed, and a publish failure
// is logged rather than returned: the stored notification row is the source
// of truth, the bus only accelerates delivery.
type Publisher interface {
	PublishLoanUpdated(ctx context.Context, loanId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string)
	PublishWithdrawalUpdated(ctx context.Context, withdrawalId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string)
	PublishProfileUpdated(ctx context.Context, profileId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string)
}

// NatsPublisher implements Publisher using NATS
type NatsPublisher struct {
	publisher *pkgNats.Publisher
	logger    logger.ILogger
}

func NewNatsPublisher(publisher *pkgNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) PublishLoanUpdated(ctx context.Context, loanId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string) {
	p.publish(ctx, pkgEvents.TypeLoanUpdated, loanId, ownerId, notificationId, mutationType)
}

func (p *NatsPublisher) PublishWithdrawalUpdated(ctx context.Context, withdrawalId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string) {
	p.publish(ctx, pkgEvents.TypeWithdrawalUpdated, withdrawalId, ownerId, notificationId, mutationType)
}

func (p *NatsPublisher) PublishProfileUpdated(ctx context.Context, profileId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string) {
	p.publish(ctx, pkgEvents.TypeProfileUpdated, profileId, ownerId, notificationId, mutationType)
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, entityId, ownerId uuid.UUID, notificationId *uuid.UUID, mutationType string) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.NewAdminMutationEvent(eventType, ownerId, entityId, notificationId, mutationType)
	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("ADMIN", "Failed to publish "+eventType+" event", map[string]interface{}{
			"entity_id": entityId.String(),
			"error":     err.Error(),
		})
	}
}

// NoopPublisher satisfies Publisher when NATS is not configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishLoanUpdated(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID, string) {}
func (NoopPublisher) PublishWithdrawalUpdated(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID, string) {
}
func (NoopPublisher) PublishProfileUpdated(context.Context, uuid.UUID, uuid.UUID, *uuid.UUID, string) {
}
