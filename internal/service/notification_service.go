package service

import (
	"context"
	"fmt"

	"lendhub-be/internal/model"
	"lendhub-be/internal/pkg/logger"
	"lendhub-be/internal/pkg/mailer"
	"lendhub-be/internal/repository"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/internal/repository/unitofwork"
	"lendhub-be/pkg/events"
	pkgNats "lendhub-be/pkg/nats"

	"github.com/google/uuid"
)

// NotificationDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type NotificationDelivery interface {
	Send(userID uuid.UUID, notification model.Notification)
	Broadcast(notification model.Notification)
}

// NotificationService serves the owner-facing notification inbox and runs
// the delivery worker. The worker consumes post-commit mutation events from
// the bus and accelerates the already-stored notification to the owner via
// websocket push and e-mail; if it fails, the row still waits in the inbox.
type NotificationService struct {
	repo         repository.NotificationRepository
	uowFactory   unitofwork.RepositoryFactory
	subscriber   *pkgNats.Subscriber
	delivery     NotificationDelivery
	emailService mailer.IEmailService
	logger       logger.ILogger
}

func NewNotificationService(
	repo repository.NotificationRepository,
	uowFactory unitofwork.RepositoryFactory,
	sub *pkgNats.Subscriber,
	delivery NotificationDelivery,
	emailService mailer.IEmailService,
	log logger.ILogger,
) *NotificationService {
	return &NotificationService{
		repo:         repo,
		uowFactory:   uowFactory,
		subscriber:   sub,
		delivery:     delivery,
		emailService: emailService,
		logger:       log,
	}
}

// Start begins listening to the event bus.
func (s *NotificationService) Start() {
	if s.subscriber == nil {
		s.logger.Warn("NotificationService", "No event bus configured, realtime delivery disabled", nil)
		return
	}

	err := s.subscriber.Subscribe("events.>", "notif-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotificationService", "Failed to start notification subscriber", map[string]interface{}{"error": err.Error()})
		return
	}
	s.logger.Info("NotificationService", "Notification service started, listening to events.>", nil)
}

func (s *NotificationService) handleEvent(ctx context.Context, event events.Event) error {
	payload := event.Payload()

	rawNotifId, ok := payload["notification_id"].(string)
	if !ok {
		// Event without a stored notification, nothing to deliver
		return nil
	}
	notificationId, err := uuid.Parse(rawNotifId)
	if err != nil {
		s.logger.Warn("NotificationService", "Event carries malformed notification id", map[string]interface{}{"raw": rawNotifId})
		return nil
	}

	notification, err := s.repo.GetNotificationByID(ctx, notificationId)
	if err != nil {
		return fmt.Errorf("failed to load notification %s: %w", notificationId, err)
	}
	if notification == nil {
		s.logger.Warn("NotificationService", "Notification referenced by event no longer exists", map[string]interface{}{"id": notificationId.String()})
		return nil
	}

	if s.delivery != nil {
		s.delivery.Send(notification.UserID, *notification)
	}

	s.mirrorToEmail(ctx, notification)

	s.logger.Info("NotificationService", "Delivered notification", map[string]interface{}{
		"notification_id": notification.ID.String(),
		"user_id":         notification.UserID.String(),
		"event":           event.EventType(),
	})
	return nil
}

// mirrorToEmail copies the notification to the owner's mailbox. Failures are
// logged and swallowed: e-mail is a convenience channel.
func (s *NotificationService) mirrorToEmail(ctx context.Context, notification *model.Notification) {
	if s.emailService == nil {
		return
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	owner, err := uow.UserRepository().FindOne(ctx, specification.ByID{ID: notification.UserID})
	if err != nil || owner == nil {
		s.logger.Warn("NotificationService", "Could not resolve notification owner for e-mail", map[string]interface{}{
			"user_id": notification.UserID.String(),
		})
		return
	}

	if err := s.emailService.SendNotificationEmail(owner.Email, notification.Title, notification.Message); err != nil {
		s.logger.Warn("NotificationService", "Failed to mirror notification to e-mail", map[string]interface{}{
			"user_id": owner.Id.String(),
			"error":   err.Error(),
		})
	}
}

// --- Inbox reads ---

func (s *NotificationService) GetUserNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, int64, error) {
	if limit < 1 {
		limit = 20
	}
	return s.repo.GetNotificationsByUserID(ctx, userID, limit, offset)
}

func (s *NotificationService) GetUnreadCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.GetUnreadCount(ctx, userID)
}

func (s *NotificationService) MarkAsRead(ctx context.Context, notificationID, userID uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, notificationID, userID)
}

func (s *NotificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
