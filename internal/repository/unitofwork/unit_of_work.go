package unitofwork

import (
	"context"

	"lendhub-be/internal/repository"
	"lendhub-be/internal/repository/contract"
)

// UnitOfWork scopes repositories to a single logical operation. Begin opens
// a database transaction; until then accessors run against the base
// connection. The mutation pipeline relies on Begin/Commit/Rollback to keep
// entity update, audit entry and notification all-or-nothing.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	UserRepository() contract.UserRepository
	LoanRepository() contract.LoanRepository
	WithdrawalRepository() contract.WithdrawalRepository
	ProfileRepository() contract.ProfileRepository
	AuditLogRepository() contract.AuditLogRepository
	NotificationRepository() repository.NotificationRepository
}
