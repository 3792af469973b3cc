package service

import (
	"context"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/mapper"
	"lendhub-be/internal/pkg/logger"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/internal/repository/unitofwork"
	adminEvents "lendhub-be/pkg/admin/events"
	"lendhub-be/pkg/admin/guard"
	adminLoan "lendhub-be/pkg/admin/loan"
	adminProfile "lendhub-be/pkg/admin/profile"
	adminWithdrawal "lendhub-be/pkg/admin/withdrawal"

	"github.com/google/uuid"
)

// IAdminService is the console facade. Every method resolves the bearer
// token to an administrative actor before doing anything else; mutations are
// delegated to the pipeline managers and the bus event goes out only after
// their transaction committed.
type IAdminService interface {
	UpdateLoan(ctx context.Context, token string, loanId uuid.UUID, req *dto.AdminLoanUpdateRequest) (*dto.AdminLoanUpdateResponse, error)
	UpdateWithdrawal(ctx context.Context, token string, withdrawalId uuid.UUID, req *dto.AdminWithdrawalUpdateRequest) (*dto.AdminWithdrawalUpdateResponse, error)
	UpdateProfile(ctx context.Context, token string, userId uuid.UUID, req *dto.AdminProfileUpdateRequest) (*dto.AdminProfileUpdateResponse, error)

	GetLoans(ctx context.Context, token string, page, limit int, status string) ([]dto.LoanResponse, int64, error)
	GetWithdrawals(ctx context.Context, token string, page, limit int, status string) ([]dto.WithdrawalResponse, int64, error)
	GetUsers(ctx context.Context, token string, page, limit int, role string) ([]dto.UserResponse, int64, error)
	GetAuditLog(ctx context.Context, token string, targetType string, targetId *uuid.UUID, page, limit int) ([]dto.AuditEntryResponse, error)

	GetSystemLogs(ctx context.Context, token string, level string, limit, offset int) ([]logger.LogEntry, error)
	GetSystemLogById(ctx context.Context, token string, id string) (*logger.LogEntry, error)
}

type adminService struct {
	uowFactory        unitofwork.RepositoryFactory
	guard             guard.IGuard
	loanManager       *adminLoan.Manager
	withdrawalManager *adminWithdrawal.Processor
	profileManager    *adminProfile.Manager
	publisher         adminEvents.Publisher
	logger            logger.ILogger
}

func NewAdminService(
	uowFactory unitofwork.RepositoryFactory,
	g guard.IGuard,
	loanManager *adminLoan.Manager,
	withdrawalManager *adminWithdrawal.Processor,
	profileManager *adminProfile.Manager,
	publisher adminEvents.Publisher,
	log logger.ILogger,
) IAdminService {
	return &adminService{
		uowFactory:        uowFactory,
		guard:             g,
		loanManager:       loanManager,
		withdrawalManager: withdrawalManager,
		profileManager:    profileManager,
		publisher:         publisher,
		logger:            log,
	}
}

func (s *adminService) UpdateLoan(ctx context.Context, token string, loanId uuid.UUID, req *dto.AdminLoanUpdateRequest) (*dto.AdminLoanUpdateResponse, error) {
	actor, err := s.guard.ResolveActor(ctx, token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	result, err := s.loanManager.Update(ctx, uow, actor, loanId, req)
	if err != nil {
		return nil, err
	}

	notificationId := result.Notification.ID
	s.publisher.PublishLoanUpdated(ctx, result.Loan.Id, result.Loan.UserId, &notificationId, string(result.Change.Type))

	return &dto.AdminLoanUpdateResponse{
		Loan: mapper.ToLoanResponse(result.Loan),
		Notification: dto.NotificationReceipt{
			Sent: true,
			Type: result.Notification.Type,
		},
	}, nil
}

func (s *adminService) UpdateWithdrawal(ctx context.Context, token string, withdrawalId uuid.UUID, req *dto.AdminWithdrawalUpdateRequest) (*dto.AdminWithdrawalUpdateResponse, error) {
	actor, err := s.guard.ResolveActor(ctx, token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	result, err := s.withdrawalManager.Update(ctx, uow, actor, withdrawalId, req)
	if err != nil {
		return nil, err
	}

	notificationId := result.Notification.ID
	s.publisher.PublishWithdrawalUpdated(ctx, result.Withdrawal.Id, result.Withdrawal.UserId, &notificationId, string(result.Change.Type))

	return &dto.AdminWithdrawalUpdateResponse{
		Withdrawal: mapper.ToWithdrawalResponse(result.Withdrawal),
		Notification: dto.NotificationReceipt{
			Sent: true,
			Type: result.Notification.Type,
		},
	}, nil
}

func (s *adminService) UpdateProfile(ctx context.Context, token string, userId uuid.UUID, req *dto.AdminProfileUpdateRequest) (*dto.AdminProfileUpdateResponse, error) {
	actor, err := s.guard.ResolveActor(ctx, token)
	if err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	result, err := s.profileManager.Update(ctx, uow, actor, userId, req)
	if err != nil {
		return nil, err
	}

	notificationId := result.Notification.ID
	s.publisher.PublishProfileUpdated(ctx, result.Profile.Id, result.Profile.UserId, &notificationId, string(result.Change.Type))

	return &dto.AdminProfileUpdateResponse{
		Profile: mapper.ToProfileResponse(result.Profile),
		Notification: dto.NotificationReceipt{
			Sent: true,
			Type: result.Notification.Type,
		},
	}, nil
}

func (s *adminService) GetLoans(ctx context.Context, token string, page, limit int, status string) ([]dto.LoanResponse, int64, error) {
	if _, err := s.guard.ResolveActor(ctx, token); err != nil {
		return nil, 0, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	loans, total, err := s.loanManager.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, mapper.ToLoanResponse(loan))
	}
	return responses, total, nil
}

func (s *adminService) GetWithdrawals(ctx context.Context, token string, page, limit int, status string) ([]dto.WithdrawalResponse, int64, error) {
	if _, err := s.guard.ResolveActor(ctx, token); err != nil {
		return nil, 0, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	withdrawals, total, err := s.withdrawalManager.GetAll(ctx, uow, page, limit, status)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		responses = append(responses, mapper.ToWithdrawalResponse(w))
	}
	return responses, total, nil
}

func (s *adminService) GetUsers(ctx context.Context, token string, page, limit int, role string) ([]dto.UserResponse, int64, error) {
	if _, err := s.guard.ResolveActor(ctx, token); err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	var filters []specification.Specification
	if role != "" {
		filters = append(filters, specification.Filter("role", role))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	total, err := uow.UserRepository().Count(ctx, filters...)
	if err != nil {
		return nil, 0, err
	}

	specs := append(filters,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)
	users, err := uow.UserRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]dto.UserResponse, 0, len(users))
	for _, user := range users {
		responses = append(responses, mapper.ToUserResponse(user))
	}
	return responses, total, nil
}

// GetAuditLog lists modification-log entries, optionally scoped to one
// target record.
func (s *adminService) GetAuditLog(ctx context.Context, token string, targetType string, targetId *uuid.UUID, page, limit int) ([]dto.AuditEntryResponse, error) {
	if _, err := s.guard.ResolveActor(ctx, token); err != nil {
		return nil, err
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}

	var specs []specification.Specification
	if targetType != "" && targetId != nil {
		specs = append(specs, specification.ByTarget{TargetType: targetType, TargetID: *targetId})
	} else if targetType != "" {
		specs = append(specs, specification.Filter("target_type", targetType))
	}
	specs = append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: limit, Offset: (page - 1) * limit},
	)

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.AuditLogRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.AuditEntryResponse, 0, len(entries))
	for _, entry := range entries {
		responses = append(responses, mapper.ToAuditEntryResponse(entry))
	}
	return responses, nil
}

func (s *adminService) GetSystemLogs(ctx context.Context, token string, level string, limit, offset int) ([]logger.LogEntry, error) {
	if _, err := s.guard.ResolveActor(ctx, token); err != nil {
		return nil, err
	}
	return s.logger.GetLogs(level, limit, offset)
}

func (s *adminService) GetSystemLogById(ctx context.Context, token string, id string) (*logger.LogEntry, error) {
	if _, err := s.guard.ResolveActor(ctx, token); err != nil {
		return nil, err
	}
	return s.logger.GetLogById(id)
}
