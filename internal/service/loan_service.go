package service

import (
	"context"
	"log"
	"time"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/entity"
	"lendhub-be/internal/mapper"
	"lendhub-be/internal/pkg/apperror"
	"lendhub-be/internal/repository/specification"
	"lendhub-be/internal/repository/unitofwork"
	"lendhub-be/pkg/finance"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type ILoanService interface {
	Apply(ctx context.Context, userId uuid.UUID, req *dto.LoanApplyRequest) (*dto.LoanResponse, error)
	GetMyLoans(ctx context.Context, userId uuid.UUID) ([]dto.LoanResponse, error)
	GetLoan(ctx context.Context, userId, loanId uuid.UUID) (*dto.LoanResponse, error)
	CreateWithdrawal(ctx context.Context, userId uuid.UUID, req *dto.WithdrawalCreateRequest) (*dto.WithdrawalResponse, error)
	GetMyWithdrawals(ctx context.Context, userId uuid.UUID) ([]dto.WithdrawalResponse, error)
	GetMyProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error)
}

type loanService struct {
	uowFactory unitofwork.RepositoryFactory
	validate   *validator.Validate
	publisher  IPublisherService
}

func NewLoanService(uowFactory unitofwork.RepositoryFactory, publisher IPublisherService) ILoanService {
	return &loanService{
		uowFactory: uowFactory,
		validate:   validator.New(),
		publisher:  publisher,
	}
}

// Apply stores a new loan application in Pending Approval with a repayment
// schedule derived from the requested terms.
func (s *loanService) Apply(ctx context.Context, userId uuid.UUID, req *dto.LoanApplyRequest) (*dto.LoanResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, fe := range fieldErrs {
				messages = append(messages, fe.Field()+" is invalid")
			}
			return nil, apperror.Validation(messages)
		}
		return nil, err
	}

	schedule := finance.Amortize(req.LoanAmount, req.InterestRate, req.DurationMonths)

	loan := &entity.Loan{
		Id:             uuid.New(),
		UserId:         userId,
		LoanAmount:     req.LoanAmount,
		InterestRate:   req.InterestRate,
		DurationMonths: req.DurationMonths,
		Purpose:        req.Purpose,
		Status:         entity.LoanStatusPendingApproval,
		MonthlyPayment: schedule.MonthlyPayment,
		TotalInterest:  schedule.TotalInterest,
		TotalAmount:    schedule.TotalAmount,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.LoanRepository().Create(ctx, loan); err != nil {
		return nil, err
	}

	// The application-received mail goes out asynchronously
	if err := s.publisher.PublishLoanApplied(loan.Id, userId); err != nil {
		log.Printf("[WARN] Failed to publish loan-applied message for %s: %v", loan.Id, err)
	}

	resp := mapper.ToLoanResponse(loan)
	return &resp, nil
}

func (s *loanService) GetMyLoans(ctx context.Context, userId uuid.UUID) ([]dto.LoanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	loans, err := uow.LoanRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.LoanResponse, 0, len(loans))
	for _, loan := range loans {
		responses = append(responses, mapper.ToLoanResponse(loan))
	}
	return responses, nil
}

func (s *loanService) GetLoan(ctx context.Context, userId, loanId uuid.UUID) (*dto.LoanResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	loan, err := uow.LoanRepository().FindOne(ctx, specification.ByID{ID: loanId})
	if err != nil {
		return nil, err
	}
	// Ownership check folded into not-found so loan ids don't leak
	if loan == nil || loan.UserId != userId {
		return nil, apperror.NotFound("Loan not found")
	}

	resp := mapper.ToLoanResponse(loan)
	return &resp, nil
}

func (s *loanService) CreateWithdrawal(ctx context.Context, userId uuid.UUID, req *dto.WithdrawalCreateRequest) (*dto.WithdrawalResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok {
			var messages []string
			for _, fe := range fieldErrs {
				messages = append(messages, fe.Field()+" is invalid")
			}
			return nil, apperror.Validation(messages)
		}
		return nil, err
	}

	withdrawal := &entity.Withdrawal{
		Id:            uuid.New(),
		UserId:        userId,
		Amount:        req.Amount,
		BankName:      req.BankName,
		AccountNumber: req.AccountNumber,
		AccountHolder: req.AccountHolder,
		Status:        entity.WithdrawalStatusPending,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.WithdrawalRepository().Create(ctx, withdrawal); err != nil {
		return nil, err
	}

	resp := mapper.ToWithdrawalResponse(withdrawal)
	return &resp, nil
}

func (s *loanService) GetMyWithdrawals(ctx context.Context, userId uuid.UUID) ([]dto.WithdrawalResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	withdrawals, err := uow.WithdrawalRepository().FindAll(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.WithdrawalResponse, 0, len(withdrawals))
	for _, w := range withdrawals {
		responses = append(responses, mapper.ToWithdrawalResponse(w))
	}
	return responses, nil
}

func (s *loanService) GetMyProfile(ctx context.Context, userId uuid.UUID) (*dto.ProfileResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindOne(ctx, specification.ByUserID{UserID: userId})
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperror.NotFound("Activation profile not found")
	}

	resp := mapper.ToProfileResponse(profile)
	return &resp, nil
}
