package implementation

import (
	"context"
	"errors"

	"lendhub-be/internal/entity"
	"lendhub-be/internal/mapper"
	"lendhub-be/internal/model"
	"lendhub-be/internal/repository/contract"
	"lendhub-be/internal/repository/specification"

	"gorm.io/gorm"
)

type LoanRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.LoanMapper
}

func NewLoanRepository(db *gorm.DB) contract.LoanRepository {
	return &LoanRepositoryImpl{
		db:     db,
		mapper: mapper.NewLoanMapper(),
	}
}

func (r *LoanRepositoryImpl) Create(ctx context.Context, loan *entity.Loan) error {
	modelLoan := r.mapper.ToModel(loan)
	if err := r.db.WithContext(ctx).Create(modelLoan).Error; err != nil {
		return err
	}
	*loan = *r.mapper.ToEntity(modelLoan)
	return nil
}

func (r *LoanRepositoryImpl) Update(ctx context.Context, loan *entity.Loan) error {
	modelLoan := r.mapper.ToModel(loan)
	if err := r.db.WithContext(ctx).Save(modelLoan).Error; err != nil {
		return err
	}
	*loan = *r.mapper.ToEntity(modelLoan)
	return nil
}

func (r *LoanRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Loan, error) {
	var modelLoan model.Loan
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelLoan).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelLoan), nil
}

func (r *LoanRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Loan, error) {
	var modelLoans []*model.Loan
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelLoans).Error; err != nil {
		return nil, err
	}

	loans := make([]*entity.Loan, 0, len(modelLoans))
	for _, m := range modelLoans {
		loans = append(loans, r.mapper.ToEntity(m))
	}
	return loans, nil
}

func (r *LoanRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Loan{}), specs...)
	err := query.Count(&count).Error
	return count, err
}
