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

type WithdrawalRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.WithdrawalMapper
}

func NewWithdrawalRepository(db *gorm.DB) contract.WithdrawalRepository {
	return &WithdrawalRepositoryImpl{
		db:     db,
		mapper: mapper.NewWithdrawalMapper(),
	}
}

func (r *WithdrawalRepositoryImpl) Create(ctx context.Context, withdrawal *entity.Withdrawal) error {
	modelWithdrawal := r.mapper.ToModel(withdrawal)
	if err := r.db.WithContext(ctx).Create(modelWithdrawal).Error; err != nil {
		return err
	}
	*withdrawal = *r.mapper.ToEntity(modelWithdrawal)
	return nil
}

func (r *WithdrawalRepositoryImpl) Update(ctx context.Context, withdrawal *entity.Withdrawal) error {
	modelWithdrawal := r.mapper.ToModel(withdrawal)
	if err := r.db.WithContext(ctx).Save(modelWithdrawal).Error; err != nil {
		return err
	}
	*withdrawal = *r.mapper.ToEntity(modelWithdrawal)
	return nil
}

func (r *WithdrawalRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Withdrawal, error) {
	var modelWithdrawal model.Withdrawal
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelWithdrawal).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelWithdrawal), nil
}

func (r *WithdrawalRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Withdrawal, error) {
	var modelWithdrawals []*model.Withdrawal
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelWithdrawals).Error; err != nil {
		return nil, err
	}

	withdrawals := make([]*entity.Withdrawal, 0, len(modelWithdrawals))
	for _, m := range modelWithdrawals {
		withdrawals = append(withdrawals, r.mapper.ToEntity(m))
	}
	return withdrawals, nil
}

func (r *WithdrawalRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.Withdrawal{}), specs...)
	err := query.Count(&count).Error
	return count, err
}
