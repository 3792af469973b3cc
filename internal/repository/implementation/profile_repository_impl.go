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

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *entity.ActivationProfile) error {
	modelProfile := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(modelProfile).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(modelProfile)
	return nil
}

func (r *ProfileRepositoryImpl) Update(ctx context.Context, profile *entity.ActivationProfile) error {
	modelProfile := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Save(modelProfile).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(modelProfile)
	return nil
}

func (r *ProfileRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ActivationProfile, error) {
	var modelProfile model.ActivationProfile
	query := applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelProfile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelProfile), nil
}
