package contract

import (
	"context"

	"lendhub-be/internal/entity"
	"lendhub-be/internal/repository/specification"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.ActivationProfile) error
	Update(ctx context.Context, profile *entity.ActivationProfile) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.ActivationProfile, error)
}
