package contract

import (
	"context"

	"lendhub-be/internal/entity"
	"lendhub-be/internal/repository/specification"
)

type WithdrawalRepository interface {
	Create(ctx context.Context, withdrawal *entity.Withdrawal) error
	Update(ctx context.Context, withdrawal *entity.Withdrawal) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Withdrawal, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Withdrawal, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
