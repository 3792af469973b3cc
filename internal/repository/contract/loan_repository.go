package contract

import (
	"context"

	"lendhub-be/internal/entity"
	"lendhub-be/internal/repository/specification"
)

type LoanRepository interface {
	Create(ctx context.Context, loan *entity.Loan) error
	// Update persists the full row and returns the stored UpdatedAt through
	// the entity, so callers can hand the fresh token back to the UI.
	Update(ctx context.Context, loan *entity.Loan) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Loan, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Loan, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
