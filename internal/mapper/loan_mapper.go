package mapper

import (
	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
)

type LoanMapper struct{}

func NewLoanMapper() *LoanMapper {
	return &LoanMapper{}
}

func (m *LoanMapper) ToEntity(l *model.Loan) *entity.Loan {
	if l == nil {
		return nil
	}
	return &entity.Loan{
		Id:             l.Id,
		UserId:         l.UserId,
		LoanAmount:     l.LoanAmount,
		InterestRate:   l.InterestRate,
		DurationMonths: l.DurationMonths,
		Purpose:        l.Purpose,
		Notes:          l.Notes,
		Status:         entity.LoanStatus(l.Status),
		MonthlyPayment: l.MonthlyPayment,
		TotalInterest:  l.TotalInterest,
		TotalAmount:    l.TotalAmount,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}

func (m *LoanMapper) ToModel(l *entity.Loan) *model.Loan {
	if l == nil {
		return nil
	}
	return &model.Loan{
		Id:             l.Id,
		UserId:         l.UserId,
		LoanAmount:     l.LoanAmount,
		InterestRate:   l.InterestRate,
		DurationMonths: l.DurationMonths,
		Purpose:        l.Purpose,
		Notes:          l.Notes,
		Status:         string(l.Status),
		MonthlyPayment: l.MonthlyPayment,
		TotalInterest:  l.TotalInterest,
		TotalAmount:    l.TotalAmount,
		CreatedAt:      l.CreatedAt,
		UpdatedAt:      l.UpdatedAt,
	}
}
