package mapper

import (
	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
)

type WithdrawalMapper struct{}

func NewWithdrawalMapper() *WithdrawalMapper {
	return &WithdrawalMapper{}
}

func (m *WithdrawalMapper) ToEntity(w *model.Withdrawal) *entity.Withdrawal {
	if w == nil {
		return nil
	}
	return &entity.Withdrawal{
		Id:            w.Id,
		UserId:        w.UserId,
		Amount:        w.Amount,
		BankName:      w.BankName,
		AccountNumber: w.AccountNumber,
		AccountHolder: w.AccountHolder,
		Status:        entity.WithdrawalStatus(w.Status),
		AdminNotes:    w.AdminNotes,
		ProcessedAt:   w.ProcessedAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}

func (m *WithdrawalMapper) ToModel(w *entity.Withdrawal) *model.Withdrawal {
	if w == nil {
		return nil
	}
	return &model.Withdrawal{
		Id:            w.Id,
		UserId:        w.UserId,
		Amount:        w.Amount,
		BankName:      w.BankName,
		AccountNumber: w.AccountNumber,
		AccountHolder: w.AccountHolder,
		Status:        string(w.Status),
		AdminNotes:    w.AdminNotes,
		ProcessedAt:   w.ProcessedAt,
		CreatedAt:     w.CreatedAt,
		UpdatedAt:     w.UpdatedAt,
	}
}
