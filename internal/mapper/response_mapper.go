package mapper

import (
	"encoding/json"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/entity"
	"lendhub-be/internal/model"
)

func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		Id:        u.Id,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      string(u.Role),
		Status:    string(u.Status),
		CreatedAt: u.CreatedAt,
	}
}

func ToLoanResponse(l *entity.Loan) dto.LoanResponse {
	return dto.LoanResponse{
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

func ToWithdrawalResponse(w *entity.Withdrawal) dto.WithdrawalResponse {
	return dto.WithdrawalResponse{
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

func ToProfileResponse(p *entity.ActivationProfile) dto.ProfileResponse {
	return dto.ProfileResponse{
		Id:            p.Id,
		UserId:        p.UserId,
		FullName:      p.FullName,
		PhoneNumber:   p.PhoneNumber,
		Address:       p.Address,
		Occupation:    p.Occupation,
		MonthlyIncome: p.MonthlyIncome,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToAuditEntryResponse decodes the stored JSONB snapshots back into maps for
// the console detail view.
func ToAuditEntryResponse(e *model.AuditEntry) dto.AuditEntryResponse {
	var oldValue, newValue map[string]interface{}
	_ = json.Unmarshal(e.OldValue, &oldValue)
	_ = json.Unmarshal(e.NewValue, &newValue)

	return dto.AuditEntryResponse{
		Id:             e.Id,
		ActorId:        e.ActorId,
		ActorEmail:     e.ActorEmail,
		ActorName:      e.ActorName,
		TargetType:     e.TargetType,
		TargetId:       e.TargetId,
		MutationType:   e.MutationType,
		OldValue:       oldValue,
		NewValue:       newValue,
		Reason:         e.Reason,
		NotificationId: e.NotificationId,
		CreatedAt:      e.CreatedAt,
	}
}
