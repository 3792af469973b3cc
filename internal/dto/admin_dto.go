package dto

import (
	"time"
)

// Mutation payloads are typed per entity with an explicit allow-list of
// mutable fields; unknown fields are rejected at the boundary by the strict
// body parser. Every mutation carries a mandatory reason.

type AdminLoanUpdateRequest struct {
	LoanAmount     *float64 `json:"loanAmount" validate:"omitempty,gt=0,lte=1000000"`
	InterestRate   *float64 `json:"interestRate" validate:"omitempty,gte=0,lte=50"`
	DurationMonths *int     `json:"durationMonths" validate:"omitempty,gte=1,lte=360"`
	Notes          *string  `json:"notes" validate:"omitempty,max=2000"`
	Status         *string  `json:"status"`
	Reason         string   `json:"reason" validate:"required,min=10,max=500"`
	// Optimistic-concurrency token: the updated_at the admin UI last saw.
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}

type AdminWithdrawalUpdateRequest struct {
	Status            *string    `json:"status"`
	AdminNotes        *string    `json:"adminNotes" validate:"omitempty,max=2000"`
	Reason            string     `json:"reason" validate:"required,min=10,max=500"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}

type AdminProfileUpdateRequest struct {
	FullName          *string    `json:"fullName" validate:"omitempty,max=255"`
	PhoneNumber       *string    `json:"phoneNumber" validate:"omitempty,max=30"`
	Address           *string    `json:"address" validate:"omitempty,max=2000"`
	Occupation        *string    `json:"occupation" validate:"omitempty,max=100"`
	MonthlyIncome     *float64   `json:"monthlyIncome" validate:"omitempty,gte=0"`
	Reason            string     `json:"reason" validate:"required,min=10,max=500"`
	ExpectedUpdatedAt *time.Time `json:"expectedUpdatedAt"`
}

// NotificationReceipt confirms the per-user notification row was created in
// the mutation transaction.
type NotificationReceipt struct {
	Sent bool   `json:"sent"`
	Type string `json:"type"`
}

type AdminLoanUpdateResponse struct {
	Loan         LoanResponse        `json:"loan"`
	Notification NotificationReceipt `json:"notification"`
}

type AdminWithdrawalUpdateResponse struct {
	Withdrawal   WithdrawalResponse  `json:"withdrawal"`
	Notification NotificationReceipt `json:"notification"`
}

type AdminProfileUpdateResponse struct {
	Profile      ProfileResponse     `json:"profile"`
	Notification NotificationReceipt `json:"notification"`
}
