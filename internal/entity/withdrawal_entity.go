package entity

import (
	"time"

	"github.com/google/uuid"
)

type WithdrawalStatus string

const (
	WithdrawalStatusPending  WithdrawalStatus = "pending"
	WithdrawalStatusReview   WithdrawalStatus = "review"
	WithdrawalStatusApproved WithdrawalStatus = "approved"
	WithdrawalStatusRejected WithdrawalStatus = "rejected"
)

type Withdrawal struct {
	Id            uuid.UUID
	UserId        uuid.UUID
	Amount        float64
	BankName      string
	AccountNumber string
	AccountHolder string
	Status        WithdrawalStatus
	AdminNotes    string
	ProcessedAt   *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
