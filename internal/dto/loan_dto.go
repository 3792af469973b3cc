package dto

import (
	"time"

	"github.com/google/uuid"
)

type LoanApplyRequest struct {
	LoanAmount     float64 `json:"loanAmount" validate:"required,gt=0,lte=1000000"`
	InterestRate   float64 `json:"interestRate" validate:"gte=0,lte=50"`
	DurationMonths int     `json:"durationMonths" validate:"required,gte=1,lte=360"`
	Purpose        string  `json:"purpose" validate:"required,max=255"`
}

type LoanResponse struct {
	Id             uuid.UUID `json:"id"`
	UserId         uuid.UUID `json:"userId"`
	LoanAmount     float64   `json:"loanAmount"`
	InterestRate   float64   `json:"interestRate"`
	DurationMonths int       `json:"durationMonths"`
	Purpose        string    `json:"purpose"`
	Notes          string    `json:"notes,omitempty"`
	Status         string    `json:"status"`
	MonthlyPayment float64   `json:"monthlyPayment"`
	TotalInterest  float64   `json:"totalInterest"`
	TotalAmount    float64   `json:"totalAmount"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

type WithdrawalCreateRequest struct {
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	BankName      string  `json:"bankName" validate:"required,max=100"`
	AccountNumber string  `json:"accountNumber" validate:"required,max=50"`
	AccountHolder string  `json:"accountHolder" validate:"required,max=255"`
}

type WithdrawalResponse struct {
	Id            uuid.UUID  `json:"id"`
	UserId        uuid.UUID  `json:"userId"`
	Amount        float64    `json:"amount"`
	BankName      string     `json:"bankName"`
	AccountNumber string     `json:"accountNumber"`
	AccountHolder string     `json:"accountHolder"`
	Status        string     `json:"status"`
	AdminNotes    string     `json:"adminNotes,omitempty"`
	ProcessedAt   *time.Time `json:"processedAt,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

type ProfileResponse struct {
	Id            uuid.UUID `json:"id"`
	UserId        uuid.UUID `json:"userId"`
	FullName      string    `json:"fullName"`
	PhoneNumber   string    `json:"phoneNumber"`
	Address       string    `json:"address"`
	Occupation    string    `json:"occupation"`
	MonthlyIncome float64   `json:"monthlyIncome"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
