package entity

import (
	"time"

	"github.com/google/uuid"
)

type LoanStatus string

const (
	LoanStatusPendingApproval LoanStatus = "Pending Approval"
	LoanStatusApproved        LoanStatus = "Approved"
	LoanStatusInRepayment     LoanStatus = "In Repayment"
	LoanStatusCompleted       LoanStatus = "Completed"
	LoanStatusRejected        LoanStatus = "Rejected"
)

type Loan struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	LoanAmount     float64
	InterestRate   float64 // annual percentage
	DurationMonths int
	Purpose        string
	Notes          string
	Status         LoanStatus

	// Derived by the financial calculator, never caller-supplied.
	MonthlyPayment float64
	TotalInterest  float64
	TotalAmount    float64

	CreatedAt time.Time
	UpdatedAt time.Time
}
