package dto

import "github.com/google/uuid"

// PublishLoanAppliedMessage is the in-process message emitted after a loan
// application is stored, consumed by the application-received mail worker.
type PublishLoanAppliedMessage struct {
	LoanId uuid.UUID `json:"loanId"`
	UserId uuid.UUID `json:"userId"`
}
