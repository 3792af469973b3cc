// Package transition holds the explicit status graphs for loans and
// withdrawals. Admins may only follow the edges below; superadmins may jump
// between any two distinct statuses, with the jump still audited like any
// other change.
package transition

import (
	"fmt"

	"lendhub-be/internal/entity"
	"lendhub-be/internal/pkg/apperror"
)

var loanEdges = map[entity.LoanStatus][]entity.LoanStatus{
	entity.LoanStatusPendingApproval: {entity.LoanStatusApproved, entity.LoanStatusRejected},
	entity.LoanStatusApproved:        {entity.LoanStatusInRepayment, entity.LoanStatusRejected},
	entity.LoanStatusInRepayment:     {entity.LoanStatusCompleted},
	// Completed and Rejected are terminal for admins.
	entity.LoanStatusCompleted: {},
	entity.LoanStatusRejected:  {},
}

var withdrawalEdges = map[entity.WithdrawalStatus][]entity.WithdrawalStatus{
	entity.WithdrawalStatusPending:  {entity.WithdrawalStatusReview, entity.WithdrawalStatusRejected},
	entity.WithdrawalStatusReview:   {entity.WithdrawalStatusApproved, entity.WithdrawalStatusRejected},
	entity.WithdrawalStatusApproved: {},
	entity.WithdrawalStatusRejected: {},
}

// ValidateLoan rejects illegal loan status moves with a Conflict error.
func ValidateLoan(from, to entity.LoanStatus, role entity.UserRole) error {
	if from == to {
		return nil
	}
	if role == entity.UserRoleSuperadmin {
		return nil
	}
	for _, allowed := range loanEdges[from] {
		if allowed == to {
			return nil
		}
	}
	return apperror.Conflict(fmt.Sprintf("Status transition from %q to %q is not allowed", from, to))
}

// ValidateWithdrawal rejects illegal withdrawal status moves. Approving a
// withdrawal releases funds, so that edge additionally requires superadmin.
func ValidateWithdrawal(from, to entity.WithdrawalStatus, role entity.UserRole) error {
	if from == to {
		return nil
	}
	if to == entity.WithdrawalStatusApproved && role != entity.UserRoleSuperadmin {
		return apperror.Forbidden("Only a superadmin may approve withdrawals")
	}
	if role == entity.UserRoleSuperadmin {
		return nil
	}
	for _, allowed := range withdrawalEdges[from] {
		if allowed == to {
			return nil
		}
	}
	return apperror.Conflict(fmt.Sprintf("Status transition from %q to %q is not allowed", from, to))
}
