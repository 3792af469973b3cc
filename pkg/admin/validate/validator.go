// Package validate is the field validator for administrative mutation
// payloads. It collects every violation instead of failing on the first,
// so the console can show a complete error list in one round trip.
package validate

import (
	"fmt"
	"strings"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/entity"
	"lendhub-be/internal/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type IValidator interface {
	LoanUpdate(req *dto.AdminLoanUpdateRequest) error
	WithdrawalUpdate(req *dto.AdminWithdrawalUpdateRequest) error
	ProfileUpdate(req *dto.AdminProfileUpdateRequest) error
}

type Validator struct {
	validate *validator.Validate
}

func NewValidator() IValidator {
	return &Validator{validate: validator.New()}
}

// LoanUpdate checks the payload's tag rules plus the rules tags can't
// express: status membership and the requirement that at least one mutable
// field is present.
func (v *Validator) LoanUpdate(req *dto.AdminLoanUpdateRequest) error {
	errs := v.structErrors(req)

	if req.Status != nil && !isLoanStatus(*req.Status) {
		errs = append(errs, fmt.Sprintf("status must be one of: %s", strings.Join(loanStatusNames(), ", ")))
	}

	if req.LoanAmount == nil && req.InterestRate == nil && req.DurationMonths == nil &&
		req.Notes == nil && req.Status == nil {
		errs = append(errs, "at least one field must be provided to update")
	}

	if len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

func (v *Validator) WithdrawalUpdate(req *dto.AdminWithdrawalUpdateRequest) error {
	errs := v.structErrors(req)

	if req.Status != nil && !isWithdrawalStatus(*req.Status) {
		errs = append(errs, "status must be one of: pending, review, approved, rejected")
	}

	if req.Status == nil && req.AdminNotes == nil {
		errs = append(errs, "at least one field must be provided to update")
	}

	if len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

func (v *Validator) ProfileUpdate(req *dto.AdminProfileUpdateRequest) error {
	errs := v.structErrors(req)

	if req.FullName == nil && req.PhoneNumber == nil && req.Address == nil &&
		req.Occupation == nil && req.MonthlyIncome == nil {
		errs = append(errs, "at least one field must be provided to update")
	}

	if len(errs) > 0 {
		return apperror.Validation(errs)
	}
	return nil
}

// structErrors runs the tag validation and flattens the result into the
// human-readable messages carried by apperror.Validation.
func (v *Validator) structErrors(payload interface{}) []string {
	err := v.validate.Struct(payload)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []string{err.Error()}
	}

	var messages []string
	for _, fe := range fieldErrs {
		messages = append(messages, messageFor(fe))
	}
	return messages
}

func messageFor(fe validator.FieldError) string {
	field := jsonName(fe.Field())
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "lte":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}

// jsonName lowercases the first rune so errors read like the wire field
// names, not the Go struct fields.
func jsonName(field string) string {
	if field == "" {
		return field
	}
	return strings.ToLower(field[:1]) + field[1:]
}

func isLoanStatus(s string) bool {
	switch entity.LoanStatus(s) {
	case entity.LoanStatusPendingApproval, entity.LoanStatusApproved,
		entity.LoanStatusInRepayment, entity.LoanStatusCompleted, entity.LoanStatusRejected:
		return true
	}
	return false
}

func loanStatusNames() []string {
	return []string{
		string(entity.LoanStatusPendingApproval),
		string(entity.LoanStatusApproved),
		string(entity.LoanStatusInRepayment),
		string(entity.LoanStatusCompleted),
		string(entity.LoanStatusRejected),
	}
}

func isWithdrawalStatus(s string) bool {
	switch entity.WithdrawalStatus(s) {
	case entity.WithdrawalStatusPending, entity.WithdrawalStatusReview,
		entity.WithdrawalStatusApproved, entity.WithdrawalStatusRejected:
		return true
	}
	return false
}
