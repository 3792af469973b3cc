package validate

import (
	"strings"
	"testing"

	"lendhub-be/internal/dto"
	"lendhub-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }
func strPtr(v string) *string     { return &v }

func TestLoanUpdateCollectsAllErrors(t *testing.T) {
	v := NewValidator()

	req := &dto.AdminLoanUpdateRequest{
		LoanAmount:     floatPtr(2000000), // over the cap
		InterestRate:   floatPtr(75),      // over the cap
		DurationMonths: intPtr(0),         // under the floor
		Reason:         "short",           // under 10 chars
	}

	err := v.LoanUpdate(req)
	assert.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	errs := apperror.FieldErrors(err)
	assert.Len(t, errs, 4)
}

func TestLoanUpdateReasonRules(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		reason  string
		wantErr bool
	}{
		{"missing reason", "", true},
		{"too short", "because", true},
		{"minimum length", "ten chars!", false},
		{"too long", strings.Repeat("x", 501), true},
		{"maximum length", strings.Repeat("x", 500), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &dto.AdminLoanUpdateRequest{
				LoanAmount: floatPtr(1000),
				Reason:     tt.reason,
			}
			err := v.LoanUpdate(req)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoanUpdateBoundaries(t *testing.T) {
	v := NewValidator()
	reason := "adjusting terms per customer request"

	tests := []struct {
		name    string
		req     *dto.AdminLoanUpdateRequest
		wantErr bool
	}{
		{"amount at cap", &dto.AdminLoanUpdateRequest{LoanAmount: floatPtr(1000000), Reason: reason}, false},
		{"amount over cap", &dto.AdminLoanUpdateRequest{LoanAmount: floatPtr(1000000.01), Reason: reason}, true},
		{"amount zero", &dto.AdminLoanUpdateRequest{LoanAmount: floatPtr(0), Reason: reason}, true},
		{"rate zero is legal", &dto.AdminLoanUpdateRequest{InterestRate: floatPtr(0), Reason: reason}, false},
		{"rate at cap", &dto.AdminLoanUpdateRequest{InterestRate: floatPtr(50), Reason: reason}, false},
		{"rate over cap", &dto.AdminLoanUpdateRequest{InterestRate: floatPtr(50.5), Reason: reason}, true},
		{"duration at floor", &dto.AdminLoanUpdateRequest{DurationMonths: intPtr(1), Reason: reason}, false},
		{"duration at cap", &dto.AdminLoanUpdateRequest{DurationMonths: intPtr(360), Reason: reason}, false},
		{"duration over cap", &dto.AdminLoanUpdateRequest{DurationMonths: intPtr(361), Reason: reason}, true},
		{"unknown status", &dto.AdminLoanUpdateRequest{Status: strPtr("Vanished"), Reason: reason}, true},
		{"known status", &dto.AdminLoanUpdateRequest{Status: strPtr("Approved"), Reason: reason}, false},
		{"empty payload", &dto.AdminLoanUpdateRequest{Reason: reason}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.LoanUpdate(tt.req)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestWithdrawalUpdate(t *testing.T) {
	v := NewValidator()
	reason := "verified the destination account"

	assert.NoError(t, v.WithdrawalUpdate(&dto.AdminWithdrawalUpdateRequest{
		Status: strPtr("review"),
		Reason: reason,
	}))

	err := v.WithdrawalUpdate(&dto.AdminWithdrawalUpdateRequest{
		Status: strPtr("frozen"),
		Reason: reason,
	})
	assert.Error(t, err)

	err = v.WithdrawalUpdate(&dto.AdminWithdrawalUpdateRequest{Reason: reason})
	assert.Error(t, err, "payload without any mutable field")
}

func TestProfileUpdate(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.ProfileUpdate(&dto.AdminProfileUpdateRequest{
		MonthlyIncome: floatPtr(7200),
		Reason:        "income corrected after payslip review",
	}))

	err := v.ProfileUpdate(&dto.AdminProfileUpdateRequest{
		MonthlyIncome: floatPtr(-10),
		Reason:        "income corrected after payslip review",
	})
	assert.Error(t, err)

	err = v.ProfileUpdate(&dto.AdminProfileUpdateRequest{Reason: "nothing actually changes here"})
	assert.Error(t, err)
}
