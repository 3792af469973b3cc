package diff

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name        string
		before      Snapshot
		after       Snapshot
		wantType    Type
		wantChanged []string
	}{
		{
			name:        "status transition wins over detail changes",
			before:      Snapshot{"status": "Pending Approval", "loan_amount": 50000.0},
			after:       Snapshot{"status": "Rejected", "loan_amount": 50000.0},
			wantType:    TypeStatusChanged,
			wantChanged: []string{"status"},
		},
		{
			name:        "detail change without status move",
			before:      Snapshot{"status": "Pending Approval", "loan_amount": 50000.0, "interest_rate": 5.0},
			after:       Snapshot{"status": "Pending Approval", "loan_amount": 60000.0, "interest_rate": 5.0},
			wantType:    TypeDetailsModified,
			wantChanged: []string{"loan_amount"},
		},
		{
			name:        "status and details change together",
			before:      Snapshot{"status": "Pending Approval", "loan_amount": 50000.0},
			after:       Snapshot{"status": "Approved", "loan_amount": 60000.0},
			wantType:    TypeStatusChanged,
			wantChanged: []string{"loan_amount", "status"},
		},
		{
			name:     "identical snapshots",
			before:   Snapshot{"status": "Approved", "loan_amount": 50000.0},
			after:    Snapshot{"status": "Approved", "loan_amount": 50000.0},
			wantType: TypeNoOp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.before, tt.after)

			assert.Equal(t, tt.wantType, got.Type)
			assert.Equal(t, tt.wantChanged, got.ChangedFields)
		})
	}
}

func TestClassifyCarriesOnlyChangedValues(t *testing.T) {
	before := Snapshot{"status": "Pending Approval", "loan_amount": 50000.0, "notes": "unchanged"}
	after := Snapshot{"status": "Pending Approval", "loan_amount": 60000.0, "notes": "unchanged"}

	got := Classify(before, after)

	assert.Equal(t, TypeDetailsModified, got.Type)
	assert.Equal(t, Snapshot{"loan_amount": 50000.0}, got.Old)
	assert.Equal(t, Snapshot{"loan_amount": 60000.0}, got.New)
	assert.NotContains(t, got.Old, "notes")
}

func TestClassifyStatusFields(t *testing.T) {
	got := Classify(
		Snapshot{"status": "Pending Approval"},
		Snapshot{"status": "Approved"},
	)

	assert.Equal(t, "Pending Approval", got.OldStatus)
	assert.Equal(t, "Approved", got.NewStatus)
}

func TestClassifyProfile(t *testing.T) {
	before := Snapshot{"full_name": "Demo Borrower", "monthly_income": 6500.0}

	t.Run("any change is profile_updated", func(t *testing.T) {
		got := ClassifyProfile(before, Snapshot{"full_name": "Demo Borrower", "monthly_income": 7000.0})
		assert.Equal(t, TypeProfileUpdated, got.Type)
		assert.Equal(t, []string{"monthly_income"}, got.ChangedFields)
	})

	t.Run("no change is no_op", func(t *testing.T) {
		got := ClassifyProfile(before, Snapshot{"full_name": "Demo Borrower", "monthly_income": 6500.0})
		assert.Equal(t, TypeNoOp, got.Type)
	})
}
