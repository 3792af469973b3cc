package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmortize(t *testing.T) {
	tests := []struct {
		name               string
		principal          float64
		annualRate         float64
		termMonths         int
		wantMonthlyPayment float64
	}{
		{
			name:               "three year business loan",
			principal:          60000,
			annualRate:         6.5,
			termMonths:         36,
			wantMonthlyPayment: 1838.96,
		},
		{
			name:               "thirty year mortgage",
			principal:          100000,
			annualRate:         6.0,
			termMonths:         360,
			wantMonthlyPayment: 599.55,
		},
		{
			name:               "zero rate degenerates to principal over term",
			principal:          12000,
			annualRate:         0,
			termMonths:         12,
			wantMonthlyPayment: 1000.00,
		},
		{
			name:               "single month",
			principal:          1000,
			annualRate:         0,
			termMonths:         1,
			wantMonthlyPayment: 1000.00,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Amortize(tt.principal, tt.annualRate, tt.termMonths)

			assert.InDelta(t, tt.wantMonthlyPayment, got.MonthlyPayment, 0.01)
			assert.InDelta(t, got.MonthlyPayment*float64(tt.termMonths), got.TotalAmount, 0.01)
			assert.InDelta(t, got.TotalAmount-tt.principal, got.TotalInterest, 0.01)
		})
	}
}

func TestAmortizeZeroRateExact(t *testing.T) {
	got := Amortize(12000, 0, 12)

	assert.Equal(t, 1000.00, got.MonthlyPayment)
	assert.Equal(t, 12000.00, got.TotalAmount)
	assert.Equal(t, 0.00, got.TotalInterest)
}

func TestAmortizeInvalidTerm(t *testing.T) {
	got := Amortize(10000, 5, 0)
	assert.Equal(t, Schedule{}, got)
}

func TestRound2(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.125, 0.13}, // exact binary half rounds away from zero
		{-0.125, -0.13},
		{1.004, 1.00},
		{1.006, 1.01},
		{0, 0},
	}

	for _, tt := range tests {
		assert.InDelta(t, tt.want, Round2(tt.in), 0.0001, "Round2(%v)", tt.in)
	}
}
