// Package finance holds the loan math. Pure functions, no I/O: the mutation
// pipeline re-derives every stored monetary figure from the proposed values
// and never trusts a caller-supplied monthly payment.
package finance

import "math"

// Schedule is the repayment summary for a fixed-rate amortized loan.
type Schedule struct {
	MonthlyPayment float64
	TotalInterest  float64
	TotalAmount    float64
}

// Round2 rounds to 2 decimal places, half away from zero.
func Round2(v float64) float64 {
	if v < 0 {
		return -math.Floor(-v*100+0.5) / 100
	}
	return math.Floor(v*100+0.5) / 100
}

// Amortize computes the fixed monthly payment for the given principal,
// annual percentage rate and term using the standard amortization formula
//
//	M = P * r * (1+r)^n / ((1+r)^n - 1)
//
// with r the monthly decimal rate. A zero rate degenerates to P/n.
func Amortize(principal, annualRatePercent float64, termMonths int) Schedule {
	if termMonths <= 0 {
		return Schedule{}
	}

	r := annualRatePercent / 100 / 12
	n := float64(termMonths)

	var monthly float64
	if r == 0 {
		monthly = principal / n
	} else {
		pow := math.Pow(1+r, n)
		monthly = principal * r * pow / (pow - 1)
	}

	monthly = Round2(monthly)
	total := Round2(monthly * n)

	return Schedule{
		MonthlyPayment: monthly,
		TotalInterest:  Round2(total - principal),
		TotalAmount:    total,
	}
}
