// Package interest implements the compounding math applied to loan balances.
package interest

import "math"

// Result describes one accrual applied to an account balance. All amounts
// are minor currency units.
type Result struct {
	Interest   int64 // signed, same direction as the balance
	Principal  int64 // how far the payment pulled the balance toward zero
	NewBalance int64
}

// Apply compounds one period of interest on a signed balance and applies a
// payment. Balances follow the ledger convention that debt is negative:
// interest pushes the magnitude away from zero and the payment pulls it
// back, whichever sign the balance carries.
//
// The interest magnitude is floor(|previousBalance| * rate), computed on
// the magnitude before the sign is re-applied. Flooring the signed product
// instead would over-charge by one cent on debts. Interest is never
// rounded up.
func Apply(previousBalance, payment int64, rate float64) Result {
	absPrev := previousBalance
	if absPrev < 0 {
		absPrev = -absPrev
	}
	interestAbs := int64(math.Floor(float64(absPrev) * rate))

	var newBalance int64
	if previousBalance >= 0 {
		newBalance = previousBalance + interestAbs - payment
	} else {
		newBalance = previousBalance - interestAbs + payment
	}

	interest := interestAbs
	if previousBalance < 0 {
		interest = -interestAbs
	}

	absNew := newBalance
	if absNew < 0 {
		absNew = -absNew
	}

	return Result{
		Interest:   interest,
		Principal:  absPrev - absNew,
		NewBalance: newBalance,
	}
}
