package calculations

import (
	"math"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
)

// Lumpsum computes the future value of a one-time investment compounded
// annually.
func Lumpsum(principal, annualRatePercent float64, years int) Result {
	futureValue := principal * math.Pow(1+annualRatePercent/constants.PercentageMultiplier, float64(years))
	return Result{
		FutureValue:      futureValue,
		TotalInvested:    principal,
		EstimatedReturns: futureValue - principal,
	}
}

// CAGR returns the constant annual growth rate, in percent, that carries
// beginValue to endValue over the given number of years. It is the algebraic
// inverse of Lumpsum.
func CAGR(beginValue, endValue, years float64) float64 {
	return (math.Pow(endValue/beginValue, 1/years) - 1) * constants.PercentageMultiplier
}
