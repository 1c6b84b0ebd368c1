package calculations

import (
	"math"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
)

// SIP computes the future value of a fixed monthly investment using the
// future-value-of-annuity-due formula (contributions at the start of each
// month).
func SIP(monthlyInvestment, annualRatePercent float64, years int) Result {
	months := years * constants.MonthsPerYear
	invested := monthlyInvestment * float64(months)

	if annualRatePercent == 0 {
		// Zero rate degenerates to a plain sum of contributions.
		return Result{FutureValue: invested, TotalInvested: invested}
	}

	monthlyRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	growth := math.Pow(1+monthlyRate, float64(months))
	futureValue := monthlyInvestment * (growth - 1) / monthlyRate * (1 + monthlyRate)

	return Result{
		FutureValue:      futureValue,
		TotalInvested:    invested,
		EstimatedReturns: futureValue - invested,
	}
}
