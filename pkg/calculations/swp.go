package calculations

import (
	"math"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
)

// SWPResult describes how long a corpus sustains a fixed monthly withdrawal.
// TotalWithdrawn is the nominal withdrawal × TotalMonths figure; the actual
// final withdrawal may be smaller when the corpus runs out mid-month.
type SWPResult struct {
	Indefinite     bool
	Years          int
	Months         int
	TotalMonths    int
	TotalWithdrawn float64
}

// SWPDuration solves the annuity-depletion equation for the number of months
// a corpus lasts under a fixed monthly withdrawal. When the monthly interest
// income covers the withdrawal the corpus never depletes and the result is
// marked indefinite with zero duration fields. Partial months round up since
// they still consume a withdrawal.
func SWPDuration(corpus, monthlyWithdrawal, annualRatePercent float64) SWPResult {
	monthlyRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)

	if monthlyWithdrawal <= corpus*monthlyRate {
		return SWPResult{Indefinite: true}
	}

	var months int
	if monthlyRate == 0 {
		months = int(math.Ceil(corpus / monthlyWithdrawal))
	} else {
		months = int(math.Ceil(-math.Log(1-corpus*monthlyRate/monthlyWithdrawal) / math.Log(1+monthlyRate)))
	}

	return SWPResult{
		Years:          months / constants.MonthsPerYear,
		Months:         months % constants.MonthsPerYear,
		TotalMonths:    months,
		TotalWithdrawn: monthlyWithdrawal * float64(months),
	}
}
