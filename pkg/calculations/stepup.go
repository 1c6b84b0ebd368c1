package calculations

import (
	"math"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
	"github.com/nivesh-tools/nivesh-calc/pkg/mathutil"
)

// YearSnapshot records the state of a step-up plan at a year boundary.
type YearSnapshot struct {
	Year              int
	MonthlyInvestment float64
	YearlyInvested    float64
	CorpusAtYearEnd   float64
}

// StepUpResult holds the outcome of a step-up SIP simulation along with its
// per-year breakdown. The last breakdown entry's corpus equals FutureValue.
type StepUpResult struct {
	Result
	Breakdown []YearSnapshot
}

// StepUpSIP simulates a monthly investment plan whose contribution increases
// by stepUpPercent once per year. The corpus compounds monthly and is rounded
// to the whole rupee only at year boundaries.
func StepUpSIP(monthlyInvestment, annualRatePercent float64, years int, stepUpPercent float64) StepUpResult {
	monthlyRate := annualRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	stepUpFactor := 1 + stepUpPercent/constants.PercentageMultiplier

	corpus := 0.0
	invested := 0.0
	breakdown := make([]YearSnapshot, 0, years)

	for year := 1; year <= years; year++ {
		contribution := mathutil.RoundRupee(monthlyInvestment * math.Pow(stepUpFactor, float64(year-1)))
		for month := 0; month < constants.MonthsPerYear; month++ {
			corpus = (corpus + contribution) * (1 + monthlyRate)
		}
		corpus = mathutil.RoundRupee(corpus)

		yearlyInvested := contribution * constants.MonthsPerYear
		invested += yearlyInvested
		breakdown = append(breakdown, YearSnapshot{
			Year:              year,
			MonthlyInvestment: contribution,
			YearlyInvested:    yearlyInvested,
			CorpusAtYearEnd:   corpus,
		})
	}

	return StepUpResult{
		Result: Result{
			FutureValue:      corpus,
			TotalInvested:    invested,
			EstimatedReturns: corpus - invested,
		},
		Breakdown: breakdown,
	}
}
