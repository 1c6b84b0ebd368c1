package calculations

import (
	"math"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
	"github.com/nivesh-tools/nivesh-calc/pkg/mathutil"
)

// MonthSnapshot records the state of an STP simulation after one monthly
// transfer. Snapshot figures are rounded to whole rupees for display.
type MonthSnapshot struct {
	Month        int
	DebtCorpus   float64
	EquityCorpus float64
	TotalCorpus  float64
}

// STPResult holds the outcome of an STP simulation. The final corpus fields
// keep the unrounded running values even though breakdown entries are
// rounded. TotalTransferred may be less than transfer × months when the
// source corpus depletes early.
type STPResult struct {
	DebtCorpus        float64
	EquityCorpus      float64
	TotalCorpus       float64
	TotalTransferred  float64
	DirectEquityValue float64
	DebtOnlyValue     float64
	Breakdown         []MonthSnapshot
}

// STP simulates moving a lump sum from a debt instrument into an equity
// instrument through fixed monthly transfers. Each month the debt corpus
// compounds first, then the transfer (capped at the remaining debt corpus so
// the source never goes negative) moves into the equity corpus, which
// compounds with the transfer included. DirectEquityValue and DebtOnlyValue
// are counterfactuals for the lump sum staying put in either instrument.
func STP(lumpSum, monthlyTransfer, debtRatePercent, equityRatePercent float64, months int) STPResult {
	debtRate := debtRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)
	equityRate := equityRatePercent / (constants.PercentageMultiplier * constants.MonthsPerYear)

	debt := lumpSum
	equity := 0.0
	transferred := 0.0
	breakdown := make([]MonthSnapshot, 0, months)

	for month := 1; month <= months; month++ {
		debt *= 1 + debtRate
		transfer := mathutil.Min(monthlyTransfer, debt)
		debt -= transfer
		equity = (equity + transfer) * (1 + equityRate)
		transferred += transfer

		breakdown = append(breakdown, MonthSnapshot{
			Month:        month,
			DebtCorpus:   mathutil.RoundRupee(debt),
			EquityCorpus: mathutil.RoundRupee(equity),
			TotalCorpus:  mathutil.RoundRupee(debt + equity),
		})
	}

	return STPResult{
		DebtCorpus:        debt,
		EquityCorpus:      equity,
		TotalCorpus:       debt + equity,
		TotalTransferred:  transferred,
		DirectEquityValue: lumpSum * math.Pow(1+equityRate, float64(months)),
		DebtOnlyValue:     lumpSum * math.Pow(1+debtRate, float64(months)),
		Breakdown:         breakdown,
	}
}
