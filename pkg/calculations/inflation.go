package calculations

import (
	"math"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
)

// InflationResult holds a purchasing-power adjustment of a nominal value.
type InflationResult struct {
	NominalValue  float64
	AdjustedValue float64
	ValueLoss     float64
}

// InflationAdjusted deflates a nominal future value by the given annual
// inflation rate. At zero inflation the adjusted value equals the nominal
// value exactly.
func InflationAdjusted(nominal, inflationRatePercent float64, years int) InflationResult {
	adjusted := nominal / math.Pow(1+inflationRatePercent/constants.PercentageMultiplier, float64(years))
	return InflationResult{
		NominalValue:  nominal,
		AdjustedValue: adjusted,
		ValueLoss:     nominal - adjusted,
	}
}
