package calculations

import (
	"math"
	"testing"
)

func TestInflationAdjusted(t *testing.T) {
	tests := []struct {
		name          string
		nominal       float64
		inflationRate float64
		years         int
		expected      float64
		tolerance     float64
	}{
		{"Typical 6% over 10 years", 1000000, 6, 10, 558394.78, 1},
		{"High inflation short term", 100000, 10, 5, 62092.13, 1},
		{"Single year", 106000, 6, 1, 100000, 0.001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := InflationAdjusted(tt.nominal, tt.inflationRate, tt.years)

			if math.Abs(result.AdjustedValue-tt.expected) > tt.tolerance {
				t.Errorf("InflationAdjusted() = %.2f, expected %.2f ± %.3f",
					result.AdjustedValue, tt.expected, tt.tolerance)
			}
			if math.Abs(result.ValueLoss-(tt.nominal-result.AdjustedValue)) > 0.001 {
				t.Errorf("value loss %.2f != nominal - adjusted %.2f",
					result.ValueLoss, tt.nominal-result.AdjustedValue)
			}
			if result.ValueLoss < 0 {
				t.Errorf("value loss %.2f should not be negative for non-negative inflation", result.ValueLoss)
			}
		})
	}
}

func TestInflationAdjustedZeroInflationExact(t *testing.T) {
	result := InflationAdjusted(1234567.89, 0, 25)
	if result.AdjustedValue != 1234567.89 {
		t.Errorf("zero inflation adjusted value = %v, expected exact nominal 1234567.89", result.AdjustedValue)
	}
	if result.ValueLoss != 0 {
		t.Errorf("zero inflation loss = %v, expected exactly 0", result.ValueLoss)
	}
}

func TestInflationAdjustedMonotonicity(t *testing.T) {
	base := InflationAdjusted(1000000, 6, 10)

	if higherRate := InflationAdjusted(1000000, 7, 10); higherRate.AdjustedValue >= base.AdjustedValue {
		t.Errorf("raising inflation should lower adjusted value: %.2f >= %.2f",
			higherRate.AdjustedValue, base.AdjustedValue)
	}
	if longer := InflationAdjusted(1000000, 6, 11); longer.AdjustedValue >= base.AdjustedValue {
		t.Errorf("raising duration should lower adjusted value: %.2f >= %.2f",
			longer.AdjustedValue, base.AdjustedValue)
	}
}
