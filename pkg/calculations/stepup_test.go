package calculations

import (
	"math"
	"testing"
)

func TestStepUpSIPZeroStepUpMatchesSIP(t *testing.T) {
	plain := SIP(5000, 12, 10)
	stepped := StepUpSIP(5000, 12, 10, 0)

	// Per-year rupee rounding introduces a small drift versus the closed form.
	if math.Abs(stepped.FutureValue-plain.FutureValue) > 2 {
		t.Errorf("StepUpSIP at 0%% step-up = %.2f, expected within ±2 of SIP %.2f",
			stepped.FutureValue, plain.FutureValue)
	}
	if stepped.TotalInvested != plain.TotalInvested {
		t.Errorf("StepUpSIP at 0%% step-up invested = %.2f, expected %.2f",
			stepped.TotalInvested, plain.TotalInvested)
	}
}

func TestStepUpSIPBreakdown(t *testing.T) {
	result := StepUpSIP(5000, 12, 10, 10)

	if len(result.Breakdown) != 10 {
		t.Fatalf("expected 10 breakdown entries, got %d", len(result.Breakdown))
	}

	last := result.Breakdown[len(result.Breakdown)-1]
	if last.CorpusAtYearEnd != result.FutureValue {
		t.Errorf("last breakdown corpus = %.2f, expected future value %.2f",
			last.CorpusAtYearEnd, result.FutureValue)
	}

	// Contributions step up by 10% each year, rounded to whole rupees.
	for i, entry := range result.Breakdown {
		if entry.Year != i+1 {
			t.Errorf("breakdown entry %d has year %d, expected %d", i, entry.Year, i+1)
		}
		expected := math.Round(5000 * math.Pow(1.10, float64(i)))
		if entry.MonthlyInvestment != expected {
			t.Errorf("year %d contribution = %.2f, expected %.2f", entry.Year, entry.MonthlyInvestment, expected)
		}
		if entry.YearlyInvested != entry.MonthlyInvestment*12 {
			t.Errorf("year %d invested = %.2f, expected %.2f", entry.Year, entry.YearlyInvested, entry.MonthlyInvestment*12)
		}
		if i > 0 && entry.CorpusAtYearEnd <= result.Breakdown[i-1].CorpusAtYearEnd {
			t.Errorf("corpus should grow year over year: year %d %.2f <= year %d %.2f",
				entry.Year, entry.CorpusAtYearEnd, entry.Year-1, result.Breakdown[i-1].CorpusAtYearEnd)
		}
	}
}

func TestStepUpSIPTotals(t *testing.T) {
	result := StepUpSIP(10000, 12, 5, 15)

	invested := 0.0
	for _, entry := range result.Breakdown {
		invested += entry.YearlyInvested
	}
	if math.Abs(invested-result.TotalInvested) > 0.001 {
		t.Errorf("sum of yearly invested %.2f != total invested %.2f", invested, result.TotalInvested)
	}
	if math.Abs(result.EstimatedReturns-(result.FutureValue-result.TotalInvested)) > 0.001 {
		t.Errorf("estimated returns %.2f != future value - invested %.2f",
			result.EstimatedReturns, result.FutureValue-result.TotalInvested)
	}
	if result.FutureValue <= result.TotalInvested {
		t.Errorf("future value %.2f should exceed invested %.2f at positive rate",
			result.FutureValue, result.TotalInvested)
	}
}

func TestStepUpSIPExceedsPlainSIP(t *testing.T) {
	plain := SIP(5000, 12, 10)
	stepped := StepUpSIP(5000, 12, 10, 10)
	if stepped.FutureValue <= plain.FutureValue {
		t.Errorf("step-up plan %.2f should beat plain plan %.2f", stepped.FutureValue, plain.FutureValue)
	}
}
