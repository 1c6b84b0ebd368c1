// Package validation provides the input checks callers must run before
// invoking the calculation core. The core assumes domain-valid numeric input
// and does not guard against negative principals, zero durations, or a zero
// CAGR begin value.
package validation

import (
	"fmt"

	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
)

// ValidateOutputFormat checks that the requested output format is supported.
func ValidateOutputFormat(format string) error {
	switch format {
	case constants.OutputFormatPretty, constants.OutputFormatCSV:
		return nil
	}
	return fmt.Errorf("invalid output format %q; expected %q or %q",
		format, constants.OutputFormatPretty, constants.OutputFormatCSV)
}

// ValidateSIP checks the inputs for a plain monthly investment plan.
func ValidateSIP(monthlyInvestment, annualRatePercent float64, years int) error {
	if monthlyInvestment <= 0 {
		return fmt.Errorf("monthly investment must be positive, got %.2f", monthlyInvestment)
	}
	if annualRatePercent < 0 {
		return fmt.Errorf("annual return rate must not be negative, got %.2f", annualRatePercent)
	}
	if years <= 0 {
		return fmt.Errorf("duration must be at least one year, got %d", years)
	}
	return nil
}

// ValidateStepUpSIP checks the inputs for a step-up monthly investment plan.
func ValidateStepUpSIP(monthlyInvestment, annualRatePercent float64, years int, stepUpPercent float64) error {
	if err := ValidateSIP(monthlyInvestment, annualRatePercent, years); err != nil {
		return err
	}
	if stepUpPercent < 0 {
		return fmt.Errorf("step-up rate must not be negative, got %.2f", stepUpPercent)
	}
	return nil
}

// ValidateLumpsum checks the inputs for a one-time investment valuation.
func ValidateLumpsum(principal, annualRatePercent float64, years int) error {
	if principal <= 0 {
		return fmt.Errorf("principal must be positive, got %.2f", principal)
	}
	if annualRatePercent < 0 {
		return fmt.Errorf("annual return rate must not be negative, got %.2f", annualRatePercent)
	}
	if years <= 0 {
		return fmt.Errorf("duration must be at least one year, got %d", years)
	}
	return nil
}

// ValidateCAGR checks the inputs for a growth-rate calculation.
func ValidateCAGR(beginValue, endValue, years float64) error {
	if beginValue <= 0 {
		return fmt.Errorf("begin value must be positive, got %.2f", beginValue)
	}
	if endValue <= 0 {
		return fmt.Errorf("end value must be positive, got %.2f", endValue)
	}
	if years <= 0 {
		return fmt.Errorf("duration must be positive, got %.2f", years)
	}
	return nil
}

// ValidateInflation checks the inputs for an inflation adjustment.
func ValidateInflation(nominal, inflationRatePercent float64, years int) error {
	if nominal <= 0 {
		return fmt.Errorf("nominal value must be positive, got %.2f", nominal)
	}
	if inflationRatePercent < 0 {
		return fmt.Errorf("inflation rate must not be negative, got %.2f", inflationRatePercent)
	}
	if years <= 0 {
		return fmt.Errorf("duration must be at least one year, got %d", years)
	}
	return nil
}

// ValidateSWP checks the inputs for a withdrawal plan duration calculation.
func ValidateSWP(corpus, monthlyWithdrawal, annualRatePercent float64) error {
	if corpus <= 0 {
		return fmt.Errorf("corpus must be positive, got %.2f", corpus)
	}
	if monthlyWithdrawal <= 0 {
		return fmt.Errorf("monthly withdrawal must be positive, got %.2f", monthlyWithdrawal)
	}
	if annualRatePercent < 0 {
		return fmt.Errorf("annual return rate must not be negative, got %.2f", annualRatePercent)
	}
	return nil
}

// ValidateSTP checks the inputs for a transfer plan simulation.
func ValidateSTP(lumpSum, monthlyTransfer, debtRatePercent, equityRatePercent float64, months int) error {
	if lumpSum <= 0 {
		return fmt.Errorf("lump sum must be positive, got %.2f", lumpSum)
	}
	if monthlyTransfer <= 0 {
		return fmt.Errorf("monthly transfer must be positive, got %.2f", monthlyTransfer)
	}
	if debtRatePercent < 0 {
		return fmt.Errorf("debt return rate must not be negative, got %.2f", debtRatePercent)
	}
	if equityRatePercent < 0 {
		return fmt.Errorf("equity return rate must not be negative, got %.2f", equityRatePercent)
	}
	if months <= 0 {
		return fmt.Errorf("duration must be at least one month, got %d", months)
	}
	return nil
}

// RateWarnings returns advisory warnings for rates that are technically valid
// but unlikely to be intended.
func RateWarnings(label string, ratePercent float64) []string {
	var warnings []string
	if ratePercent > 50 {
		warnings = append(warnings, fmt.Sprintf("%s of %.2f%% is unusually high; double-check the input", label, ratePercent))
	}
	return warnings
}
