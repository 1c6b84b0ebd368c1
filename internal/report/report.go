// Package report defines the data structures related to a calculator run and
// includes functions for computing reports from configured plans.
package report

import (
	"fmt"
	"strconv"

	"github.com/nivesh-tools/nivesh-calc/internal/config"
	"github.com/nivesh-tools/nivesh-calc/pkg/calculations"
	"github.com/nivesh-tools/nivesh-calc/pkg/format"
	"github.com/nivesh-tools/nivesh-calc/pkg/validation"
	"go.uber.org/zap"
)

// Line is one label/value row in a report summary.
type Line struct {
	Label string
	Value string
}

// Table is a per-period breakdown of a simulation.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Report holds all information related to a single computed plan.
type Report struct {
	Name      string
	Kind      string
	Lines     []Line
	Breakdown *Table
}

// Generate runs every configured plan through the calculation core and
// returns reports in configuration order. Plans are validated before the
// core is invoked; the first invalid plan aborts the run.
func Generate(logger *zap.Logger, conf config.Configuration) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	reports := make([]Report, 0, conf.PlanCount())

	for _, plan := range conf.Plans.SIP {
		r, err := sipReport(logger, plan)
		if err != nil {
			return nil, fmt.Errorf("SIP plan '%s': %w", plan.Name, err)
		}
		reports = append(reports, r)
	}
	for _, plan := range conf.Plans.Lumpsum {
		r, err := lumpsumReport(plan)
		if err != nil {
			return nil, fmt.Errorf("lumpsum plan '%s': %w", plan.Name, err)
		}
		reports = append(reports, r)
	}
	for _, plan := range conf.Plans.CAGR {
		r, err := cagrReport(plan)
		if err != nil {
			return nil, fmt.Errorf("CAGR plan '%s': %w", plan.Name, err)
		}
		reports = append(reports, r)
	}
	for _, plan := range conf.Plans.Inflation {
		r, err := inflationReport(plan)
		if err != nil {
			return nil, fmt.Errorf("inflation plan '%s': %w", plan.Name, err)
		}
		reports = append(reports, r)
	}
	for _, plan := range conf.Plans.SWP {
		r, err := swpReport(logger, plan)
		if err != nil {
			return nil, fmt.Errorf("SWP plan '%s': %w", plan.Name, err)
		}
		reports = append(reports, r)
	}
	for _, plan := range conf.Plans.STP {
		r, err := stpReport(logger, plan)
		if err != nil {
			return nil, fmt.Errorf("STP plan '%s': %w", plan.Name, err)
		}
		reports = append(reports, r)
	}

	logger.Debug(fmt.Sprintf("computed %d reports", len(reports)),
		zap.String("op", "report.Generate"),
	)
	return reports, nil
}

func sipReport(logger *zap.Logger, plan config.SIPPlan) (Report, error) {
	r := Report{Name: plan.Name, Kind: "sip"}

	if plan.StepUpRate > 0 {
		if err := validation.ValidateStepUpSIP(plan.MonthlyInvestment, plan.AnnualReturnRate, plan.Years, plan.StepUpRate); err != nil {
			return r, err
		}
		r.Kind = "step-up sip"

		result := calculations.StepUpSIP(plan.MonthlyInvestment, plan.AnnualReturnRate, plan.Years, plan.StepUpRate)
		r.Lines = []Line{
			{"Monthly Investment (Year 1)", format.CurrencyWithSymbol(plan.MonthlyInvestment)},
			{"Annual Return Rate", format.Percent(plan.AnnualReturnRate)},
			{"Annual Step-Up", format.Percent(plan.StepUpRate)},
			{"Duration", formatYears(plan.Years)},
			{"Total Invested", format.CurrencyWithSymbol(result.TotalInvested)},
			{"Estimated Returns", format.CurrencyWithSymbol(result.EstimatedReturns)},
			{"Future Value", format.CurrencyWithSymbol(result.FutureValue)},
		}

		table := &Table{Headers: []string{"Year", "Monthly Investment", "Invested In Year", "Corpus At Year End"}}
		for _, entry := range result.Breakdown {
			table.Rows = append(table.Rows, []string{
				strconv.Itoa(entry.Year),
				format.Currency(entry.MonthlyInvestment),
				format.Currency(entry.YearlyInvested),
				format.Currency(entry.CorpusAtYearEnd),
			})
		}
		r.Breakdown = table

		appendInflationLines(&r, result.FutureValue, plan.InflationRate, plan.Years)

		logger.Debug(fmt.Sprintf("step-up SIP '%s' future value %.2f", plan.Name, result.FutureValue),
			zap.String("op", "report.sipReport"),
		)
		return r, nil
	}

	if err := validation.ValidateSIP(plan.MonthlyInvestment, plan.AnnualReturnRate, plan.Years); err != nil {
		return r, err
	}

	result := calculations.SIP(plan.MonthlyInvestment, plan.AnnualReturnRate, plan.Years)
	r.Lines = []Line{
		{"Monthly Investment", format.CurrencyWithSymbol(plan.MonthlyInvestment)},
		{"Annual Return Rate", format.Percent(plan.AnnualReturnRate)},
		{"Duration", formatYears(plan.Years)},
		{"Total Invested", format.CurrencyWithSymbol(result.TotalInvested)},
		{"Estimated Returns", format.CurrencyWithSymbol(result.EstimatedReturns)},
		{"Future Value", format.CurrencyWithSymbol(result.FutureValue)},
	}

	appendInflationLines(&r, result.FutureValue, plan.InflationRate, plan.Years)

	logger.Debug(fmt.Sprintf("SIP '%s' future value %.2f", plan.Name, result.FutureValue),
		zap.String("op", "report.sipReport"),
	)
	return r, nil
}

func lumpsumReport(plan config.LumpsumPlan) (Report, error) {
	r := Report{Name: plan.Name, Kind: "lumpsum"}

	if err := validation.ValidateLumpsum(plan.Principal, plan.AnnualReturnRate, plan.Years); err != nil {
		return r, err
	}

	result := calculations.Lumpsum(plan.Principal, plan.AnnualReturnRate, plan.Years)
	r.Lines = []Line{
		{"Principal", format.CurrencyWithSymbol(plan.Principal)},
		{"Annual Return Rate", format.Percent(plan.AnnualReturnRate)},
		{"Duration", formatYears(plan.Years)},
		{"Estimated Returns", format.CurrencyWithSymbol(result.EstimatedReturns)},
		{"Future Value", format.CurrencyWithSymbol(result.FutureValue)},
	}

	appendInflationLines(&r, result.FutureValue, plan.InflationRate, plan.Years)
	return r, nil
}

func cagrReport(plan config.CAGRPlan) (Report, error) {
	r := Report{Name: plan.Name, Kind: "cagr"}

	if err := validation.ValidateCAGR(plan.BeginValue, plan.EndValue, plan.Years); err != nil {
		return r, err
	}

	rate := calculations.CAGR(plan.BeginValue, plan.EndValue, plan.Years)
	r.Lines = []Line{
		{"Begin Value", format.CurrencyWithSymbol(plan.BeginValue)},
		{"End Value", format.CurrencyWithSymbol(plan.EndValue)},
		{"Duration", fmt.Sprintf("%g years", plan.Years)},
		{"CAGR", fmt.Sprintf("%.2f%%", rate)},
	}
	return r, nil
}

func inflationReport(plan config.InflationPlan) (Report, error) {
	r := Report{Name: plan.Name, Kind: "inflation"}

	if err := validation.ValidateInflation(plan.NominalValue, plan.InflationRate, plan.Years); err != nil {
		return r, err
	}

	result := calculations.InflationAdjusted(plan.NominalValue, plan.InflationRate, plan.Years)
	r.Lines = []Line{
		{"Nominal Value", format.CurrencyWithSymbol(result.NominalValue)},
		{"Inflation Rate", format.Percent(plan.InflationRate)},
		{"Duration", formatYears(plan.Years)},
		{"Adjusted Value", format.CurrencyWithSymbol(result.AdjustedValue)},
		{"Purchasing Power Loss", format.CurrencyWithSymbol(result.ValueLoss)},
	}
	return r, nil
}

func swpReport(logger *zap.Logger, plan config.SWPPlan) (Report, error) {
	r := Report{Name: plan.Name, Kind: "swp"}

	if err := validation.ValidateSWP(plan.Corpus, plan.MonthlyWithdrawal, plan.AnnualReturnRate); err != nil {
		return r, err
	}

	result := calculations.SWPDuration(plan.Corpus, plan.MonthlyWithdrawal, plan.AnnualReturnRate)
	r.Lines = []Line{
		{"Corpus", format.CurrencyWithSymbol(plan.Corpus)},
		{"Monthly Withdrawal", format.CurrencyWithSymbol(plan.MonthlyWithdrawal)},
		{"Annual Return Rate", format.Percent(plan.AnnualReturnRate)},
	}

	if result.Indefinite {
		r.Lines = append(r.Lines, Line{"Duration", "indefinite (interest covers the withdrawal)"})
		logger.Debug(fmt.Sprintf("SWP '%s' is indefinite", plan.Name),
			zap.String("op", "report.swpReport"),
		)
		return r, nil
	}

	r.Lines = append(r.Lines,
		Line{"Duration", formatDuration(result.Years, result.Months)},
		Line{"Total Withdrawn", format.CurrencyWithSymbol(result.TotalWithdrawn)},
	)
	logger.Debug(fmt.Sprintf("SWP '%s' lasts %d months", plan.Name, result.TotalMonths),
		zap.String("op", "report.swpReport"),
	)
	return r, nil
}

func stpReport(logger *zap.Logger, plan config.STPPlan) (Report, error) {
	r := Report{Name: plan.Name, Kind: "stp"}

	if err := validation.ValidateSTP(plan.LumpSum, plan.MonthlyTransfer, plan.DebtReturnRate, plan.EquityReturnRate, plan.Months); err != nil {
		return r, err
	}

	result := calculations.STP(plan.LumpSum, plan.MonthlyTransfer, plan.DebtReturnRate, plan.EquityReturnRate, plan.Months)
	r.Lines = []Line{
		{"Lump Sum", format.CurrencyWithSymbol(plan.LumpSum)},
		{"Monthly Transfer", format.CurrencyWithSymbol(plan.MonthlyTransfer)},
		{"Debt Return Rate", format.Percent(plan.DebtReturnRate)},
		{"Equity Return Rate", format.Percent(plan.EquityReturnRate)},
		{"Duration", formatMonths(plan.Months)},
		{"Total Transferred", format.CurrencyWithSymbol(result.TotalTransferred)},
		{"Final Debt Corpus", format.CurrencyWithSymbol(result.DebtCorpus)},
		{"Final Equity Corpus", format.CurrencyWithSymbol(result.EquityCorpus)},
		{"Final Total Corpus", format.CurrencyWithSymbol(result.TotalCorpus)},
		{"If Fully In Equity", format.CurrencyWithSymbol(result.DirectEquityValue)},
		{"If Fully In Debt", format.CurrencyWithSymbol(result.DebtOnlyValue)},
	}

	table := &Table{Headers: []string{"Month", "Debt Corpus", "Equity Corpus", "Total Corpus"}}
	for _, entry := range result.Breakdown {
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(entry.Month),
			format.Currency(entry.DebtCorpus),
			format.Currency(entry.EquityCorpus),
			format.Currency(entry.TotalCorpus),
		})
	}
	r.Breakdown = table

	logger.Debug(fmt.Sprintf("STP '%s' final corpus %.2f", plan.Name, result.TotalCorpus),
		zap.String("op", "report.stpReport"),
	)
	return r, nil
}

// appendInflationLines chains an inflation adjustment onto a computed future
// value when the plan opted in. The core formulas stay independent; chaining
// is the caller's job.
func appendInflationLines(r *Report, futureValue, inflationRate float64, years int) {
	if inflationRate <= 0 {
		return
	}
	adjusted := calculations.InflationAdjusted(futureValue, inflationRate, years)
	r.Lines = append(r.Lines,
		Line{"Inflation Rate", format.Percent(inflationRate)},
		Line{"Inflation-Adjusted Value", format.CurrencyWithSymbol(adjusted.AdjustedValue)},
		Line{"Purchasing Power Loss", format.CurrencyWithSymbol(adjusted.ValueLoss)},
	)
}

func formatYears(years int) string {
	if years == 1 {
		return "1 year"
	}
	return fmt.Sprintf("%d years", years)
}

func formatMonths(months int) string {
	if months == 1 {
		return "1 month"
	}
	return fmt.Sprintf("%d months", months)
}

// formatDuration renders a whole-year plus remaining-month duration, e.g.
// "13 years 10 months".
func formatDuration(years, months int) string {
	switch {
	case years == 0:
		return formatMonths(months)
	case months == 0:
		return formatYears(years)
	default:
		return formatYears(years) + " " + formatMonths(months)
	}
}
