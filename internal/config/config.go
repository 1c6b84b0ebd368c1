// Package config defines the data structures related to configuration and
// includes functions for loading and validating the plan configuration.
package config

import (
	"fmt"
	"io"

	"github.com/nivesh-tools/nivesh-calc/pkg/validation"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for nivesh-calc.
type Configuration struct {
	Logging LoggingConfig `yaml:"logging,omitempty"`
	Output  OutputConfig  `yaml:"output,omitempty"`
	Plans   Plans         `yaml:"plans"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format string `yaml:"format,omitempty"` // pretty, csv
}

// Plans holds the named calculator invocations to run, one list per
// calculator kind.
type Plans struct {
	SIP       []SIPPlan       `yaml:"sip,omitempty"`
	Lumpsum   []LumpsumPlan   `yaml:"lumpsum,omitempty"`
	CAGR      []CAGRPlan      `yaml:"cagr,omitempty"`
	Inflation []InflationPlan `yaml:"inflation,omitempty"`
	SWP       []SWPPlan       `yaml:"swp,omitempty"`
	STP       []STPPlan       `yaml:"stp,omitempty"`
}

// SIPPlan describes a monthly investment plan. A positive StepUpRate switches
// the plan to the year-by-year step-up simulation; a positive InflationRate
// chains an inflation adjustment onto the resulting future value.
type SIPPlan struct {
	Name              string  `yaml:"name"`
	MonthlyInvestment float64 `yaml:"monthlyInvestment"`
	AnnualReturnRate  float64 `yaml:"annualReturnRate"`
	Years             int     `yaml:"years"`
	StepUpRate        float64 `yaml:"stepUpRate,omitempty"`
	InflationRate     float64 `yaml:"inflationRate,omitempty"`
}

// LumpsumPlan describes a one-time investment valuation.
type LumpsumPlan struct {
	Name             string  `yaml:"name"`
	Principal        float64 `yaml:"principal"`
	AnnualReturnRate float64 `yaml:"annualReturnRate"`
	Years            int     `yaml:"years"`
	InflationRate    float64 `yaml:"inflationRate,omitempty"`
}

// CAGRPlan describes a growth-rate calculation between two observed values.
type CAGRPlan struct {
	Name       string  `yaml:"name"`
	BeginValue float64 `yaml:"beginValue"`
	EndValue   float64 `yaml:"endValue"`
	Years      float64 `yaml:"years"`
}

// InflationPlan describes a purchasing-power adjustment.
type InflationPlan struct {
	Name          string  `yaml:"name"`
	NominalValue  float64 `yaml:"nominalValue"`
	InflationRate float64 `yaml:"inflationRate"`
	Years         int     `yaml:"years"`
}

// SWPPlan describes a withdrawal plan duration calculation.
type SWPPlan struct {
	Name              string  `yaml:"name"`
	Corpus            float64 `yaml:"corpus"`
	MonthlyWithdrawal float64 `yaml:"monthlyWithdrawal"`
	AnnualReturnRate  float64 `yaml:"annualReturnRate"`
}

// STPPlan describes a transfer plan simulation.
type STPPlan struct {
	Name             string  `yaml:"name"`
	LumpSum          float64 `yaml:"lumpSum"`
	MonthlyTransfer  float64 `yaml:"monthlyTransfer"`
	DebtReturnRate   float64 `yaml:"debtReturnRate"`
	EquityReturnRate float64 `yaml:"equityReturnRate"`
	Months           int     `yaml:"months"`
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there.
func LoadConfiguration(configPath string) (*Configuration, error) {
	v := viper.New()
	v.SetConfigFile(configPath)
	v.SetConfigType("yml")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// ReadConfiguration parses a YAML-formatted configuration from a reader. It
// uses an isolated viper instance so concurrent callers (e.g. HTTP requests)
// do not share state.
func ReadConfiguration(r io.Reader) (*Configuration, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("error reading config data, %s", err)
	}

	var configuration Configuration
	if err := v.Unmarshal(&configuration); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return &configuration, nil
}

// PlanCount returns the total number of configured plans.
func (conf *Configuration) PlanCount() int {
	return len(conf.Plans.SIP) + len(conf.Plans.Lumpsum) + len(conf.Plans.CAGR) +
		len(conf.Plans.Inflation) + len(conf.Plans.SWP) + len(conf.Plans.STP)
}

// ValidateConfiguration checks the configuration for conditions that are
// worth surfacing but do not prevent a run, and returns human-readable
// warnings.
func (conf *Configuration) ValidateConfiguration() []string {
	var warnings []string

	if conf.PlanCount() == 0 {
		warnings = append(warnings, "no plans configured; nothing to calculate")
	}

	for i, plan := range conf.Plans.SIP {
		if plan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("SIP plan %d has no name", i+1))
		}
		warnings = append(warnings, validation.RateWarnings(fmt.Sprintf("SIP plan '%s' annual return rate", plan.Name), plan.AnnualReturnRate)...)
		warnings = append(warnings, validation.RateWarnings(fmt.Sprintf("SIP plan '%s' step-up rate", plan.Name), plan.StepUpRate)...)
	}
	for i, plan := range conf.Plans.Lumpsum {
		if plan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("lumpsum plan %d has no name", i+1))
		}
		warnings = append(warnings, validation.RateWarnings(fmt.Sprintf("lumpsum plan '%s' annual return rate", plan.Name), plan.AnnualReturnRate)...)
	}
	for i, plan := range conf.Plans.CAGR {
		if plan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("CAGR plan %d has no name", i+1))
		}
	}
	for i, plan := range conf.Plans.Inflation {
		if plan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("inflation plan %d has no name", i+1))
		}
		warnings = append(warnings, validation.RateWarnings(fmt.Sprintf("inflation plan '%s' inflation rate", plan.Name), plan.InflationRate)...)
	}
	for i, plan := range conf.Plans.SWP {
		if plan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("SWP plan %d has no name", i+1))
		}
		warnings = append(warnings, validation.RateWarnings(fmt.Sprintf("SWP plan '%s' annual return rate", plan.Name), plan.AnnualReturnRate)...)
	}
	for i, plan := range conf.Plans.STP {
		if plan.Name == "" {
			warnings = append(warnings, fmt.Sprintf("STP plan %d has no name", i+1))
		}
		warnings = append(warnings, validation.RateWarnings(fmt.Sprintf("STP plan '%s' equity return rate", plan.Name), plan.EquityReturnRate)...)
	}

	return warnings
}
