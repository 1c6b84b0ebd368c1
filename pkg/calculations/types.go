// Package calculations implements the closed-form and simulation-based
// investment formulas: SIP, step-up SIP, lumpsum, CAGR, inflation adjustment,
// SWP duration, and STP. Every function is pure and synchronous; callers are
// expected to validate inputs before invoking (see pkg/validation).
package calculations

// Result holds the outcome of a single-figure valuation.
type Result struct {
	FutureValue      float64
	TotalInvested    float64
	EstimatedReturns float64
}
