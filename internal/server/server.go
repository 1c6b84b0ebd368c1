// Package server exposes the calculator API and the static calculator pages.
package server

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/nivesh-tools/nivesh-calc/internal/config"
	"github.com/nivesh-tools/nivesh-calc/internal/metrics"
	"github.com/nivesh-tools/nivesh-calc/internal/report"
	"github.com/nivesh-tools/nivesh-calc/internal/tracing"
	"github.com/nivesh-tools/nivesh-calc/pkg/calculations"
	"github.com/nivesh-tools/nivesh-calc/pkg/constants"
	"github.com/nivesh-tools/nivesh-calc/pkg/format"
	"github.com/nivesh-tools/nivesh-calc/pkg/output"
	"github.com/nivesh-tools/nivesh-calc/pkg/validation"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

//go:embed static/*
var staticFiles embed.FS

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
}

// NewHandler constructs the HTTP handler that serves the calculator pages and
// the JSON API.
func NewHandler(logger *zap.Logger, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, maxBodySize: maxBodySize, version: trimmedVersion}

	mux := http.NewServeMux()

	// Individual calculator endpoints, query-parameter driven
	mux.HandleFunc("/api/sip", h.instrument("api.sip", h.handleSIP))
	mux.HandleFunc("/api/stepup", h.instrument("api.stepup", h.handleStepUp))
	mux.HandleFunc("/api/lumpsum", h.instrument("api.lumpsum", h.handleLumpsum))
	mux.HandleFunc("/api/cagr", h.instrument("api.cagr", h.handleCAGR))
	mux.HandleFunc("/api/inflation", h.instrument("api.inflation", h.handleInflation))
	mux.HandleFunc("/api/swp", h.instrument("api.swp", h.handleSWP))
	mux.HandleFunc("/api/stp", h.instrument("api.stp", h.handleSTP))

	// Batch endpoint for YAML plan configurations
	mux.HandleFunc("/api/report", h.instrument("api.report", h.handleReport))

	// Version endpoint for UI metadata
	mux.HandleFunc("/api/version", h.handleVersion)

	mux.HandleFunc("/healthz", h.handleHealth)

	// Prometheus metrics
	mux.Handle("/metrics", promhttp.Handler())

	// Static assets (calculator pages)
	sub, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(fmt.Sprintf("failed to prepare embedded static files: %v", err))
	}
	fileServer := http.FileServer(http.FS(sub))
	mux.Handle("/", fileServer)

	return mux
}

// instrument wraps an endpoint with request duration observation and, when
// tracing is initialized, a per-request span.
func (h *handler) instrument(endpoint string, fn http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ctx := r.Context()
		if tracing.Tracer != nil {
			var span trace.Span
			ctx, span = tracing.Tracer.Start(ctx, endpoint)
			defer span.End()
		}
		fn(w, r.WithContext(ctx))
		metrics.RequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}
}

type valuationResponse struct {
	FutureValue      float64           `json:"futureValue"`
	TotalInvested    float64           `json:"totalInvested"`
	EstimatedReturns float64           `json:"estimatedReturns"`
	Display          map[string]string `json:"display"`
}

func valuationDisplay(result calculations.Result) map[string]string {
	return map[string]string{
		"futureValue":      format.Currency(result.FutureValue),
		"totalInvested":    format.Currency(result.TotalInvested),
		"estimatedReturns": format.Currency(result.EstimatedReturns),
	}
}

func (h *handler) handleSIP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	amount, err1 := queryFloat(r, "amount")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryInt(r, "years")
	if err := firstError(err1, err2, err3); err != nil {
		h.rejectCalculation(w, "sip", err)
		return
	}
	if err := validation.ValidateSIP(amount, rate, years); err != nil {
		h.rejectCalculation(w, "sip", err)
		return
	}

	result := calculations.SIP(amount, rate, years)
	metrics.CalculationRequests.WithLabelValues("sip", "ok").Inc()
	h.writeJSON(w, http.StatusOK, valuationResponse{
		FutureValue:      result.FutureValue,
		TotalInvested:    result.TotalInvested,
		EstimatedReturns: result.EstimatedReturns,
		Display:          valuationDisplay(result),
	})
}

type stepUpEntry struct {
	Year              int     `json:"year"`
	MonthlyInvestment float64 `json:"monthlyInvestment"`
	YearlyInvested    float64 `json:"yearlyInvested"`
	CorpusAtYearEnd   float64 `json:"corpusAtYearEnd"`
}

type stepUpResponse struct {
	valuationResponse
	Breakdown []stepUpEntry `json:"breakdown"`
}

func (h *handler) handleStepUp(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	amount, err1 := queryFloat(r, "amount")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryInt(r, "years")
	stepUp, err4 := queryFloat(r, "stepUp")
	if err := firstError(err1, err2, err3, err4); err != nil {
		h.rejectCalculation(w, "stepup", err)
		return
	}
	if err := validation.ValidateStepUpSIP(amount, rate, years, stepUp); err != nil {
		h.rejectCalculation(w, "stepup", err)
		return
	}

	result := calculations.StepUpSIP(amount, rate, years, stepUp)
	breakdown := make([]stepUpEntry, 0, len(result.Breakdown))
	for _, entry := range result.Breakdown {
		breakdown = append(breakdown, stepUpEntry{
			Year:              entry.Year,
			MonthlyInvestment: entry.MonthlyInvestment,
			YearlyInvested:    entry.YearlyInvested,
			CorpusAtYearEnd:   entry.CorpusAtYearEnd,
		})
	}

	metrics.CalculationRequests.WithLabelValues("stepup", "ok").Inc()
	h.writeJSON(w, http.StatusOK, stepUpResponse{
		valuationResponse: valuationResponse{
			FutureValue:      result.FutureValue,
			TotalInvested:    result.TotalInvested,
			EstimatedReturns: result.EstimatedReturns,
			Display:          valuationDisplay(result.Result),
		},
		Breakdown: breakdown,
	})
}

func (h *handler) handleLumpsum(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	principal, err1 := queryFloat(r, "principal")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryInt(r, "years")
	if err := firstError(err1, err2, err3); err != nil {
		h.rejectCalculation(w, "lumpsum", err)
		return
	}
	if err := validation.ValidateLumpsum(principal, rate, years); err != nil {
		h.rejectCalculation(w, "lumpsum", err)
		return
	}

	result := calculations.Lumpsum(principal, rate, years)
	metrics.CalculationRequests.WithLabelValues("lumpsum", "ok").Inc()
	h.writeJSON(w, http.StatusOK, valuationResponse{
		FutureValue:      result.FutureValue,
		TotalInvested:    result.TotalInvested,
		EstimatedReturns: result.EstimatedReturns,
		Display:          valuationDisplay(result),
	})
}

type cagrResponse struct {
	CAGR    float64           `json:"cagr"`
	Display map[string]string `json:"display"`
}

func (h *handler) handleCAGR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	begin, err1 := queryFloat(r, "begin")
	end, err2 := queryFloat(r, "end")
	years, err3 := queryFloat(r, "years")
	if err := firstError(err1, err2, err3); err != nil {
		h.rejectCalculation(w, "cagr", err)
		return
	}
	if err := validation.ValidateCAGR(begin, end, years); err != nil {
		h.rejectCalculation(w, "cagr", err)
		return
	}

	rate := calculations.CAGR(begin, end, years)
	metrics.CalculationRequests.WithLabelValues("cagr", "ok").Inc()
	h.writeJSON(w, http.StatusOK, cagrResponse{
		CAGR: rate,
		Display: map[string]string{
			"cagr": fmt.Sprintf("%.2f%%", rate),
		},
	})
}

type inflationResponse struct {
	NominalValue  float64           `json:"nominalValue"`
	AdjustedValue float64           `json:"adjustedValue"`
	ValueLoss     float64           `json:"valueLoss"`
	Display       map[string]string `json:"display"`
}

func (h *handler) handleInflation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	nominal, err1 := queryFloat(r, "nominal")
	rate, err2 := queryFloat(r, "rate")
	years, err3 := queryInt(r, "years")
	if err := firstError(err1, err2, err3); err != nil {
		h.rejectCalculation(w, "inflation", err)
		return
	}
	if err := validation.ValidateInflation(nominal, rate, years); err != nil {
		h.rejectCalculation(w, "inflation", err)
		return
	}

	result := calculations.InflationAdjusted(nominal, rate, years)
	metrics.CalculationRequests.WithLabelValues("inflation", "ok").Inc()
	h.writeJSON(w, http.StatusOK, inflationResponse{
		NominalValue:  result.NominalValue,
		AdjustedValue: result.AdjustedValue,
		ValueLoss:     result.ValueLoss,
		Display: map[string]string{
			"nominalValue":  format.Currency(result.NominalValue),
			"adjustedValue": format.Currency(result.AdjustedValue),
			"valueLoss":     format.Currency(result.ValueLoss),
		},
	})
}

type swpResponse struct {
	Indefinite     bool              `json:"indefinite"`
	Years          int               `json:"years"`
	Months         int               `json:"months"`
	TotalMonths    int               `json:"totalMonths"`
	TotalWithdrawn float64           `json:"totalWithdrawn"`
	Display        map[string]string `json:"display"`
}

func (h *handler) handleSWP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	corpus, err1 := queryFloat(r, "corpus")
	withdrawal, err2 := queryFloat(r, "withdrawal")
	rate, err3 := queryFloat(r, "rate")
	if err := firstError(err1, err2, err3); err != nil {
		h.rejectCalculation(w, "swp", err)
		return
	}
	if err := validation.ValidateSWP(corpus, withdrawal, rate); err != nil {
		h.rejectCalculation(w, "swp", err)
		return
	}

	result := calculations.SWPDuration(corpus, withdrawal, rate)
	display := map[string]string{
		"totalWithdrawn": format.Currency(result.TotalWithdrawn),
	}
	if result.Indefinite {
		display["duration"] = "indefinite"
	} else {
		display["duration"] = fmt.Sprintf("%d years %d months", result.Years, result.Months)
	}

	metrics.CalculationRequests.WithLabelValues("swp", "ok").Inc()
	h.writeJSON(w, http.StatusOK, swpResponse{
		Indefinite:     result.Indefinite,
		Years:          result.Years,
		Months:         result.Months,
		TotalMonths:    result.TotalMonths,
		TotalWithdrawn: result.TotalWithdrawn,
		Display:        display,
	})
}

type stpEntry struct {
	Month        int     `json:"month"`
	DebtCorpus   float64 `json:"debtCorpus"`
	EquityCorpus float64 `json:"equityCorpus"`
	TotalCorpus  float64 `json:"totalCorpus"`
}

type stpResponse struct {
	DebtCorpus        float64           `json:"debtCorpus"`
	EquityCorpus      float64           `json:"equityCorpus"`
	TotalCorpus       float64           `json:"totalCorpus"`
	TotalTransferred  float64           `json:"totalTransferred"`
	DirectEquityValue float64           `json:"directEquityValue"`
	DebtOnlyValue     float64           `json:"debtOnlyValue"`
	Display           map[string]string `json:"display"`
	Breakdown         []stpEntry        `json:"breakdown"`
}

func (h *handler) handleSTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	lumpSum, err1 := queryFloat(r, "lumpSum")
	transfer, err2 := queryFloat(r, "transfer")
	debtRate, err3 := queryFloat(r, "debtRate")
	equityRate, err4 := queryFloat(r, "equityRate")
	months, err5 := queryInt(r, "months")
	if err := firstError(err1, err2, err3, err4, err5); err != nil {
		h.rejectCalculation(w, "stp", err)
		return
	}
	if err := validation.ValidateSTP(lumpSum, transfer, debtRate, equityRate, months); err != nil {
		h.rejectCalculation(w, "stp", err)
		return
	}

	result := calculations.STP(lumpSum, transfer, debtRate, equityRate, months)
	breakdown := make([]stpEntry, 0, len(result.Breakdown))
	for _, entry := range result.Breakdown {
		breakdown = append(breakdown, stpEntry{
			Month:        entry.Month,
			DebtCorpus:   entry.DebtCorpus,
			EquityCorpus: entry.EquityCorpus,
			TotalCorpus:  entry.TotalCorpus,
		})
	}

	metrics.CalculationRequests.WithLabelValues("stp", "ok").Inc()
	h.writeJSON(w, http.StatusOK, stpResponse{
		DebtCorpus:        result.DebtCorpus,
		EquityCorpus:      result.EquityCorpus,
		TotalCorpus:       result.TotalCorpus,
		TotalTransferred:  result.TotalTransferred,
		DirectEquityValue: result.DirectEquityValue,
		DebtOnlyValue:     result.DebtOnlyValue,
		Display: map[string]string{
			"debtCorpus":        format.Currency(result.DebtCorpus),
			"equityCorpus":      format.Currency(result.EquityCorpus),
			"totalCorpus":       format.Currency(result.TotalCorpus),
			"totalTransferred":  format.Currency(result.TotalTransferred),
			"directEquityValue": format.Currency(result.DirectEquityValue),
			"debtOnlyValue":     format.Currency(result.DebtOnlyValue),
		},
		Breakdown: breakdown,
	})
}

type reportResponse struct {
	Reports  []reportPayload `json:"reports"`
	Warnings []string        `json:"warnings,omitempty"`
	CSV      string          `json:"csv"`
	Duration string          `json:"duration"`
}

type reportPayload struct {
	Name      string        `json:"name"`
	Kind      string        `json:"kind"`
	Lines     []linePayload `json:"lines"`
	Breakdown *tablePayload `json:"breakdown,omitempty"`
}

type linePayload struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type tablePayload struct {
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

func (h *handler) handleReport(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	start := time.Now()
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBodySize)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize))
			return
		}
		h.respondError(w, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return
	}

	conf, err := config.ReadConfiguration(bytes.NewReader(body))
	if err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	warnings := conf.ValidateConfiguration()

	reports, err := report.Generate(h.logger, *conf)
	if err != nil {
		metrics.CalculationRequests.WithLabelValues("report", "error").Inc()
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	payloads := make([]reportPayload, 0, len(reports))
	for _, rep := range reports {
		payload := reportPayload{Name: rep.Name, Kind: rep.Kind}
		for _, line := range rep.Lines {
			payload.Lines = append(payload.Lines, linePayload{Label: line.Label, Value: line.Value})
		}
		if rep.Breakdown != nil {
			payload.Breakdown = &tablePayload{Headers: rep.Breakdown.Headers, Rows: rep.Breakdown.Rows}
		}
		payloads = append(payloads, payload)
	}

	var csvBuf bytes.Buffer
	output.CsvFormat(&csvBuf, reports)

	metrics.CalculationRequests.WithLabelValues("report", "ok").Inc()
	h.writeJSON(w, http.StatusOK, reportResponse{
		Reports:  payloads,
		Warnings: warnings,
		CSV:      csvBuf.String(),
		Duration: time.Since(start).String(),
	})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// rejectCalculation records a validation failure and returns a 400 response.
func (h *handler) rejectCalculation(w http.ResponseWriter, calculator string, err error) {
	metrics.CalculationRequests.WithLabelValues(calculator, "error").Inc()
	metrics.CalculationErrors.WithLabelValues(calculator, "validation").Inc()
	h.logger.Debug("rejected calculation request",
		zap.String("op", "server.rejectCalculation"),
		zap.String("calculator", calculator),
		zap.Error(err),
	)
	h.respondError(w, http.StatusBadRequest, err.Error())
}

func (h *handler) respondError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, map[string]string{"error": message})
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Warn("failed to encode response",
			zap.String("op", "server.writeJSON"),
			zap.Error(err),
		)
	}
}

func queryFloat(r *http.Request, name string) (float64, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing parameter %q", name)
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid numeric parameter %q: %v", name, err)
	}
	return value, nil
}

func queryInt(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, fmt.Errorf("missing parameter %q", name)
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid integer parameter %q: %v", name, err)
	}
	return value, nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
