package server

import (
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(zap.NewNop(), 0, "test")
}

func getJSON(t *testing.T, h http.Handler, url string, wantStatus int) map[string]interface{} {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != wantStatus {
		t.Fatalf("GET %s status = %d, expected %d; body: %s", url, rec.Code, wantStatus, rec.Body.String())
	}

	var payload map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response from %s: %v", url, err)
	}
	return payload
}

func TestHandleSIP(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/sip?amount=5000&rate=12&years=10", http.StatusOK)

	futureValue, ok := payload["futureValue"].(float64)
	if !ok {
		t.Fatalf("missing futureValue in %v", payload)
	}
	if math.Abs(futureValue-1161695.38) > 1 {
		t.Errorf("futureValue = %.2f, expected about 1161695", futureValue)
	}
	if payload["totalInvested"].(float64) != 600000 {
		t.Errorf("totalInvested = %v, expected 600000", payload["totalInvested"])
	}

	display := payload["display"].(map[string]interface{})
	if display["futureValue"] != "11,61,695" {
		t.Errorf("display futureValue = %v, expected 11,61,695", display["futureValue"])
	}
}

func TestHandleSIPValidation(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name string
		url  string
	}{
		{"Missing parameter", "/api/sip?amount=5000&rate=12"},
		{"Non-numeric parameter", "/api/sip?amount=abc&rate=12&years=10"},
		{"Negative amount", "/api/sip?amount=-5000&rate=12&years=10"},
		{"Zero years", "/api/sip?amount=5000&rate=12&years=0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			payload := getJSON(t, h, tt.url, http.StatusBadRequest)
			if payload["error"] == "" {
				t.Errorf("expected error message in %v", payload)
			}
		})
	}
}

func TestHandleSIPMethodNotAllowed(t *testing.T) {
	h := newTestHandler(t)
	req := httptest.NewRequest(http.MethodPost, "/api/sip?amount=5000&rate=12&years=10", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, expected 405", rec.Code)
	}
}

func TestHandleStepUp(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/stepup?amount=5000&rate=12&years=10&stepUp=10", http.StatusOK)

	breakdown, ok := payload["breakdown"].([]interface{})
	if !ok || len(breakdown) != 10 {
		t.Fatalf("expected 10 breakdown entries, got %v", payload["breakdown"])
	}
	last := breakdown[9].(map[string]interface{})
	if last["corpusAtYearEnd"].(float64) != payload["futureValue"].(float64) {
		t.Errorf("last corpus %v should equal future value %v",
			last["corpusAtYearEnd"], payload["futureValue"])
	}
}

func TestHandleLumpsum(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/lumpsum?principal=100000&rate=10&years=7", http.StatusOK)

	if fv := payload["futureValue"].(float64); math.Abs(fv-194871.71) > 1 {
		t.Errorf("futureValue = %.2f, expected about 194871.71", fv)
	}
}

func TestHandleCAGR(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/cagr?begin=100000&end=200000&years=10", http.StatusOK)

	if cagr := payload["cagr"].(float64); math.Abs(cagr-7.1773) > 0.001 {
		t.Errorf("cagr = %.4f, expected about 7.1773", cagr)
	}

	getJSON(t, h, "/api/cagr?begin=0&end=200000&years=10", http.StatusBadRequest)
}

func TestHandleInflation(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/inflation?nominal=1000000&rate=6&years=10", http.StatusOK)

	if adjusted := payload["adjustedValue"].(float64); math.Abs(adjusted-558394.78) > 1 {
		t.Errorf("adjustedValue = %.2f, expected about 558394.78", adjusted)
	}
}

func TestHandleSWP(t *testing.T) {
	h := newTestHandler(t)

	finite := getJSON(t, h, "/api/swp?corpus=2000000&withdrawal=20000&rate=8", http.StatusOK)
	if finite["indefinite"].(bool) {
		t.Error("2000000 at 8% with 20000/month should be finite")
	}
	if years := finite["years"].(float64); years != 13 {
		t.Errorf("years = %v, expected 13", years)
	}
	if months := finite["months"].(float64); months != 10 {
		t.Errorf("months = %v, expected 10", months)
	}

	indefinite := getJSON(t, h, "/api/swp?corpus=1000000&withdrawal=5000&rate=10", http.StatusOK)
	if !indefinite["indefinite"].(bool) {
		t.Error("1000000 at 10% with 5000/month should be indefinite")
	}
}

func TestHandleSTP(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/stp?lumpSum=500000&transfer=25000&debtRate=7&equityRate=14&months=24", http.StatusOK)

	if debt := payload["debtCorpus"].(float64); debt != 0 {
		t.Errorf("debtCorpus = %v, expected 0", debt)
	}
	if equity := payload["equityCorpus"].(float64); equity <= 0 {
		t.Errorf("equityCorpus = %v, expected positive", equity)
	}
	breakdown := payload["breakdown"].([]interface{})
	if len(breakdown) != 24 {
		t.Errorf("expected 24 breakdown entries, got %d", len(breakdown))
	}
}

func TestHandleReport(t *testing.T) {
	h := newTestHandler(t)

	body := `plans:
  sip:
    - name: Retirement
      monthlyInvestment: 5000
      annualReturnRate: 12
      years: 10
  swp:
    - name: Drawdown
      corpus: 2000000
      monthlyWithdrawal: 20000
      annualReturnRate: 8
`
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, expected 200; body: %s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Reports []struct {
			Name  string `json:"name"`
			Kind  string `json:"kind"`
			Lines []struct {
				Label string `json:"label"`
				Value string `json:"value"`
			} `json:"lines"`
		} `json:"reports"`
		CSV string `json:"csv"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if len(payload.Reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(payload.Reports))
	}
	if payload.Reports[0].Name != "Retirement" || payload.Reports[1].Kind != "swp" {
		t.Errorf("unexpected reports: %+v", payload.Reports)
	}
	if !strings.Contains(payload.CSV, `"Retirement","sip"`) {
		t.Errorf("CSV missing report rows:\n%s", payload.CSV)
	}
}

func TestHandleReportRejectsBadInput(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"Malformed YAML", "plans: [oops", http.StatusBadRequest},
		{"Invalid plan", "plans:\n  sip:\n    - name: Broken\n      monthlyInvestment: -1\n      annualReturnRate: 12\n      years: 10\n", http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, expected %d; body: %s", rec.Code, tt.wantStatus, rec.Body.String())
			}
		})
	}
}

func TestHandleReportBodyLimit(t *testing.T) {
	h := NewHandler(zap.NewNop(), 64, "test")

	body := strings.Repeat("# padding\n", 100) + "plans: {}\n"
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("status = %d, expected 413", rec.Code)
	}
}

func TestHandleVersion(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/api/version", http.StatusOK)
	if payload["version"] != "test" {
		t.Errorf("version = %v, expected test", payload["version"])
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t)
	payload := getJSON(t, h, "/healthz", http.StatusOK)
	if payload["status"] != "ok" {
		t.Errorf("status = %v, expected ok", payload["status"])
	}
}

func TestMetricsEndpointExposed(t *testing.T) {
	h := newTestHandler(t)

	// Generate at least one counted request first.
	getJSON(t, h, "/api/sip?amount=5000&rate=12&years=10", http.StatusOK)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("metrics status = %d, expected 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "calculation_requests_total") {
		t.Error("metrics output missing calculation_requests_total")
	}
}

func TestStaticIndexServed(t *testing.T) {
	h := newTestHandler(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("index status = %d, expected 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nivesh Calc") {
		t.Error("index page missing expected title")
	}
}
