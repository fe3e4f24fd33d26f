package charts

import (
	"encoding/base64"
	"strings"
	"testing"

	"github.com/Shashhank12/Budget-Buddy/internal/forecast"
)

func assertPNGDataURI(t *testing.T, uri string) {
	t.Helper()
	if !strings.HasPrefix(uri, uriPrefix) {
		t.Fatalf("uri prefix = %.40q, want %q", uri, uriPrefix)
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, uriPrefix))
	if err != nil {
		t.Fatalf("payload is not base64: %v", err)
	}
	if len(raw) < 8 || string(raw[1:4]) != "PNG" {
		t.Errorf("payload is not a PNG (%d bytes)", len(raw))
	}
}

func TestBudgetDonutStates(t *testing.T) {
	tests := []struct {
		name   string
		budget float64
		spent  float64
	}{
		{"normal", 1000, 400},
		{"overspent", 1000, 1200},
		{"unused", 1000, 0},
		{"no data", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertPNGDataURI(t, BudgetDonut(tt.budget, tt.spent))
		})
	}
}

func TestCategoryPie(t *testing.T) {
	assertPNGDataURI(t, CategoryPie(map[string]float64{
		"Food": 120.50, "Rent": 900, "Fun": 45,
	}))

	// Empty and all-zero inputs fall back to the placeholder image.
	assertPNGDataURI(t, CategoryPie(nil))
	assertPNGDataURI(t, CategoryPie(map[string]float64{"Food": 0}))
}

func TestCategoryLines(t *testing.T) {
	days := []string{"2025-06-01", "2025-06-02", "2025-06-03"}
	series := map[string][]float64{
		"Food": {10, 0, 5},
		"Fun":  {0, 20, 0},
	}
	assertPNGDataURI(t, CategoryLines(days, series))

	// Mismatched series length degrades instead of panicking.
	assertPNGDataURI(t, CategoryLines(days, map[string][]float64{"Food": {10}}))
	assertPNGDataURI(t, CategoryLines(nil, series))
}

func TestTrendLine(t *testing.T) {
	res, err := forecast.Predict([]forecast.Point{
		{Label: "Apr", Amount: 100},
		{Label: "May", Amount: 110},
		{Label: "Jun", Amount: 120},
	})
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	assertPNGDataURI(t, TrendLine(res))

	assertPNGDataURI(t, TrendLine(&forecast.Result{}))
}

func TestErrorImageAlwaysRenders(t *testing.T) {
	assertPNGDataURI(t, ErrorImage("Something went wrong"))
	assertPNGDataURI(t, ErrorImage(""))
}
