package period

import (
	"testing"
	"time"
)

// Wednesday, June 18 2025.
var today = time.Date(2025, time.June, 18, 15, 4, 5, 0, time.UTC)

func TestResolveMonth(t *testing.T) {
	tests := []struct {
		name   string
		offset int
		start  string
		end    string
	}{
		{"current", 0, "2025-06-01", "2025-06-30"},
		{"previous", -1, "2025-05-01", "2025-05-31"},
		{"next", 1, "2025-07-01", "2025-07-31"},
		{"february", -4, "2025-02-01", "2025-02-28"},
		{"year boundary", -6, "2024-12-01", "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Resolve(ViewMonth, tt.offset, today)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if w.StartDate() != tt.start || w.EndDate() != tt.end {
				t.Errorf("window = [%s, %s], want [%s, %s]", w.StartDate(), w.EndDate(), tt.start, tt.end)
			}
		})
	}
}

func TestResolveWeek(t *testing.T) {
	tests := []struct {
		name   string
		now    time.Time
		offset int
		start  string
		end    string
	}{
		{"current from wednesday", today, 0, "2025-06-16", "2025-06-22"},
		{"previous week", today, -1, "2025-06-09", "2025-06-15"},
		{"monday maps to itself", time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), 0, "2025-06-16", "2025-06-22"},
		{"sunday belongs to prior monday", time.Date(2025, time.June, 22, 0, 0, 0, 0, time.UTC), 0, "2025-06-16", "2025-06-22"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, err := Resolve(ViewWeek, tt.offset, tt.now)
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if w.Start.Weekday() != time.Monday {
				t.Errorf("start weekday = %s, want Monday", w.Start.Weekday())
			}
			if w.StartDate() != tt.start || w.EndDate() != tt.end {
				t.Errorf("window = [%s, %s], want [%s, %s]", w.StartDate(), w.EndDate(), tt.start, tt.end)
			}
		})
	}
}

func TestResolveYear(t *testing.T) {
	w, err := Resolve(ViewYear, 0, today)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.StartDate() != "2025-01-01" || w.EndDate() != "2025-12-31" {
		t.Errorf("window = [%s, %s], want [2025-01-01, 2025-12-31]", w.StartDate(), w.EndDate())
	}

	w, err = Resolve(ViewYear, -2, today)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if w.StartDate() != "2023-01-01" || w.EndDate() != "2023-12-31" {
		t.Errorf("offset window = [%s, %s], want 2023", w.StartDate(), w.EndDate())
	}
}

func TestParseView(t *testing.T) {
	if v, err := ParseView(""); err != nil || v != ViewMonth {
		t.Errorf("empty view = %v, %v; want month default", v, err)
	}
	if _, err := ParseView("decade"); err == nil {
		t.Error("expected error for unknown view")
	}
}

func TestScaleBudget(t *testing.T) {
	tests := []struct {
		view View
		want float64
	}{
		{ViewMonth, 1200},
		{ViewYear, 14400},
		{ViewWeek, 300},
	}
	for _, tt := range tests {
		if got := ScaleBudget(1200, tt.view); got != tt.want {
			t.Errorf("ScaleBudget(1200, %s) = %v, want %v", tt.view, got, tt.want)
		}
	}
}

func TestScaleBudgetForecastUsesWeeksPerMonth(t *testing.T) {
	got := ScaleBudgetForecast(433, ViewWeek)
	if got < 99.99 || got > 100.01 {
		t.Errorf("ScaleBudgetForecast(433, week) = %v, want ~100", got)
	}
	// Month and year match the dashboard scaling.
	if ScaleBudgetForecast(1200, ViewMonth) != 1200 || ScaleBudgetForecast(1200, ViewYear) != 14400 {
		t.Error("month/year forecast scaling should match dashboard scaling")
	}
}

func TestHistoryLen(t *testing.T) {
	if HistoryLen(ViewWeek) != 8 || HistoryLen(ViewMonth) != 12 || HistoryLen(ViewYear) != 5 {
		t.Errorf("unexpected history lengths: week=%d month=%d year=%d",
			HistoryLen(ViewWeek), HistoryLen(ViewMonth), HistoryLen(ViewYear))
	}
}

func TestTrailing(t *testing.T) {
	start := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)

	months := Trailing(ViewMonth, start, 3)
	if len(months) != 3 {
		t.Fatalf("len = %d, want 3", len(months))
	}
	if months[0].StartDate() != "2025-03-01" || months[2].EndDate() != "2025-05-31" {
		t.Errorf("months = [%s .. %s], want [2025-03-01 .. 2025-05-31]",
			months[0].StartDate(), months[2].EndDate())
	}

	weeks := Trailing(ViewWeek, time.Date(2025, time.June, 16, 0, 0, 0, 0, time.UTC), 2)
	if weeks[0].StartDate() != "2025-06-02" || weeks[1].EndDate() != "2025-06-15" {
		t.Errorf("weeks = [%s .. %s], want [2025-06-02 .. 2025-06-15]",
			weeks[0].StartDate(), weeks[1].EndDate())
	}

	years := Trailing(ViewYear, start, 2)
	if years[0].StartDate() != "2023-01-01" || years[1].EndDate() != "2024-12-31" {
		t.Errorf("years = [%s .. %s], want [2023-01-01 .. 2024-12-31]",
			years[0].StartDate(), years[1].EndDate())
	}
}

func TestWindowDays(t *testing.T) {
	w, _ := Resolve(ViewWeek, 0, today)
	days := w.Days()
	if len(days) != 7 {
		t.Fatalf("len(days) = %d, want 7", len(days))
	}
	if days[0] != "2025-06-16" || days[6] != "2025-06-22" {
		t.Errorf("days = [%s .. %s]", days[0], days[6])
	}
}
