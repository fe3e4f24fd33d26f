// Package period computes the date windows the dashboard, charts and
// forecast all share: a view granularity (week, month, year) plus an
// integer offset from the current period.
package period

import (
	"fmt"
	"time"
)

type View string

const (
	ViewWeek  View = "week"
	ViewMonth View = "month"
	ViewYear  View = "year"
)

// WeeksPerMonth is the divisor the prediction endpoints use when scaling
// a monthly budget down to a week. The dashboard itself divides by 4; the
// two values intentionally differ, matching long-standing behavior.
const WeeksPerMonth = 4.33

// Window is an inclusive [Start, End] date range.
type Window struct {
	Start time.Time
	End   time.Time
	Label string
}

// StartDate and EndDate return the bounds in the YYYY-MM-DD form the
// transaction table stores.
func (w Window) StartDate() string { return w.Start.Format("2006-01-02") }
func (w Window) EndDate() string   { return w.End.Format("2006-01-02") }

func ParseView(s string) (View, error) {
	switch View(s) {
	case ViewWeek, ViewMonth, ViewYear:
		return View(s), nil
	case "":
		return ViewMonth, nil
	}
	return "", fmt.Errorf("unknown view %q", s)
}

// Resolve computes the window for a view shifted offset periods from now.
// Month: first through last day of the shifted month. Week: Monday through
// Sunday of the shifted week. Year: Jan 1 through Dec 31.
func Resolve(view View, offset int, now time.Time) (Window, error) {
	switch view {
	case ViewMonth:
		first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, offset, 0)
		last := first.AddDate(0, 1, -1)
		return Window{Start: first, End: last, Label: first.Format("January 2006")}, nil
	case ViewWeek:
		day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, offset*7)
		monday := day.AddDate(0, 0, -mondayDelta(day.Weekday()))
		sunday := monday.AddDate(0, 0, 6)
		label := fmt.Sprintf("%s - %s", monday.Format("Jan 2"), sunday.Format("Jan 2 2006"))
		return Window{Start: monday, End: sunday, Label: label}, nil
	case ViewYear:
		y := now.Year() + offset
		return Window{
			Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
			Label: fmt.Sprintf("%d", y),
		}, nil
	}
	return Window{}, fmt.Errorf("unknown view %q", view)
}

func mondayDelta(d time.Weekday) int {
	if d == time.Sunday {
		return 6
	}
	return int(d) - 1
}

// ScaleBudget converts a monthly budget amount to the given view: x12 for
// a year, /4 for a week, unchanged for a month.
func ScaleBudget(monthly float64, view View) float64 {
	switch view {
	case ViewYear:
		return monthly * 12
	case ViewWeek:
		return monthly / 4
	}
	return monthly
}

// ScaleBudgetForecast is the scaling the prediction endpoints use; it
// differs from ScaleBudget only in the week divisor.
func ScaleBudgetForecast(monthly float64, view View) float64 {
	switch view {
	case ViewYear:
		return monthly * 12
	case ViewWeek:
		return monthly / WeeksPerMonth
	}
	return monthly
}

// HistoryLen is how many trailing periods feed the trend fit.
func HistoryLen(view View) int {
	switch view {
	case ViewWeek:
		return 8
	case ViewYear:
		return 5
	}
	return 12
}

// Trailing returns the n periods immediately before the window starting at
// start, oldest first. Labels are short forms suitable for chart ticks.
func Trailing(view View, start time.Time, n int) []Window {
	out := make([]Window, 0, n)
	for i := n; i >= 1; i-- {
		var w Window
		switch view {
		case ViewWeek:
			s := start.AddDate(0, 0, -7*i)
			w = Window{Start: s, End: s.AddDate(0, 0, 6), Label: s.Format("Jan 2")}
		case ViewYear:
			y := start.Year() - i
			w = Window{
				Start: time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC),
				End:   time.Date(y, time.December, 31, 0, 0, 0, 0, time.UTC),
				Label: fmt.Sprintf("%d", y),
			}
		default:
			s := time.Date(start.Year(), start.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -i, 0)
			w = Window{Start: s, End: s.AddDate(0, 1, -1), Label: s.Format("Jan 2006")}
		}
		out = append(out, w)
	}
	return out
}

// Days lists every date in the window, for zero-filling daily series.
func (w Window) Days() []string {
	var out []string
	for d := w.Start; !d.After(w.End); d = d.AddDate(0, 0, 1) {
		out = append(out, d.Format("2006-01-02"))
	}
	return out
}
