// Package forecast fits a least-squares trend over historical spending
// buckets and extrapolates one period ahead.
package forecast

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/stat"

	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

// ErrInsufficientData is returned when fewer than MinPoints historical
// periods have data to fit against.
var ErrInsufficientData = errors.New("not enough spending history to predict")

const (
	MinPoints = 3

	// Slopes within this band are reported as stable rather than as a
	// rising or falling trend.
	stableSlope = 0.01
)

// Point is one historical bucket: a period label and its total spend.
type Point struct {
	Label  string
	Amount float64
}

type Result struct {
	History   []Point
	Predicted float64 // next-period estimate, clamped at zero
	Slope     float64 // fitted per-period change
	Intercept float64
	Average   float64
}

// Predict fits amount = intercept + slope*index over the points and
// evaluates the line one period past the end.
func Predict(points []Point) (*Result, error) {
	if len(points) < MinPoints {
		return nil, ErrInsufficientData
	}

	xs := make([]float64, len(points))
	ys := make([]float64, len(points))
	var sum float64
	for i, p := range points {
		xs[i] = float64(i)
		ys[i] = p.Amount
		sum += p.Amount
	}

	alpha, beta := stat.LinearRegression(xs, ys, nil, false)
	predicted := alpha + beta*float64(len(points))
	if predicted < 0 || math.IsNaN(predicted) {
		predicted = 0
	}

	return &Result{
		History:   points,
		Predicted: money.Round2(predicted),
		Slope:     beta,
		Intercept: alpha,
		Average:   money.Round2(sum / float64(len(points))),
	}, nil
}

// Trend classifies the fitted slope.
func (r *Result) Trend() string {
	switch {
	case r.Slope > stableSlope:
		return "increasing"
	case r.Slope < -stableSlope:
		return "decreasing"
	}
	return "stable"
}

// Fitted evaluates the regression line at a period index.
func (r *Result) Fitted(i int) float64 {
	return r.Intercept + r.Slope*float64(i)
}

// AnalysisText renders the natural-language summary shown next to the
// prediction chart: average, last period, trend, and the predicted delta.
func (r *Result) AnalysisText(periodName string) string {
	last := r.History[len(r.History)-1]
	delta := money.Sub(r.Predicted, last.Amount)

	var b strings.Builder
	fmt.Fprintf(&b, "Over the last %d %ss you spent %s per %s on average.\n",
		len(r.History), periodName, money.FormatUSD(r.Average), periodName)
	fmt.Fprintf(&b, "Last %s (%s) you spent %s.\n", periodName, last.Label, money.FormatUSD(last.Amount))

	switch r.Trend() {
	case "stable":
		fmt.Fprintf(&b, "Your spending trend is **stable**.\n")
	default:
		fmt.Fprintf(&b, "Your spending trend is **%s** by about %s per %s.\n",
			r.Trend(), money.FormatUSD(math.Abs(r.Slope)), periodName)
	}

	fmt.Fprintf(&b, "Predicted spend for next %s: **%s**", periodName, money.FormatUSD(r.Predicted))
	if last.Amount > 0 {
		pct := delta / last.Amount * 100
		direction := "more"
		if delta < 0 {
			direction = "less"
		}
		fmt.Fprintf(&b, " (%s %s than last %s, %.1f%%)",
			money.FormatUSD(math.Abs(delta)), direction, periodName, math.Abs(pct))
	}
	b.WriteString(".")
	return b.String()
}
