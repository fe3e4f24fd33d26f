// Package charts renders the dashboard's PNG charts and returns them as
// base64 data URIs. Renderers never propagate failures: anything that
// goes wrong degrades to a placeholder error image.
package charts

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"io"
	"sort"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/Shashhank12/Budget-Buddy/internal/forecast"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

const uriPrefix = "data:image/png;base64,"

// Transparent 1x1 PNG, the fallback when even the placeholder chart
// fails to render.
const blankURI = uriPrefix + "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNk+M9QDwADhgGAWjR9awAAAABJRU5ErkJggg=="

type renderable interface {
	Render(rp chart.RendererProvider, w io.Writer) error
}

func encode(r renderable) (string, error) {
	buf := bytes.NewBuffer(nil)
	if err := r.Render(chart.PNG, buf); err != nil {
		return "", err
	}
	return uriPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// ErrorImage renders a placeholder chart carrying the message, so chart
// slots on the dashboard degrade instead of breaking the page.
func ErrorImage(msg string) string {
	placeholder := chart.Chart{
		Width:  400,
		Height: 200,
		Title:  msg,
		Series: []chart.Series{
			chart.ContinuousSeries{
				XValues: []float64{0, 1},
				YValues: []float64{0, 0},
				Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
			},
		},
	}
	uri, err := encode(&placeholder)
	if err != nil {
		return blankURI
	}
	return uri
}

// BudgetDonut shows budget used vs remaining. Overspending collapses to a
// single "overspent" wedge; no budget or no spending get their own
// single-wedge states so the donut always renders.
func BudgetDonut(budget, spent float64) string {
	var values []chart.Value
	switch {
	case budget <= 0 && spent <= 0:
		values = []chart.Value{{Value: 1, Label: "No data"}}
	case spent > budget:
		values = []chart.Value{{
			Value: spent,
			Label: fmt.Sprintf("Overspent: %s", money.FormatUSD(spent)),
			Style: chart.Style{FillColor: drawing.ColorRed},
		}}
	case spent <= 0:
		values = []chart.Value{{
			Value: budget,
			Label: fmt.Sprintf("Unused: %s", money.FormatUSD(budget)),
			Style: chart.Style{FillColor: drawing.ColorGreen},
		}}
	default:
		values = []chart.Value{
			{Value: spent, Label: fmt.Sprintf("Spent: %s", money.FormatUSD(spent))},
			{Value: budget - spent, Label: fmt.Sprintf("Remaining: %s", money.FormatUSD(budget - spent))},
		}
	}

	donut := chart.DonutChart{Width: 512, Height: 512, Values: values}
	uri, err := encode(&donut)
	if err != nil {
		return ErrorImage("Could not render budget chart")
	}
	return uri
}

// CategoryPie shows each category's share of spend in the window.
func CategoryPie(totals map[string]float64) string {
	var values []chart.Value
	for name, amt := range totals {
		if amt > 0 {
			values = append(values, chart.Value{Value: amt, Label: name})
		}
	}
	if len(values) == 0 {
		return ErrorImage("No categorized spending in this period")
	}
	sort.Slice(values, func(i, j int) bool { return values[i].Value > values[j].Value })

	pie := chart.PieChart{Width: 512, Height: 512, Values: values}
	uri, err := encode(&pie)
	if err != nil {
		return ErrorImage("Could not render category chart")
	}
	return uri
}

// CategoryLines draws one line per category across the window's days.
// Series must be zero-filled: every category slice has len(days) entries.
func CategoryLines(days []string, series map[string][]float64) string {
	if len(days) == 0 || len(series) == 0 {
		return ErrorImage("No categorized spending in this period")
	}

	names := make([]string, 0, len(series))
	for name := range series {
		names = append(names, name)
	}
	sort.Strings(names)

	xs := make([]float64, len(days))
	for i := range days {
		xs[i] = float64(i)
	}

	var ticks []chart.Tick
	step := len(days)/8 + 1
	for i := 0; i < len(days); i += step {
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: days[i][5:]}) // MM-DD
	}
	ticks = append(ticks, chart.Tick{Value: float64(len(days) - 1), Label: days[len(days)-1][5:]})

	graph := chart.Chart{
		Width:  900,
		Height: 420,
		XAxis:  chart.XAxis{Ticks: ticks},
	}
	for i, name := range names {
		ys := series[name]
		if len(ys) != len(days) {
			return ErrorImage("Could not render spending lines")
		}
		graph.Series = append(graph.Series, chart.ContinuousSeries{
			Name:    name,
			XValues: xs,
			YValues: ys,
			Style:   chart.Style{StrokeColor: chart.GetDefaultColor(i)},
		})
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	uri, err := encode(&graph)
	if err != nil {
		return ErrorImage("Could not render spending lines")
	}
	return uri
}

// TrendLine plots the historical buckets, the fitted regression line, and
// the predicted next-period point.
func TrendLine(res *forecast.Result) string {
	n := len(res.History)
	if n == 0 {
		return ErrorImage("No spending history to chart")
	}

	histX := make([]float64, n)
	histY := make([]float64, n)
	fitX := make([]float64, n+1)
	fitY := make([]float64, n+1)
	ticks := make([]chart.Tick, 0, n+1)
	for i, p := range res.History {
		histX[i] = float64(i)
		histY[i] = p.Amount
		fitX[i] = float64(i)
		fitY[i] = res.Fitted(i)
		ticks = append(ticks, chart.Tick{Value: float64(i), Label: p.Label})
	}
	fitX[n] = float64(n)
	fitY[n] = res.Fitted(n)
	ticks = append(ticks, chart.Tick{Value: float64(n), Label: "Next"})

	graph := chart.Chart{
		Width:  900,
		Height: 420,
		XAxis:  chart.XAxis{Ticks: ticks},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Spending",
				XValues: histX,
				YValues: histY,
				Style:   chart.Style{StrokeColor: chart.GetDefaultColor(0)},
			},
			chart.ContinuousSeries{
				Name:    "Trend",
				XValues: fitX,
				YValues: fitY,
				Style: chart.Style{
					StrokeColor:     chart.GetDefaultColor(1),
					StrokeDashArray: []float64{5.0, 5.0},
				},
			},
			chart.ContinuousSeries{
				Name:    "Predicted",
				XValues: []float64{float64(n)},
				YValues: []float64{res.Predicted},
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidth:    6,
					DotColor:    drawing.ColorRed,
				},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	uri, err := encode(&graph)
	if err != nil {
		return ErrorImage("Could not render prediction chart")
	}
	return uri
}
