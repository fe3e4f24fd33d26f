package http

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/charts"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
	"github.com/Shashhank12/Budget-Buddy/internal/period"
	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

// dashboard aggregates the window's numbers and renders the page with
// the chart data URIs embedded. Query failures degrade to zeros with a
// flash rather than an error page.
func (s *Server) dashboard(c *gin.Context) {
	userID, userName := currentUser(c)

	viewStr := c.PostForm("view")
	if viewStr == "" {
		viewStr = c.Query("view")
	}
	view, err := period.ParseView(viewStr)
	if err != nil {
		view = period.ViewMonth
	}
	offset := 0
	offsetStr := c.PostForm("offset")
	if offsetStr == "" {
		offsetStr = c.Query("offset")
	}
	if v, err := strconv.Atoi(offsetStr); err == nil {
		offset = v
	}

	window, err := period.Resolve(view, offset, time.Now())
	if err != nil {
		window, _ = period.Resolve(period.ViewMonth, 0, time.Now())
	}

	var degraded bool

	balance, err := s.store.TotalBalance(userID)
	if err != nil {
		s.logErr(c, err)
		degraded = true
	}

	var budget float64
	if goal, err := s.store.MonthlyBudget(userID); err == nil {
		budget = period.ScaleBudget(goal.TargetAmount, view)
	} else if !errors.Is(err, store.ErrNotFound) {
		s.logErr(c, err)
		degraded = true
	}

	spent, txCount, err := s.store.SpendInWindow(userID, window.StartDate(), window.EndDate())
	if err != nil {
		s.logErr(c, err)
		degraded = true
	}

	flash := takeFlash(c)
	if degraded && flash == nil {
		flash = &Flash{Category: "danger", Message: "Some dashboard data could not be loaded."}
	}

	c.HTML(200, "dashboard.html", gin.H{
		"Flash":        flash,
		"UserName":     userName,
		"View":         string(view),
		"Offset":       offset,
		"PrevOffset":   offset - 1,
		"NextOffset":   offset + 1,
		"WindowLabel":  window.Label,
		"StartDate":    window.StartDate(),
		"EndDate":      window.EndDate(),
		"BalanceStr":   money.FormatUSD(balance),
		"BudgetStr":    money.FormatUSD(budget),
		"SpentStr":     money.FormatUSD(spent),
		"RemainingStr": money.FormatUSD(money.Sub(budget, spent)),
		"TxCount":      txCount,
		"HasBudget":    budget > 0,
		"PieURI":       s.budgetDonutURI(userID, view, window),
		"CatPieURI":    s.categoryPieURI(userID, window),
		"LineURI":      s.categoryLinesURI(userID, window),
	})
}

func (s *Server) budgetDonutURI(userID uint, view period.View, window period.Window) string {
	var budget float64
	if goal, err := s.store.MonthlyBudget(userID); err == nil {
		budget = period.ScaleBudget(goal.TargetAmount, view)
	}
	spent, _, err := s.store.SpendInWindow(userID, window.StartDate(), window.EndDate())
	if err != nil {
		s.logErrf(err)
		return charts.ErrorImage("Could not load budget data")
	}
	return charts.BudgetDonut(budget, spent)
}

func (s *Server) categoryPieURI(userID uint, window period.Window) string {
	totals, err := s.store.CategoryTotals(userID, window.StartDate(), window.EndDate())
	if err != nil {
		s.logErrf(err)
		return charts.ErrorImage("Could not load category data")
	}
	byName := make(map[string]float64, len(totals))
	for _, t := range totals {
		byName[t.Name] = t.Total
	}
	return charts.CategoryPie(byName)
}

func (s *Server) categoryLinesURI(userID uint, window period.Window) string {
	rows, err := s.store.DailyCategorySpend(userID, window.StartDate(), window.EndDate())
	if err != nil {
		s.logErrf(err)
		return charts.ErrorImage("Could not load spending data")
	}
	days := window.Days()
	index := make(map[string]int, len(days))
	for i, d := range days {
		index[d] = i
	}
	series := make(map[string][]float64)
	for _, r := range rows {
		i, ok := index[r.Date]
		if !ok {
			continue
		}
		if _, ok := series[r.Category]; !ok {
			series[r.Category] = make([]float64, len(days))
		}
		series[r.Category][i] += r.Total
	}
	return charts.CategoryLines(days, series)
}
