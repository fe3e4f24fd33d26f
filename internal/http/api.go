package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	"github.com/Shashhank12/Budget-Buddy/internal/ai"
	"github.com/Shashhank12/Budget-Buddy/internal/charts"
	"github.com/Shashhank12/Budget-Buddy/internal/forecast"
	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/period"
	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

// windowFromQuery resolves the requested window: explicit start_date and
// end_date win, otherwise view+offset are resolved server-side.
func windowFromQuery(c *gin.Context) (period.View, period.Window, error) {
	view, err := period.ParseView(c.Query("view"))
	if err != nil {
		return "", period.Window{}, err
	}

	startStr, endStr := c.Query("start_date"), c.Query("end_date")
	if startStr != "" && endStr != "" {
		start, err1 := time.Parse("2006-01-02", startStr)
		end, err2 := time.Parse("2006-01-02", endStr)
		if err1 != nil || err2 != nil || end.Before(start) {
			return "", period.Window{}, fmt.Errorf("invalid date range")
		}
		label := start.Format("Jan 2") + " - " + end.Format("Jan 2 2006")
		return view, period.Window{Start: start, End: end, Label: label}, nil
	}

	offset := 0
	if v, err := strconv.Atoi(c.Query("offset")); err == nil {
		offset = v
	}
	window, err := period.Resolve(view, offset, time.Now())
	return view, window, err
}

func (s *Server) apiPieChart(c *gin.Context) {
	userID, _ := currentUser(c)
	view, window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"chart_uri": s.budgetDonutURI(userID, view, window)})
}

func (s *Server) apiLineChart(c *gin.Context) {
	userID, _ := currentUser(c)
	_, window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"chart_uri": s.categoryLinesURI(userID, window)})
}

func (s *Server) apiCategoryPieChart(c *gin.Context) {
	userID, _ := currentUser(c)
	_, window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	c.JSON(200, gin.H{"chart_uri": s.categoryPieURI(userID, window)})
}

// spendingHistory buckets spend into the trailing periods before the
// window's start.
func (s *Server) spendingHistory(userID uint, view period.View, start time.Time) ([]forecast.Point, error) {
	buckets := period.Trailing(view, start, period.HistoryLen(view))
	points := make([]forecast.Point, 0, len(buckets))
	for _, b := range buckets {
		total, _, err := s.store.SpendInWindow(userID, b.StartDate(), b.EndDate())
		if err != nil {
			return nil, err
		}
		points = append(points, forecast.Point{Label: b.Label, Amount: total})
	}
	// Leading empty periods predate the user's history and would drag
	// the fit toward zero; trim them.
	for len(points) > 0 && points[0].Amount == 0 {
		points = points[1:]
	}
	return points, nil
}

func (s *Server) apiPredictionChart(c *gin.Context) {
	userID, _ := currentUser(c)
	view, window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	points, err := s.spendingHistory(userID, view, window.Start)
	if err != nil {
		s.apiError(c, err)
		return
	}
	res, err := forecast.Predict(points)
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			c.JSON(400, gin.H{"error": "not enough spending history to predict"})
			return
		}
		s.apiError(c, err)
		return
	}
	c.JSON(200, gin.H{"chart_uri": charts.TrendLine(res)})
}

func (s *Server) apiSpendingPrediction(c *gin.Context) {
	userID, _ := currentUser(c)
	view, window, err := windowFromQuery(c)
	if err != nil {
		c.JSON(400, gin.H{"error": err.Error()})
		return
	}
	points, err := s.spendingHistory(userID, view, window.Start)
	if err != nil {
		s.apiError(c, err)
		return
	}
	res, err := forecast.Predict(points)
	if err != nil {
		if errors.Is(err, forecast.ErrInsufficientData) {
			c.JSON(200, gin.H{"analysis_text": "Not enough spending history yet to make a prediction. Keep recording transactions and check back soon."})
			return
		}
		s.apiError(c, err)
		return
	}

	analysis := res.AnalysisText(string(view))

	// The prediction comparison scales the budget with the forecast
	// divisor (4.33 weeks/month), not the dashboard's /4.
	if goal, err := s.store.MonthlyBudget(userID); err == nil {
		budget := period.ScaleBudgetForecast(goal.TargetAmount, view)
		if budget > 0 && res.Predicted > budget {
			analysis += fmt.Sprintf("\nHeads up: the predicted spend is above your %s budget.", string(view))
		}
	}

	c.JSON(200, gin.H{"analysis_text": analysis})
}

func (s *Server) apiChatbot(c *gin.Context) {
	userID, _ := currentUser(c)

	var input struct {
		Prompt    string `json:"prompt" binding:"required"`
		StartDate string `json:"start_date"`
		EndDate   string `json:"end_date"`
		ViewType  string `json:"view_type"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(400, gin.H{"error": "a prompt is required"})
		return
	}

	view, err := period.ParseView(input.ViewType)
	if err != nil {
		view = period.ViewMonth
	}
	var window period.Window
	start, err1 := time.Parse("2006-01-02", input.StartDate)
	end, err2 := time.Parse("2006-01-02", input.EndDate)
	if err1 == nil && err2 == nil && !end.Before(start) {
		window = period.Window{Start: start, End: end, Label: start.Format("Jan 2") + " - " + end.Format("Jan 2 2006")}
	} else if window, err = period.Resolve(view, 0, time.Now()); err != nil {
		c.JSON(400, gin.H{"error": "invalid period"})
		return
	}

	spent, count, err := s.store.SpendInWindow(userID, window.StartDate(), window.EndDate())
	if err != nil {
		s.apiError(c, err)
		return
	}
	categoryTotals, err := s.store.CategoryTotals(userID, window.StartDate(), window.EndDate())
	if err != nil {
		s.apiError(c, err)
		return
	}
	topSpends, err := s.store.TopTransactions(userID, window.StartDate(), window.EndDate(), 5)
	if err != nil {
		s.apiError(c, err)
		return
	}
	var budget float64
	if goal, err := s.store.MonthlyBudget(userID); err == nil {
		budget = period.ScaleBudget(goal.TargetAmount, view)
	}

	prompt := ai.BuildPrompt(ai.Summary{
		PeriodLabel: window.Label,
		View:        string(view),
		TotalSpent:  spent,
		TxCount:     count,
		Budget:      budget,
		Categories:  categoryTotals,
		TopSpends:   topSpends,
	})

	ctx, cancel := context.WithTimeout(c.Request.Context(), time.Duration(s.cfg.ReqTimeoutSec)*time.Second)
	defer cancel()

	answer, err := s.assistant.Answer(ctx, prompt, input.Prompt)
	if err != nil {
		s.logErr(c, err)
		c.JSON(200, gin.H{"response": "Sorry, I couldn't answer that right now. Please try again in a moment."})
		return
	}
	c.JSON(200, gin.H{"response": answer})
}

func (s *Server) apiListTransactions(c *gin.Context) {
	userID, _ := currentUser(c)

	f := store.TxFilter{
		StartDate:   c.Query("start_date"),
		EndDate:     c.Query("end_date"),
		Description: c.Query("description"),
		Sort:        c.DefaultQuery("sort", "date_desc"),
	}
	if v, err := strconv.ParseUint(c.Query("category"), 10, 32); err == nil {
		f.CategoryID = uint(v)
	}
	if v, err := strconv.ParseUint(c.Query("account"), 10, 32); err == nil {
		f.AccountID = uint(v)
	}
	if v, err := strconv.ParseFloat(c.Query("min_amount"), 64); err == nil {
		f.MinAmount = &v
	}
	if v, err := strconv.ParseFloat(c.Query("max_amount"), 64); err == nil {
		f.MaxAmount = &v
	}

	rows, err := s.store.ListTransactions(userID, f)
	if err != nil {
		s.apiError(c, err)
		return
	}
	if rows == nil {
		rows = []store.TxRow{}
	}
	c.JSON(200, rows)
}

func (s *Server) apiUpdateTransaction(c *gin.Context) {
	userID, _ := currentUser(c)

	raw, err := c.GetRawData()
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.txSchema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}
	if !result.Valid() {
		details := []string{}
		for _, e := range result.Errors() {
			details = append(details, e.String())
		}
		c.JSON(400, gin.H{"error": "invalid transaction payload", "details": details})
		return
	}

	var input struct {
		TransactionID uint    `json:"transaction_id"`
		Amount        float64 `json:"amount"`
		Description   string  `json:"description"`
		Date          string  `json:"date"`
		CategoryID    *uint   `json:"category_id"`
		AccountID     *uint   `json:"account_id"`
	}
	if err := json.Unmarshal(raw, &input); err != nil {
		c.JSON(400, gin.H{"error": "invalid request body"})
		return
	}

	updated := &models.Transaction{
		ID:          input.TransactionID,
		Amount:      input.Amount,
		Description: input.Description,
		Date:        input.Date,
		CategoryID:  input.CategoryID,
		AccountID:   input.AccountID,
	}
	if err := s.store.UpdateTransaction(userID, updated); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true})
}

func (s *Server) apiDeleteTransaction(c *gin.Context) {
	userID, _ := currentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(400, gin.H{"error": "invalid transaction id"})
		return
	}
	if err := s.store.DeleteTransaction(userID, uint(id)); err != nil {
		s.apiError(c, err)
		return
	}
	c.JSON(200, gin.H{"success": true})
}
