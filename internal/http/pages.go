package http

import (
	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

func (s *Server) index(c *gin.Context) {
	// Logged-in visitors land on the dashboard.
	if token, err := c.Cookie(sessionCookie); err == nil {
		if _, _, err := parseSession(s.cfg, token); err == nil {
			c.Redirect(302, "/dashboard")
			return
		}
	}
	c.HTML(200, "index.html", gin.H{"Flash": takeFlash(c)})
}

func (s *Server) showSetup(c *gin.Context) {
	_, userName := currentUser(c)
	c.HTML(200, "setup.html", gin.H{
		"Flash":    takeFlash(c),
		"UserName": userName,
	})
}

// setup creates the user's first account and, optionally, the monthly
// budget goal in one pass.
func (s *Server) setup(c *gin.Context) {
	userID, _ := currentUser(c)

	accountName := c.PostForm("account_name")
	accountType := c.DefaultPostForm("account_type", "checking")
	balance, err := money.ParseAmount(c.DefaultPostForm("starting_balance", "0"))
	if err != nil {
		setFlash(c, "danger", "Please enter a valid starting balance.")
		c.Redirect(302, "/setup")
		return
	}

	account := &models.Account{Name: accountName, Type: accountType, Balance: balance}
	if err := s.store.CreateAccount(userID, account); err != nil {
		s.flashAndRedirect(c, err, "account", "/setup")
		return
	}

	if budgetStr := c.PostForm("monthly_budget"); budgetStr != "" {
		budget, err := money.ParseAmount(budgetStr)
		if err != nil || budget <= 0 {
			setFlash(c, "warning", "Account created, but the monthly budget amount was invalid.")
			c.Redirect(302, "/dashboard")
			return
		}
		goal := &models.Goal{
			Name:            "Monthly Budget",
			TargetAmount:    budget,
			Description:     "Recurring monthly spending ceiling",
			IsMonthlyBudget: true,
		}
		if err := s.store.CreateGoal(userID, goal); err != nil {
			s.flashAndRedirect(c, err, "goal", "/dashboard")
			return
		}
	}

	setFlash(c, "success", "You're all set up!")
	c.Redirect(302, "/dashboard")
}

// categoryOptions is the select-list data several forms share.
func (s *Server) categoryOptions(userID uint) ([]models.Category, []models.Account, error) {
	categories, err := s.store.CategoriesForUser(userID)
	if err != nil {
		return nil, nil, err
	}
	accounts, err := s.store.AccountsForUser(userID)
	if err != nil {
		return nil, nil, err
	}
	return categories, accounts, nil
}
