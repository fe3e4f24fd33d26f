package http

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

func (s *Server) showTransaction(c *gin.Context) {
	userID, userName := currentUser(c)
	categories, accounts, err := s.categoryOptions(userID)
	if err != nil {
		s.logErr(c, err)
	}
	c.HTML(200, "transaction.html", gin.H{
		"Flash":      takeFlash(c),
		"UserName":   userName,
		"Categories": categories,
		"Accounts":   accounts,
		"Today":      time.Now().Format("2006-01-02"),
	})
}

func (s *Server) recordTransaction(c *gin.Context) {
	userID, _ := currentUser(c)

	amount, err := money.ParseAmount(c.PostForm("amount"))
	if err != nil {
		setFlash(c, "danger", "Please enter a valid amount.")
		c.Redirect(302, "/transaction")
		return
	}

	t := &models.Transaction{
		Amount:      amount,
		Description: c.PostForm("description"),
		Date:        c.PostForm("date"),
	}
	if v := c.PostForm("category_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			cid := uint(id)
			t.CategoryID = &cid
		}
	}
	if v := c.PostForm("account_id"); v != "" {
		if id, err := strconv.ParseUint(v, 10, 32); err == nil && id > 0 {
			aid := uint(id)
			t.AccountID = &aid
		}
	}

	if err := s.store.CreateTransaction(userID, t); err != nil {
		s.flashAndRedirect(c, err, "transaction", "/transaction")
		return
	}
	setFlash(c, "success", "Transaction recorded.")
	c.Redirect(302, "/transaction")
}

// manageTransactions renders the management table shell; the rows come
// from GET /api/transactions.
func (s *Server) manageTransactions(c *gin.Context) {
	userID, userName := currentUser(c)
	categories, accounts, err := s.categoryOptions(userID)
	if err != nil {
		s.logErr(c, err)
	}
	c.HTML(200, "manage_transaction.html", gin.H{
		"Flash":      takeFlash(c),
		"UserName":   userName,
		"Categories": categories,
		"Accounts":   accounts,
	})
}
