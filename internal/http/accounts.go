package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

func (s *Server) manageAccounts(c *gin.Context) {
	userID, userName := currentUser(c)
	accounts, err := s.store.AccountsForUser(userID)
	if err != nil {
		s.logErr(c, err)
	}

	type accountRow struct {
		models.Account
		BalanceStr string
	}
	rows := make([]accountRow, 0, len(accounts))
	var total float64
	for _, a := range accounts {
		rows = append(rows, accountRow{Account: a, BalanceStr: money.FormatUSD(a.Balance)})
		total = money.Add(total, a.Balance)
	}

	c.HTML(200, "manage_accounts.html", gin.H{
		"Flash":    takeFlash(c),
		"UserName": userName,
		"Accounts": rows,
		"TotalStr": money.FormatUSD(total),
	})
}

func (s *Server) addAccount(c *gin.Context) {
	userID, _ := currentUser(c)

	balance, err := money.ParseAmount(c.DefaultPostForm("balance", "0"))
	if err != nil {
		setFlash(c, "danger", "Please enter a valid balance.")
		c.Redirect(302, "/manage_accounts")
		return
	}
	account := &models.Account{
		Name:    c.PostForm("name"),
		Type:    c.DefaultPostForm("type", "checking"),
		Balance: balance,
	}
	if err := s.store.CreateAccount(userID, account); err != nil {
		s.flashAndRedirect(c, err, "account", "/manage_accounts")
		return
	}
	setFlash(c, "success", "Account added.")
	c.Redirect(302, "/manage_accounts")
}

func (s *Server) editAccount(c *gin.Context) {
	userID, _ := currentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		setFlash(c, "danger", "Invalid account.")
		c.Redirect(302, "/manage_accounts")
		return
	}
	balance, err := money.ParseAmount(c.DefaultPostForm("balance", "0"))
	if err != nil {
		setFlash(c, "danger", "Please enter a valid balance.")
		c.Redirect(302, "/manage_accounts")
		return
	}

	err = s.store.UpdateAccount(userID, uint(id), c.PostForm("name"), c.DefaultPostForm("type", "checking"), balance)
	if err != nil {
		s.flashAndRedirect(c, err, "account", "/manage_accounts")
		return
	}
	setFlash(c, "success", "Account updated.")
	c.Redirect(302, "/manage_accounts")
}

func (s *Server) deleteAccount(c *gin.Context) {
	userID, _ := currentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		setFlash(c, "danger", "Invalid account.")
		c.Redirect(302, "/manage_accounts")
		return
	}
	if err := s.store.DeleteAccount(userID, uint(id)); err != nil {
		s.flashAndRedirect(c, err, "account", "/manage_accounts")
		return
	}
	setFlash(c, "success", "Account deleted.")
	c.Redirect(302, "/manage_accounts")
}
