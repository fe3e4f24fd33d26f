package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
	"github.com/Shashhank12/Budget-Buddy/internal/money"
)

func goalFromForm(c *gin.Context) (*models.Goal, string) {
	target, err := money.ParseAmount(c.PostForm("target_amount"))
	if err != nil {
		return nil, "Please enter a valid target amount."
	}
	current := 0.0
	if v := c.PostForm("current_amount"); v != "" {
		current, err = money.ParseAmount(v)
		if err != nil {
			return nil, "Please enter a valid current amount."
		}
	}
	return &models.Goal{
		Name:            c.PostForm("name"),
		TargetDate:      c.PostForm("target_date"),
		TargetAmount:    target,
		CurrentAmount:   current,
		Description:     c.PostForm("description"),
		IsMonthlyBudget: c.PostForm("is_monthly_budget") == "on" || c.PostForm("is_monthly_budget") == "true",
	}, ""
}

func (s *Server) showRecordGoal(c *gin.Context) {
	_, userName := currentUser(c)
	c.HTML(200, "record_goal.html", gin.H{
		"Flash":    takeFlash(c),
		"UserName": userName,
	})
}

func (s *Server) recordGoal(c *gin.Context) {
	userID, _ := currentUser(c)
	goal, msg := goalFromForm(c)
	if msg != "" {
		setFlash(c, "danger", msg)
		c.Redirect(302, "/record_goal")
		return
	}
	if err := s.store.CreateGoal(userID, goal); err != nil {
		s.flashAndRedirect(c, err, "goal", "/record_goal")
		return
	}
	setFlash(c, "success", "Goal recorded.")
	c.Redirect(302, "/manage_goals")
}

func (s *Server) manageGoals(c *gin.Context) {
	userID, userName := currentUser(c)
	goals, err := s.store.GoalsForUser(userID)
	if err != nil {
		s.logErr(c, err)
	}

	type goalRow struct {
		models.Goal
		TargetStr  string
		CurrentStr string
		Percent    int
	}
	rows := make([]goalRow, 0, len(goals))
	for _, g := range goals {
		pct := 0
		if g.TargetAmount > 0 {
			pct = int(g.CurrentAmount / g.TargetAmount * 100)
			if pct > 100 {
				pct = 100
			}
		}
		rows = append(rows, goalRow{
			Goal:       g,
			TargetStr:  money.FormatUSD(g.TargetAmount),
			CurrentStr: money.FormatUSD(g.CurrentAmount),
			Percent:    pct,
		})
	}

	c.HTML(200, "manage_goals.html", gin.H{
		"Flash":    takeFlash(c),
		"UserName": userName,
		"Goals":    rows,
	})
}

func (s *Server) updateGoalProgress(c *gin.Context) {
	userID, _ := currentUser(c)
	id, err := strconv.ParseUint(c.PostForm("goal_id"), 10, 32)
	if err != nil {
		setFlash(c, "danger", "Invalid goal.")
		c.Redirect(302, "/manage_goals")
		return
	}
	amount, err := money.ParseAmount(c.PostForm("amount"))
	if err != nil {
		setFlash(c, "danger", "Please enter a valid amount.")
		c.Redirect(302, "/manage_goals")
		return
	}
	if err := s.store.AddGoalProgress(userID, uint(id), amount); err != nil {
		s.flashAndRedirect(c, err, "goal", "/manage_goals")
		return
	}
	setFlash(c, "success", "Progress updated.")
	c.Redirect(302, "/manage_goals")
}

func (s *Server) showEditGoal(c *gin.Context) {
	userID, userName := currentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		setFlash(c, "danger", "Invalid goal.")
		c.Redirect(302, "/manage_goals")
		return
	}
	goal, err := s.store.GoalForUser(userID, uint(id))
	if err != nil {
		s.flashAndRedirect(c, err, "goal", "/manage_goals")
		return
	}
	c.HTML(200, "edit_goal.html", gin.H{
		"Flash":    takeFlash(c),
		"UserName": userName,
		"Goal":     goal,
	})
}

func (s *Server) editGoal(c *gin.Context) {
	userID, _ := currentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		setFlash(c, "danger", "Invalid goal.")
		c.Redirect(302, "/manage_goals")
		return
	}
	goal, msg := goalFromForm(c)
	if msg != "" {
		setFlash(c, "danger", msg)
		c.Redirect(302, "/edit_goal/"+c.Param("id"))
		return
	}
	goal.ID = uint(id)
	if err := s.store.UpdateGoal(userID, goal); err != nil {
		s.flashAndRedirect(c, err, "goal", "/manage_goals")
		return
	}
	setFlash(c, "success", "Goal updated.")
	c.Redirect(302, "/manage_goals")
}

func (s *Server) deleteGoal(c *gin.Context) {
	userID, _ := currentUser(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		setFlash(c, "danger", "Invalid goal.")
		c.Redirect(302, "/manage_goals")
		return
	}
	if err := s.store.DeleteGoal(userID, uint(id)); err != nil {
		s.flashAndRedirect(c, err, "goal", "/manage_goals")
		return
	}
	setFlash(c, "success", "Goal deleted.")
	c.Redirect(302, "/manage_goals")
}
