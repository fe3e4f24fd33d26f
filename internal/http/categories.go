package http

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/models"
)

func (s *Server) showCategories(c *gin.Context) {
	userID, userName := currentUser(c)
	categories, err := s.store.CategoriesForUser(userID)
	if err != nil {
		s.logErr(c, err)
	}
	c.HTML(200, "category.html", gin.H{
		"Flash":      takeFlash(c),
		"UserName":   userName,
		"Categories": categories,
	})
}

func (s *Server) addCategory(c *gin.Context) {
	userID, _ := currentUser(c)

	// A delete submitted from the same page.
	if idStr := c.PostForm("delete_id"); idStr != "" {
		id, err := strconv.ParseUint(idStr, 10, 32)
		if err != nil {
			setFlash(c, "danger", "Invalid category.")
			c.Redirect(302, "/category")
			return
		}
		if err := s.store.DeleteCategory(userID, uint(id)); err != nil {
			s.flashAndRedirect(c, err, "category", "/category")
			return
		}
		setFlash(c, "success", "Category deleted.")
		c.Redirect(302, "/category")
		return
	}

	category := &models.Category{Name: c.PostForm("name")}
	if err := s.store.CreateCategory(userID, category); err != nil {
		s.flashAndRedirect(c, err, "category", "/category")
		return
	}
	setFlash(c, "success", "Category added.")
	c.Redirect(302, "/category")
}
