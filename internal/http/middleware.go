package http

import (
	"github.com/gin-gonic/gin"
)

// requireUserHTML gates the page routes: no valid session cookie means a
// flash and a redirect to the login form.
func (s *Server) requireUserHTML() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			setFlash(c, "warning", "Please log in first.")
			c.Redirect(302, "/login")
			c.Abort()
			return
		}
		userID, userName, err := parseSession(s.cfg, token)
		if err != nil {
			setFlash(c, "warning", "Your session has expired, please log in again.")
			c.Redirect(302, "/login")
			c.Abort()
			return
		}
		c.Set("userID", userID)
		c.Set("userName", userName)
		c.Next()
	}
}

// requireUserJSON gates the /api routes with a 401 instead of a redirect.
func (s *Server) requireUserJSON() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(sessionCookie)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "authentication required"})
			return
		}
		userID, userName, err := parseSession(s.cfg, token)
		if err != nil {
			c.AbortWithStatusJSON(401, gin.H{"error": "invalid or expired session"})
			return
		}
		c.Set("userID", userID)
		c.Set("userName", userName)
		c.Next()
	}
}

func currentUser(c *gin.Context) (uint, string) {
	return c.MustGet("userID").(uint), c.GetString("userName")
}
