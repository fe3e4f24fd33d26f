package http

import (
	"errors"
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Shashhank12/Budget-Buddy/internal/store"
)

func (s *Server) logErr(c *gin.Context, err error) {
	log.Printf("error: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
}

func (s *Server) logErrf(err error) {
	log.Printf("error: %v", err)
}

// flashAndRedirect maps a store error to a user-facing flash message on
// an HTML route. Ownership failures read like missing rows so nothing
// about other users' data leaks.
func (s *Server) flashAndRedirect(c *gin.Context, err error, what, target string) {
	switch {
	case store.IsValidation(err):
		setFlash(c, "danger", err.Error())
	case errors.Is(err, store.ErrNotFound), errors.Is(err, store.ErrNotOwned):
		setFlash(c, "danger", "That "+what+" could not be found.")
	default:
		s.logErr(c, err)
		setFlash(c, "danger", "An error occurred, please try again.")
	}
	c.Redirect(302, target)
}

// apiError maps a store error to a JSON response on an /api route.
func (s *Server) apiError(c *gin.Context, err error) {
	switch {
	case store.IsValidation(err):
		c.JSON(400, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(404, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrNotOwned):
		c.JSON(403, gin.H{"error": "forbidden"})
	default:
		s.logErr(c, err)
		c.JSON(500, gin.H{"error": "an internal error occurred"})
	}
}
