package http

import (
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
)

const flashCookie = "bb_flash"

// Flash is a one-shot message surfaced on the next rendered page.
type Flash struct {
	Category string // success, warning, danger, info
	Message  string
}

func setFlash(c *gin.Context, category, message string) {
	v := url.QueryEscape(category + "|" + message)
	c.SetCookie(flashCookie, v, 60, "/", "", false, true)
}

// takeFlash reads and clears the flash cookie.
func takeFlash(c *gin.Context) *Flash {
	raw, err := c.Cookie(flashCookie)
	if err != nil {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	decoded, err := url.QueryUnescape(raw)
	if err != nil {
		return nil
	}
	parts := strings.SplitN(decoded, "|", 2)
	if len(parts) != 2 {
		return nil
	}
	return &Flash{Category: parts[0], Message: parts[1]}
}
