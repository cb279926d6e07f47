package helpers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "fyyur_flash"
	flashKey    = "flashes"
)

// Flash queues a message for the next page rendered in this request, or for
// the page after a Redirect.
func Flash(c *gin.Context, message string) {
	c.Set(flashKey, append(pendingFlashes(c), message))
}

func Redirect(c *gin.Context, location string) {
	if flashes := pendingFlashes(c); len(flashes) > 0 {
		c.SetCookie(flashCookie, strings.Join(flashes, "\n"), 60, "/", "", false, true)
	}
	c.Redirect(http.StatusFound, location)
}

// Render executes an HTML template with the queued flash messages attached.
func Render(c *gin.Context, code int, name string, data gin.H) {
	if data == nil {
		data = gin.H{}
	}
	data["flashes"] = takeFlashes(c)
	c.HTML(code, name, data)
}

func pendingFlashes(c *gin.Context) []string {
	if value, exists := c.Get(flashKey); exists {
		if flashes, ok := value.([]string); ok {
			return flashes
		}
	}
	return nil
}

func takeFlashes(c *gin.Context) []string {
	var flashes []string
	if value, err := c.Cookie(flashCookie); err == nil && value != "" {
		flashes = strings.Split(value, "\n")
		c.SetCookie(flashCookie, "", -1, "/", "", false, true)
	}
	flashes = append(flashes, pendingFlashes(c)...)
	c.Set(flashKey, []string(nil))
	return flashes
}
