package helpers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
)

const QuestionsPerPage = 10

func StringToInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

// PageParam reads ?page=, falling back to 1 when it is missing or not a number.
func PageParam(c *gin.Context) int {
	page, err := StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		return 1
	}
	return page
}

// PageOffset returns the row offset for a 1-based page. ok is false for pages
// below 1, which can never hold results.
func PageOffset(page, perPage int) (offset int, ok bool) {
	if page < 1 || perPage < 1 {
		return 0, false
	}
	return (page - 1) * perPage, true
}

// ParamID parses a positive numeric route parameter.
func ParamID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
