package helpers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type ErrorResponse struct {
	Success bool   `json:"success"`
	Error   int    `json:"error"`
	Message string `json:"message"`
}

var errorMessages = map[int]string{
	http.StatusBadRequest:          "bad request",
	http.StatusUnauthorized:        "unauthorized",
	http.StatusNotFound:            "resource not found",
	http.StatusMethodNotAllowed:    "method not allowed",
	http.StatusUnprocessableEntity: "unprocessable",
	http.StatusInternalServerError: "internal server error",
}

func HTTPStatusText(code int) string {
	if message, ok := errorMessages[code]; ok {
		return message
	}
	return strings.ToLower(http.StatusText(code))
}

// RespondWithError aborts the request with the JSON error envelope.
func RespondWithError(c *gin.Context, statusCode int) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{
		Success: false,
		Error:   statusCode,
		Message: HTTPStatusText(statusCode),
	})
}

// RenderError aborts the request with one of the HTML error pages.
func RenderError(c *gin.Context, statusCode int) {
	page := "500.html"
	if statusCode == http.StatusNotFound {
		page = "404.html"
	}
	c.Abort()
	Render(c, statusCode, page, gin.H{"status": statusCode})
}
