package middleware

import (
	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/gin-gonic/gin"
)

const uploadConfigKey = "upload_config"

func UploadMiddleware(config helpers.UploadConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(uploadConfigKey, config)
		c.Next()
	}
}

func GetUploadConfig(c *gin.Context) (helpers.UploadConfig, bool) {
	config, exists := c.Get(uploadConfigKey)
	if !exists {
		return helpers.UploadConfig{}, false
	}
	uploadConfig, ok := config.(helpers.UploadConfig)
	return uploadConfig, ok
}
