package middleware

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const dbKey = "db"

func DatabaseMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(dbKey, db.WithContext(c.Request.Context()))
		c.Next()
	}
}

func GetDB(c *gin.Context) (*gorm.DB, bool) {
	db, exists := c.Get(dbKey)
	if !exists {
		return nil, false
	}
	gormDB, ok := db.(*gorm.DB)
	return gormDB, ok
}
