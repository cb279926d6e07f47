package handlers

import (
	"errors"
	"net/http"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func TriviaRoot(c *gin.Context) {
	c.Redirect(http.StatusFound, "/categories")
}

func ListCategories(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	categories, err := allCategories(gormDB)
	if err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"categories": models.CategoryMap(categories),
	})
}

func ListCategoryQuestions(c *gin.Context) {
	categoryID, ok := helpers.ParamID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusNotFound)
		return
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	var category models.Category
	if err := gormDB.First(&category, categoryID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound)
			return
		}
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	query := gormDB.Model(&models.Question{}).Where("category = ?", category.ID)
	questions, total, err := pageOfQuestions(query, helpers.PageParam(c))
	if err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	if len(questions) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  total,
		"current_category": category.Type,
	})
}

func allCategories(gormDB *gorm.DB) ([]models.Category, error) {
	var categories []models.Category
	err := gormDB.Order("id").Find(&categories).Error
	return categories, err
}
