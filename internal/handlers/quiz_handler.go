package handlers

import (
	"errors"
	"math/rand"
	"net/http"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuizCategory struct {
	ID   flexibleInt `json:"id"`
	Type string      `json:"type"`
}

type QuizRequest struct {
	QuizCategory      *QuizCategory `json:"quiz_category" binding:"required"`
	PreviousQuestions []uint        `json:"previous_questions" binding:"required"`
}

// randIntN is swapped out by tests.
var randIntN = rand.Intn

// NextQuizQuestion returns a random question from the chosen category (id 0
// means all) that is not in previous_questions, or null once none are left.
func NextQuizQuestion(c *gin.Context) {
	var req QuizRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.QuizCategory.ID < 0 {
		helpers.RespondWithError(c, http.StatusBadRequest)
		return
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	query := gormDB.Model(&models.Question{})
	if req.QuizCategory.ID != 0 {
		var category models.Category
		if err := gormDB.First(&category, int(req.QuizCategory.ID)).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				helpers.RespondWithError(c, http.StatusBadRequest)
				return
			}
			_ = c.Error(err)
			helpers.RespondWithError(c, http.StatusInternalServerError)
			return
		}
		query = query.Where("category = ?", category.ID)
	}
	if len(req.PreviousQuestions) > 0 {
		query = query.Where("id NOT IN ?", req.PreviousQuestions)
	}

	var available []uint
	if err := query.Order("id").Pluck("id", &available).Error; err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	questionID, ok := pickQuestion(available)
	if !ok {
		c.JSON(http.StatusOK, gin.H{
			"success":  true,
			"question": nil,
		})
		return
	}

	var question models.Question
	if err := gormDB.First(&question, questionID).Error; err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"question": question,
	})
}

func pickQuestion(available []uint) (uint, bool) {
	if len(available) == 0 {
		return 0, false
	}
	return available[randIntN(len(available))], true
}
