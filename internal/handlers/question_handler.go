package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/farellandr/fyyur-trivia/internal/helpers"
	"github.com/farellandr/fyyur-trivia/internal/middleware"
	"github.com/farellandr/fyyur-trivia/internal/models"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type QuestionRequest struct {
	SearchTerm string      `json:"searchTerm"`
	Question   string      `json:"question"`
	Answer     string      `json:"answer"`
	Category   flexibleInt `json:"category"`
	Difficulty flexibleInt `json:"difficulty"`
}

var errInvalidQuestion = errors.New("invalid question")

func ListQuestions(c *gin.Context) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	questions, total, err := pageOfQuestions(gormDB.Model(&models.Question{}), helpers.PageParam(c))
	if err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	if len(questions) == 0 {
		helpers.RespondWithError(c, http.StatusNotFound)
		return
	}

	categories, err := allCategories(gormDB)
	if err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  total,
		"categories":       models.CategoryMap(categories),
		"current_category": nil,
	})
}

// SubmitQuestion searches when the body carries a searchTerm and creates a
// question otherwise.
func SubmitQuestion(c *gin.Context) {
	var req QuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}

	if req.SearchTerm != "" {
		searchQuestions(c, req.SearchTerm)
		return
	}

	createQuestion(c, req)
}

func searchQuestions(c *gin.Context, term string) {
	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	query := gormDB.Model(&models.Question{}).
		Where("LOWER(question) LIKE ?", "%"+strings.ToLower(term)+"%")
	questions, total, err := pageOfQuestions(query, helpers.PageParam(c))
	if err != nil {
		_ = c.Error(err)
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"questions":        questions,
		"total_questions":  total,
		"current_category": nil,
	})
}

func createQuestion(c *gin.Context, req QuestionRequest) {
	if !middleware.IsAuthorized(c) {
		helpers.RespondWithError(c, http.StatusUnauthorized)
		return
	}

	if req.Difficulty < 1 || req.Difficulty > 5 {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	question := models.Question{
		Question:   req.Question,
		Answer:     req.Answer,
		CategoryID: uint(req.Category),
		Difficulty: int(req.Difficulty),
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, question.CategoryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return errInvalidQuestion
			}
			return err
		}
		return tx.Create(&question).Error
	})
	if err != nil {
		if !errors.Is(err, errInvalidQuestion) && !errors.Is(err, models.ErrIncompleteQuestion) {
			_ = c.Error(err)
		}
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"created": question.ID,
	})
}

func DeleteQuestion(c *gin.Context) {
	questionID, ok := helpers.ParamID(c, "id")
	if !ok {
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}

	gormDB, exists := middleware.GetDB(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError)
		return
	}

	err := gormDB.Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.Question{}, questionID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			_ = c.Error(err)
		}
		helpers.RespondWithError(c, http.StatusUnprocessableEntity)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"deleted": questionID,
	})
}

// pageOfQuestions returns one page of the query ordered by id together with
// the total number of matching rows.
func pageOfQuestions(query *gorm.DB, page int) ([]models.Question, int64, error) {
	query = query.Session(&gorm.Session{})

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	questions := []models.Question{}
	offset, ok := helpers.PageOffset(page, helpers.QuestionsPerPage)
	if !ok || int64(offset) >= total {
		return questions, total, nil
	}

	err := query.Order("id").Offset(offset).Limit(helpers.QuestionsPerPage).Find(&questions).Error
	return questions, total, err
}
