package models

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrIncompleteQuestion = errors.New("question and answer are required")

type Question struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	Question   string   `json:"question" gorm:"not null"`
	Answer     string   `json:"answer" gorm:"not null"`
	CategoryID uint     `json:"category" gorm:"column:category;not null;index"`
	Category   Category `json:"-" gorm:"foreignKey:CategoryID"`
	Difficulty int      `json:"difficulty"`
}

func (question *Question) BeforeSave(tx *gorm.DB) (err error) {
	question.Question = strings.TrimSpace(question.Question)
	question.Answer = strings.TrimSpace(question.Answer)
	if question.Question == "" || question.Answer == "" {
		return ErrIncompleteQuestion
	}
	return
}
