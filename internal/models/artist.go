package models

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

type Artist struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"not null"`
	City               string `gorm:"size:120;not null"`
	State              string `gorm:"size:2;not null"`
	Phone              string `gorm:"size:120"`
	Genres             Genres
	ImageLink          string `gorm:"size:500"`
	FacebookLink       string `gorm:"size:120"`
	WebsiteLink        string `gorm:"size:120"`
	SeekingVenue       bool   `gorm:"not null;default:false"`
	SeekingDescription string
	Shows              []Show `gorm:"constraint:OnDelete:CASCADE;"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

func (artist *Artist) BeforeSave(tx *gorm.DB) (err error) {
	artist.Name = strings.TrimSpace(artist.Name)
	artist.City = strings.TrimSpace(artist.City)
	return
}
