package models

import "strconv"

type Category struct {
	ID   uint   `json:"id" gorm:"primaryKey"`
	Type string `json:"type" gorm:"unique;not null"`
}

// CategoryMap keys category types by their id as a string, the shape the
// trivia frontend expects.
func CategoryMap(categories []Category) map[string]string {
	out := make(map[string]string, len(categories))
	for _, category := range categories {
		out[strconv.FormatUint(uint64(category.ID), 10)] = category.Type
	}
	return out
}
