package models

import (
	"database/sql/driver"
	"strings"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Genres is stored as a text[] column on Postgres and as the same array
// literal in a text column everywhere else.
type Genres []string

func (g Genres) Value() (driver.Value, error) {
	return pq.StringArray(g).Value()
}

func (g *Genres) Scan(src interface{}) error {
	return (*pq.StringArray)(g).Scan(src)
}

func (Genres) GormDataType() string {
	return "text"
}

func (Genres) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "text[]"
	}
	return "text"
}

func (g Genres) Contains(genre string) bool {
	for _, item := range g {
		if item == genre {
			return true
		}
	}
	return false
}

func (g Genres) String() string {
	return strings.Join(g, ", ")
}
