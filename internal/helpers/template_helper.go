package helpers

import (
	"html/template"
	"strings"
	"time"

	"github.com/farellandr/fyyur-trivia/internal/models"
)

func FormatDatetime(t time.Time, format string) string {
	switch format {
	case "full":
		return t.Format("Monday January, 2, 2006 at 3:04PM")
	case "medium":
		return t.Format("Mon 01, 02, 2006 3:04PM")
	default:
		return t.Format(format)
	}
}

func TemplateFuncs() template.FuncMap {
	return template.FuncMap{
		"datetime": FormatDatetime,
		"join":     strings.Join,
		"states":   func() []string { return States },
		"genres":   func() []string { return Genres },
		"hasGenre": func(selected models.Genres, genre string) bool { return selected.Contains(genre) },
	}
}
