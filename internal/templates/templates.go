// Package templates embeds the Fyyur HTML pages.
package templates

import (
	"embed"
	"html/template"
)

//go:embed html/*.html
var files embed.FS

// Load parses every page. Templates are addressed by file name, e.g. "home.html".
func Load(funcs template.FuncMap) (*template.Template, error) {
	return template.New("fyyur").Funcs(funcs).ParseFS(files, "html/*.html")
}
