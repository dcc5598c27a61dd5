// Package web holds the embedded HTML templates for the server rendered pages.
package web

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"
)

//go:embed templates
var templatesFS embed.FS

var funcs = template.FuncMap{
	"date": func(t time.Time) string {
		return t.Format("2 January 2006, 15:04")
	},
	"linebreaks": func(s string) template.HTML {
		escaped := template.HTMLEscapeString(s)
		return template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))
	},
}

// NewTemplates parses every embedded template. Page templates name themselves
// with {{define "dir/file.html"}} so gin can render them by path.
func NewTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcs).ParseFS(templatesFS, "templates/*/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
