// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package templates renders the embedded HTML views.
package templates

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed pages/*.html
var pagesFS embed.FS

// Renderer implements echo.Renderer over the embedded page templates.
// Template names are the page file names, e.g. "login.html".
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses all embedded pages.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"amount": func(v float64) string { return fmt.Sprintf("%.2f", v) },
	}).ParseFS(pagesFS, "pages/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
