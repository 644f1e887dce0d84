// Package view renders the HTML shell and partials the client-side app is
// built from.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

//go:embed templates
var templatesFS embed.FS

// Index is the name of the page shell served for every client-side route
const Index = "index"

// Renderer is an echo.Renderer over a fixed set of templates. Templates are
// keyed by their path below the template root without the .html suffix,
// e.g. "index" or "partials/readPost".
type Renderer struct {
	templates map[string]*template.Template
}

// New parses the templates embedded in the binary
func New() (*Renderer, error) {
	sub, err := fs.Sub(templatesFS, "templates")
	if err != nil {
		return nil, err
	}
	return NewFromFS(sub)
}

// NewFromFS parses every .html file in fsys
func NewFromFS(fsys fs.FS) (*Renderer, error) {
	r := &Renderer{templates: map[string]*template.Template{}}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() || path.Ext(p) != ".html" {
			return err
		}
		t, err := template.ParseFS(fsys, p)
		if err != nil {
			return fmt.Errorf("parse template %s: %w", p, err)
		}
		r.templates[strings.TrimSuffix(p, ".html")] = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Has reports whether a template with this name exists
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	return t.Execute(w, data)
}
