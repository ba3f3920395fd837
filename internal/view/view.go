// Package view renders the server-side HTML pages from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"storefront/internal/model"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names understood by Render.
const (
	PageIndex    = "index"
	PageAbout    = "about"
	PageProducts = "products"
	PageProduct  = "product"
	PageError    = "error"
)

var pageNames = []string{PageIndex, PageAbout, PageProducts, PageProduct, PageError}

// IndexData is the view model of the home page.
type IndexData struct {
	Name string
}

// ProductsData is the view model of the product listing.
type ProductsData struct {
	Products         []model.Product
	Categories       []model.Category
	SelectedCategory int
}

// ProductData is the view model of a product detail page.
type ProductData struct {
	Product model.Product
}

// ErrorData is the view model of an error page.
type ErrorData struct {
	Status  int
	Title   string
	Message string
}

// Renderer holds one parsed template set per page, each combined with the layout.
type Renderer struct {
	pages map[string]*template.Template
}

var funcs = template.FuncMap{
	"price": func(v float64) string {
		return fmt.Sprintf("%.2f", v)
	},
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New(name).
			Funcs(funcs).
			ParseFS(templateFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages}, nil
}

// Render executes the named page and returns the complete document.
// No output is produced when execution fails.
func (r *Renderer) Render(page string, data any) ([]byte, error) {
	tmpl, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("failed to render page %s: %w", page, err)
	}

	return buf.Bytes(), nil
}
