package view

import (
	"embed"
	"html/template"
	"io"

	"github.com/BlackWidow29/Entrevista-Docket/internal/model"
	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templateFS embed.FS

// RegistryPage is the template name of the registries and certificates page
const RegistryPage = "registry"

// RegistryPageData feeds the RegistryPage template
type RegistryPageData struct {
	Title            string
	Registries       []model.Registry
	Certificates     []model.Certificate
	RegistryCount    int64
	CertificateCount int64
}

// Renderer renders the embedded html templates for echo
type Renderer struct {
	templates *template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

// NewRenderer parses the embedded templates
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

// Render implements echo.Renderer
func (r *Renderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
