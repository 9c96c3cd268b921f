package web

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/getzep/nerlog/internal"
	"github.com/getzep/nerlog/pkg/models"
)

var log = internal.GetLogger()

const (
	IndexTemplate = "templates/index.html"
	AppTitle      = "Named Entity Recognition"
)

// IndexData is everything the page shows for one session.
type IndexData struct {
	SessionID     string
	WordLimit     int
	MaxUploadSize int64
	// Text is the current content of the text area
	Text      string
	WordCount int
	Extracted *models.ExtractResponse
	Result    *models.Interaction
	History   []models.Interaction
	Error     string
	// DownloadsEnabled shows the PDF links, which only exist in download mode
	DownloadsEnabled bool
}

func NewPage(title, path string, templates []string, data interface{}) *Page {
	return &Page{
		Title:     title,
		Templates: templates,
		Path:      path,
		Data:      data,
	}
}

type Page struct {
	Title     string
	Templates []string
	Path      string
	Data      interface{}
}

// Render writes the page with the given status. HX-Request callers get the content block only.
func (p *Page) Render(w http.ResponseWriter, r *http.Request, status int) {
	templates := p.Templates
	name := "Content"
	if r.Header.Get("HX-Request") != "true" {
		templates = append(append([]string{}, LayoutTemplates...), p.Templates...)
		name = "Layout"
	}

	tmpl, err := template.New(p.Title).Funcs(TemplateFuncs()).ParseFS(TemplatesFS, templates...)
	if err != nil {
		log.Errorf("Failed to parse template: %s", err)
		http.Error(w, "Failed to parse template", http.StatusInternalServerError)
		return
	}

	// execute into a buffer so a template error doesn't leave a half-written page
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, name, p); err != nil {
		log.Errorf("Failed to execute template: %s", err)
		http.Error(w, "Failed to execute template", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := buf.WriteTo(w); err != nil {
		log.Errorf("Failed to write page: %s", err)
	}
}
