package handler

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"
	"os"

	"github.com/labstack/echo/v4"

	"github.com/gordon0907/ark-tribe-log/internal/tribelog"
)

//go:embed templates/*.html
var templateFiles embed.FS

//go:embed assets/icon.svg
var defaultIcon []byte

// Renderer renders the embedded HTML templates for echo.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	t, err := template.ParseFS(templateFiles, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Renderer{templates: t}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}

// IconDataURI returns the favicon as a base64 data URI. The file at path is
// used when it can be read, the embedded icon otherwise.
func IconDataURI(path string) template.URL {
	icon := defaultIcon
	if path != "" {
		if data, err := os.ReadFile(path); err == nil {
			icon = data
		}
	}
	return template.URL("data:image/svg+xml;base64," + base64.StdEncoding.EncodeToString(icon))
}

type pageSegment struct {
	Text  string
	Style template.CSS
}

type pageData struct {
	Icon  template.URL
	Lines [][]pageSegment
}

type errorPageData struct {
	Error string
}

func newPageData(icon template.URL, log tribelog.DecodedLog) pageData {
	lines := make([][]pageSegment, len(log))
	for i, line := range log {
		segs := make([]pageSegment, len(line))
		for j, s := range line {
			segs[j] = pageSegment{Text: s.Text}
			if s.Color != nil {
				// CSS() only emits digits, commas and dots inside rgb()/rgba()
				segs[j].Style = template.CSS("color: " + s.Color.CSS() + ";")
			}
		}
		lines[i] = segs
	}
	return pageData{Icon: icon, Lines: lines}
}
