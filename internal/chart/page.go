package chart

import (
	"embed"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
)

//go:embed templates
var templatesDirEmbed embed.FS

var pageTemplate = template.Must(template.ParseFS(templatesDirEmbed, "templates/page.html"))

type page struct {
	Title  string
	Charts []Chart
	JSON   template.JS
}

// WritePage renders a standalone HTML page drawing charts with chart.js.
func WritePage(w io.Writer, title string, charts ...Chart) error {
	raw, err := json.Marshal(charts)
	if err != nil {
		return fmt.Errorf("failed to encode charts: %w", err)
	}
	if err := pageTemplate.ExecuteTemplate(w, "page.html", page{
		Title:  title,
		Charts: charts,
		JSON:   template.JS(raw),
	}); err != nil {
		return fmt.Errorf("failed to execute template page.html: %w", err)
	}
	return nil
}

// SavePage writes the page for one year to dir/<year>.html.
func SavePage(dir string, year int, c Chart) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	path := filepath.Join(dir, fmt.Sprintf("%d.html", year))
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if err := WritePage(f, c.Options.Plugins.Title.Text, c); err != nil {
		return "", err
	}
	return path, f.Close()
}
