package dashboard

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// LocationPage is the model of the location-selection view.
type LocationPage struct {
	Current string
	Cities  []string
}

// Templates parses the embedded page templates, named by file
// ("dashboard.html", "location.html").
func Templates() (*template.Template, error) {
	return template.ParseFS(templateFS, "templates/*.html")
}
