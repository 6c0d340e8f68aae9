package templates

import (
	"embed"
	"fmt"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses the embedded page templates. Each page is addressed by its
// file name, e.g. "tasks.html".
func Load() (*template.Template, error) {
	tmpl, err := template.New("").ParseFS(files, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
