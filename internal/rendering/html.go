package rendering

import (
	"embed"
	"html/template"
	"strings"
	"sync"
)

//go:embed templates/*.tmpl templates/preview.css
var templateFS embed.FS

var loadTemplates = sync.OnceValues(func() (*template.Template, error) {
	tmpl, err := template.New("rendering").ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, &TemplateError{Message: "failed to parse embedded templates", Cause: err}
	}
	return tmpl, nil
})

// Stylesheet returns the preview CSS. The editor page and the standalone
// document share it so the export matches what the user sees.
func Stylesheet() string {
	css, err := templateFS.ReadFile("templates/preview.css")
	if err != nil {
		return ""
	}
	return string(css)
}

// RenderFragment renders the live preview markup for doc.
func RenderFragment(doc Document) (string, error) {
	return execute("preview", doc)
}

// RenderStandalone renders a complete HTML document with the stylesheet
// inlined, suitable for loading in a headless browser.
func RenderStandalone(doc Document) (string, error) {
	return execute("standalone", struct {
		Doc Document
		CSS template.CSS
	}{Doc: doc, CSS: template.CSS(Stylesheet())})
}

func execute(name string, data any) (string, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return "", err
	}

	var out strings.Builder
	if err := tmpl.ExecuteTemplate(&out, name, data); err != nil {
		return "", &TemplateError{
			Message: "failed to execute template " + name,
			Cause:   err,
		}
	}
	return out.String(), nil
}
