package server

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed web
var webFS embed.FS

func loadIndex() (*template.Template, error) {
	tmpl, err := template.ParseFS(webFS, "web/index.html.tmpl")
	if err != nil {
		return nil, err
	}
	return tmpl, nil
}

// staticHandler serves the editor's script and stylesheet under /static/.
func staticHandler() http.Handler {
	sub, err := fs.Sub(webFS, "web")
	if err != nil {
		panic(err)
	}
	return http.FileServerFS(sub)
}
