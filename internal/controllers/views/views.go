// Package views HTML шаблоны страниц ошибок и завершения входа.
package views

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Templates разбирает встроенные шаблоны. Паникует, если шаблоны повреждены.
func Templates() *template.Template {
	return template.Must(template.ParseFS(files, "*.html"))
}
