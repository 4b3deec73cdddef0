// Package view renders the to-do list page from embedded templates.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/BuzzLyutic/todo-web/internal/model"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Renderer struct {
	list *template.Template
}

func NewRenderer() (*Renderer, error) {
	list, err := template.ParseFS(templatesFS, "templates/list.html")
	if err != nil {
		return nil, fmt.Errorf("parse list template: %w", err)
	}
	return &Renderer{list: list}, nil
}

// Render пишет страницу целиком: шаблон сначала исполняется в буфер,
// чтобы ошибка не оставила клиенту половину HTML.
func (r *Renderer) Render(w http.ResponseWriter, status int, lc model.ListContext) error {
	if lc.Priorities == nil {
		lc.Priorities = model.Priorities
	}

	var buf bytes.Buffer
	if err := r.list.Execute(&buf, lc); err != nil {
		return fmt.Errorf("render list: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}

// Static отдает встроенные css-файлы. Монтируется под /static/.
func Static() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err) // каталог встроен при сборке
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
