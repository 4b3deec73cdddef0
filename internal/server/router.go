// Package server собирает chi-роутер приложения.
package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/BuzzLyutic/todo-web/internal/handler"
	"github.com/BuzzLyutic/todo-web/internal/view"
)

func NewRouter(web *handler.WebHandler, api *handler.APIHandler) http.Handler {
	r := chi.NewRouter() // Создаем роутер
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/health", api.Health)
	r.Handle("/static/*", view.Static())

	// HTML-страница и формы
	r.Get("/", web.List)
	r.Post("/", web.Create)
	r.Post("/toggle", web.Toggle)
	r.Post("/edit-mode", web.EditMode)
	r.Post("/edit", web.Edit)
	r.Post("/delete", web.Delete)

	// JSON API
	r.Route("/todos", func(r chi.Router) {
		r.Get("/", api.List)
		r.Get("/stats", api.Stats)
		r.Put("/{id}", api.Update)
		r.Delete("/{id}", api.Delete)
	})

	return r
}
