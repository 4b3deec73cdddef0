package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-web/internal/model"
	"github.com/BuzzLyutic/todo-web/internal/repo"
	"github.com/BuzzLyutic/todo-web/internal/service"
	"github.com/BuzzLyutic/todo-web/internal/view"
	"github.com/BuzzLyutic/todo-web/pkg/respond"
)

// WebHandler обслуживает HTML-страницу и формы.
type WebHandler struct {
	service  *service.TodoService
	renderer *view.Renderer
	logger   *zap.Logger
}

func NewWebHandler(srv *service.TodoService, renderer *view.Renderer, logger *zap.Logger) *WebHandler {
	return &WebHandler{
		service:  srv,
		renderer: renderer,
		logger:   logger,
	}
}

func (h *WebHandler) List(w http.ResponseWriter, r *http.Request) {
	filter := model.TodoFilter{Priority: r.URL.Query().Get("priority")}

	lc, err := h.service.List(r.Context(), filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, lc)
}

func (h *WebHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respond.Text(w, r, http.StatusBadRequest, "invalid form")
		return
	}

	_, err := h.service.Create(r.Context(), r.PostFormValue("task"), r.PostFormValue("priority"))
	switch {
	case errors.Is(err, service.ErrValidation):
		// Пустая задача: показываем весь список с ошибкой, без редиректа
		lc, err := h.service.List(r.Context(), model.TodoFilter{})
		if err != nil {
			h.fail(w, r, err)
			return
		}
		lc.Error = service.EmptyTaskMessage
		h.render(w, r, http.StatusOK, lc)
	case err != nil:
		h.fail(w, r, err)
	default:
		respond.Redirect(w, r, "/")
	}
}

func (h *WebHandler) Toggle(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(r)
	h.finish(w, r, "toggle", h.service.Toggle(r.Context(), ref))
}

func (h *WebHandler) EditMode(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(r)
	filter := model.TodoFilter{Priority: r.PostFormValue("filter")}

	lc, err := h.service.EnterEdit(r.Context(), ref, filter)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.render(w, r, http.StatusOK, lc)
}

func (h *WebHandler) Edit(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(r)
	h.finish(w, r, "edit", h.service.ApplyEdit(r.Context(), ref, r.PostFormValue("updatedTask")))
}

func (h *WebHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ref := parseRef(r)
	h.finish(w, r, "delete", h.service.Delete(r.Context(), ref))
}

// finish завершает form-операции. Ссылка на несуществующую строку или пустой
// текст не ломают страницу: пишем warn и возвращаем пользователя к списку.
func (h *WebHandler) finish(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case err == nil:
	case errors.Is(err, service.ErrOutOfRange),
		errors.Is(err, service.ErrInvalidID),
		errors.Is(err, service.ErrValidation),
		errors.Is(err, repo.ErrorNotFound):
		h.logger.Warn("form operation skipped", zap.String("op", op), zap.Error(err))
	default:
		h.fail(w, r, err)
		return
	}
	respond.Redirect(w, r, "/")
}

func (h *WebHandler) render(w http.ResponseWriter, r *http.Request, status int, lc model.ListContext) {
	if err := h.renderer.Render(w, status, lc); err != nil {
		h.fail(w, r, err)
	}
}

func (h *WebHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("internal error", zap.String("path", r.URL.Path), zap.Error(err))
	respond.Text(w, r, http.StatusInternalServerError, "internal error")
}

// parseRef читает id или index из формы. Нечисловой index считается отсутствующим.
func parseRef(r *http.Request) model.TodoRef {
	ref := model.TodoRef{ID: strings.TrimSpace(r.PostFormValue("id"))}
	if raw := strings.TrimSpace(r.PostFormValue("index")); raw != "" {
		if i, err := strconv.Atoi(raw); err == nil {
			ref.Index = &i
		}
	}
	return ref
}
