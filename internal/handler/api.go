package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-web/internal/repo"
	"github.com/BuzzLyutic/todo-web/internal/service"
	"github.com/BuzzLyutic/todo-web/pkg/respond"
)

const (
	msgNotFound    = "Todo not found"
	msgUpdateError = "Error updating todo"
	msgDeleted     = "todo deleted"
)

// APIHandler обслуживает JSON-эндпоинты /todos.
type APIHandler struct {
	service *service.TodoService
	logger  *zap.Logger
}

func NewAPIHandler(srv *service.TodoService, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		service: srv,
		logger:  logger,
	}
}

type updateRequest struct {
	Task string `json:"task"`
}

func (h *APIHandler) List(w http.ResponseWriter, r *http.Request) {
	todos, err := h.service.ListAll(r.Context())
	if err != nil {
		h.logger.Error("list todos", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, todos)
}

func (h *APIHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Text(w, r, http.StatusBadRequest, msgUpdateError)
		return
	}

	todo, err := h.service.UpdateByID(r.Context(), id, req.Task)
	switch {
	case err == nil:
		respond.JSON(w, r, http.StatusOK, todo)
	case errors.Is(err, repo.ErrorNotFound):
		respond.Text(w, r, http.StatusNotFound, msgNotFound)
	case errors.Is(err, service.ErrInvalidID), errors.Is(err, service.ErrValidation):
		respond.Text(w, r, http.StatusBadRequest, msgUpdateError)
	default:
		h.logger.Error("update todo", zap.String("id", id), zap.Error(err))
		respond.Text(w, r, http.StatusBadRequest, msgUpdateError)
	}
}

func (h *APIHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.DeleteByID(r.Context(), id); err != nil {
		h.logger.Error("delete todo", zap.String("id", id), zap.Error(err))
		respond.Text(w, r, http.StatusInternalServerError, "Error deleting todo")
		return
	}
	respond.Text(w, r, http.StatusOK, msgDeleted)
}

func (h *APIHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.service.GetStats(r.Context())
	if err != nil {
		h.logger.Error("get stats", zap.Error(err))
		respond.Error(w, r, http.StatusInternalServerError, "internal error")
		return
	}
	respond.JSON(w, r, http.StatusOK, stats)
}

func (h *APIHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.service.Ping(ctx); err != nil {
		h.logger.Warn("health check failed", zap.Error(err))
		respond.JSON(w, r, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]string{"status": "ok"})
}
