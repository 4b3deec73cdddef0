package repo

import (
	"context"

	"github.com/BuzzLyutic/todo-web/internal/model"
)

// TodoRepository определяет интерфейс для работы с задачами
type TodoRepository interface {
	Create(ctx context.Context, t model.Todo) (model.Todo, error)
	Get(ctx context.Context, id string) (model.Todo, error)
	List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error)
	ToggleDone(ctx context.Context, id string) (model.Todo, error)
	UpdateTask(ctx context.Context, id, task string) (model.Todo, error)
	Delete(ctx context.Context, id string) error
	GetStats(ctx context.Context) (model.Stats, error)
	Ping(ctx context.Context) error
}
