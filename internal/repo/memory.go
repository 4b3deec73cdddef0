package repo

import (
	"context"
	"sync"

	"github.com/BuzzLyutic/todo-web/internal/model"
)

// MemoryRepo хранит задачи в памяти процесса, в порядке вставки.
// Используется для локального запуска без Postgres и в тестах хэндлеров.
type MemoryRepo struct {
	mu    sync.RWMutex
	todos []model.Todo
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{}
}

func (r *MemoryRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOf(t.ID) >= 0 {
		return t, ErrorConflict
	}
	r.todos = append(r.todos, t)
	return t, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id string) (model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Todo{}, ErrorNotFound
	}
	return r.todos[i], nil
}

func (r *MemoryRepo) List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	todos := make([]model.Todo, 0, len(r.todos))
	for _, t := range r.todos {
		if filter.Priority == "" || t.Priority == filter.Priority {
			todos = append(todos, t)
		}
	}
	return todos, nil
}

func (r *MemoryRepo) ToggleDone(ctx context.Context, id string) (model.Todo, error) {
	return r.update(id, func(t *model.Todo) { t.Done = !t.Done })
}

func (r *MemoryRepo) UpdateTask(ctx context.Context, id, task string) (model.Todo, error) {
	return r.update(id, func(t *model.Todo) { t.Task = task })
}

func (r *MemoryRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return ErrorNotFound
	}
	r.todos = append(r.todos[:i], r.todos[i+1:]...)
	return nil
}

func (r *MemoryRepo) GetStats(ctx context.Context) (model.Stats, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := model.Stats{ByPriority: make(map[string]int)}
	for _, t := range r.todos {
		stats.TotalTodos++
		stats.ByPriority[t.Priority]++
		if t.Done {
			stats.Done++
		} else {
			stats.Pending++
		}
	}
	return stats, nil
}

func (r *MemoryRepo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *MemoryRepo) update(id string, fn func(*model.Todo)) (model.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(id)
	if i < 0 {
		return model.Todo{}, ErrorNotFound
	}
	fn(&r.todos[i])
	return r.todos[i], nil
}

func (r *MemoryRepo) indexOf(id string) int {
	for i, t := range r.todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}
