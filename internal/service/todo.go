package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-web/internal/model"
	"github.com/BuzzLyutic/todo-web/internal/repo"
)

var (
	ErrValidation = errors.New("validation error")
	ErrInvalidID  = errors.New("invalid id")
	ErrOutOfRange = errors.New("position out of range")
)

// EmptyTaskMessage показывается над списком, когда задача пустая.
const EmptyTaskMessage = "Task cannot be empty!"

type TodoService struct {
	repo repo.TodoRepository
}

func NewTodoService(repo repo.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context, filter model.TodoFilter) (model.ListContext, error) {
	todos, err := s.repo.List(ctx, filter)
	if err != nil {
		return model.ListContext{}, err
	}
	return model.ListContext{
		Todos:            todos,
		SelectedPriority: filter.Priority,
		Priorities:       model.Priorities,
	}, nil
}

func (s *TodoService) ListAll(ctx context.Context) ([]model.Todo, error) {
	return s.repo.List(ctx, model.TodoFilter{})
}

// Create сохраняет новую задачу. Пустой (после trim) текст - ErrValidation.
func (s *TodoService) Create(ctx context.Context, task, priority string) (model.Todo, error) {
	if strings.TrimSpace(task) == "" {
		return model.Todo{}, ErrValidation
	}
	return s.repo.Create(ctx, model.NewTodo(task, priority))
}

func (s *TodoService) Toggle(ctx context.Context, ref model.TodoRef) error {
	id, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	_, err = s.repo.ToggleDone(ctx, id)
	return err
}

// EnterEdit возвращает список по фильтру, где одна строка помечена для редактирования.
// Позиция считается внутри отфильтрованного списка; если строка не найдена,
// список рендерится без редактируемой строки.
func (s *TodoService) EnterEdit(ctx context.Context, ref model.TodoRef, filter model.TodoFilter) (model.ListContext, error) {
	lc, err := s.List(ctx, filter)
	if err != nil {
		return lc, err
	}

	switch {
	case ref.ID != "":
		for _, t := range lc.Todos {
			if t.ID == ref.ID {
				lc.EditID = t.ID
				break
			}
		}
	case ref.Index != nil:
		if i := *ref.Index; i >= 0 && i < len(lc.Todos) {
			lc.EditID = lc.Todos[i].ID
		}
	}
	return lc, nil
}

func (s *TodoService) ApplyEdit(ctx context.Context, ref model.TodoRef, updatedTask string) error {
	updatedTask = strings.TrimSpace(updatedTask)
	if updatedTask == "" {
		return ErrValidation
	}

	id, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	_, err = s.repo.UpdateTask(ctx, id, updatedTask)
	return err
}

func (s *TodoService) Delete(ctx context.Context, ref model.TodoRef) error {
	id, err := s.resolve(ctx, ref)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// UpdateByID меняет текст задачи по стабильному id.
func (s *TodoService) UpdateByID(ctx context.Context, id, task string) (model.Todo, error) {
	id, err := normalizeID(id)
	if err != nil {
		return model.Todo{}, err
	}

	task = strings.TrimSpace(task)
	if task == "" {
		return model.Todo{}, ErrValidation
	}
	return s.repo.UpdateTask(ctx, id, task)
}

// DeleteByID удаляет задачу без проверки существования: неизвестный или
// некорректный id - это no-op.
func (s *TodoService) DeleteByID(ctx context.Context, id string) error {
	id, err := normalizeID(id)
	if err != nil {
		return nil
	}

	err = s.repo.Delete(ctx, id)
	if errors.Is(err, repo.ErrorNotFound) {
		return nil
	}
	return err
}

func (s *TodoService) GetStats(ctx context.Context) (model.Stats, error) {
	return s.repo.GetStats(ctx)
}

func (s *TodoService) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

// resolve превращает ссылку из формы в стабильный id.
// Позиция считается по свежей выборке без фильтра.
func (s *TodoService) resolve(ctx context.Context, ref model.TodoRef) (string, error) {
	if ref.ID != "" {
		return normalizeID(ref.ID)
	}
	if ref.Index == nil {
		return "", ErrOutOfRange
	}

	todos, err := s.repo.List(ctx, model.TodoFilter{})
	if err != nil {
		return "", err
	}

	i := *ref.Index
	if i < 0 || i >= len(todos) {
		return "", fmt.Errorf("index %d of %d: %w", i, len(todos), ErrOutOfRange)
	}
	return todos[i].ID, nil
}

func normalizeID(id string) (string, error) {
	parsed, err := uuid.Parse(strings.TrimSpace(id))
	if err != nil {
		return "", fmt.Errorf("%q: %w", id, ErrInvalidID)
	}
	return parsed.String(), nil
}
