package repo

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo-web/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

//go:embed schema.sql
var Schema string

const todoColumns = `id, task, priority, done`

type TodoRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo { // Конструктор
	return &TodoRepo{
		pool: pool,
	}
}

// EnsureSchema создает таблицу, если ее еще нет. Вызывается один раз при старте.
func (r *TodoRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

func (r *TodoRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO todos (id, task, priority, done)
		VALUES ($1, $2, $3, $4)
		RETURNING `+todoColumns,
		t.ID, t.Task, t.Priority, t.Done,
	).Scan(&t.ID, &t.Task, &t.Priority, &t.Done)
	return t, r.mapError(err)
}

func (r *TodoRepo) Get(ctx context.Context, id string) (model.Todo, error) {
	var t model.Todo
	err := r.pool.QueryRow(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1
	`, id).Scan(&t.ID, &t.Task, &t.Priority, &t.Done)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

// List возвращает задачи в порядке вставки. Пустой Priority - без фильтра.
func (r *TodoRepo) List(ctx context.Context, filter model.TodoFilter) ([]model.Todo, error) {
	query := `
		SELECT ` + todoColumns + `
		FROM todos
		WHERE ($1::text = '' OR priority = $1)
		ORDER BY seq
	`

	rows, err := r.pool.Query(ctx, query, filter.Priority)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		var t model.Todo
		if err := rows.Scan(&t.ID, &t.Task, &t.Priority, &t.Done); err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) ToggleDone(ctx context.Context, id string) (model.Todo, error) {
	var t model.Todo
	err := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET done = NOT done
		WHERE id = $1
		RETURNING `+todoColumns,
		id,
	).Scan(&t.ID, &t.Task, &t.Priority, &t.Done)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TodoRepo) UpdateTask(ctx context.Context, id, task string) (model.Todo, error) {
	var t model.Todo
	err := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET task = $2
		WHERE id = $1
		RETURNING `+todoColumns,
		id, task,
	).Scan(&t.ID, &t.Task, &t.Priority, &t.Done)

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, r.mapError(err)
}

func (r *TodoRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TodoRepo) GetStats(ctx context.Context) (model.Stats, error) {
	stats := model.Stats{ByPriority: make(map[string]int)}

	rows, err := r.pool.Query(ctx, `
		SELECT priority, done, COUNT(*)
		FROM todos
		GROUP BY priority, done
	`)
	if err != nil {
		return stats, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			priority string
			done     bool
			count    int
		)
		if err := rows.Scan(&priority, &done, &count); err != nil {
			return stats, err
		}
		stats.ByPriority[priority] += count
		stats.TotalTodos += count
		if done {
			stats.Done += count
		} else {
			stats.Pending += count
		}
	}
	return stats, rows.Err()
}

func (r *TodoRepo) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *TodoRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation
			return ErrorConflict
		}
	}
	return err
}
