package model

import (
	"strings"

	"github.com/google/uuid"
)

const DefaultPriority = "Normal"

// Priorities - метки, которые показываются в форме и фильтре.
// Любая другая непустая метка сохраняется как есть.
var Priorities = []string{"Low", "Normal", "High", "Urgent"}

type Todo struct {
	ID       string `json:"id"`
	Task     string `json:"task"`
	Priority string `json:"priority"`
	Done     bool   `json:"done"`
}

// NewTodo собирает новую задачу с дефолтами: новый id, priority=Normal, done=false.
func NewTodo(task, priority string) Todo {
	priority = strings.TrimSpace(priority)
	if priority == "" {
		priority = DefaultPriority
	}
	return Todo{
		ID:       uuid.NewString(),
		Task:     strings.TrimSpace(task),
		Priority: priority,
		Done:     false,
	}
}

type TodoFilter struct {
	Priority string
}

// TodoRef addresses a single row from a form submission: by stable ID, or by
// position in a fresh unfiltered fetch. ID takes precedence.
type TodoRef struct {
	ID    string
	Index *int
}

func (r TodoRef) IsZero() bool {
	return r.ID == "" && r.Index == nil
}

// ListContext is everything the list page needs to render.
type ListContext struct {
	Todos            []Todo
	Error            string
	EditID           string
	SelectedPriority string
	Priorities       []string
}

type Stats struct {
	TotalTodos int            `json:"total_todos"`
	Done       int            `json:"done"`
	Pending    int            `json:"pending"`
	ByPriority map[string]int `json:"by_priority"`
}
