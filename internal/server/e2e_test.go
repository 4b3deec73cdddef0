package server

import (
	"context"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-web/internal/model"
	"github.com/BuzzLyutic/todo-web/internal/repo"
	"github.com/BuzzLyutic/todo-web/internal/testdb"
)

func TestE2E_Postgres(t *testing.T) {
	pool, cleanup := testdb.SetupTestDB(t)
	defer cleanup()
	testdb.TruncateTables(t, pool)

	todoRepo := repo.NewTodoRepo(pool)
	require.NoError(t, todoRepo.EnsureSchema(context.Background()))
	server := newTestServer(t, todoRepo)

	t.Run("create with defaults", func(t *testing.T) {
		postForm(t, server, "/", url.Values{"task": {"Buy milk"}}).Body.Close()

		todos := getTodos(t, server)
		require.Len(t, todos, 1)
		assert.Equal(t, model.Todo{ID: todos[0].ID, Task: "Buy milk", Priority: "Normal"}, todos[0])
	})

	t.Run("positional toggle and delete", func(t *testing.T) {
		testdb.SeedTodos(t, pool, "High", "Low")

		postForm(t, server, "/toggle", url.Values{"index": {"1"}}).Body.Close()
		todos := getTodos(t, server)
		require.Len(t, todos, 3)
		assert.Equal(t, []bool{false, true, false}, []bool{todos[0].Done, todos[1].Done, todos[2].Done})

		postForm(t, server, "/delete", url.Values{"index": {"5"}}).Body.Close()
		assert.Len(t, getTodos(t, server), 3)

		postForm(t, server, "/delete", url.Values{"index": {"0"}}).Body.Close()
		after := getTodos(t, server)
		assert.Equal(t, todos[1:], after)
	})

	t.Run("api update and delete", func(t *testing.T) {
		id := getTodos(t, server)[0].ID

		resp, _ := doRequest(t, http.MethodPut, server.URL+"/todos/"+id, `{"task":"Renamed"}`)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		resp, _ = doRequest(t, http.MethodPut, server.URL+"/todos/"+model.NewTodo("x", "").ID, `{"task":"x"}`)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		resp, _ = doRequest(t, http.MethodPut, server.URL+"/todos/not-an-id", `{"task":"x"}`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		before := getTodos(t, server)
		resp, body := doRequest(t, http.MethodDelete, server.URL+"/todos/"+model.NewTodo("x", "").ID, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "todo deleted", body)
		assert.Equal(t, before, getTodos(t, server))
	})
}
