package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/todo-web/internal/handler"
	"github.com/BuzzLyutic/todo-web/internal/model"
	"github.com/BuzzLyutic/todo-web/internal/repo"
	"github.com/BuzzLyutic/todo-web/internal/service"
	"github.com/BuzzLyutic/todo-web/internal/view"
)

func newTestServer(t *testing.T, store repo.TodoRepository) *httptest.Server {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	logger := zap.NewNop()
	todoService := service.NewTodoService(store)
	r := NewRouter(
		handler.NewWebHandler(todoService, renderer, logger),
		handler.NewAPIHandler(todoService, logger),
	)

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)
	return server
}

// noRedirect не следует за 303, чтобы проверять ответ форм как есть.
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
}

func postForm(t *testing.T, server *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := noRedirect.PostForm(server.URL+path, form)
	require.NoError(t, err)
	return resp
}

func getTodos(t *testing.T, server *httptest.Server) []model.Todo {
	t.Helper()
	resp, err := http.Get(server.URL + "/todos")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var todos []model.Todo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&todos))
	return todos
}

func doRequest(t *testing.T, method, target, body string) (*http.Response, string) {
	t.Helper()
	req, err := http.NewRequest(method, target, bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, _ := io.ReadAll(resp.Body)
	return resp, string(data)
}

func TestRouter_CreateThenListAPI(t *testing.T) {
	server := newTestServer(t, repo.NewMemoryRepo())

	resp := postForm(t, server, "/", url.Values{"task": {"Buy milk"}})
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	todos := getTodos(t, server)
	require.Len(t, todos, 1)
	assert.NotEmpty(t, todos[0].ID)
	assert.Equal(t, "Buy milk", todos[0].Task)
	assert.Equal(t, "Normal", todos[0].Priority)
	assert.False(t, todos[0].Done)
}

func TestRouter_EmptyTaskRerendersWithError(t *testing.T) {
	server := newTestServer(t, repo.NewMemoryRepo())

	resp := postForm(t, server, "/", url.Values{"task": {"   "}})
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "Task cannot be empty!")
	assert.Empty(t, getTodos(t, server))
}

func TestRouter_PutUnknownID(t *testing.T) {
	server := newTestServer(t, repo.NewMemoryRepo())

	resp, body := doRequest(t, http.MethodPut, server.URL+"/todos/"+model.NewTodo("x", "").ID, `{"task":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Todo not found", body)
}

func TestRouter_FormFlow(t *testing.T) {
	server := newTestServer(t, repo.NewMemoryRepo())

	for _, form := range []url.Values{
		{"task": {"Buy milk"}},
		{"task": {"Pay rent"}, "priority": {"High"}},
		{"task": {"Call mom"}, "priority": {"High"}},
	} {
		postForm(t, server, "/", form).Body.Close()
	}

	// фильтр
	resp, err := http.Get(server.URL + "/?priority=High")
	require.NoError(t, err)
	page, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.NotContains(t, string(page), "Buy milk")
	assert.Contains(t, string(page), "Pay rent")

	// toggle по позиции
	postForm(t, server, "/toggle", url.Values{"index": {"0"}}).Body.Close()
	todos := getTodos(t, server)
	assert.True(t, todos[0].Done)

	// edit-mode и edit по id
	resp = postForm(t, server, "/edit-mode", url.Values{"id": {todos[1].ID}, "filter": {"High"}})
	page, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(page), `value="Pay rent" autofocus`)

	postForm(t, server, "/edit", url.Values{"id": {todos[1].ID}, "updatedTask": {"Pay bills"}}).Body.Close()
	todos = getTodos(t, server)
	assert.Equal(t, "Pay bills", todos[1].Task)
	assert.Equal(t, "High", todos[1].Priority)

	// delete по позиции
	postForm(t, server, "/delete", url.Values{"index": {"2"}}).Body.Close()
	todos = getTodos(t, server)
	require.Len(t, todos, 2)
	assert.Equal(t, []string{"Buy milk", "Pay bills"}, []string{todos[0].Task, todos[1].Task})
}

func TestRouter_APIRoutes(t *testing.T) {
	store := repo.NewMemoryRepo()
	server := newTestServer(t, store)
	postForm(t, server, "/", url.Values{"task": {"Buy milk"}}).Body.Close()
	id := getTodos(t, server)[0].ID

	resp, body := doRequest(t, http.MethodPut, server.URL+"/todos/"+id, `{"task":"Buy bread"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"id":"`+id+`","task":"Buy bread","priority":"Normal","done":false}`, body)

	resp, body = doRequest(t, http.MethodGet, server.URL+"/todos/stats", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"total_todos":1,"done":0,"pending":1,"by_priority":{"Normal":1}}`, body)

	resp, body = doRequest(t, http.MethodDelete, server.URL+"/todos/"+id, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "todo deleted", body)
	assert.Empty(t, getTodos(t, server))
}

func TestRouter_HealthAndStatic(t *testing.T) {
	server := newTestServer(t, repo.NewMemoryRepo())

	resp, body := doRequest(t, http.MethodGet, server.URL+"/health", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, body)

	resp, body = doRequest(t, http.MethodGet, server.URL+"/static/style.css", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(body, ".todo"))
}
