package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"todoshare-backend/application/ports"
	"todoshare-backend/application/services"
	"todoshare-backend/domain/todo"
	"todoshare-backend/pkg/auth"
	apperrors "todoshare-backend/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTodoRepo is an in-memory ports.TodoRepository
type fakeTodoRepo struct {
	items map[string]*todo.Item
}

func newFakeTodoRepo(items ...*todo.Item) *fakeTodoRepo {
	repo := &fakeTodoRepo{items: make(map[string]*todo.Item)}
	for _, item := range items {
		repo.items[item.TodoID] = item
	}
	return repo
}

func (r *fakeTodoRepo) GetByID(_ context.Context, todoID string) (*todo.Item, error) {
	item, ok := r.items[todoID]
	if !ok {
		return nil, apperrors.NewNotFoundError("todo item")
	}
	copied := *item
	return &copied, nil
}

func (r *fakeTodoRepo) Create(_ context.Context, item *todo.Item) error {
	r.items[item.TodoID] = item
	return nil
}

func (r *fakeTodoRepo) UpdateFields(_ context.Context, todoID, _ string, upd todo.Update) error {
	item := r.items[todoID]
	item.Title = upd.Title
	item.DueDate = upd.DueDate
	item.Done = upd.Done
	return nil
}

func (r *fakeTodoRepo) SetOwners(_ context.Context, todoID, _ string, owners []string) error {
	r.items[todoID].Owners = owners
	return nil
}

func (r *fakeTodoRepo) SetAttachmentURL(_ context.Context, todoID, _, url string) error {
	r.items[todoID].AttachmentURL = url
	return nil
}

func (r *fakeTodoRepo) Delete(_ context.Context, todoID, _ string) error {
	delete(r.items, todoID)
	return nil
}

// fakeDirectoryRepo is an in-memory ports.UserDirectoryRepository
type fakeDirectoryRepo struct {
	entries map[string]*todo.DirectoryEntry
}

func newFakeDirectoryRepo(entries ...*todo.DirectoryEntry) *fakeDirectoryRepo {
	repo := &fakeDirectoryRepo{entries: make(map[string]*todo.DirectoryEntry)}
	for _, entry := range entries {
		repo.entries[entry.UserID] = entry
	}
	return repo
}

func (r *fakeDirectoryRepo) Get(_ context.Context, userID string) (*todo.DirectoryEntry, error) {
	entry, ok := r.entries[userID]
	if !ok {
		return nil, apperrors.NewNotFoundError("directory entry")
	}
	return entry, nil
}

func (r *fakeDirectoryRepo) Put(_ context.Context, entry *todo.DirectoryEntry) error {
	r.entries[entry.UserID] = entry
	return nil
}

// fakeRegistryRepo is an in-memory ports.UserRegistryRepository
type fakeRegistryRepo struct {
	users []string
}

func (r *fakeRegistryRepo) List(_ context.Context) ([]string, error) {
	return r.users, nil
}

func (r *fakeRegistryRepo) Add(_ context.Context, userID string) error {
	for _, id := range r.users {
		if id == userID {
			return nil
		}
	}
	r.users = append(r.users, userID)
	return nil
}

var _ ports.TodoRepository = (*fakeTodoRepo)(nil)
var _ ports.UserDirectoryRepository = (*fakeDirectoryRepo)(nil)
var _ ports.UserRegistryRepository = (*fakeRegistryRepo)(nil)

func newTestHandler(todos ports.TodoRepository, directory ports.UserDirectoryRepository, registry ports.UserRegistryRepository) *TodoHandler {
	service := services.NewTodoService(todos, directory, registry, nil, nil, nil, zap.NewNop())
	return NewTodoHandler(service, zap.NewNop())
}

// authedRequest builds a request carrying an authenticated user context
// and the chi URL params
func authedRequest(t *testing.T, method, path, userID, body string, params map[string]string) *http.Request {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	ctx := auth.SetUserInContext(req.Context(), &auth.UserContext{UserID: userID})

	rctx := chi.NewRouteContext()
	for key, value := range params {
		rctx.URLParams.Add(key, value)
	}
	ctx = context.WithValue(ctx, chi.RouteCtxKey, rctx)

	return req.WithContext(ctx)
}

func TestGetTodos_ReturnsItemsEnvelope(t *testing.T) {
	// Arrange
	item := &todo.Item{TodoID: "id-a", CreatedAt: "2026-08-01T00:00:00Z", Title: "First", Owners: []string{"user1"}}
	handler := newTestHandler(
		newFakeTodoRepo(item),
		newFakeDirectoryRepo(&todo.DirectoryEntry{UserID: "user1", TodoIDs: []string{"id-a"}}),
		&fakeRegistryRepo{},
	)
	req := authedRequest(t, http.MethodGet, "/todos", "user1", "", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.GetTodos(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []todo.Item `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "First", resp.Items[0].Title)
}

func TestGetTodos_MissingUserContextIsUnauthorized(t *testing.T) {
	// Arrange
	handler := newTestHandler(newFakeTodoRepo(), newFakeDirectoryRepo(), &fakeRegistryRepo{})
	req := httptest.NewRequest(http.MethodGet, "/todos", nil)
	rec := httptest.NewRecorder()

	// Act
	handler.GetTodos(rec, req)

	// Assert
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCreateTodo_ReturnsCreatedItem(t *testing.T) {
	// Arrange
	handler := newTestHandler(newFakeTodoRepo(), newFakeDirectoryRepo(), &fakeRegistryRepo{})
	body := `{"title":"Buy groceries","dueDate":"2026-09-15"}`
	req := authedRequest(t, http.MethodPost, "/todos", "user1", body, nil)
	rec := httptest.NewRecorder()

	// Act
	handler.CreateTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var item todo.Item
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &item))
	assert.Equal(t, "Buy groceries", item.Title)
	assert.Equal(t, []string{"user1"}, item.Owners)
	assert.False(t, item.Done)
}

func TestCreateTodo_MissingTitleIsBadRequest(t *testing.T) {
	// Arrange
	handler := newTestHandler(newFakeTodoRepo(), newFakeDirectoryRepo(), &fakeRegistryRepo{})
	req := authedRequest(t, http.MethodPost, "/todos", "user1", `{"dueDate":"2026-09-15"}`, nil)
	rec := httptest.NewRecorder()

	// Act
	handler.CreateTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateTodo_NonOwnerIsForbidden(t *testing.T) {
	// Arrange
	item := &todo.Item{TodoID: "id-a", CreatedAt: "2026-08-01T00:00:00Z", Title: "Theirs", Owners: []string{"owner1"}}
	handler := newTestHandler(newFakeTodoRepo(item), newFakeDirectoryRepo(), &fakeRegistryRepo{})
	body := `{"title":"Mine now","dueDate":"2026-09-15","done":true}`
	req := authedRequest(t, http.MethodPatch, "/todos/id-a", "intruder", body, map[string]string{"todoID": "id-a"})
	rec := httptest.NewRecorder()

	// Act
	handler.UpdateTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestDeleteTodo_MissingItemIsNotFound(t *testing.T) {
	// Arrange
	handler := newTestHandler(newFakeTodoRepo(), newFakeDirectoryRepo(), &fakeRegistryRepo{})
	req := authedRequest(t, http.MethodDelete, "/todos/gone", "user1", "", map[string]string{"todoID": "gone"})
	rec := httptest.NewRecorder()

	// Act
	handler.DeleteTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteTodo_OwnerGetsNoContent(t *testing.T) {
	// Arrange
	item := &todo.Item{TodoID: "id-a", CreatedAt: "2026-08-01T00:00:00Z", Owners: []string{"user1"}}
	handler := newTestHandler(
		newFakeTodoRepo(item),
		newFakeDirectoryRepo(&todo.DirectoryEntry{UserID: "user1", TodoIDs: []string{"id-a"}}),
		&fakeRegistryRepo{},
	)
	req := authedRequest(t, http.MethodDelete, "/todos/id-a", "user1", "", map[string]string{"todoID": "id-a"})
	rec := httptest.NewRecorder()

	// Act
	handler.DeleteTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestShareTodo_MissingItemIsBadRequest(t *testing.T) {
	// Arrange
	handler := newTestHandler(newFakeTodoRepo(), newFakeDirectoryRepo(), &fakeRegistryRepo{})
	req := authedRequest(t, http.MethodPost, "/todos/gone/share", "user1", `{"userId":"user2"}`, map[string]string{"todoID": "gone"})
	rec := httptest.NewRecorder()

	// Act
	handler.ShareTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestShareTodo_TogglesTargetOwnership(t *testing.T) {
	// Arrange
	item := &todo.Item{TodoID: "id-a", CreatedAt: "2026-08-01T00:00:00Z", Owners: []string{"user1"}}
	todos := newFakeTodoRepo(item)
	handler := newTestHandler(todos, newFakeDirectoryRepo(), &fakeRegistryRepo{})
	req := authedRequest(t, http.MethodPost, "/todos/id-a/share", "user1", `{"userId":"user2"}`, map[string]string{"todoID": "id-a"})
	rec := httptest.NewRecorder()

	// Act
	handler.ShareTodo(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"user1", "user2"}, todos.items["id-a"].Owners)
}

func TestGetUsers_ReportsMembershipPerUser(t *testing.T) {
	// Arrange
	item := &todo.Item{TodoID: "id-a", CreatedAt: "2026-08-01T00:00:00Z", Owners: []string{"user2"}}
	registry := &fakeRegistryRepo{users: []string{"user1", "user2"}}
	handler := newTestHandler(newFakeTodoRepo(item), newFakeDirectoryRepo(), registry)
	req := authedRequest(t, http.MethodGet, "/todos/id-a/users", "user1", "", map[string]string{"todoID": "id-a"})
	rec := httptest.NewRecorder()

	// Act
	handler.GetUsers(rec, req)

	// Assert
	assert.Equal(t, http.StatusOK, rec.Code)
	var resp struct {
		Items []todo.UserEntry `json:"items"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 2)
	assert.Empty(t, resp.Items[0].TodoIDs)
	assert.Equal(t, []string{"id-a"}, resp.Items[1].TodoIDs)
}
