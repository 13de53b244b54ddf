package services

import (
	"context"

	"todoshare-backend/application/ports"
	"todoshare-backend/domain/todo"

	"github.com/stretchr/testify/mock"
)

// MockTodoRepository is a mock implementation of ports.TodoRepository
type MockTodoRepository struct {
	mock.Mock
}

func (m *MockTodoRepository) GetByID(ctx context.Context, todoID string) (*todo.Item, error) {
	args := m.Called(ctx, todoID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.Item), args.Error(1)
}

func (m *MockTodoRepository) Create(ctx context.Context, item *todo.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockTodoRepository) UpdateFields(ctx context.Context, todoID, createdAt string, upd todo.Update) error {
	args := m.Called(ctx, todoID, createdAt, upd)
	return args.Error(0)
}

func (m *MockTodoRepository) SetOwners(ctx context.Context, todoID, createdAt string, owners []string) error {
	args := m.Called(ctx, todoID, createdAt, owners)
	return args.Error(0)
}

func (m *MockTodoRepository) SetAttachmentURL(ctx context.Context, todoID, createdAt, url string) error {
	args := m.Called(ctx, todoID, createdAt, url)
	return args.Error(0)
}

func (m *MockTodoRepository) Delete(ctx context.Context, todoID, createdAt string) error {
	args := m.Called(ctx, todoID, createdAt)
	return args.Error(0)
}

// MockUserDirectoryRepository is a mock implementation of ports.UserDirectoryRepository
type MockUserDirectoryRepository struct {
	mock.Mock
}

func (m *MockUserDirectoryRepository) Get(ctx context.Context, userID string) (*todo.DirectoryEntry, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*todo.DirectoryEntry), args.Error(1)
}

func (m *MockUserDirectoryRepository) Put(ctx context.Context, entry *todo.DirectoryEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

// MockUserRegistryRepository is a mock implementation of ports.UserRegistryRepository
type MockUserRegistryRepository struct {
	mock.Mock
}

func (m *MockUserRegistryRepository) List(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockUserRegistryRepository) Add(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockAttachmentStore is a mock implementation of ports.AttachmentStore
type MockAttachmentStore struct {
	mock.Mock
}

func (m *MockAttachmentStore) UploadURL(ctx context.Context, todoID string) (string, error) {
	args := m.Called(ctx, todoID)
	return args.String(0), args.Error(1)
}

// MockItemLocker is a mock implementation of ports.ItemLocker
type MockItemLocker struct {
	mock.Mock
}

func (m *MockItemLocker) AcquireItemLock(ctx context.Context, todoID, ownerID string) (ports.ItemLock, error) {
	args := m.Called(ctx, todoID, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(ports.ItemLock), args.Error(1)
}

// MockItemLock is a mock implementation of ports.ItemLock
type MockItemLock struct {
	mock.Mock
}

func (m *MockItemLock) Release(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
