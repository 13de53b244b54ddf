package ports

import (
	"context"

	"todoshare-backend/domain/todo"
)

// TodoRepository persists to-do items keyed by todoId + createdAt
type TodoRepository interface {
	// GetByID looks an item up by its identifier. A missing item is a
	// NotFound error, never a nil item with a nil error.
	GetByID(ctx context.Context, todoID string) (*todo.Item, error)

	// Create persists a new item
	Create(ctx context.Context, item *todo.Item) error

	// UpdateFields overwrites title, dueDate and done in place
	UpdateFields(ctx context.Context, todoID, createdAt string, upd todo.Update) error

	// SetOwners replaces the item's owner set
	SetOwners(ctx context.Context, todoID, createdAt string, owners []string) error

	// SetAttachmentURL records the permanent attachment location
	SetAttachmentURL(ctx context.Context, todoID, createdAt, url string) error

	// Delete removes the item record
	Delete(ctx context.Context, todoID, createdAt string) error
}

// UserDirectoryRepository persists the per-user record of owned item ids
type UserDirectoryRepository interface {
	// Get returns a user's directory entry; a missing entry is a
	// NotFound error (entries are created lazily)
	Get(ctx context.Context, userID string) (*todo.DirectoryEntry, error)

	// Put writes the whole entry back
	Put(ctx context.Context, entry *todo.DirectoryEntry) error
}

// UserRegistryRepository persists the singleton record of every user the
// system has ever seen
type UserRegistryRepository interface {
	// List returns all known user ids; an uninitialized registry is an
	// empty list, not an error
	List(ctx context.Context) ([]string, error)

	// Add records a user id; adding a known user is a no-op
	Add(ctx context.Context, userID string) error
}

// AttachmentStore hands out upload locations for item attachments
type AttachmentStore interface {
	// UploadURL returns a presigned upload URL for the item's attachment
	UploadURL(ctx context.Context, todoID string) (string, error)
}

// ItemLock is a held per-item lock
type ItemLock interface {
	Release(ctx context.Context) error
}

// ItemLocker provides optional per-item mutual exclusion for callers who
// need the owners/directory invariant upheld under concurrency
type ItemLocker interface {
	AcquireItemLock(ctx context.Context, todoID, ownerID string) (ItemLock, error)
}
