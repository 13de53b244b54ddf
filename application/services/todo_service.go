package services

import (
	"context"
	"strings"

	"todoshare-backend/application/ports"
	"todoshare-backend/domain/todo"
	apperrors "todoshare-backend/pkg/errors"
	"todoshare-backend/pkg/observability"
	"todoshare-backend/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TodoService coordinates every mutation of the item store, the per-user
// directory and the user registry. Writes are sequential with no
// transaction and no rollback: a failure mid-operation can leave the
// stores partially updated, and readers tolerate that (see ListForUser).
// Delete is the one operation that verifies the cross-store invariant
// before touching anything irreversible.
type TodoService struct {
	todos       ports.TodoRepository
	directory   ports.UserDirectoryRepository
	registry    ports.UserRegistryRepository
	attachments ports.AttachmentStore
	locker      ports.ItemLocker
	metrics     *observability.Metrics
	logger      *zap.Logger
}

// NewTodoService creates a new TodoService. locker may be nil, in which
// case mutations run without per-item mutual exclusion.
func NewTodoService(
	todos ports.TodoRepository,
	directory ports.UserDirectoryRepository,
	registry ports.UserRegistryRepository,
	attachments ports.AttachmentStore,
	locker ports.ItemLocker,
	metrics *observability.Metrics,
	logger *zap.Logger,
) *TodoService {
	return &TodoService{
		todos:       todos,
		directory:   directory,
		registry:    registry,
		attachments: attachments,
		locker:      locker,
		metrics:     metrics,
		logger:      logger,
	}
}

// Create makes a new item owned solely by the caller. The caller is
// recorded in the user registry, the item id is appended to the caller's
// directory entry (created lazily on first use), and finally the item
// itself is written.
func (s *TodoService) Create(ctx context.Context, userID, title, dueDate string) (item *todo.Item, err error) {
	defer func() { s.metrics.CountOperation(ctx, "CreateTodo", err == nil) }()

	if err := s.registry.Add(ctx, userID); err != nil {
		return nil, err
	}

	item = &todo.Item{
		TodoID:    uuid.New().String(),
		CreatedAt: utils.NowRFC3339(),
		Title:     title,
		DueDate:   dueDate,
		Done:      false,
		Owners:    []string{userID},
	}

	entry, err := s.directory.Get(ctx, userID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		entry = todo.NewDirectoryEntry(userID)
	}
	entry.Add(item.TodoID)
	if err := s.directory.Put(ctx, entry); err != nil {
		return nil, err
	}

	if err := s.todos.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("Created todo item",
		zap.String("todoId", item.TodoID),
		zap.String("userId", userID),
	)
	return item, nil
}

// ListForUser returns the caller's items in directory order. A user with
// no directory entry has no items. Ids whose item record is missing are
// skipped rather than failing the whole listing, since sequential writes
// can leave dangling references behind.
func (s *TodoService) ListForUser(ctx context.Context, userID string) (items []*todo.Item, err error) {
	defer func() { s.metrics.CountOperation(ctx, "GetTodos", err == nil) }()

	entry, err := s.directory.Get(ctx, userID)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return []*todo.Item{}, nil
		}
		return nil, err
	}

	items = make([]*todo.Item, 0, len(entry.TodoIDs))
	for _, todoID := range entry.TodoIDs {
		item, err := s.todos.GetByID(ctx, todoID)
		if err != nil {
			if apperrors.IsNotFound(err) {
				s.logger.Warn("Directory references missing todo item",
					zap.String("userId", userID),
					zap.String("todoId", todoID),
				)
				continue
			}
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

// Update overwrites the item's title, due date and done flag. Only an
// owner may update; the owner set and attachment are untouched.
func (s *TodoService) Update(ctx context.Context, userID, todoID string, upd todo.Update) (item *todo.Item, err error) {
	defer func() { s.metrics.CountOperation(ctx, "UpdateTodo", err == nil) }()

	release, err := s.lockItem(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}
	defer release()

	item, err = s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !item.OwnedBy(userID) {
		return nil, apperrors.NewForbiddenError("user does not own this todo item")
	}

	if err := s.todos.UpdateFields(ctx, todoID, item.CreatedAt, upd); err != nil {
		return nil, err
	}

	item.Title = upd.Title
	item.DueDate = upd.DueDate
	item.Done = upd.Done
	return item, nil
}

// Delete removes the item and prunes its id from every owner's directory
// entry. The directory is pruned first; an owner with no entry, or an
// entry that does not list the id, breaches the invariant and aborts the
// delete before the item record is touched.
func (s *TodoService) Delete(ctx context.Context, userID, todoID string) (err error) {
	defer func() { s.metrics.CountOperation(ctx, "DeleteTodo", err == nil) }()

	release, err := s.lockItem(ctx, todoID, userID)
	if err != nil {
		return err
	}
	defer release()

	item, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return err
	}
	if !item.OwnedBy(userID) {
		return apperrors.NewForbiddenError("user does not own this todo item")
	}

	for _, owner := range item.Owners {
		entry, err := s.directory.Get(ctx, owner)
		if err != nil {
			if apperrors.IsNotFound(err) {
				s.logger.Error("Owner has no directory entry",
					zap.String("todoId", todoID),
					zap.String("owner", owner),
				)
				return apperrors.NewInconsistencyError("owner has no directory entry")
			}
			return err
		}
		if !entry.Remove(todoID) {
			s.logger.Error("Owner's directory entry does not list the item",
				zap.String("todoId", todoID),
				zap.String("owner", owner),
			)
			return apperrors.NewInconsistencyError("directory entry does not list the item")
		}
		if err := s.directory.Put(ctx, entry); err != nil {
			return err
		}
	}

	if err := s.todos.Delete(ctx, todoID, item.CreatedAt); err != nil {
		return err
	}

	s.logger.Info("Deleted todo item",
		zap.String("todoId", todoID),
		zap.String("userId", userID),
		zap.Int("ownerCount", len(item.Owners)),
	)
	return nil
}

// ToggleSharing flips targetUserID's ownership of the item. Unlike
// update and delete, sharing carries no ownership gate: any
// authenticated caller may toggle any user onto or off any item. The
// owner set and the target's directory entry are each toggled
// independently:
// if they have drifted apart, the toggle re-flips both rather than
// repairing the drift. The target's entry is created lazily when the
// toggle grants first-time ownership; the user registry is not touched.
func (s *TodoService) ToggleSharing(ctx context.Context, callerID, todoID, targetUserID string) (item *todo.Item, err error) {
	defer func() { s.metrics.CountOperation(ctx, "ShareTodo", err == nil) }()

	release, err := s.lockItem(ctx, todoID, callerID)
	if err != nil {
		return nil, err
	}
	defer release()

	item, err = s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	nowOwner := item.ToggleOwner(targetUserID)
	if err := s.todos.SetOwners(ctx, todoID, item.CreatedAt, item.Owners); err != nil {
		return nil, err
	}

	entry, err := s.directory.Get(ctx, targetUserID)
	if err != nil {
		if !apperrors.IsNotFound(err) {
			return nil, err
		}
		entry = todo.NewDirectoryEntry(targetUserID)
	}
	entry.Toggle(todoID)
	if err := s.directory.Put(ctx, entry); err != nil {
		return nil, err
	}

	s.logger.Info("Toggled todo sharing",
		zap.String("todoId", todoID),
		zap.String("caller", callerID),
		zap.String("target", targetUserID),
		zap.Bool("nowOwner", nowOwner),
	)
	return item, nil
}

// UserList reports, for one item, every user the system knows and
// whether each of them owns it. The item is fetched once up front; each
// user's row carries the item id when the owner set lists them.
func (s *TodoService) UserList(ctx context.Context, todoID string) (entries []todo.UserEntry, err error) {
	defer func() { s.metrics.CountOperation(ctx, "GetUsers", err == nil) }()

	item, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return nil, err
	}

	users, err := s.registry.List(ctx)
	if err != nil {
		return nil, err
	}

	entries = make([]todo.UserEntry, 0, len(users))
	for _, userID := range users {
		entry := todo.UserEntry{UserID: userID, TodoIDs: []string{}}
		if item.OwnedBy(userID) {
			entry.TodoIDs = []string{todoID}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// CreateAttachmentURL returns a fresh presigned upload URL for the
// item's attachment and records the permanent location (the URL with its
// signing query stripped) on the item.
func (s *TodoService) CreateAttachmentURL(ctx context.Context, userID, todoID string) (uploadURL string, err error) {
	defer func() { s.metrics.CountOperation(ctx, "CreateAttachment", err == nil) }()

	release, err := s.lockItem(ctx, todoID, userID)
	if err != nil {
		return "", err
	}
	defer release()

	item, err := s.todos.GetByID(ctx, todoID)
	if err != nil {
		return "", err
	}
	if !item.OwnedBy(userID) {
		return "", apperrors.NewForbiddenError("user does not own this todo item")
	}

	uploadURL, err = s.attachments.UploadURL(ctx, todoID)
	if err != nil {
		return "", err
	}

	permanentURL := uploadURL
	if idx := strings.Index(uploadURL, "?"); idx >= 0 {
		permanentURL = uploadURL[:idx]
	}
	if err := s.todos.SetAttachmentURL(ctx, todoID, item.CreatedAt, permanentURL); err != nil {
		return "", err
	}

	s.logger.Info("Created attachment upload URL",
		zap.String("todoId", todoID),
		zap.String("userId", userID),
	)
	return uploadURL, nil
}

// lockItem acquires the per-item lock when locking is enabled. The
// returned release func is always safe to call.
func (s *TodoService) lockItem(ctx context.Context, todoID, userID string) (func(), error) {
	if s.locker == nil {
		return func() {}, nil
	}

	lock, err := s.locker.AcquireItemLock(ctx, todoID, userID)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := lock.Release(ctx); err != nil {
			s.logger.Warn("Failed to release item lock",
				zap.Error(err),
				zap.String("todoId", todoID),
			)
		}
	}, nil
}
