// Package directory owns the user list shown on the home page and the
// forms and view state that drive it.
package directory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/noah-isme/userdir/internal/banner"
	"github.com/noah-isme/userdir/internal/users"
)

// Status messages published after each operation.
const (
	MsgLoadSuccess = "SUCCESS! Loaded user data!"
	MsgLoadFailure = "ERROR! Unable to load user data!"
	MsgSaveSuccess = "SUCCESS! User data was saved!"
	MsgSaveFailure = "ERROR! Unable to save user data!"
)

// MsgUpdateSuccess formats the message for a successful update of id.
func MsgUpdateSuccess(id int64) string { return fmt.Sprintf("SUCCESS! User #%d was updated!", id) }

// MsgUpdateFailure formats the message for a failed update of id.
func MsgUpdateFailure(id int64) string { return fmt.Sprintf("ERROR! Unable to update user #%d!", id) }

// MsgDeleteSuccess formats the message for a successful delete of id.
func MsgDeleteSuccess(id int64) string { return fmt.Sprintf("SUCCESS! User #%d was deleted!", id) }

// MsgDeleteFailure formats the message for a failed delete of id.
func MsgDeleteFailure(id int64) string { return fmt.Sprintf("ERROR! Unable to delete user #%d!", id) }

// Backend is the remote users resource.
type Backend interface {
	ListUsers(ctx context.Context) ([]users.User, error)
	CreateUser(ctx context.Context, draft users.Draft) (*users.User, error)
	UpdateUser(ctx context.Context, user users.User) (*users.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// Controller is the single owner of the in-memory user collection and the
// only caller of the backend. Every operation issues exactly one backend call
// and reports its outcome through the notifier; errors never escape.
//
// The lock covers the collection only. Two overlapping mutations are not
// serialised and the later response wins.
type Controller struct {
	backend  Backend
	notifier banner.Notifier
	logger   *slog.Logger

	activate sync.Once

	mu    sync.RWMutex
	users []users.User
}

// NewController builds a Controller with an empty collection.
func NewController(backend Backend, notifier banner.Notifier, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{backend: backend, notifier: notifier, logger: logger, users: []users.User{}}
}

// Activate performs the initial Load. Only the first call has an effect.
func (c *Controller) Activate(ctx context.Context) {
	c.activate.Do(func() {
		c.Load(ctx)
	})
}

// Load replaces the collection with the backend's list. On failure the
// collection is left empty.
func (c *Controller) Load(ctx context.Context) {
	list, err := c.backend.ListUsers(ctx)
	if err != nil {
		c.logger.Warn("load users failed", slog.Any("error", err))
		c.replace([]users.User{})
		c.notifier.SetNotification(MsgLoadFailure, banner.Error)
		return
	}
	c.replace(append([]users.User(nil), list...))
	c.notifier.SetNotification(MsgLoadSuccess, banner.Success)
}

// Create posts draft and appends the confirmed record. The collection always
// grows by one; a confirmed id that is already taken is dropped to 0.
func (c *Controller) Create(ctx context.Context, draft users.Draft) {
	confirmed, err := c.backend.CreateUser(ctx, draft)
	if err != nil {
		c.logger.Warn("create user failed", slog.String("username", draft.Username), slog.Any("error", err))
		c.notifier.SetNotification(MsgSaveFailure, banner.Error)
		return
	}
	record := draft.WithID(0)
	if confirmed != nil {
		record = record.Overlay(*confirmed)
	}

	c.mu.Lock()
	if record.ID != 0 && c.indexLocked(record.ID) >= 0 {
		c.logger.Warn("backend returned an id already in the collection",
			slog.Int64("id", record.ID), slog.String("username", record.Username))
		record.ID = 0
	}
	c.users = append(c.users, record)
	c.mu.Unlock()

	c.notifier.SetNotification(MsgSaveSuccess, banner.Success)
}

// Update puts record and replaces the entry with the same id.
func (c *Controller) Update(ctx context.Context, record users.User) {
	confirmed, err := c.backend.UpdateUser(ctx, record)
	if err != nil {
		c.logger.Warn("update user failed", slog.Int64("id", record.ID), slog.Any("error", err))
		c.notifier.SetNotification(MsgUpdateFailure(record.ID), banner.Error)
		return
	}
	updated := record
	if confirmed != nil {
		updated = updated.Overlay(*confirmed)
	}
	updated.ID = record.ID

	c.mu.Lock()
	if idx := c.indexLocked(record.ID); idx >= 0 {
		c.users[idx] = updated
	}
	c.mu.Unlock()

	c.notifier.SetNotification(MsgUpdateSuccess(record.ID), banner.Success)
}

// Delete removes record from the backend and from the collection.
func (c *Controller) Delete(ctx context.Context, record users.User) {
	if err := c.backend.DeleteUser(ctx, record.ID); err != nil {
		c.logger.Warn("delete user failed", slog.Int64("id", record.ID), slog.Any("error", err))
		c.notifier.SetNotification(MsgDeleteFailure(record.ID), banner.Error)
		return
	}

	c.mu.Lock()
	if idx := c.indexLocked(record.ID); idx >= 0 {
		c.users = append(c.users[:idx:idx], c.users[idx+1:]...)
	}
	c.mu.Unlock()

	c.notifier.SetNotification(MsgDeleteSuccess(record.ID), banner.Success)
}

// Users returns a copy of the collection in display order.
func (c *Controller) Users() []users.User {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]users.User, len(c.users))
	copy(out, c.users)
	return out
}

// Find looks up a record by id.
func (c *Controller) Find(id int64) (users.User, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if idx := c.indexLocked(id); idx >= 0 {
		return c.users[idx], true
	}
	return users.User{}, false
}

// Len returns the number of records held.
func (c *Controller) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.users)
}

func (c *Controller) replace(list []users.User) {
	c.mu.Lock()
	c.users = list
	c.mu.Unlock()
}

func (c *Controller) indexLocked(id int64) int {
	for i, u := range c.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}
