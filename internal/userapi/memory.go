package userapi

import (
	"context"
	"fmt"
	"sync"

	"github.com/noah-isme/userdir/internal/platform/httpx"
	"github.com/noah-isme/userdir/internal/users"
)

// MemoryStore keeps users in insertion order and assigns ids sequentially.
type MemoryStore struct {
	mu     sync.RWMutex
	users  []users.User
	nextID int64
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

// List returns a copy of every record.
func (s *MemoryStore) List(ctx context.Context) ([]users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]users.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

// Get returns the record with id.
func (s *MemoryStore) Get(ctx context.Context, id int64) (users.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return users.User{}, fmt.Errorf("user %d: %w", id, httpx.ErrNotFound)
	}
	return s.users[idx], nil
}

// Create stores draft under the next free id.
func (s *MemoryStore) Create(ctx context.Context, draft users.Draft) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.usernameTakenLocked(draft.Username, 0) {
		return users.User{}, fmt.Errorf("username %q: %w", draft.Username, httpx.ErrDuplicate)
	}
	user := draft.WithID(s.nextID)
	s.nextID++
	s.users = append(s.users, user)
	return user, nil
}

// Update replaces the record addressed by user.ID.
func (s *MemoryStore) Update(ctx context.Context, user users.User) (users.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(user.ID)
	if idx < 0 {
		return users.User{}, fmt.Errorf("user %d: %w", user.ID, httpx.ErrNotFound)
	}
	if s.usernameTakenLocked(user.Username, user.ID) {
		return users.User{}, fmt.Errorf("username %q: %w", user.Username, httpx.ErrDuplicate)
	}
	s.users[idx] = user
	return user, nil
}

// Delete removes the record with id.
func (s *MemoryStore) Delete(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexLocked(id)
	if idx < 0 {
		return fmt.Errorf("user %d: %w", id, httpx.ErrNotFound)
	}
	s.users = append(s.users[:idx], s.users[idx+1:]...)
	return nil
}

func (s *MemoryStore) indexLocked(id int64) int {
	for i, u := range s.users {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) usernameTakenLocked(username string, except int64) bool {
	for _, u := range s.users {
		if u.Username == username && u.ID != except {
			return true
		}
	}
	return false
}
