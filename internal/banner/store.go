// Package banner holds the process-wide status notification shown above every page.
package banner

import "sync"

// Category classifies a notification.
type Category string

const (
	// Info is the neutral default category.
	Info Category = "Info"
	// Success marks a completed operation.
	Success Category = "Success"
	// Error marks a failed operation.
	Error Category = "Error"
)

// Color returns the CSS background colour used to render the category.
func (c Category) Color() string {
	switch c {
	case Success:
		return "green"
	case Error:
		return "red"
	default:
		return "blue"
	}
}

// Notification is the current message and its category.
type Notification struct {
	Message  string
	Category Category
}

// Visible reports whether the banner should be displayed.
func (n Notification) Visible() bool {
	return n.Message != ""
}

// Notifier publishes status messages.
type Notifier interface {
	SetNotification(message string, category Category)
}

// Store keeps exactly one live notification. The zero value is not usable; call NewStore.
type Store struct {
	mu      sync.RWMutex
	current Notification
}

// NewStore returns a store initialised to an empty Info notification.
func NewStore() *Store {
	return &Store{current: Notification{Message: "", Category: Info}}
}

// SetNotification replaces message and category together.
func (s *Store) SetNotification(message string, category Category) {
	s.mu.Lock()
	s.current = Notification{Message: message, Category: category}
	s.mu.Unlock()
}

// Clear resets the store to its default notification.
func (s *Store) Clear() {
	s.SetNotification("", Info)
}

// Current returns a consistent snapshot of message and category.
func (s *Store) Current() Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Message returns the current message.
func (s *Store) Message() string {
	return s.Current().Message
}

// Category returns the current category.
func (s *Store) Category() Category {
	return s.Current().Category
}
