package directory

import (
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/userdir/internal/users"
)

var formValidator = validator.New()

// CreateForm holds the inputs of the "Add a New User" form.
type CreateForm struct {
	Name     string `validate:"required"`
	Username string `validate:"required"`
	Email    string `validate:"required"`

	// OnSubmit receives the finalised draft.
	OnSubmit func(users.Draft)
}

// Submit emits the draft and clears the inputs when every field is filled.
// It reports whether a draft was emitted; incomplete input is left as typed.
func (f *CreateForm) Submit() bool {
	if err := formValidator.Struct(f); err != nil {
		return false
	}
	draft := users.Draft{Name: f.Name, Username: f.Username, Email: f.Email}
	if f.OnSubmit != nil {
		f.OnSubmit(draft)
	}
	f.Name, f.Username, f.Email = "", "", ""
	return true
}

// EditForm holds the inputs of the edit modal for one record. Unlike
// CreateForm it does not validate its fields.
type EditForm struct {
	ID       int64
	Name     string
	Username string
	Email    string

	OnUpdate func(users.User)
	OnCancel func()
}

// NewEditForm pre-populates the form from user.
func NewEditForm(user users.User) *EditForm {
	return &EditForm{ID: user.ID, Name: user.Name, Username: user.Username, Email: user.Email}
}

// Record returns the edited record with the original id.
func (f *EditForm) Record() users.User {
	return users.User{ID: f.ID, Name: f.Name, Username: f.Username, Email: f.Email}
}

// Submit emits the edited record.
func (f *EditForm) Submit() {
	if f.OnUpdate != nil {
		f.OnUpdate(f.Record())
	}
}

// Cancel emits the cancel intent.
func (f *EditForm) Cancel() {
	if f.OnCancel != nil {
		f.OnCancel()
	}
}

// Backdrop handles a click outside the modal, which cancels the edit.
func (f *EditForm) Backdrop() {
	f.Cancel()
}
