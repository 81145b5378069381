package directory

import "github.com/noah-isme/userdir/internal/users"

// Columns are the table headings of the user list.
var Columns = []string{"User ID", "Name", "Username", "Email", "Actions"}

// ListView is the table projection of the collection plus the edit selection.
type ListView struct {
	Users []users.User

	OnDelete func(users.User)
	OnUpdate func(users.User)

	editing   *users.User
	showModal bool
}

// NewListView renders list.
func NewListView(list []users.User) *ListView {
	return &ListView{Users: list}
}

// Edit selects user for editing and opens the modal.
func (v *ListView) Edit(user users.User) {
	selected := user
	v.editing = &selected
	v.showModal = true
}

// CancelEdit drops the selection and hides the modal.
func (v *ListView) CancelEdit() {
	v.editing = nil
	v.showModal = false
}

// Editing returns the selected record, if any.
func (v *ListView) Editing() (users.User, bool) {
	if v.editing == nil {
		return users.User{}, false
	}
	return *v.editing, true
}

// ShowEditModal reports whether the edit modal is shown.
func (v *ListView) ShowEditModal() bool {
	return v.showModal
}

// EditForm returns a form for the selected record wired to this view's
// update and cancel handling. It is nil when nothing is selected.
func (v *ListView) EditForm() *EditForm {
	user, ok := v.Editing()
	if !ok {
		return nil
	}
	form := NewEditForm(user)
	form.OnUpdate = v.Update
	form.OnCancel = v.CancelEdit
	return form
}

// Delete emits a delete intent for user.
func (v *ListView) Delete(user users.User) {
	if v.OnDelete != nil {
		v.OnDelete(user)
	}
}

// Update forwards an update intent for user.
func (v *ListView) Update(user users.User) {
	if v.OnUpdate != nil {
		v.OnUpdate(user)
	}
}
