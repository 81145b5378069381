package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/userdir/internal/users"
)

func testUsers() []users.User {
	return []users.User{
		{ID: 1, Name: "Test User #1", Username: "user_1", Email: "test1@gmail.com"},
		{ID: 2, Name: "Test User #2", Username: "user_2", Email: "test2@gmail.com"},
	}
}

func TestListViewColumns(t *testing.T) {
	assert.Equal(t, []string{"User ID", "Name", "Username", "Email", "Actions"}, Columns)
}

func TestListViewStartsWithoutSelection(t *testing.T) {
	view := NewListView(testUsers())

	_, ok := view.Editing()
	assert.False(t, ok)
	assert.False(t, view.ShowEditModal())
	assert.Nil(t, view.EditForm())
}

func TestListViewEditOpensModal(t *testing.T) {
	view := NewListView(testUsers())

	view.Edit(view.Users[0])

	assert.True(t, view.ShowEditModal())
	editing, ok := view.Editing()
	require.True(t, ok)
	assert.Equal(t, testUsers()[0], editing)

	form := view.EditForm()
	require.NotNil(t, form)
	assert.Equal(t, "Test User #1", form.Name)
}

func TestListViewSelectionIsACopy(t *testing.T) {
	view := NewListView(testUsers())
	view.Edit(view.Users[0])

	view.Users[0].Name = "changed"

	editing, _ := view.Editing()
	assert.Equal(t, "Test User #1", editing.Name)
}

func TestListViewCancelEdit(t *testing.T) {
	view := NewListView(testUsers())
	view.Edit(view.Users[1])

	view.CancelEdit()

	assert.False(t, view.ShowEditModal())
	_, ok := view.Editing()
	assert.False(t, ok)
}

func TestListViewEditFormCancelClosesModal(t *testing.T) {
	view := NewListView(testUsers())
	view.Edit(view.Users[0])

	view.EditForm().Backdrop()

	assert.False(t, view.ShowEditModal())
}

func TestListViewDeleteEmits(t *testing.T) {
	var deleted []users.User
	view := NewListView(testUsers())
	view.OnDelete = func(u users.User) { deleted = append(deleted, u) }

	view.Delete(view.Users[0])

	require.Len(t, deleted, 1)
	assert.Equal(t, int64(1), deleted[0].ID)
}

func TestListViewUpdateForwards(t *testing.T) {
	var updated []users.User
	view := NewListView(testUsers())
	view.OnUpdate = func(u users.User) { updated = append(updated, u) }
	user1 := users.User{ID: 1, Name: "Name1", Username: "Username1", Email: "Email1"}

	view.Update(user1)

	assert.Equal(t, []users.User{user1}, updated)
}

func TestListViewEditFormSubmitForwardsUpdate(t *testing.T) {
	var updated []users.User
	view := NewListView(testUsers())
	view.OnUpdate = func(u users.User) { updated = append(updated, u) }
	view.Edit(view.Users[1])

	form := view.EditForm()
	form.Email = "new@example.com"
	form.Submit()

	require.Len(t, updated, 1)
	assert.Equal(t, users.User{ID: 2, Name: "Test User #2", Username: "user_2", Email: "new@example.com"}, updated[0])
}
