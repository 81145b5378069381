package directory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/userdir/internal/users"
)

func TestCreateFormEmitsCompleteDraft(t *testing.T) {
	var emitted []users.Draft
	form := &CreateForm{OnSubmit: func(d users.Draft) { emitted = append(emitted, d) }}
	form.Name, form.Username, form.Email = "Name1", "Username1", "user@email.com"

	ok := form.Submit()

	assert.True(t, ok)
	require.Len(t, emitted, 1)
	assert.Equal(t, users.Draft{Name: "Name1", Username: "Username1", Email: "user@email.com"}, emitted[0])
	assert.Empty(t, form.Name)
	assert.Empty(t, form.Username)
	assert.Empty(t, form.Email)
}

func TestCreateFormIgnoresIncompleteInput(t *testing.T) {
	cases := map[string]CreateForm{
		"all empty":      {},
		"missing name":   {Username: "Username1", Email: "user@email.com"},
		"missing user":   {Name: "Name1", Email: "user@email.com"},
		"missing email":  {Name: "Name1", Username: "Username1"},
		"only the email": {Email: "user@email.com"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			calls := 0
			form := tc
			form.OnSubmit = func(users.Draft) { calls++ }

			ok := form.Submit()

			assert.False(t, ok)
			assert.Zero(t, calls)
			assert.Equal(t, tc.Name, form.Name)
			assert.Equal(t, tc.Username, form.Username)
			assert.Equal(t, tc.Email, form.Email)
		})
	}
}

func TestCreateFormAcceptsAnyEmailShape(t *testing.T) {
	calls := 0
	form := &CreateForm{Name: "n", Username: "u", Email: "not-an-email", OnSubmit: func(users.Draft) { calls++ }}

	assert.True(t, form.Submit())
	assert.Equal(t, 1, calls)
}

func TestEditFormPrepopulates(t *testing.T) {
	form := NewEditForm(users.User{ID: 1, Name: "Test User #1", Username: "user_1", Email: "test1@gmail.com"})

	assert.Equal(t, int64(1), form.ID)
	assert.Equal(t, "Test User #1", form.Name)
	assert.Equal(t, "user_1", form.Username)
	assert.Equal(t, "test1@gmail.com", form.Email)
}

func TestEditFormSubmitKeepsID(t *testing.T) {
	var emitted []users.User
	form := NewEditForm(users.User{ID: 1, Name: "Test User #1", Username: "user_1", Email: "test1@gmail.com"})
	form.OnUpdate = func(u users.User) { emitted = append(emitted, u) }
	form.Name, form.Username, form.Email = "Name1", "Username1", "user@email.com"

	form.Submit()

	require.Len(t, emitted, 1)
	assert.Equal(t, users.User{ID: 1, Name: "Name1", Username: "Username1", Email: "user@email.com"}, emitted[0])
	assert.Equal(t, "Name1", form.Name, "submit does not clear the form")
}

func TestEditFormSubmitDoesNotValidate(t *testing.T) {
	calls := 0
	form := NewEditForm(users.User{ID: 4})
	form.OnUpdate = func(users.User) { calls++ }

	form.Submit()

	assert.Equal(t, 1, calls)
}

func TestEditFormCancelAndBackdrop(t *testing.T) {
	for name, trigger := range map[string]func(*EditForm){
		"cancel":   (*EditForm).Cancel,
		"backdrop": (*EditForm).Backdrop,
	} {
		t.Run(name, func(t *testing.T) {
			cancels, updates := 0, 0
			form := NewEditForm(users.User{ID: 1})
			form.OnCancel = func() { cancels++ }
			form.OnUpdate = func(users.User) { updates++ }

			trigger(form)

			assert.Equal(t, 1, cancels)
			assert.Zero(t, updates)
		})
	}
}
