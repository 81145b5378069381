package directory_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/userdir/internal/banner"
	"github.com/noah-isme/userdir/internal/directory"
	"github.com/noah-isme/userdir/internal/users"
)

const seedUsers = `[
	{"id":1,"name":"Leanne Graham","username":"Bret","email":"Sincere@april.biz"},
	{"id":2,"name":"Ervin Howell","username":"Antonette","email":"Shanna@melissa.tv"}
]`

type reply struct {
	status int
	body   string
	delay  time.Duration
}

// apiStub answers the users resource with canned replies keyed by method and path.
type apiStub struct {
	mu      sync.Mutex
	replies map[string]reply
	calls   map[string]int
}

func newAPIStub() *apiStub {
	return &apiStub{
		replies: map[string]reply{
			"GET /users":      {status: http.StatusOK, body: seedUsers},
			"POST /users":     {status: http.StatusCreated, body: `[{"id":3,"name":"Patrick","username":"patrick123","email":"patrick@email.com"}]`},
			"DELETE /users/2": {status: http.StatusOK, body: `[{"id":2}]`},
			"PUT /users/1":    {status: http.StatusOK, body: `[{"id":1,"name":"Patrick","username":"patrick456","email":"patrick@email.com"}]`},
		},
		calls: map[string]int{},
	}
}

func (s *apiStub) set(key string, status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[key] = reply{status: status, body: body}
}

func (s *apiStub) setSlow(key string, status int, body string, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[key] = reply{status: status, body: body, delay: delay}
}

func (s *apiStub) count(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[key]
}

func (s *apiStub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	_, _ = io.Copy(io.Discard, r.Body)
	key := r.Method + " " + r.URL.Path
	s.mu.Lock()
	s.calls[key]++
	rep, ok := s.replies[key]
	s.mu.Unlock()
	if !ok {
		rep = reply{status: http.StatusNotFound}
	}
	time.Sleep(rep.delay)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(rep.status)
	_, _ = io.WriteString(w, rep.body)
}

type notifyCall struct {
	Message  string
	Category banner.Category
}

// spyNotifier records every SetNotification call.
type spyNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
}

func (s *spyNotifier) SetNotification(message string, category banner.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls = append(s.calls, notifyCall{Message: message, Category: category})
}

func (s *spyNotifier) times() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.calls)
}

func (s *spyNotifier) last() notifyCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.calls) == 0 {
		return notifyCall{}
	}
	return s.calls[len(s.calls)-1]
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newController(t *testing.T, api *apiStub) (*directory.Controller, *spyNotifier) {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	spy := &spyNotifier{}
	ctrl := directory.NewController(users.NewClient(srv.URL), spy, discardLogger())
	return ctrl, spy
}

func activated(t *testing.T, api *apiStub) (*directory.Controller, *spyNotifier) {
	t.Helper()
	ctrl, spy := newController(t, api)
	ctrl.Activate(context.Background())
	require.Equal(t, 2, ctrl.Len())
	return ctrl, spy
}

func TestActivateLoadsUsers(t *testing.T) {
	api := newAPIStub()
	ctrl, spy := newController(t, api)

	ctrl.Activate(context.Background())

	assert.Equal(t, 1, api.count("GET /users"))
	list := ctrl.Users()
	require.Len(t, list, 2)
	assert.Equal(t, users.User{ID: 1, Name: "Leanne Graham", Username: "Bret", Email: "Sincere@april.biz"}, list[0])
	assert.Equal(t, users.User{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"}, list[1])
	assert.Equal(t, 1, spy.times())
	assert.Equal(t, notifyCall{directory.MsgLoadSuccess, banner.Success}, spy.last())
}

func TestActivateRunsOnce(t *testing.T) {
	api := newAPIStub()
	ctrl, spy := newController(t, api)

	ctrl.Activate(context.Background())
	ctrl.Activate(context.Background())

	assert.Equal(t, 1, api.count("GET /users"))
	assert.Equal(t, 1, spy.times())
}

func TestLoadFailureStatus(t *testing.T) {
	api := newAPIStub()
	api.set("GET /users", http.StatusNotFound, "")
	ctrl, spy := newController(t, api)

	ctrl.Activate(context.Background())

	assert.Zero(t, ctrl.Len())
	assert.NotNil(t, ctrl.Users())
	assert.Equal(t, notifyCall{"ERROR! Unable to load user data!", banner.Error}, spy.last())
}

func TestLoadFailureTransport(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close()
	spy := &spyNotifier{}
	ctrl := directory.NewController(users.NewClient(srv.URL), spy, discardLogger())

	ctrl.Load(context.Background())

	assert.Zero(t, ctrl.Len())
	assert.Equal(t, notifyCall{directory.MsgLoadFailure, banner.Error}, spy.last())
}

func TestReloadFailureEmptiesCollection(t *testing.T) {
	api := newAPIStub()
	ctrl, spy := activated(t, api)

	api.set("GET /users", http.StatusInternalServerError, "")
	ctrl.Load(context.Background())

	assert.Zero(t, ctrl.Len())
	assert.Equal(t, 2, spy.times())
	assert.Equal(t, notifyCall{directory.MsgLoadFailure, banner.Error}, spy.last())
}

func TestCreateSuccess(t *testing.T) {
	api := newAPIStub()
	ctrl, spy := activated(t, api)

	ctrl.Create(context.Background(), users.Draft{Name: "Patrick", Username: "patrick123", Email: "patrick@email.com"})

	assert.Equal(t, 1, api.count("POST /users"))
	list := ctrl.Users()
	require.Len(t, list, 3)
	assert.Equal(t, users.User{ID: 3, Name: "Patrick", Username: "patrick123", Email: "patrick@email.com"}, list[2])
	assert.Equal(t, 2, spy.times())
	assert.Equal(t, notifyCall{"SUCCESS! User data was saved!", banner.Success}, spy.last())
}

func TestCreateWithoutBodyKeepsDraft(t *testing.T) {
	api := newAPIStub()
	api.set("POST /users", http.StatusCreated, "")
	ctrl, _ := activated(t, api)

	ctrl.Create(context.Background(), users.Draft{Name: "Patrick", Username: "patrick123", Email: "patrick@email.com"})

	list := ctrl.Users()
	require.Len(t, list, 3)
	assert.Equal(t, users.User{Name: "Patrick", Username: "patrick123", Email: "patrick@email.com"}, list[2])
}

func TestCreateServerFieldsWin(t *testing.T) {
	api := newAPIStub()
	api.set("POST /users", http.StatusCreated, `{"id":11,"username":"pat"}`)
	ctrl, _ := activated(t, api)

	ctrl.Create(context.Background(), users.Draft{Name: "Patrick", Username: "patrick123", Email: "patrick@email.com"})

	created, ok := ctrl.Find(11)
	require.True(t, ok)
	assert.Equal(t, users.User{ID: 11, Name: "Patrick", Username: "pat", Email: "patrick@email.com"}, created)
}

func TestCreateWithTakenIDStillAppends(t *testing.T) {
	api := newAPIStub()
	api.set("POST /users", http.StatusCreated, `{"id":11,"name":"A","username":"a","email":"a@example.com"}`)
	ctrl, _ := activated(t, api)

	ctrl.Create(context.Background(), users.Draft{Name: "A", Username: "a", Email: "a@example.com"})
	require.Equal(t, 3, ctrl.Len())

	api.set("POST /users", http.StatusCreated, `{"id":11,"name":"B","username":"b","email":"b@example.com"}`)
	ctrl.Create(context.Background(), users.Draft{Name: "B", Username: "b", Email: "b@example.com"})

	list := ctrl.Users()
	require.Len(t, list, 4)
	assert.Equal(t, users.User{ID: 11, Name: "A", Username: "a", Email: "a@example.com"}, list[2])
	assert.Equal(t, users.User{ID: 0, Name: "B", Username: "b", Email: "b@example.com"}, list[3])
}

func TestCreateFailure(t *testing.T) {
	api := newAPIStub()
	api.set("POST /users", http.StatusNotFound, "")
	ctrl, spy := activated(t, api)

	ctrl.Create(context.Background(), users.Draft{Name: "Patrick", Username: "patrick123", Email: "patrick@email.com"})

	assert.Equal(t, 1, api.count("POST /users"))
	assert.Equal(t, 2, ctrl.Len())
	assert.Equal(t, 2, spy.times())
	assert.Equal(t, notifyCall{"ERROR! Unable to save user data!", banner.Error}, spy.last())
}

func TestUpdateSuccess(t *testing.T) {
	api := newAPIStub()
	ctrl, spy := activated(t, api)

	ctrl.Update(context.Background(), users.User{ID: 1, Name: "Patrick", Username: "patrick456", Email: "patrick@email.com"})

	assert.Equal(t, 1, api.count("PUT /users/1"))
	list := ctrl.Users()
	require.Len(t, list, 2)
	assert.Equal(t, users.User{ID: 1, Name: "Patrick", Username: "patrick456", Email: "patrick@email.com"}, list[0])
	assert.Equal(t, users.User{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"}, list[1])
	assert.Equal(t, 2, spy.times())
	assert.Equal(t, notifyCall{"SUCCESS! User #1 was updated!", banner.Success}, spy.last())
}

func TestUpdateKeepsRecordID(t *testing.T) {
	api := newAPIStub()
	api.set("PUT /users/1", http.StatusOK, `{"id":99,"name":"Server Name"}`)
	ctrl, _ := activated(t, api)

	ctrl.Update(context.Background(), users.User{ID: 1, Name: "Leanne123", Username: "Bret456", Email: "Sincere@april.biz"})

	updated, ok := ctrl.Find(1)
	require.True(t, ok)
	assert.Equal(t, users.User{ID: 1, Name: "Server Name", Username: "Bret456", Email: "Sincere@april.biz"}, updated)
	_, ok = ctrl.Find(99)
	assert.False(t, ok)
}

func TestUpdateFailure(t *testing.T) {
	api := newAPIStub()
	api.set("PUT /users/1", http.StatusNotFound, "")
	ctrl, spy := activated(t, api)
	before := ctrl.Users()

	ctrl.Update(context.Background(), users.User{ID: 1, Name: "Leanne123", Username: "Bret456", Email: "Sincere@april.biz"})

	assert.Equal(t, 1, api.count("PUT /users/1"))
	assert.Equal(t, before, ctrl.Users())
	assert.Equal(t, notifyCall{"ERROR! Unable to update user #1!", banner.Error}, spy.last())
}

func TestDeleteSuccess(t *testing.T) {
	api := newAPIStub()
	ctrl, spy := activated(t, api)

	ctrl.Delete(context.Background(), users.User{ID: 2, Name: "Ervin Howell", Username: "Antonette", Email: "Shanna@melissa.tv"})

	assert.Equal(t, 1, api.count("DELETE /users/2"))
	list := ctrl.Users()
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID)
	_, ok := ctrl.Find(2)
	assert.False(t, ok)
	assert.Equal(t, 2, spy.times())
	assert.Equal(t, notifyCall{"SUCCESS! User #2 was deleted!", banner.Success}, spy.last())
}

func TestDeleteFailure(t *testing.T) {
	api := newAPIStub()
	api.set("DELETE /users/2", http.StatusNotFound, "")
	ctrl, spy := activated(t, api)

	ctrl.Delete(context.Background(), users.User{ID: 2})

	assert.Equal(t, 2, ctrl.Len())
	assert.Equal(t, notifyCall{"ERROR! Unable to delete user #2!", banner.Error}, spy.last())
}

func TestUsersReturnsCopy(t *testing.T) {
	ctrl, _ := activated(t, newAPIStub())

	list := ctrl.Users()
	list[0].Name = "mutated"

	fresh, ok := ctrl.Find(1)
	require.True(t, ok)
	assert.Equal(t, "Leanne Graham", fresh.Name)
}

func TestControllerWritesToBannerStore(t *testing.T) {
	api := newAPIStub()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)
	store := banner.NewStore()
	ctrl := directory.NewController(users.NewClient(srv.URL), store, discardLogger())

	ctrl.Activate(context.Background())
	assert.Equal(t, banner.Notification{Message: directory.MsgLoadSuccess, Category: banner.Success}, store.Current())

	ctrl.Delete(context.Background(), users.User{ID: 1})
	assert.Equal(t, banner.Notification{Message: "ERROR! Unable to delete user #1!", Category: banner.Error}, store.Current())
	assert.Equal(t, 2, ctrl.Len())
}
