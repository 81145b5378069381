package shared

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "userdir:session:"

// SessionManager keeps session values in Redis under a signed cookie id.
type SessionManager struct {
	client     *redis.Client
	cookieName string
	ttl        time.Duration
	secure     bool
	secret     []byte
}

// Session is the per-visitor state attached to a request. Only the CSRF token
// lives here; banner state is process wide.
type Session struct {
	ID     string
	values map[string]string
	isNew  bool
	dirty  bool
}

func NewSessionManager(client *redis.Client, cookieName string, secret string, ttl time.Duration, secure bool) *SessionManager {
	return &SessionManager{
		client:     client,
		cookieName: cookieName,
		ttl:        ttl,
		secure:     secure,
		secret:     []byte(secret),
	}
}

// Load returns the session named by the request cookie. A missing or
// tampered cookie yields a fresh session; a valid id whose Redis entry has
// expired keeps its id with empty values.
func (sm *SessionManager) Load(ctx context.Context, r *http.Request) (*Session, error) {
	cookie, err := r.Cookie(sm.cookieName)
	if errors.Is(err, http.ErrNoCookie) {
		return sm.newSession(uuid.NewString()), nil
	}
	if err != nil {
		return nil, err
	}
	id, ok := sm.verify(cookie.Value)
	if !ok {
		return sm.newSession(uuid.NewString()), nil
	}

	raw, err := sm.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return sm.newSession(id), nil
	}
	if err != nil {
		return nil, err
	}
	values := map[string]string{}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return &Session{ID: id, values: values}, nil
}

// Commit stores changed values and refreshes the cookie.
func (sm *SessionManager) Commit(ctx context.Context, w http.ResponseWriter, _ *http.Request, sess *Session) error {
	if sess == nil {
		return nil
	}
	if sess.dirty || sess.isNew {
		data, err := json.Marshal(sess.values)
		if err != nil {
			return err
		}
		if err := sm.client.Set(ctx, Key(sess.ID), data, sm.ttl).Err(); err != nil {
			return err
		}
		sess.dirty, sess.isNew = false, false
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sm.cookieName,
		Value:    sm.sign(sess.ID),
		Path:     "/",
		HttpOnly: true,
		Secure:   sm.secure,
		SameSite: http.SameSiteStrictMode,
		Expires:  time.Now().Add(sm.ttl),
	})
	return nil
}

func (sm *SessionManager) CookieName() string {
	return sm.cookieName
}

// SessionID extracts the id carried by a cookie value issued by Commit.
func (sm *SessionManager) SessionID(cookieValue string) (string, bool) {
	return sm.verify(cookieValue)
}

// Key is the Redis key holding the values of session id.
func Key(id string) string {
	return sessionKeyPrefix + id
}

func (s *Session) Set(key, value string) {
	if s.values == nil {
		s.values = make(map[string]string)
	}
	s.values[key] = value
	s.dirty = true
}

func (s *Session) Get(key string) string {
	return s.values[key]
}

func (sm *SessionManager) newSession(id string) *Session {
	return &Session{ID: id, values: map[string]string{}, isNew: true}
}

func (sm *SessionManager) sign(id string) string {
	mac := hmac.New(sha256.New, sm.secret)
	_, _ = mac.Write([]byte(id))
	return id + "." + base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

func (sm *SessionManager) verify(value string) (string, bool) {
	id, _, found := strings.Cut(value, ".")
	if !found || id == "" {
		return "", false
	}
	if !hmac.Equal([]byte(sm.sign(id)), []byte(value)) {
		return "", false
	}
	return id, true
}

type sessionContextKey struct{}

// ContextWithSession stores the session in context.
func ContextWithSession(ctx context.Context, sess *Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFromContext returns the request session, or nil outside the
// session middleware.
func SessionFromContext(ctx context.Context) *Session {
	if ctx == nil {
		return nil
	}
	sess, _ := ctx.Value(sessionContextKey{}).(*Session)
	return sess
}
