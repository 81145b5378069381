package users

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Operation names reported to observers and carried by StatusError.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// StatusError reports a backend response outside the 2xx range.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("users: %s returned status %d", e.Op, e.Code)
}

// Observer receives one callback per backend round trip.
type Observer interface {
	ObserveBackendCall(op, outcome string, elapsed time.Duration)
}

// Client talks to the remote users REST resource.
type Client struct {
	baseURL    string
	httpClient *http.Client
	observer   Observer
}

// Option customises a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds every request. Zero keeps the transport default.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithObserver reports every call to o.
func WithObserver(o Observer) Option {
	return func(c *Client) {
		c.observer = o
	}
}

// NewClient constructs a client for the API rooted at baseURL.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListUsers fetches the full collection.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	body, err := c.do(ctx, OpList, http.MethodGet, "/users", nil)
	if err != nil {
		return nil, err
	}
	var list []User
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("users: decode list: %w", err)
	}
	if list == nil {
		list = []User{}
	}
	return list, nil
}

// CreateUser posts a draft. The returned record is nil when the backend
// answered without a usable body.
func (c *Client) CreateUser(ctx context.Context, draft Draft) (*User, error) {
	body, err := c.do(ctx, OpCreate, http.MethodPost, "/users", draft)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// UpdateUser replaces the record addressed by user.ID.
func (c *Client) UpdateUser(ctx context.Context, user User) (*User, error) {
	body, err := c.do(ctx, OpUpdate, http.MethodPut, userPath(user.ID), user)
	if err != nil {
		return nil, err
	}
	return decodeRecord(body), nil
}

// DeleteUser removes the record with the given id.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	_, err := c.do(ctx, OpDelete, http.MethodDelete, userPath(id), nil)
	return err
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	start := time.Now()
	body, err := c.roundTrip(ctx, op, method, path, payload)
	if c.observer != nil {
		outcome := "success"
		if err != nil {
			outcome = "failure"
		}
		c.observer.ObserveBackendCall(op, outcome, time.Since(start))
	}
	return body, err
}

func (c *Client) roundTrip(ctx context.Context, op, method, path string, payload any) ([]byte, error) {
	var reader io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("users: encode %s: %w", op, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("users: build %s request: %w", op, err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("users: %s: %w", op, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &StatusError{Op: op, Code: resp.StatusCode}
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("users: read %s response: %w", op, err)
	}
	return body, nil
}

// decodeRecord accepts a single object or an array holding the record.
func decodeRecord(body []byte) *User {
	body = bytes.TrimSpace(body)
	if len(body) == 0 {
		return nil
	}
	if body[0] == '[' {
		var list []User
		if err := json.Unmarshal(body, &list); err != nil || len(list) == 0 {
			return nil
		}
		return &list[0]
	}
	var user User
	if err := json.Unmarshal(body, &user); err != nil {
		return nil
	}
	return &user
}

// IsStatus reports whether err is a StatusError carrying code.
func IsStatus(err error, code int) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.Code == code
}
