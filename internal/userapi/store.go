// Package userapi is a small stand-in for the public users REST API so the
// directory can run against a local backend.
package userapi

import (
	"context"

	"github.com/noah-isme/userdir/internal/users"
)

// Store persists user records. Implementations report missing ids with
// httpx.ErrNotFound and username clashes with httpx.ErrDuplicate.
type Store interface {
	List(ctx context.Context) ([]users.User, error)
	Get(ctx context.Context, id int64) (users.User, error)
	Create(ctx context.Context, draft users.Draft) (users.User, error)
	Update(ctx context.Context, user users.User) (users.User, error)
	Delete(ctx context.Context, id int64) error
}
