package userapi

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/noah-isme/userdir/internal/platform/db"
	"github.com/noah-isme/userdir/internal/platform/httpx"
	"github.com/noah-isme/userdir/internal/users"
)

const uniqueViolation = "23505"

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL,
	username TEXT NOT NULL,
	email TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT uq_users_username UNIQUE (username)
)`

// PostgresStore provides PostgreSQL backed persistence.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore constructs a store on pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the users table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("userapi: ensure schema: %w", err)
	}
	return nil
}

// List returns all users ordered by id.
func (s *PostgresStore) List(ctx context.Context) ([]users.User, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, username, email FROM users ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := []users.User{}
	for rows.Next() {
		var u users.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Username, &u.Email); err != nil {
			return nil, err
		}
		list = append(list, u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return list, nil
}

// Get returns the user with id.
func (s *PostgresStore) Get(ctx context.Context, id int64) (users.User, error) {
	var u users.User
	err := s.pool.QueryRow(ctx, `SELECT id, name, username, email FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email)
	return u, mapError(err, id)
}

// Create inserts draft and returns the stored row.
func (s *PostgresStore) Create(ctx context.Context, draft users.Draft) (users.User, error) {
	return insertUser(ctx, s.pool, draft)
}

// Update replaces name, username and email of user.ID.
func (s *PostgresStore) Update(ctx context.Context, user users.User) (users.User, error) {
	var u users.User
	err := s.pool.QueryRow(ctx, `UPDATE users SET name = $2, username = $3, email = $4 WHERE id = $1
RETURNING id, name, username, email`, user.ID, user.Name, user.Username, user.Email).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email)
	return u, mapError(err, user.ID)
}

// Delete removes the user with id.
func (s *PostgresStore) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("user %d: %w", id, httpx.ErrNotFound)
	}
	return nil
}

// SeedIfEmpty inserts drafts in one transaction when the table has no rows.
// It reports how many rows were inserted.
func (s *PostgresStore) SeedIfEmpty(ctx context.Context, drafts []users.Draft) (int, error) {
	inserted := 0
	err := db.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		var count int
		if err := tx.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		for _, d := range drafts {
			if _, err := insertUser(ctx, tx, d); err != nil {
				return err
			}
			inserted++
		}
		return nil
	})
	return inserted, err
}

type queryRower interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func insertUser(ctx context.Context, q queryRower, draft users.Draft) (users.User, error) {
	var u users.User
	err := q.QueryRow(ctx, `INSERT INTO users (name, username, email) VALUES ($1, $2, $3)
RETURNING id, name, username, email`, draft.Name, draft.Username, draft.Email).
		Scan(&u.ID, &u.Name, &u.Username, &u.Email)
	if err != nil {
		return users.User{}, mapError(err, 0)
	}
	return u, nil
}

func mapError(err error, id int64) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("user %d: %w", id, httpx.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return fmt.Errorf("%s: %w", pgErr.ConstraintName, httpx.ErrDuplicate)
	}
	return err
}
