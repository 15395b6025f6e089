package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"
)

// StateRepo is a small key/value table for application state that outlives
// sessions, such as the mastered-word total.
type StateRepo struct {
	db  *sql.DB
	now func() time.Time
}

// Get returns the value stored under key.
func (r *StateRepo) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("get app_state %q: %w", key, err)
	}
	return v, true, nil
}

// Set stores value under key, replacing any previous value.
func (r *StateRepo) Set(ctx context.Context, key, value string) error {
	if key == "" {
		return fmt.Errorf("set app_state: empty key")
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO app_state(key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, formatTime(r.now()),
	)
	if err != nil {
		return fmt.Errorf("set app_state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (r *StateRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM app_state WHERE key = ?`, key); err != nil {
		return fmt.Errorf("delete app_state %q: %w", key, err)
	}
	return nil
}

// Load returns the integer stored under key, or 0 when it is unset.
func (r *StateRepo) Load(ctx context.Context, key string) (int, error) {
	v, ok, err := r.Get(ctx, key)
	if err != nil || !ok {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("app_state %q is not an integer: %w", key, err)
	}
	return n, nil
}

// Save stores an integer under key.
func (r *StateRepo) Save(ctx context.Context, key string, value int) error {
	return r.Set(ctx, key, strconv.Itoa(value))
}
