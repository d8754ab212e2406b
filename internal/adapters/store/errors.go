// Package store persists business cards and their social accounts.
package store

import (
	"errors"
	"fmt"
)

var (
	// ErrConnectionFailed is returned when the database cannot be reached.
	ErrConnectionFailed = errors.New("database connection failed")

	// ErrMigrationFailed is returned when schema migrations cannot be applied.
	ErrMigrationFailed = errors.New("database migration failed")

	// ErrTxFailed is returned when a transaction cannot begin, commit or roll back.
	ErrTxFailed = errors.New("transaction failed")

	// ErrUnsupportedDriver is returned for database drivers other than
	// sqlite3, pgx and memory.
	ErrUnsupportedDriver = errors.New("unsupported database driver")
)

// StoreError adds the failing operation and entity to an error. Not-found
// errors wrap the domain sentinels, so callers can use errors.Is with
// domain.ErrCardNotFound and domain.ErrSocialAccountNotFound.
type StoreError struct {
	Op      string // e.g. "GetCard"
	Entity  string // "card" or "social_account"
	ID      string
	Message string
	Err     error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s %s %s: %s", e.Op, e.Entity, e.ID, e.Message)
	}
	if e.Entity != "" {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Entity, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func NewStoreError(op, entity, id, message string, err error) *StoreError {
	return &StoreError{Op: op, Entity: entity, ID: id, Message: message, Err: err}
}
