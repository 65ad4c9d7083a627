/**
 * @description
 * Error taxonomy for the canonical store.
 * Maps Postgres constraint failures onto typed errors so callers can react
 * without parsing driver strings. Transport errors pass through untouched;
 * every store operation is safe for the caller to retry.
 *
 * @dependencies
 * - github.com/jackc/pgconn: Postgres error codes
 * - gorm.io/gorm
 */

package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgconn"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("record not found")

// ValidationError marks a malformed or incomplete input. Not retryable.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError marks an identity-key uniqueness violation. The public upsert
// contract cannot produce one; seeing it means a caller bypassed the resolver.
type ConflictError struct {
	Entity string
	Err    error
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s identity conflict: %v", e.Entity, e.Err)
}

func (e *ConflictError) Unwrap() error { return e.Err }

// ReferenceError marks a foreign key that could not be satisfied. Resolution
// creates referenced rows before writing, so this signals a storage fault.
type ReferenceError struct {
	Entity string
	Err    error
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("%s references a missing row: %v", e.Entity, e.Err)
}

func (e *ReferenceError) Unwrap() error { return e.Err }

// Postgres error codes we translate
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// translate maps a storage error onto the taxonomy
func translate(entity string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if pgErr, ok := err.(*pgconn.PgError); ok {
		switch pgErr.Code {
		case pgUniqueViolation:
			return &ConflictError{Entity: entity, Err: err}
		case pgForeignKeyViolation:
			return &ReferenceError{Entity: entity, Err: err}
		}
	}
	// sqlite (used by the test suite) reports constraints as plain strings
	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return &ConflictError{Entity: entity, Err: err}
	} else if strings.Contains(msg, "FOREIGN KEY constraint failed") {
		return &ReferenceError{Entity: entity, Err: err}
	}
	return err
}

// validateIdentity checks a provider identity tuple
func validateIdentity(sourceType string, sourceID int64) error {
	if strings.TrimSpace(sourceType) == "" {
		return &ValidationError{Field: "source_type", Reason: "must not be empty"}
	}
	if sourceID <= 0 {
		return &ValidationError{Field: "source_id", Reason: "must be a positive provider id"}
	}
	return nil
}
