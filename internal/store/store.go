/**
 * @description
 * Canonical store over GORM.
 * Typed get/upsert/delete operations for teams, tournaments, matches,
 * predictions, and odds quotes. Every mutation is an atomic upsert keyed on
 * the entity's identity tuple; uniqueness is enforced by the schema, so two
 * racing writers can never produce duplicate rows.
 *
 * @dependencies
 * - gorm.io/gorm
 * - backend/internal/models
 */

package store

import (
	"context"

	"gorm.io/gorm"
)

// Store wraps a gorm handle (or transaction) with the canonical operations
type Store struct {
	db *gorm.DB
}

// New creates a Store over the given database handle
func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Transaction runs fn against a Store bound to one database transaction.
// Any error rolls the whole unit back; nothing is partially applied.
func (s *Store) Transaction(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&Store{db: tx})
	})
}
