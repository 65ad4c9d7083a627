/**
 * @description
 * DataSource registry operations.
 * Sources are immutable after creation except for the activation flag.
 *
 * @dependencies
 * - gorm.io/gorm + clause
 * - backend/internal/models
 */

package store

import (
	"context"
	"strings"

	"github.com/scrimline-project/backend/internal/models"
	"gorm.io/gorm/clause"
)

// RegisterSource creates a provider entry if it does not exist yet and
// returns the registry row. Existing rows are left untouched.
func (s *Store) RegisterSource(ctx context.Context, name, displayName string) (*models.DataSource, error) {
	if strings.TrimSpace(name) == "" {
		return nil, &ValidationError{Field: "name", Reason: "must not be empty"}
	}

	source := &models.DataSource{Name: name, DisplayName: displayName, IsActive: true}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(source).Error
	if err != nil {
		return nil, translate("data_source", err)
	}

	return s.GetSourceByName(ctx, name)
}

// GetSourceByName fetches a registry row by provider name
func (s *Store) GetSourceByName(ctx context.Context, name string) (*models.DataSource, error) {
	var row models.DataSource
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&row).Error; err != nil {
		return nil, translate("data_source", err)
	}
	return &row, nil
}

// ListSources returns registered providers, optionally only active ones
func (s *Store) ListSources(ctx context.Context, activeOnly bool) ([]models.DataSource, error) {
	query := s.db.WithContext(ctx).Model(&models.DataSource{})
	if activeOnly {
		query = query.Where("is_active = ?", true)
	}

	var rows []models.DataSource
	if err := query.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, translate("data_source", err)
	}
	return rows, nil
}

// SetSourceActive flips the activation flag, the only mutable field
func (s *Store) SetSourceActive(ctx context.Context, name string, active bool) error {
	result := s.db.WithContext(ctx).
		Model(&models.DataSource{}).
		Where("name = ?", name).
		Update("is_active", active)
	if result.Error != nil {
		return translate("data_source", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
