/**
 * @description
 * Team operations on the canonical store.
 *
 * @dependencies
 * - gorm.io/gorm + clause: ON CONFLICT upserts
 * - backend/internal/models
 */

package store

import (
	"context"

	"github.com/scrimline-project/backend/internal/models"
	"gorm.io/gorm/clause"
)

// teamMutableColumns are overwritten on every re-sighting of an identity
var teamMutableColumns = []string{"name", "slug", "country_code", "logo_url", "raw_metadata", "updated_at"}

// UpsertTeam inserts or updates a team keyed on (source_type, source_id) and
// returns the canonical row. The insert-or-update is a single statement, so
// repeated or concurrent resolution of one identity yields exactly one row
// with the last writer's attributes.
func (s *Store) UpsertTeam(ctx context.Context, team *models.Team) (*models.Team, error) {
	if err := validateIdentity(team.SourceType, team.SourceID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns(teamMutableColumns),
	}).Create(team).Error
	if err != nil {
		return nil, translate("team", err)
	}

	// Re-read by identity: on conflict the generated id was discarded and the
	// existing row kept its original one.
	var row models.Team
	err = s.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", team.SourceType, team.SourceID).
		First(&row).Error
	if err != nil {
		return nil, translate("team", err)
	}
	return &row, nil
}

// GetTeam fetches a team by canonical id
func (s *Store) GetTeam(ctx context.Context, id string) (*models.Team, error) {
	var row models.Team
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate("team", err)
	}
	return &row, nil
}

// GetTeamBySource fetches a team by its provider identity
func (s *Store) GetTeamBySource(ctx context.Context, sourceType string, sourceID int64) (*models.Team, error) {
	var row models.Team
	err := s.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", sourceType, sourceID).
		First(&row).Error
	if err != nil {
		return nil, translate("team", err)
	}
	return &row, nil
}
