/**
 * @description
 * Tournament operations on the canonical store.
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

var tournamentMutableColumns = []string{
	"name", "slug", "tier", "tier_rank", "prize_pool",
	"status", "start_date", "end_date", "raw_metadata", "updated_at",
}

// UpsertTournament inserts or updates a tournament keyed on
// (source_type, source_id) and returns the canonical row.
func (s *Store) UpsertTournament(ctx context.Context, tournament *models.Tournament) (*models.Tournament, error) {
	if err := validateIdentity(tournament.SourceType, tournament.SourceID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns(tournamentMutableColumns),
	}).Create(tournament).Error
	if err != nil {
		return nil, translate("tournament", err)
	}

	var row models.Tournament
	err = s.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", tournament.SourceType, tournament.SourceID).
		First(&row).Error
	if err != nil {
		return nil, translate("tournament", err)
	}
	return &row, nil
}

// GetTournament fetches a tournament by canonical id
func (s *Store) GetTournament(ctx context.Context, id string) (*models.Tournament, error) {
	var row models.Tournament
	if err := s.db.WithContext(ctx).Where("id = ?", id).First(&row).Error; err != nil {
		return nil, translate("tournament", err)
	}
	return &row, nil
}
