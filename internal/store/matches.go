/**
 * @description
 * Match operations on the canonical store: upsert, lookups with optional
 * includes, filtered listing, and cascading delete.
 *
 * @dependencies
 * - gorm.io/gorm + clause: ON CONFLICT upserts
 * - backend/internal/models
 */

package store

import (
	"context"
	"time"

	"github.com/scrimline-project/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// matchMutableColumns: the upsert fully overwrites mutable state, including a
// mid-lifecycle team or boType correction from the provider. No merge
// semantics beyond "last payload wins"; history lives in earlier raw payloads.
var matchMutableColumns = []string{
	"slug", "team1_id", "team2_id", "tournament_id",
	"status", "start_date", "bo_type", "tier",
	"team1_score", "team2_score", "winner_team_id", "loser_team_id",
	"raw_payload", "last_fetched_at", "updated_at",
}

// MatchInclude selects which dependent rows to load with a match
type MatchInclude struct {
	Predictions bool
	OddsQuotes  bool
}

// MatchFilter narrows ListMatches results
type MatchFilter struct {
	Status     string
	SourceType string
	StartFrom  *time.Time
	StartTo    *time.Time
	Limit      int
}

// UpsertMatch inserts or updates a match keyed on (source_type, source_id)
// and returns the canonical row.
func (s *Store) UpsertMatch(ctx context.Context, match *models.Match) (*models.Match, error) {
	if err := validateIdentity(match.SourceType, match.SourceID); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Omit(clause.Associations).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "source_type"}, {Name: "source_id"}},
		DoUpdates: clause.AssignmentColumns(matchMutableColumns),
	}).Create(match).Error
	if err != nil {
		return nil, translate("match", err)
	}

	var row models.Match
	err = s.db.WithContext(ctx).
		Where("source_type = ? AND source_id = ?", match.SourceType, match.SourceID).
		First(&row).Error
	if err != nil {
		return nil, translate("match", err)
	}
	return &row, nil
}

// GetMatch fetches a match by canonical id. Team and tournament rows are
// always loaded; predictions and odds only when asked for.
func (s *Store) GetMatch(ctx context.Context, id string, include MatchInclude) (*models.Match, error) {
	var row models.Match
	if err := s.matchQuery(ctx, include).Where("matches.id = ?", id).First(&row).Error; err != nil {
		return nil, translate("match", err)
	}
	return &row, nil
}

// GetMatchBySource fetches a match by its provider identity
func (s *Store) GetMatchBySource(ctx context.Context, sourceType string, sourceID int64) (*models.Match, error) {
	var row models.Match
	err := s.matchQuery(ctx, MatchInclude{}).
		Where("matches.source_type = ? AND matches.source_id = ?", sourceType, sourceID).
		First(&row).Error
	if err != nil {
		return nil, translate("match", err)
	}
	return &row, nil
}

// ListMatches returns matches ordered by start date, newest first
func (s *Store) ListMatches(ctx context.Context, filter MatchFilter, include MatchInclude) ([]models.Match, error) {
	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	query := s.matchQuery(ctx, include)
	if filter.Status != "" {
		query = query.Where("matches.status = ?", filter.Status)
	}
	if filter.SourceType != "" {
		query = query.Where("matches.source_type = ?", filter.SourceType)
	}
	if filter.StartFrom != nil {
		query = query.Where("matches.start_date >= ?", *filter.StartFrom)
	}
	if filter.StartTo != nil {
		query = query.Where("matches.start_date <= ?", *filter.StartTo)
	}

	var rows []models.Match
	err := query.Order("matches.start_date DESC").Limit(limit).Find(&rows).Error
	if err != nil {
		return nil, translate("match", err)
	}
	return rows, nil
}

// DeleteMatch removes a match and its dependent predictions and odds quotes
// in one transaction. Dependents have no independent lifecycle.
func (s *Store) DeleteMatch(ctx context.Context, id string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row models.Match
		if err := tx.Select("id").Where("id = ?", id).First(&row).Error; err != nil {
			return translate("match", err)
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.Prediction{}).Error; err != nil {
			return translate("prediction", err)
		}
		if err := tx.Where("match_id = ?", id).Delete(&models.OddsQuote{}).Error; err != nil {
			return translate("odds_quote", err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Match{}).Error; err != nil {
			return translate("match", err)
		}
		return nil
	})
}

func (s *Store) matchQuery(ctx context.Context, include MatchInclude) *gorm.DB {
	query := s.db.WithContext(ctx).
		Model(&models.Match{}).
		Preload("Team1").
		Preload("Team2").
		Preload("Tournament")
	if include.Predictions {
		query = query.Preload("Predictions")
	}
	if include.OddsQuotes {
		query = query.Preload("OddsQuotes")
	}
	return query
}
