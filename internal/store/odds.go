/**
 * @description
 * Odds quote operations on the canonical store.
 *
 * @dependencies
 * - gorm.io/gorm + clause: ON CONFLICT upserts
 * - backend/internal/models
 */

package store

import (
	"context"
	"strings"

	"github.com/scrimline-project/backend/internal/models"
	"gorm.io/gorm/clause"
)

var oddsMutableColumns = []string{
	"team1_odds", "team2_odds", "team1_implied_prob", "team2_implied_prob",
	"odds_payload", "fetched_at", "updated_at",
}

// UpsertOddsQuote inserts or updates a quote keyed on
// (match_id, source_type, provider). Re-ingestion overwrites the live quote;
// no price history is kept.
func (s *Store) UpsertOddsQuote(ctx context.Context, quote *models.OddsQuote) (*models.OddsQuote, error) {
	if quote.MatchID == "" {
		return nil, &ValidationError{Field: "match_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(quote.SourceType) == "" {
		return nil, &ValidationError{Field: "source_type", Reason: "must not be empty"}
	}
	if strings.TrimSpace(quote.Provider) == "" {
		return nil, &ValidationError{Field: "provider", Reason: "must not be empty"}
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "source_type"}, {Name: "provider"}},
		DoUpdates: clause.AssignmentColumns(oddsMutableColumns),
	}).Create(quote).Error
	if err != nil {
		return nil, translate("odds_quote", err)
	}

	var row models.OddsQuote
	err = s.db.WithContext(ctx).
		Where("match_id = ? AND source_type = ? AND provider = ?", quote.MatchID, quote.SourceType, quote.Provider).
		First(&row).Error
	if err != nil {
		return nil, translate("odds_quote", err)
	}
	return &row, nil
}

// GetOddsQuotes returns quotes stored for a match, optionally filtered by
// bookmaker provider
func (s *Store) GetOddsQuotes(ctx context.Context, matchID string, provider string) ([]models.OddsQuote, error) {
	query := s.db.WithContext(ctx).Where("match_id = ?", matchID)
	if provider != "" {
		query = query.Where("provider = ?", provider)
	}

	var rows []models.OddsQuote
	if err := query.Order("provider ASC").Find(&rows).Error; err != nil {
		return nil, translate("odds_quote", err)
	}
	return rows, nil
}
