/**
 * @description
 * OddsQuote database model.
 * Maps to the 'odds_quotes' table; owned by a match, at most one live quote
 * per bookmaker per match per provider feed.
 *
 * @dependencies
 * - gorm.io/gorm
 * - gorm.io/datatypes
 * - github.com/google/uuid
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// OddsQuote stores a bookmaker's current price pair for a match. Identity is
// (match_id, source_type, provider); re-ingestion overwrites, no history kept.
// Implied probabilities are 1/odds per side; their sum is allowed to exceed 1
// (the bookmaker's overround is preserved as-is).
type OddsQuote struct {
	ID               string         `gorm:"column:id;primaryKey" json:"id"`
	MatchID          string         `gorm:"column:match_id;uniqueIndex:uq_odds_match_source_provider;not null" json:"match_id"`
	SourceType       string         `gorm:"column:source_type;uniqueIndex:uq_odds_match_source_provider;not null" json:"source_type"`
	Provider         string         `gorm:"column:provider;uniqueIndex:uq_odds_match_source_provider;not null" json:"provider"`
	Team1Odds        *float64       `gorm:"column:team1_odds;type:decimal(10,4)" json:"team1_odds,omitempty"`
	Team2Odds        *float64       `gorm:"column:team2_odds;type:decimal(10,4)" json:"team2_odds,omitempty"`
	Team1ImpliedProb *float64       `gorm:"column:team1_implied_prob;type:decimal(10,6)" json:"team1_implied_prob,omitempty"`
	Team2ImpliedProb *float64       `gorm:"column:team2_implied_prob;type:decimal(10,6)" json:"team2_implied_prob,omitempty"`
	OddsPayload      datatypes.JSON `gorm:"column:odds_payload" json:"odds_payload,omitempty"`
	FetchedAt        time.Time      `gorm:"column:fetched_at" json:"fetched_at"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by OddsQuote to `odds_quotes`
func (OddsQuote) TableName() string {
	return "odds_quotes"
}

// BeforeCreate assigns a fresh id when none was provided
func (q *OddsQuote) BeforeCreate(*gorm.DB) error {
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return nil
}
