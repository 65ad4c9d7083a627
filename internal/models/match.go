/**
 * @description
 * Match database model.
 * Maps to the 'matches' table; the central canonical entity.
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

// Match lifecycle states as providers report them
const (
	MatchStatusUpcoming = "upcoming"
	MatchStatusLive     = "live"
	MatchStatusFinished = "finished"
)

// Match is a provider-scoped match row keyed on (source_type, source_id).
// Score and winner/loser columns are all null until the match finishes, then
// all populated together: the winner is whichever team holds the higher score.
// RawPayload keeps the provider response verbatim so scalar columns can be
// re-derived later without re-fetching.
type Match struct {
	ID            string         `gorm:"column:id;primaryKey" json:"id"`
	SourceType    string         `gorm:"column:source_type;uniqueIndex:uq_matches_source;not null" json:"source_type"`
	SourceID      int64          `gorm:"column:source_id;uniqueIndex:uq_matches_source;not null" json:"source_id"`
	Slug          string         `gorm:"column:slug" json:"slug,omitempty"`
	Team1ID       string         `gorm:"column:team1_id;index;not null" json:"team1_id"`
	Team2ID       string         `gorm:"column:team2_id;index;not null" json:"team2_id"`
	TournamentID  *string        `gorm:"column:tournament_id;index" json:"tournament_id,omitempty"`
	Status        string         `gorm:"column:status;default:upcoming;index" json:"status"`
	StartDate     *time.Time     `gorm:"column:start_date;index" json:"start_date,omitempty"`
	BoType        int            `gorm:"column:bo_type" json:"bo_type,omitempty"`
	Tier          string         `gorm:"column:tier" json:"tier,omitempty"`
	Team1Score    *int           `gorm:"column:team1_score" json:"team1_score,omitempty"`
	Team2Score    *int           `gorm:"column:team2_score" json:"team2_score,omitempty"`
	WinnerTeamID  *string        `gorm:"column:winner_team_id" json:"winner_team_id,omitempty"`
	LoserTeamID   *string        `gorm:"column:loser_team_id" json:"loser_team_id,omitempty"`
	RawPayload    datatypes.JSON `gorm:"column:raw_payload" json:"raw_payload,omitempty"`
	LastFetchedAt time.Time      `gorm:"column:last_fetched_at" json:"last_fetched_at"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Team1      *Team       `gorm:"foreignKey:Team1ID" json:"team1,omitempty"`
	Team2      *Team       `gorm:"foreignKey:Team2ID" json:"team2,omitempty"`
	Tournament *Tournament `gorm:"foreignKey:TournamentID" json:"tournament,omitempty"`

	Predictions []Prediction `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"predictions,omitempty"`
	OddsQuotes  []OddsQuote  `gorm:"foreignKey:MatchID;constraint:OnDelete:CASCADE" json:"odds_quotes,omitempty"`
}

// TableName overrides the table name used by Match to `matches`
func (Match) TableName() string {
	return "matches"
}

// BeforeCreate assigns a fresh id when none was provided
func (m *Match) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// IsFinished reports whether the row is in its terminal state
func (m *Match) IsFinished() bool {
	return m.Status == MatchStatusFinished
}
