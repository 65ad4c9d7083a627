/**
 * @description
 * Raw provider record types.
 * These are the already-parsed structures an external fetcher hands to the
 * ingestion coordinator; this package never touches a wire format itself.
 * Field names follow the provider feeds (team_1/coeff/bet_updates and so on)
 * so a fetched response deserializes straight into them.
 *
 * @dependencies
 * - standard "encoding/json": the verbatim raw blob
 */

package provider

import (
	"encoding/json"
	"time"

	"github.com/scrimline-project/backend/internal/models"
)

// RawTeam is a provider's view of a team inside a match payload
type RawTeam struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug,omitempty"`
	CountryCode string `json:"country_code,omitempty"`
	LogoURL     string `json:"logo_url,omitempty"`
}

// RawTournament is a provider's view of a tournament inside a match payload
type RawTournament struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	Slug      string     `json:"slug,omitempty"`
	Tier      string     `json:"tier,omitempty"`
	TierRank  *int       `json:"tier_rank,omitempty"`
	PrizePool *int64     `json:"prize,omitempty"`
	Status    string     `json:"status,omitempty"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
}

// RawPrediction is a provider model's output for a match. Team ids are the
// provider's own.
type RawPrediction struct {
	ID                  int64                        `json:"id"`
	MatchID             int64                        `json:"match_id"`
	WinnerTeamID        int64                        `json:"prediction_winner_team_id"`
	Team1Score          int                          `json:"prediction_team1_score"`
	Team2Score          int                          `json:"prediction_team2_score"`
	Team1WinProbability *float64                     `json:"team1_win_probability,omitempty"`
	Team2WinProbability *float64                     `json:"team2_win_probability,omitempty"`
	ScoresData          *models.PredictionScoresData `json:"prediction_scores_data,omitempty"`
}

// RawOddsSide is one side of a bookmaker price pair
type RawOddsSide struct {
	Name     string  `json:"name"`
	TeamID   int64   `json:"team_id"`
	Coeff    float64 `json:"coeff"`
	MaxCoeff float64 `json:"max_coeff,omitempty"`
	Active   bool    `json:"active,omitempty"`
}

// RawOdds is a bookmaker's quote for a match as relayed by the provider feed
type RawOdds struct {
	Provider     string       `json:"provider"`
	Team1        *RawOddsSide `json:"team_1"`
	Team2        *RawOddsSide `json:"team_2"`
	Path         string       `json:"path,omitempty"`
	MarketsCount int          `json:"markets_count,omitempty"`
}

// RawMatch is one provider match record with its nested sub-records. The
// provider's sourceType is NOT part of the record; the caller passes it
// alongside, which keeps one payload shape valid for every feed.
type RawMatch struct {
	ID         int64          `json:"id"`
	Slug       string         `json:"slug,omitempty"`
	Status     string         `json:"status"`
	StartDate  *time.Time     `json:"start_date,omitempty"`
	BoType     int            `json:"bo_type,omitempty"`
	Tier       string         `json:"tier,omitempty"`
	Team1      *RawTeam       `json:"team1"`
	Team2      *RawTeam       `json:"team2"`
	Tournament *RawTournament `json:"tournament,omitempty"`
	Team1Score *int           `json:"team1_score,omitempty"`
	Team2Score *int           `json:"team2_score,omitempty"`
	Prediction *RawPrediction `json:"ai_prediction,omitempty"`
	Odds       []RawOdds      `json:"bet_updates,omitempty"`

	// Raw is the provider's full response, preserved verbatim for future
	// re-derivation. When absent the marshalled record stands in for it.
	Raw json.RawMessage `json:"raw,omitempty"`
}
