/**
 * @description
 * Prediction database model plus the typed projection of its payload.
 * Maps to the 'predictions' table; owned by a match, at most one row per
 * provider per match.
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

// Prediction stores a provider's model output for a match as an opaque blob.
// Identity is (match_id, source_type); re-ingestion overwrites the payload.
type Prediction struct {
	ID                string         `gorm:"column:id;primaryKey" json:"id"`
	MatchID           string         `gorm:"column:match_id;uniqueIndex:uq_predictions_match_source;not null" json:"match_id"`
	SourceType        string         `gorm:"column:source_type;uniqueIndex:uq_predictions_match_source;not null" json:"source_type"`
	SourceID          int64          `gorm:"column:source_id" json:"source_id"`
	PredictionPayload datatypes.JSON `gorm:"column:prediction_payload;not null" json:"prediction_payload"`
	CreatedAt         time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName overrides the table name used by Prediction to `predictions`
func (Prediction) TableName() string {
	return "predictions"
}

// BeforeCreate assigns a fresh id when none was provided
func (p *Prediction) BeforeCreate(*gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// PredictionFields is the lossy projection of the stored payload that the
// analytics layer reads. Team ids here are the PROVIDER's ids, not canonical
// ones; callers map them through the match's team rows.
type PredictionFields struct {
	SourceID            int64                 `json:"id,omitempty"`
	SourceMatchID       int64                 `json:"match_id,omitempty"`
	WinnerTeamID        int64                 `json:"prediction_winner_team_id"`
	Team1Score          int                   `json:"prediction_team1_score"`
	Team2Score          int                   `json:"prediction_team2_score"`
	Team1WinProbability *float64              `json:"team1_win_probability,omitempty"`
	Team2WinProbability *float64              `json:"team2_win_probability,omitempty"`
	ScoresData          *PredictionScoresData `json:"prediction_scores_data,omitempty"`
}

// PredictionScoresData carries the provider model's proximity metrics.
type PredictionScoresData struct {
	PredictedScore          float64            `json:"predicted_score"`
	ProximityFactors        map[string]float64 `json:"proximity_factors,omitempty"`
	ClosestValidScore       []int              `json:"closest_valid_score,omitempty"`
	OverallProximityFactor  float64            `json:"overall_proximity_factor"`
	NeighborProximityFactor float64            `json:"neighbor_proximity_factor"`
}
