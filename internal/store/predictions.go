/**
 * @description
 * Prediction operations on the canonical store.
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

var predictionMutableColumns = []string{"source_id", "prediction_payload", "updated_at"}

// UpsertPrediction inserts or updates a prediction keyed on
// (match_id, source_type): at most one prediction per provider per match.
func (s *Store) UpsertPrediction(ctx context.Context, prediction *models.Prediction) (*models.Prediction, error) {
	if prediction.MatchID == "" {
		return nil, &ValidationError{Field: "match_id", Reason: "must not be empty"}
	}
	if strings.TrimSpace(prediction.SourceType) == "" {
		return nil, &ValidationError{Field: "source_type", Reason: "must not be empty"}
	}
	if len(prediction.PredictionPayload) == 0 {
		return nil, &ValidationError{Field: "prediction_payload", Reason: "must not be empty"}
	}

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "match_id"}, {Name: "source_type"}},
		DoUpdates: clause.AssignmentColumns(predictionMutableColumns),
	}).Create(prediction).Error
	if err != nil {
		return nil, translate("prediction", err)
	}

	var row models.Prediction
	err = s.db.WithContext(ctx).
		Where("match_id = ? AND source_type = ?", prediction.MatchID, prediction.SourceType).
		First(&row).Error
	if err != nil {
		return nil, translate("prediction", err)
	}
	return &row, nil
}

// GetPredictions returns all predictions stored for a match
func (s *Store) GetPredictions(ctx context.Context, matchID string) ([]models.Prediction, error) {
	var rows []models.Prediction
	err := s.db.WithContext(ctx).
		Where("match_id = ?", matchID).
		Order("source_type ASC").
		Find(&rows).Error
	if err != nil {
		return nil, translate("prediction", err)
	}
	return rows, nil
}
