/**
 * @description
 * Analytics over stored matches: prediction-vs-outcome comparison and
 * value-bet evaluation across bookmaker quotes. Both read the canonical store
 * and never write; a match with no usable inputs yields an empty/inapplicable
 * result rather than an error.
 *
 * @dependencies
 * - backend/internal/analytics: the betting math
 * - backend/internal/store
 * - gorm.io/gorm
 */

package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/scrimline-project/backend/internal/analytics"
	"github.com/scrimline-project/backend/internal/metrics"
	"github.com/scrimline-project/backend/internal/models"
	"github.com/scrimline-project/backend/internal/store"
	"gorm.io/gorm"
)

type AnalyticsService struct {
	DB    *gorm.DB
	Store *store.Store
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{DB: db, Store: store.New(db)}
}

// OutcomeComparison is the result of checking a stored prediction against a
// finished match's actual outcome. Applicable is false when the match is not
// finished or carries no prediction; Reason says why.
type OutcomeComparison struct {
	MatchID               string   `json:"match_id"`
	Applicable            bool     `json:"applicable"`
	Reason                string   `json:"reason,omitempty"`
	SourceType            string   `json:"source_type,omitempty"`
	PredictedWinnerTeamID *string  `json:"predicted_winner_team_id,omitempty"`
	ActualWinnerTeamID    *string  `json:"actual_winner_team_id,omitempty"`
	Correct               *bool    `json:"correct,omitempty"`
	Confidence            *float64 `json:"confidence,omitempty"`
}

// ValueBetCandidate is one side of one bookmaker quote whose expected value
// cleared the caller's threshold
type ValueBetCandidate struct {
	MatchID              string  `json:"match_id"`
	SourceType           string  `json:"source_type"`
	Provider             string  `json:"provider"`
	Side                 int     `json:"side"`
	TeamID               string  `json:"team_id"`
	TeamName             string  `json:"team_name,omitempty"`
	DecimalOdds          float64 `json:"decimal_odds"`
	ImpliedProbability   float64 `json:"implied_probability"`
	EstimatedProbability float64 `json:"estimated_probability"`
	ExpectedValue        float64 `json:"expected_value"`
	KellyFraction        float64 `json:"kelly_fraction"`
}

// CompareOutcome grades the stored prediction for a finished match
func (s *AnalyticsService) CompareOutcome(ctx context.Context, matchID string) (*OutcomeComparison, error) {
	match, err := s.Store.GetMatch(ctx, matchID, store.MatchInclude{Predictions: true})
	if err != nil {
		return nil, err
	}

	result := &OutcomeComparison{MatchID: matchID}
	if !match.IsFinished() || match.WinnerTeamID == nil {
		result.Reason = "match is not finished"
		return result, nil
	}
	if len(match.Predictions) == 0 {
		result.Reason = "no prediction stored for this match"
		return result, nil
	}

	prediction := pickPrediction(match)
	fields, err := decodePredictionFields(prediction)
	if err != nil {
		return nil, err
	}

	predicted := predictedWinnerCanonicalID(match, fields.WinnerTeamID)
	if predicted == nil {
		result.Reason = "predicted winner is not one of the match teams"
		return result, nil
	}

	correct := *predicted == *match.WinnerTeamID
	result.Applicable = true
	result.SourceType = prediction.SourceType
	result.PredictedWinnerTeamID = predicted
	result.ActualWinnerTeamID = match.WinnerTeamID
	result.Correct = &correct
	if fields.ScoresData != nil {
		confidence := analytics.Clamp01(fields.ScoresData.OverallProximityFactor)
		result.Confidence = &confidence
	}
	return result, nil
}

// EvaluateValueBets scans every stored bookmaker quote for the match and
// returns the sides whose expected value strictly exceeds minExpectedValue.
// Matches without odds, without a prediction, or without a usable probability
// estimate yield an empty slice.
func (s *AnalyticsService) EvaluateValueBets(ctx context.Context, matchID string, minExpectedValue float64) ([]ValueBetCandidate, error) {
	match, err := s.Store.GetMatch(ctx, matchID, store.MatchInclude{Predictions: true, OddsQuotes: true})
	if err != nil {
		return nil, err
	}

	candidates := []ValueBetCandidate{}
	if len(match.OddsQuotes) == 0 || len(match.Predictions) == 0 {
		return candidates, nil
	}

	prediction := pickPrediction(match)
	fields, err := decodePredictionFields(prediction)
	if err != nil {
		return nil, err
	}
	prob1, prob2, ok := estimateProbabilities(match, fields)
	if !ok {
		return candidates, nil
	}

	for i := range match.OddsQuotes {
		quote := &match.OddsQuotes[i]
		if c := evaluateSide(match, quote, 1, quote.Team1Odds, prob1); c != nil && c.ExpectedValue > minExpectedValue {
			candidates = append(candidates, *c)
		}
		if c := evaluateSide(match, quote, 2, quote.Team2Odds, prob2); c != nil && c.ExpectedValue > minExpectedValue {
			candidates = append(candidates, *c)
		}
	}

	metrics.ValueBetEvaluations.Inc()
	return candidates, nil
}

func evaluateSide(match *models.Match, quote *models.OddsQuote, side int, odds *float64, estimate float64) *ValueBetCandidate {
	// Degenerate prices (<= 1) cannot pay out
	if odds == nil || *odds <= 1 {
		return nil
	}
	teamID := match.Team1ID
	teamName := ""
	if match.Team1 != nil {
		teamName = match.Team1.Name
	}
	if side == 2 {
		teamID = match.Team2ID
		teamName = ""
		if match.Team2 != nil {
			teamName = match.Team2.Name
		}
	}
	return &ValueBetCandidate{
		MatchID:              match.ID,
		SourceType:           quote.SourceType,
		Provider:             quote.Provider,
		Side:                 side,
		TeamID:               teamID,
		TeamName:             teamName,
		DecimalOdds:          *odds,
		ImpliedProbability:   analytics.ImpliedProbability(*odds),
		EstimatedProbability: estimate,
		ExpectedValue:        analytics.ExpectedValue(estimate, *odds),
		KellyFraction:        analytics.KellyFraction(estimate, *odds),
	}
}

// estimateProbabilities derives per-side win probabilities from the stored
// prediction: explicit probabilities when the model emitted them, otherwise
// the predicted winner gets the model's overall proximity factor and the
// other side its complement.
func estimateProbabilities(match *models.Match, fields *models.PredictionFields) (prob1, prob2 float64, ok bool) {
	if fields.Team1WinProbability != nil && fields.Team2WinProbability != nil {
		return analytics.Clamp01(*fields.Team1WinProbability), analytics.Clamp01(*fields.Team2WinProbability), true
	}
	predicted := predictedWinnerCanonicalID(match, fields.WinnerTeamID)
	if predicted == nil || fields.ScoresData == nil {
		return 0, 0, false
	}
	confidence := analytics.Clamp01(fields.ScoresData.OverallProximityFactor)
	if *predicted == match.Team1ID {
		return confidence, 1 - confidence, true
	}
	return 1 - confidence, confidence, true
}

// predictedWinnerCanonicalID maps a provider-scoped team id to one of the
// match's canonical teams via their source ids. Requires Team1/Team2 loaded.
func predictedWinnerCanonicalID(match *models.Match, sourceTeamID int64) *string {
	if match.Team1 != nil && match.Team1.SourceID == sourceTeamID {
		return &match.Team1.ID
	}
	if match.Team2 != nil && match.Team2.SourceID == sourceTeamID {
		return &match.Team2.ID
	}
	return nil
}

// pickPrediction prefers the prediction from the same provider that supplied
// the match row, falling back to the first stored one
func pickPrediction(match *models.Match) *models.Prediction {
	for i := range match.Predictions {
		if match.Predictions[i].SourceType == match.SourceType {
			return &match.Predictions[i]
		}
	}
	return &match.Predictions[0]
}

func decodePredictionFields(prediction *models.Prediction) (*models.PredictionFields, error) {
	var fields models.PredictionFields
	if err := json.Unmarshal(prediction.PredictionPayload, &fields); err != nil {
		return nil, fmt.Errorf("decode prediction payload: %w", err)
	}
	return &fields, nil
}
