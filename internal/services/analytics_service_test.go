package services

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/scrimline-project/backend/internal/models"
	"github.com/scrimline-project/backend/internal/store"
	"gorm.io/gorm"
)

func newTestAnalytics(t *testing.T) (*AnalyticsService, *IngestService, *gorm.DB) {
	t.Helper()
	ingest, gdb := newTestIngest(t)
	return NewAnalyticsService(gdb), ingest, gdb
}

// ingestFinished stores a finished match where team1 (provider id 11) beat
// team2 (provider id 12) and the model predicted the given provider team id
func ingestFinished(t *testing.T, ingest *IngestService, sourceID int64, predictedWinner int64) string {
	t.Helper()

	raw := sampleRawMatch(sourceID)
	raw.Status = models.MatchStatusFinished
	score1, score2 := 2, 0
	raw.Team1Score = &score1
	raw.Team2Score = &score2
	raw.Prediction.WinnerTeamID = predictedWinner

	matchID, err := ingest.IngestMatch(context.Background(), "bo3", raw)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	return matchID
}

func TestCompareOutcomeCorrect(t *testing.T) {
	analytics, ingest, _ := newTestAnalytics(t)
	ctx := context.Background()

	matchID := ingestFinished(t, ingest, 2000, 11)

	comparison, err := analytics.CompareOutcome(ctx, matchID)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !comparison.Applicable {
		t.Fatalf("expected applicable comparison, got reason %q", comparison.Reason)
	}
	if comparison.Correct == nil || !*comparison.Correct {
		t.Fatalf("prediction of the actual winner graded wrong: %+v", comparison)
	}
	if comparison.PredictedWinnerTeamID == nil || comparison.ActualWinnerTeamID == nil ||
		*comparison.PredictedWinnerTeamID != *comparison.ActualWinnerTeamID {
		t.Fatalf("winner ids not mapped to the same canonical team: %+v", comparison)
	}
	if comparison.Confidence == nil || *comparison.Confidence != 0.62 {
		t.Fatalf("confidence not carried from the prediction: %+v", comparison.Confidence)
	}
}

func TestCompareOutcomeWrong(t *testing.T) {
	analytics, ingest, _ := newTestAnalytics(t)
	ctx := context.Background()

	matchID := ingestFinished(t, ingest, 2001, 12)

	comparison, err := analytics.CompareOutcome(ctx, matchID)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if !comparison.Applicable {
		t.Fatalf("expected applicable comparison, got reason %q", comparison.Reason)
	}
	if comparison.Correct == nil || *comparison.Correct {
		t.Fatalf("prediction of the loser graded correct: %+v", comparison)
	}
}

func TestCompareOutcomeNotApplicable(t *testing.T) {
	analytics, ingest, _ := newTestAnalytics(t)
	ctx := context.Background()

	// Unfinished match
	upcomingID, err := ingest.IngestMatch(ctx, "bo3", sampleRawMatch(2002))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	comparison, err := analytics.CompareOutcome(ctx, upcomingID)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if comparison.Applicable || comparison.Reason == "" {
		t.Fatalf("unfinished match should not be applicable: %+v", comparison)
	}

	// Finished match without a prediction
	raw := sampleRawMatch(2003)
	raw.Status = models.MatchStatusFinished
	score1, score2 := 0, 2
	raw.Team1Score = &score1
	raw.Team2Score = &score2
	raw.Prediction = nil
	finishedID, err := ingest.IngestMatch(ctx, "bo3", raw)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	comparison, err = analytics.CompareOutcome(ctx, finishedID)
	if err != nil {
		t.Fatalf("compare failed: %v", err)
	}
	if comparison.Applicable {
		t.Fatalf("match without prediction should not be applicable: %+v", comparison)
	}
}

func TestCompareOutcomeUnknownMatch(t *testing.T) {
	analytics, _, _ := newTestAnalytics(t)
	_, err := analytics.CompareOutcome(context.Background(), "no-such-match")
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEvaluateValueBetsExplicitProbabilities(t *testing.T) {
	analytics, ingest, _ := newTestAnalytics(t)
	ctx := context.Background()

	raw := sampleRawMatch(2100)
	p1, p2 := 0.62, 0.38
	raw.Prediction.Team1WinProbability = &p1
	raw.Prediction.Team2WinProbability = &p2

	matchID, err := ingest.IngestMatch(ctx, "bo3", raw)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	// Side 1 at 2.0: EV = 0.62*2.0 - 1 = 0.24. Side 2 at 1.8: EV = -0.316.
	candidates, err := analytics.EvaluateValueBets(ctx, matchID, 0.1)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	c := candidates[0]
	if c.Side != 1 || c.Provider != "bet365" || c.TeamName != "NAVI" {
		t.Fatalf("wrong side surfaced: %+v", c)
	}
	if math.Abs(c.ExpectedValue-0.24) > 1e-9 {
		t.Fatalf("expected value = %v, want 0.24", c.ExpectedValue)
	}
	if math.Abs(c.KellyFraction-0.24) > 1e-9 {
		t.Fatalf("kelly fraction = %v, want 0.24", c.KellyFraction)
	}
	if math.Abs(c.ImpliedProbability-0.5) > 1e-9 {
		t.Fatalf("implied probability = %v, want 0.5", c.ImpliedProbability)
	}

	// A higher threshold excludes it
	none, err := analytics.EvaluateValueBets(ctx, matchID, 0.3)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(none) != 0 {
		t.Fatalf("threshold not applied strictly: %+v", none)
	}
}

func TestEvaluateValueBetsFallbackEstimate(t *testing.T) {
	analytics, ingest, _ := newTestAnalytics(t)
	ctx := context.Background()

	// No explicit probabilities: the predicted winner (team1) gets the
	// model's overall proximity factor, 0.62
	matchID, err := ingest.IngestMatch(ctx, "bo3", sampleRawMatch(2101))
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}

	candidates, err := analytics.EvaluateValueBets(ctx, matchID, 0)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(candidates) != 1 {
		t.Fatalf("expected exactly 1 candidate, got %d: %+v", len(candidates), candidates)
	}
	if math.Abs(candidates[0].EstimatedProbability-0.62) > 1e-9 {
		t.Fatalf("estimate = %v, want 0.62", candidates[0].EstimatedProbability)
	}
}

func TestEvaluateValueBetsEmptyInputs(t *testing.T) {
	analytics, ingest, _ := newTestAnalytics(t)
	ctx := context.Background()

	// No odds stored
	noOdds := sampleRawMatch(2102)
	noOdds.Odds = nil
	noOddsID, err := ingest.IngestMatch(ctx, "bo3", noOdds)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	candidates, err := analytics.EvaluateValueBets(ctx, noOddsID, 0)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if candidates == nil || len(candidates) != 0 {
		t.Fatalf("expected empty non-nil slice, got %+v", candidates)
	}

	// No prediction stored
	noPred := sampleRawMatch(2103)
	noPred.Prediction = nil
	noPredID, err := ingest.IngestMatch(ctx, "bo3", noPred)
	if err != nil {
		t.Fatalf("ingest failed: %v", err)
	}
	candidates, err = analytics.EvaluateValueBets(ctx, noPredID, 0)
	if err != nil {
		t.Fatalf("evaluate failed: %v", err)
	}
	if len(candidates) != 0 {
		t.Fatalf("expected no candidates without a prediction, got %+v", candidates)
	}
}
