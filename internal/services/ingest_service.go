/**
 * @description
 * Ingestion coordinator.
 * Takes one raw provider match record (already parsed by an external
 * fetcher), resolves its nested team and tournament entities, and writes the
 * match row plus any embedded prediction/odds blocks inside a single
 * transaction. Either the whole match graph commits or nothing does.
 *
 * @dependencies
 * - backend/internal/store
 * - backend/internal/provider
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scrimline-project/backend/internal/logger"
	"github.com/scrimline-project/backend/internal/metrics"
	"github.com/scrimline-project/backend/internal/models"
	"github.com/scrimline-project/backend/internal/provider"
	"github.com/scrimline-project/backend/internal/store"
	"gorm.io/gorm"
)

type IngestService struct {
	DB    *gorm.DB
	Store *store.Store
	Redis *redis.Client
}

func NewIngestService(db *gorm.DB, rdb *redis.Client) *IngestService {
	return &IngestService{DB: db, Store: store.New(db), Redis: rdb}
}

// IngestMatch resolves and upserts one match payload from the given provider.
// Re-ingesting an identical payload changes nothing but timestamps; a payload
// that newly reports status=finished transitions score and winner/loser
// fields into their final consistent values exactly once.
func (s *IngestService) IngestMatch(ctx context.Context, sourceType string, raw *provider.RawMatch) (string, error) {
	if err := validateRawMatch(sourceType, raw); err != nil {
		metrics.IngestFailures.WithLabelValues(failureReason(err)).Inc()
		return "", err
	}
	if err := s.checkSourceActive(ctx, sourceType); err != nil {
		metrics.IngestFailures.WithLabelValues(failureReason(err)).Inc()
		return "", err
	}

	now := time.Now().UTC()
	var matchID string

	err := s.Store.Transaction(ctx, func(tx *store.Store) error {
		team1, err := tx.UpsertTeam(ctx, raw.Team1.ToModel(sourceType))
		if err != nil {
			return fmt.Errorf("resolve team1: %w", err)
		}
		team2, err := tx.UpsertTeam(ctx, raw.Team2.ToModel(sourceType))
		if err != nil {
			return fmt.Errorf("resolve team2: %w", err)
		}

		// A missing tournament reference is valid; the column stays null
		var tournamentID *string
		if raw.Tournament != nil {
			tournament, err := tx.UpsertTournament(ctx, raw.Tournament.ToModel(sourceType))
			if err != nil {
				return fmt.Errorf("resolve tournament: %w", err)
			}
			tournamentID = &tournament.ID
		}

		match := &models.Match{
			SourceType:    sourceType,
			SourceID:      raw.ID,
			Slug:          raw.Slug,
			Team1ID:       team1.ID,
			Team2ID:       team2.ID,
			TournamentID:  tournamentID,
			Status:        matchStatus(raw),
			StartDate:     raw.StartDate,
			BoType:        raw.BoType,
			Tier:          raw.Tier,
			RawPayload:    raw.RawPayload(),
			LastFetchedAt: now,
		}
		if err := applyFinalScore(match, raw); err != nil {
			return err
		}

		saved, err := tx.UpsertMatch(ctx, match)
		if err != nil {
			return err
		}
		matchID = saved.ID

		if raw.Prediction != nil {
			if _, err := tx.UpsertPrediction(ctx, raw.Prediction.ToModel(saved.ID, sourceType)); err != nil {
				return fmt.Errorf("ingest prediction: %w", err)
			}
		}
		for i := range raw.Odds {
			if _, err := tx.UpsertOddsQuote(ctx, raw.Odds[i].ToModel(saved.ID, sourceType, now)); err != nil {
				return fmt.Errorf("ingest odds from %s: %w", raw.Odds[i].Provider, err)
			}
		}
		return nil
	})
	if err != nil {
		metrics.IngestFailures.WithLabelValues(failureReason(err)).Inc()
		return "", err
	}

	metrics.MatchesIngested.WithLabelValues(sourceType).Inc()
	if raw.Prediction != nil {
		metrics.PredictionsUpserted.Inc()
	}
	if n := len(raw.Odds); n > 0 {
		metrics.OddsQuotesUpserted.Add(float64(n))
	}
	s.invalidateMatchCaches(ctx)

	logger.Info("ingested match %d from %s as %s", raw.ID, sourceType, matchID)
	return matchID, nil
}

// IngestPrediction upserts a prediction for an already-stored match
func (s *IngestService) IngestPrediction(ctx context.Context, matchID, sourceType string, raw *provider.RawPrediction) (*models.Prediction, error) {
	if raw == nil || raw.ID <= 0 {
		return nil, &store.ValidationError{Field: "prediction", Reason: "missing prediction id"}
	}
	// The match row must exist before any dependent row is written
	if _, err := s.Store.GetMatch(ctx, matchID, store.MatchInclude{}); err != nil {
		return nil, err
	}

	prediction, err := s.Store.UpsertPrediction(ctx, raw.ToModel(matchID, sourceType))
	if err != nil {
		return nil, err
	}
	metrics.PredictionsUpserted.Inc()
	return prediction, nil
}

// IngestOddsQuote upserts a bookmaker quote for an already-stored match
func (s *IngestService) IngestOddsQuote(ctx context.Context, matchID, sourceType string, raw *provider.RawOdds) (*models.OddsQuote, error) {
	if raw == nil || raw.Provider == "" {
		return nil, &store.ValidationError{Field: "odds", Reason: "missing bookmaker provider"}
	}
	if _, err := s.Store.GetMatch(ctx, matchID, store.MatchInclude{}); err != nil {
		return nil, err
	}

	quote, err := s.Store.UpsertOddsQuote(ctx, raw.ToModel(matchID, sourceType, time.Now().UTC()))
	if err != nil {
		return nil, err
	}
	metrics.OddsQuotesUpserted.Inc()
	return quote, nil
}

// checkSourceActive reads the registry at the point of ingestion; which
// providers may write is explicit state, not ambient config
func (s *IngestService) checkSourceActive(ctx context.Context, sourceType string) error {
	source, err := s.Store.GetSourceByName(ctx, sourceType)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return &store.ValidationError{Field: "source_type", Reason: fmt.Sprintf("provider %q is not registered", sourceType)}
		}
		return err
	}
	if !source.IsActive {
		return &store.ValidationError{Field: "source_type", Reason: fmt.Sprintf("provider %q is disabled", sourceType)}
	}
	return nil
}

func (s *IngestService) invalidateMatchCaches(ctx context.Context) {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(ctx, CacheKeyUpcomingMatches).Err(); err != nil {
		logger.Warn("failed to invalidate match cache: %v", err)
	}
}

func validateRawMatch(sourceType string, raw *provider.RawMatch) error {
	if raw == nil {
		return &store.ValidationError{Field: "payload", Reason: "must not be empty"}
	}
	if sourceType == "" {
		return &store.ValidationError{Field: "source_type", Reason: "must not be empty"}
	}
	if raw.ID <= 0 {
		return &store.ValidationError{Field: "id", Reason: "missing match id"}
	}
	if raw.Team1 == nil || raw.Team1.ID <= 0 || raw.Team1.Name == "" {
		return &store.ValidationError{Field: "team1", Reason: "missing team identity"}
	}
	if raw.Team2 == nil || raw.Team2.ID <= 0 || raw.Team2.Name == "" {
		return &store.ValidationError{Field: "team2", Reason: "missing team identity"}
	}
	return nil
}

func matchStatus(raw *provider.RawMatch) string {
	if raw.Status == "" {
		return models.MatchStatusUpcoming
	}
	return raw.Status
}

// applyFinalScore derives the terminal fields. Winner and loser always come
// from the scores, never from the provider's winner field, which is scoped to
// the provider's own team ids. A finished match without two distinct scores
// would break the score-consistency invariant, so it is rejected.
func applyFinalScore(match *models.Match, raw *provider.RawMatch) error {
	if match.Status != models.MatchStatusFinished {
		match.Team1Score = nil
		match.Team2Score = nil
		match.WinnerTeamID = nil
		match.LoserTeamID = nil
		return nil
	}

	if raw.Team1Score == nil || raw.Team2Score == nil {
		return &store.ValidationError{Field: "team1_score", Reason: "finished match requires both scores"}
	}
	if *raw.Team1Score == *raw.Team2Score {
		return &store.ValidationError{Field: "team2_score", Reason: "finished match cannot be tied"}
	}

	match.Team1Score = raw.Team1Score
	match.Team2Score = raw.Team2Score
	if *raw.Team1Score > *raw.Team2Score {
		match.WinnerTeamID = &match.Team1ID
		match.LoserTeamID = &match.Team2ID
	} else {
		match.WinnerTeamID = &match.Team2ID
		match.LoserTeamID = &match.Team1ID
	}
	return nil
}

// failureReason buckets an error for the ingest failure counter
func failureReason(err error) string {
	var vErr *store.ValidationError
	var cErr *store.ConflictError
	var rErr *store.ReferenceError
	switch {
	case errors.As(err, &vErr):
		return "validation"
	case errors.As(err, &cErr):
		return "conflict"
	case errors.As(err, &rErr):
		return "reference"
	case errors.Is(err, store.ErrNotFound):
		return "not_found"
	default:
		return "storage"
	}
}
