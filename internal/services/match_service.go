/**
 * @description
 * Read-side match queries with a Redis cache in front of the database for the
 * hot upcoming-matches path. Cache misses fall through to the canonical store
 * and repopulate the key with a short TTL; ingestion invalidates it.
 *
 * @dependencies
 * - backend/internal/store
 * - gorm.io/gorm
 * - github.com/redis/go-redis/v9
 */

package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/scrimline-project/backend/internal/logger"
	"github.com/scrimline-project/backend/internal/models"
	"github.com/scrimline-project/backend/internal/store"
	"gorm.io/gorm"
)

const (
	// CacheKeyUpcomingMatches holds the serialized upcoming-matches list
	CacheKeyUpcomingMatches = "matches:upcoming"

	// CacheTTL bounds staleness between ingestion-driven invalidations
	CacheTTL = 5 * time.Minute
)

type MatchService struct {
	DB    *gorm.DB
	Store *store.Store
	Redis *redis.Client
}

func NewMatchService(db *gorm.DB, rdb *redis.Client) *MatchService {
	return &MatchService{DB: db, Store: store.New(db), Redis: rdb}
}

// QueryMatchesParams mirrors the list endpoint's filters
type QueryMatchesParams struct {
	Status             string
	SourceType         string
	StartFrom          *time.Time
	StartTo            *time.Time
	Limit              int
	IncludePredictions bool
	IncludeOdds        bool
}

// GetUpcomingMatches serves the default listing, cache first then database
func (s *MatchService) GetUpcomingMatches(ctx context.Context) ([]models.Match, error) {
	if s.Redis != nil {
		val, err := s.Redis.Get(ctx, CacheKeyUpcomingMatches).Result()
		if err == nil {
			var matches []models.Match
			if err := json.Unmarshal([]byte(val), &matches); err == nil {
				return matches, nil
			}
			logger.Warn("discarding corrupt upcoming-matches cache entry: %v", err)
		}
	}

	matches, err := s.Store.ListMatches(ctx, store.MatchFilter{Status: models.MatchStatusUpcoming}, store.MatchInclude{})
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if data, err := json.Marshal(matches); err == nil {
			if err := s.Redis.Set(ctx, CacheKeyUpcomingMatches, data, CacheTTL).Err(); err != nil {
				logger.Warn("failed to cache upcoming matches: %v", err)
			}
		}
	}
	return matches, nil
}

// QueryMatches runs a filtered listing straight against the database.
// Filtered views are too varied to be worth caching.
func (s *MatchService) QueryMatches(ctx context.Context, params QueryMatchesParams) ([]models.Match, error) {
	filter := store.MatchFilter{
		Status:     params.Status,
		SourceType: params.SourceType,
		StartFrom:  params.StartFrom,
		StartTo:    params.StartTo,
		Limit:      params.Limit,
	}
	include := store.MatchInclude{
		Predictions: params.IncludePredictions,
		OddsQuotes:  params.IncludeOdds,
	}
	return s.Store.ListMatches(ctx, filter, include)
}

// GetMatch returns one match by canonical id with its teams and tournament,
// plus predictions and odds when requested
func (s *MatchService) GetMatch(ctx context.Context, id string, include store.MatchInclude) (*models.Match, error) {
	return s.Store.GetMatch(ctx, id, include)
}

// ListSources returns the provider registry
func (s *MatchService) ListSources(ctx context.Context, activeOnly bool) ([]models.DataSource, error) {
	return s.Store.ListSources(ctx, activeOnly)
}
