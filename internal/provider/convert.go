/**
 * @description
 * Projections from raw provider records onto canonical database models.
 * Normalized columns are a lossy projection; each converter also snapshots
 * the record into the row's metadata/payload blob.
 *
 * @dependencies
 * - gorm.io/datatypes
 * - backend/internal/models
 */

package provider

import (
	"encoding/json"
	"time"

	"github.com/scrimline-project/backend/internal/models"
	"gorm.io/datatypes"
)

// ToModel projects a raw team onto a canonical team row
func (t *RawTeam) ToModel(sourceType string) *models.Team {
	return &models.Team{
		SourceType:  sourceType,
		SourceID:    t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		CountryCode: t.CountryCode,
		LogoURL:     t.LogoURL,
		RawMetadata: mustJSON(t),
	}
}

// ToModel projects a raw tournament onto a canonical tournament row
func (t *RawTournament) ToModel(sourceType string) *models.Tournament {
	return &models.Tournament{
		SourceType:  sourceType,
		SourceID:    t.ID,
		Name:        t.Name,
		Slug:        t.Slug,
		Tier:        t.Tier,
		TierRank:    t.TierRank,
		PrizePool:   t.PrizePool,
		Status:      t.Status,
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		RawMetadata: mustJSON(t),
	}
}

// ToModel projects a raw prediction onto a prediction row for a resolved match
func (p *RawPrediction) ToModel(matchID, sourceType string) *models.Prediction {
	return &models.Prediction{
		MatchID:           matchID,
		SourceType:        sourceType,
		SourceID:          p.ID,
		PredictionPayload: mustJSON(p),
	}
}

// ToModel projects a raw odds quote onto an odds row for a resolved match.
// Implied probability is 1/odds per side; the overround across both sides is
// preserved as the bookmaker priced it.
func (o *RawOdds) ToModel(matchID, sourceType string, fetchedAt time.Time) *models.OddsQuote {
	quote := &models.OddsQuote{
		MatchID:     matchID,
		SourceType:  sourceType,
		Provider:    o.Provider,
		OddsPayload: mustJSON(o),
		FetchedAt:   fetchedAt,
	}
	if o.Team1 != nil && o.Team1.Coeff > 0 {
		quote.Team1Odds = floatPtr(o.Team1.Coeff)
		quote.Team1ImpliedProb = floatPtr(1 / o.Team1.Coeff)
	}
	if o.Team2 != nil && o.Team2.Coeff > 0 {
		quote.Team2Odds = floatPtr(o.Team2.Coeff)
		quote.Team2ImpliedProb = floatPtr(1 / o.Team2.Coeff)
	}
	return quote
}

// RawPayload returns the blob stored on the match row: the provider's
// verbatim response when the fetcher captured it, otherwise the record itself.
func (m *RawMatch) RawPayload() datatypes.JSON {
	if len(m.Raw) > 0 {
		return datatypes.JSON(m.Raw)
	}
	return mustJSON(m)
}

func mustJSON(v interface{}) datatypes.JSON {
	// These records marshal by construction; a failure would be a programming error
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func floatPtr(v float64) *float64 { return &v }
