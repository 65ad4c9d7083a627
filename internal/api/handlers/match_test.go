package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/scrimline-project/backend/internal/api/middleware"
	"github.com/scrimline-project/backend/internal/db"
	"github.com/scrimline-project/backend/internal/models"
	"github.com/scrimline-project/backend/internal/provider"
	"github.com/scrimline-project/backend/internal/services"
	"github.com/scrimline-project/backend/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const testJobSecret = "test-job-secret"

type testEnv struct {
	app    *fiber.App
	ingest *services.IngestService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "handlers_test.db") + "?_foreign_keys=on"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	if _, err := store.New(gdb).RegisterSource(context.Background(), "bo3", "bo3.gg"); err != nil {
		t.Fatalf("failed to register test source: %v", err)
	}

	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	matchService := services.NewMatchService(gdb, redisClient)
	analyticsService := services.NewAnalyticsService(gdb)
	ingestService := services.NewIngestService(gdb, redisClient)

	matchHandler := NewMatchHandler(matchService)
	analyticsHandler := NewAnalyticsHandler(analyticsService)
	sourceHandler := NewSourceHandler(matchService)
	ingestHandler := NewIngestHandler(ingestService)

	app := fiber.New()
	app.Get("/api/v1/matches", matchHandler.GetMatches)
	app.Get("/api/v1/matches/:id", matchHandler.GetMatch)
	app.Get("/api/v1/matches/:id/value-bets", analyticsHandler.GetValueBets)
	app.Get("/api/v1/sources", sourceHandler.ListSources)
	app.Post("/internal/ingest/match", middleware.JobSecret(testJobSecret), ingestHandler.IngestMatch)

	return &testEnv{app: app, ingest: ingestService}
}

func (e *testEnv) ingestSample(t *testing.T, sourceID int64) string {
	t.Helper()
	matchID, err := e.ingest.IngestMatch(context.Background(), "bo3", sampleIngestMatch(sourceID))
	if err != nil {
		t.Fatalf("seed ingest failed: %v", err)
	}
	return matchID
}

func sampleIngestMatch(sourceID int64) *provider.RawMatch {
	return &provider.RawMatch{
		ID:     sourceID,
		Status: models.MatchStatusUpcoming,
		Team1:  &provider.RawTeam{ID: 11, Name: "NAVI"},
		Team2:  &provider.RawTeam{ID: 12, Name: "FaZe"},
		Odds: []provider.RawOdds{
			{
				Provider: "bet365",
				Team1:    &provider.RawOddsSide{TeamID: 11, Coeff: 2.0},
				Team2:    &provider.RawOddsSide{TeamID: 12, Coeff: 1.8},
			},
		},
	}
}

func doRequest(t *testing.T, app *fiber.App, req *http.Request) *http.Response {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	return resp
}

func TestGetMatchesListsUpcoming(t *testing.T) {
	env := newTestEnv(t)
	env.ingestSample(t, 3000)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches?status=upcoming", nil)
	resp := doRequest(t, env.app, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
	var matches []models.Match
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Team1 == nil || matches[0].Team1.Name != "NAVI" {
		t.Fatalf("team not embedded in listing: %+v", matches[0].Team1)
	}
}

func TestGetMatchesServesCachedDefault(t *testing.T) {
	env := newTestEnv(t)
	env.ingestSample(t, 3001)

	// First unfiltered call populates the cache, second is served from it
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/matches", nil)
		resp := doRequest(t, env.app, req)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("unexpected status code on call %d: %d", i, resp.StatusCode)
		}
		var matches []models.Match
		if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
			t.Fatalf("failed to decode response: %v", err)
		}
		resp.Body.Close()
		if len(matches) != 1 {
			t.Fatalf("expected 1 match on call %d, got %d", i, len(matches))
		}
	}
}

func TestGetMatchNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches/no-such-id", nil)
	resp := doRequest(t, env.app, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestGetMatchWithIncludes(t *testing.T) {
	env := newTestEnv(t)
	matchID := env.ingestSample(t, 3002)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches/"+matchID+"?include=odds", nil)
	resp := doRequest(t, env.app, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
	var match models.Match
	if err := json.NewDecoder(resp.Body).Decode(&match); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(match.OddsQuotes) != 1 {
		t.Fatalf("odds not included: %+v", match.OddsQuotes)
	}
}

func TestGetMatchesRejectsBadTimestamp(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/matches?from=yesterday", nil)
	resp := doRequest(t, env.app, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestListSources(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/sources", nil)
	resp := doRequest(t, env.app, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status code: %d", resp.StatusCode)
	}
	var sources []models.DataSource
	if err := json.NewDecoder(resp.Body).Decode(&sources); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(sources) != 1 || sources[0].Name != "bo3" {
		t.Fatalf("unexpected registry contents: %+v", sources)
	}
}

func TestIngestEndpointAuth(t *testing.T) {
	env := newTestEnv(t)

	body, err := json.Marshal(fiber.Map{
		"source_type": "bo3",
		"match":       sampleIngestMatch(3100),
	})
	if err != nil {
		t.Fatalf("failed to marshal request: %v", err)
	}

	// Missing secret
	req := httptest.NewRequest(http.MethodPost, "/internal/ingest/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := doRequest(t, env.app, req)
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without secret, got %d", resp.StatusCode)
	}

	// Correct secret
	req = httptest.NewRequest(http.MethodPost, "/internal/ingest/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Job-Secret", testJobSecret)
	resp = doRequest(t, env.app, req)
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200 with secret, got %d", resp.StatusCode)
	}
	var out map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if out["match_id"] == "" {
		t.Fatal("response missing match_id")
	}
}

func TestIngestEndpointRejectsInvalidPayload(t *testing.T) {
	env := newTestEnv(t)

	body, _ := json.Marshal(fiber.Map{"source_type": "bo3", "match": map[string]any{"id": 0}})
	req := httptest.NewRequest(http.MethodPost, "/internal/ingest/match", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Job-Secret", testJobSecret)
	resp := doRequest(t, env.app, req)
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload, got %d", resp.StatusCode)
	}
}
