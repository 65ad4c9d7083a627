/**
 * @description
 * Manual ingestion command.
 * Reads newline-delimited JSON match records from a file (one RawMatch per
 * line, the shape a fetcher job would POST) and runs them through the
 * ingestion coordinator against the configured database. Useful for
 * backfills and for replaying captured provider responses.
 */

package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/scrimline-project/backend/internal/config"
	"github.com/scrimline-project/backend/internal/db"
	"github.com/scrimline-project/backend/internal/provider"
	"github.com/scrimline-project/backend/internal/services"
	"github.com/scrimline-project/backend/internal/store"
)

func main() {
	var (
		file   = flag.String("file", "", "path to a newline-delimited JSON file of match records")
		source = flag.String("source", "bo3", "provider the records came from")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("usage: ingest -file matches.ndjson [-source bo3]")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	pgDB, err := db.ConnectPostgres(cfg)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	if err := db.AutoMigrate(pgDB); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	// No cache to keep coherent for a one-shot backfill; an in-memory redis
	// satisfies the service without touching the deployment's instance.
	mr, err := miniredis.Run()
	if err != nil {
		log.Fatalf("failed to start in-memory redis: %v", err)
	}
	defer mr.Close()
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	ctx := context.Background()

	st := store.New(pgDB)
	if _, err := st.RegisterSource(ctx, *source, *source); err != nil {
		log.Fatalf("failed to register source %q: %v", *source, err)
	}

	service := services.NewIngestService(pgDB, redisClient)

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("failed to open %s: %v", *file, err)
	}
	defer f.Close()

	var ingested, failed int
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var raw provider.RawMatch
		if err := json.Unmarshal(line, &raw); err != nil {
			log.Printf("skipping malformed record: %v", err)
			failed++
			continue
		}

		matchID, err := service.IngestMatch(ctx, *source, &raw)
		if err != nil {
			log.Printf("failed to ingest match %d: %v", raw.ID, err)
			failed++
			continue
		}
		ingested++
		log.Printf("ingested match %d as %s", raw.ID, matchID)
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("failed to read %s: %v", *file, err)
	}

	log.Printf("done: %d ingested, %d failed", ingested, failed)
}
