// Command init-index builds the listings vector index from a local CSV.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"realassist/internal/config"
	"realassist/internal/ingest"
	"realassist/internal/llm"
	"realassist/internal/retrieval"
)

const indexBatchSize = 100

func main() {
	csvPath := flag.String("listings", "data/listings.csv", "path to the listings CSV")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Setup logger
	logger := cfg.SetupLogger()

	gateway, err := llm.NewClient(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create language model client")
	}

	provider, err := retrieval.New(cfg, gateway)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to create retrieval provider")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	if err := provider.Init(ctx); err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize retrieval provider")
	}

	file, err := os.Open(*csvPath)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *csvPath).Msg("Failed to open listings CSV")
	}
	defer file.Close()

	parsed, err := ingest.ParseListings(file, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to parse listings CSV")
	}
	logger.Info().Int("rows", len(parsed.Rows)).Int("skipped", parsed.Skipped()).Msg("Listings parsed")

	start := time.Now()
	indexed := 0
	for begin := 0; begin < len(parsed.Rows); begin += indexBatchSize {
		end := begin + indexBatchSize
		if end > len(parsed.Rows) {
			end = len(parsed.Rows)
		}
		if err := provider.IndexListings(ctx, parsed.Rows[begin:end]); err != nil {
			logger.Fatal().Err(err).Int("from", begin).Int("to", end).Msg("Failed to index listings batch")
		}
		indexed += end - begin
		logger.Info().Int("indexed", indexed).Int("total", len(parsed.Rows)).Msg("Batch indexed")
	}

	logger.Info().
		Int("indexed", indexed).
		Dur("duration", time.Since(start)).
		Msg("Listings index built")
}
