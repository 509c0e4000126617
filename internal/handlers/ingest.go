package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"realassist/internal/ingest"
	"realassist/internal/models"
	"realassist/internal/retrieval"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ingestBatchSize bounds how many listings are embedded per upsert call.
const ingestBatchSize = 100

// IngestListingsHandler ingests a CSV of listings into the vector index
// @Summary Ingest listings
// @Accept mpfd
// @Produce json
// @Success 200 {object} models.IngestResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/ingest/listings [post]
func IngestListingsHandler(provider *retrieval.Provider, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		file, err := c.FormFile("file")
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "missing file upload"})
		}
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("unsupported file type %q: use .csv", file.Filename),
			})
		}

		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to open upload"})
		}
		defer src.Close()

		parsed, err := ingest.ParseListings(src, logger)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}

		indexed := 0
		for start := 0; start < len(parsed.Rows); start += ingestBatchSize {
			end := start + ingestBatchSize
			if end > len(parsed.Rows) {
				end = len(parsed.Rows)
			}
			if err := provider.IndexListings(c.Request().Context(), parsed.Rows[start:end]); err != nil {
				logger.Error().Err(err).Int("from", start).Int("to", end).Msg("Failed to index listings batch")
				return c.JSON(http.StatusInternalServerError, models.ErrorResponse{
					Error: fmt.Sprintf("indexed %d listings before failure: %v", indexed, err),
				})
			}
			indexed += end - start
		}

		logger.Info().Int("indexed", indexed).Int("skipped", parsed.Skipped()).Msg("Listings ingested")
		return c.JSON(http.StatusOK, models.IngestResponse{
			Indexed: indexed,
			Skipped: parsed.Skipped(),
		})
	}
}
