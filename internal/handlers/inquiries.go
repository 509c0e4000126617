package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"realassist/internal/ingest"
	"realassist/internal/models"
	"realassist/internal/pipeline"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// recordTimeout bounds the background persistence write.
const recordTimeout = 10 * time.Second

// ProcessInquiryHandler processes a single real estate inquiry
// @Summary Process one inquiry
// @Accept json
// @Produce json
// @Param inquiry body models.Inquiry true "Inquiry"
// @Success 200 {object} models.InquiryOutcome
// @Failure 400 {object} models.ErrorResponse
// @Router /api/inquiries/process [post]
func ProcessInquiryHandler(proc pipeline.Processor, recorder pipeline.Recorder, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		var inquiry models.Inquiry
		if err := c.Bind(&inquiry); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: fmt.Sprintf("Invalid request body: %v", err),
			})
		}

		if err := inquiry.Validate(); err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}

		outcome := proc.Process(c.Request().Context(), inquiry)

		// Persistence is decoupled: the submitter already has their answer.
		go recordOne(recorder, inquiry, outcome, logger)

		return c.JSON(http.StatusOK, outcome)
	}
}

// ProcessBatchHandler processes a batch of inquiries from a CSV upload or
// JSON body
// @Summary Process a batch of inquiries
// @Accept mpfd
// @Accept json
// @Produce json
// @Success 200 {object} models.BatchProcessResponse
// @Failure 400 {object} models.ErrorResponse
// @Router /api/inquiries/process/batch [post]
func ProcessBatchHandler(coordinator pipeline.Coordinator, recorder pipeline.Recorder, mode string, logger zerolog.Logger) echo.HandlerFunc {
	return func(c echo.Context) error {
		inquiries, skipped, err := readBatch(c, logger)
		if err != nil {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
		}
		if len(inquiries) == 0 {
			return c.JSON(http.StatusBadRequest, models.ErrorResponse{
				Error: "No valid inquiries found in request",
			})
		}

		logger.Info().Int("count", len(inquiries)).Msg("Processing inquiry batch")
		result := coordinator.ProcessBatch(c.Request().Context(), inquiries)

		go recordBatch(recorder, inquiries, result.Outcomes, logger)

		return c.JSON(http.StatusOK, models.BatchProcessResponse{
			Outcomes:  result.Outcomes,
			Skipped:   skipped,
			ElapsedMS: result.Elapsed.Milliseconds(),
			Count:     len(result.Outcomes),
			Mode:      mode,
		})
	}
}

// readBatch accepts either a multipart CSV upload (form field "file") or a
// JSON array of inquiries.
func readBatch(c echo.Context, logger zerolog.Logger) ([]models.Inquiry, int, error) {
	if file, err := c.FormFile("file"); err == nil {
		if !strings.HasSuffix(strings.ToLower(file.Filename), ".csv") {
			return nil, 0, fmt.Errorf("unsupported file type %q: use .csv", file.Filename)
		}

		src, err := file.Open()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to open upload: %w", err)
		}
		defer src.Close()

		parsed, err := ingest.ParseInquiries(src, logger)
		if err != nil {
			return nil, 0, err
		}
		return parsed.Rows, parsed.Skipped(), nil
	}

	body, err := io.ReadAll(c.Request().Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read request body: %w", err)
	}

	var raw []models.Inquiry
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, 0, fmt.Errorf("invalid batch payload: %w", err)
	}

	inquiries := make([]models.Inquiry, 0, len(raw))
	skipped := 0
	for i, inquiry := range raw {
		if err := inquiry.Validate(); err != nil {
			logger.Warn().Err(err).Int("index", i).Msg("Skipping invalid inquiry in batch")
			skipped++
			continue
		}
		inquiries = append(inquiries, inquiry)
	}

	return inquiries, skipped, nil
}

func recordOne(recorder pipeline.Recorder, inquiry models.Inquiry, outcome models.InquiryOutcome, logger zerolog.Logger) {
	if recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := recorder.Record(ctx, inquiry, outcome); err != nil {
		logger.Error().Err(err).Str("email", inquiry.Email).Msg("Failed to record inquiry")
	}
}

func recordBatch(recorder pipeline.Recorder, inquiries []models.Inquiry, outcomes []models.InquiryOutcome, logger zerolog.Logger) {
	if recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), recordTimeout)
	defer cancel()

	if err := recorder.RecordBatch(ctx, inquiries, outcomes); err != nil {
		logger.Error().Err(err).Int("count", len(inquiries)).Msg("Failed to record inquiry batch")
	}
}
