package pipeline

import (
	"context"
	"sync"
	"time"

	"realassist/internal/models"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/rs/zerolog"
)

// SequentialThreshold is the batch size at or below which the pool
// coordinator skips the worker pool and processes items in order.
const SequentialThreshold = 5

// Degraded outcome texts for items that fail or time out inside a batch.
const (
	DegradedResponse   = "Sorry, we encountered an error processing your inquiry."
	DegradedEmailTitle = "Error Processing Inquiry"
	DegradedEmailBody  = "We apologize for the inconvenience. Please try again later."
)

// Processor processes one inquiry into exactly one outcome.
type Processor interface {
	Process(ctx context.Context, inquiry models.Inquiry) models.InquiryOutcome
}

// BatchResult carries the ordered outcomes of a batch together with its
// aggregate wall-clock duration.
type BatchResult struct {
	Outcomes []models.InquiryOutcome
	Elapsed  time.Duration
}

// Coordinator fans a batch of inquiries out across the pipeline. The
// returned outcomes are length- and order-preserving: Outcomes[i]
// corresponds to inquiries[i] regardless of individual failures.
type Coordinator interface {
	ProcessBatch(ctx context.Context, inquiries []models.Inquiry) BatchResult
}

// PoolCoordinator is the worker-pool model: sequential below the
// threshold, a fixed-size pool above it, per-item timeout throughout the
// pooled path.
type PoolCoordinator struct {
	processor   Processor
	workers     int
	itemTimeout time.Duration
	logger      zerolog.Logger
}

// NewPoolCoordinator creates the worker-pool batch coordinator.
func NewPoolCoordinator(processor Processor, workers int, itemTimeout time.Duration, logger zerolog.Logger) *PoolCoordinator {
	if workers < 1 {
		workers = 1
	}
	return &PoolCoordinator{
		processor:   processor,
		workers:     workers,
		itemTimeout: itemTimeout,
		logger:      logger.With().Str("component", "batch_pool").Logger(),
	}
}

// ProcessBatch processes inquiries with bounded concurrency and per-item
// isolation.
func (c *PoolCoordinator) ProcessBatch(ctx context.Context, inquiries []models.Inquiry) BatchResult {
	c.logger.Info().Int("count", len(inquiries)).Msg("Starting batch processing")
	start := time.Now()

	outcomes := make([]models.InquiryOutcome, len(inquiries))

	if len(inquiries) <= SequentialThreshold {
		// Small batches are not worth the concurrency overhead.
		for i, inquiry := range inquiries {
			outcomes[i] = processItem(ctx, c.processor, inquiry, c.logger)
		}
		return c.finish(outcomes, start)
	}

	pool, err := ants.NewPool(c.workers)
	if err != nil {
		c.logger.Error().Err(err).Msg("Worker pool creation failed, processing sequentially")
		for i, inquiry := range inquiries {
			outcomes[i] = processItem(ctx, c.processor, inquiry, c.logger)
		}
		return c.finish(outcomes, start)
	}
	defer pool.Release()

	var wg sync.WaitGroup
	for i, inquiry := range inquiries {
		wg.Add(1)
		submitErr := pool.Submit(func() {
			defer wg.Done()
			outcomes[i] = processWithTimeout(ctx, c.processor, inquiry, c.itemTimeout, c.logger)
		})
		if submitErr != nil {
			c.logger.Error().Err(submitErr).Str("email", inquiry.Email).Msg("Failed to submit inquiry to pool")
			outcomes[i] = degradedOutcome(inquiry)
			wg.Done()
		}
	}
	wg.Wait()

	return c.finish(outcomes, start)
}

func (c *PoolCoordinator) finish(outcomes []models.InquiryOutcome, start time.Time) BatchResult {
	elapsed := time.Since(start)
	c.logger.Info().
		Int("count", len(outcomes)).
		Dur("elapsed", elapsed).
		Msg("Batch processing completed")
	return BatchResult{Outcomes: outcomes, Elapsed: elapsed}
}

// AsyncCoordinator is the cooperative-concurrency model: every item is
// launched concurrently with no batching threshold, and the fan-in join
// waits for all tasks regardless of individual failure.
type AsyncCoordinator struct {
	processor   Processor
	itemTimeout time.Duration
	logger      zerolog.Logger
}

// NewAsyncCoordinator creates the fan-out/fan-in batch coordinator.
func NewAsyncCoordinator(processor Processor, itemTimeout time.Duration, logger zerolog.Logger) *AsyncCoordinator {
	return &AsyncCoordinator{
		processor:   processor,
		itemTimeout: itemTimeout,
		logger:      logger.With().Str("component", "batch_async").Logger(),
	}
}

// ProcessBatch launches all inquiries concurrently and re-assembles the
// outcomes in input order.
func (c *AsyncCoordinator) ProcessBatch(ctx context.Context, inquiries []models.Inquiry) BatchResult {
	c.logger.Info().Int("count", len(inquiries)).Msg("Starting async batch processing")
	start := time.Now()

	outcomes := make([]models.InquiryOutcome, len(inquiries))

	var wg sync.WaitGroup
	for i, inquiry := range inquiries {
		wg.Add(1)
		go func() {
			defer wg.Done()
			outcomes[i] = processWithTimeout(ctx, c.processor, inquiry, c.itemTimeout, c.logger)
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)
	c.logger.Info().
		Int("count", len(outcomes)).
		Dur("elapsed", elapsed).
		Msg("Async batch processing completed")
	return BatchResult{Outcomes: outcomes, Elapsed: elapsed}
}

// processItem runs one item inline with panic isolation but no timeout.
// Used on the sequential paths, where a panicking item must still yield a
// degraded outcome at its index instead of aborting the batch.
func processItem(ctx context.Context, processor Processor, inquiry models.Inquiry, logger zerolog.Logger) (outcome models.InquiryOutcome) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error().
				Str("email", inquiry.Email).
				Interface("panic", r).
				Msg("Inquiry processing panicked inside batch")
			outcome = degradedOutcome(inquiry)
		}
	}()
	return processor.Process(ctx, inquiry)
}

// processWithTimeout runs one item and substitutes a degraded outcome if
// it times out, panics, or the batch context is cancelled. A timed-out
// item is not preempted: its goroutine runs to completion and the late
// result is discarded.
func processWithTimeout(ctx context.Context, processor Processor, inquiry models.Inquiry, timeout time.Duration, logger zerolog.Logger) models.InquiryOutcome {
	done := make(chan models.InquiryOutcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Str("email", inquiry.Email).
					Interface("panic", r).
					Msg("Inquiry processing panicked inside batch")
				done <- degradedOutcome(inquiry)
			}
		}()
		done <- processor.Process(ctx, inquiry)
	}()

	if timeout <= 0 {
		return <-done
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case outcome := <-done:
		return outcome
	case <-timer.C:
		logger.Error().
			Str("email", inquiry.Email).
			Dur("timeout", timeout).
			Msg("Inquiry processing timed out")
		return degradedOutcome(inquiry)
	case <-ctx.Done():
		logger.Warn().
			Str("email", inquiry.Email).
			Msg("Batch context cancelled while processing inquiry")
		return degradedOutcome(inquiry)
	}
}

// degradedOutcome is the synthetic outcome substituted at a failed item's
// index so neighbors are unaffected and ordering is preserved.
func degradedOutcome(inquiry models.Inquiry) models.InquiryOutcome {
	return models.InquiryOutcome{
		Email:        inquiry.Email,
		Category:     models.CategoryGeneral,
		Response:     DegradedResponse,
		EmailTitle:   DegradedEmailTitle,
		EmailBody:    DegradedEmailBody,
		ProcessingID: uuid.NewString(),
		ProcessedAt:  time.Now().UTC(),
	}
}
