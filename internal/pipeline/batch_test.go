package pipeline

import (
	"context"
	"fmt"
	"testing"
	"time"

	"realassist/internal/models"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubProcessor misbehaves on demand for specific inquirers.
type stubProcessor struct {
	panicEmail string
	slowEmail  string
	delay      time.Duration
}

func (p *stubProcessor) Process(_ context.Context, inquiry models.Inquiry) models.InquiryOutcome {
	if inquiry.Email == p.panicEmail {
		panic("unexpected processing error")
	}
	if inquiry.Email == p.slowEmail {
		time.Sleep(p.delay)
	}
	return models.InquiryOutcome{
		Email:    inquiry.Email,
		Category: models.CategoryGeneral,
		Response: "processed: " + inquiry.Message,
	}
}

func makeInquiries(n int) []models.Inquiry {
	inquiries := make([]models.Inquiry, n)
	for i := range inquiries {
		inquiries[i] = models.Inquiry{
			ListingID: fmt.Sprintf("LST-%d", i),
			Name:      fmt.Sprintf("Customer %d", i),
			Email:     fmt.Sprintf("customer%d@example.com", i),
			Message:   fmt.Sprintf("message %d", i),
		}
	}
	return inquiries
}

func assertOrderPreserved(t *testing.T, inquiries []models.Inquiry, outcomes []models.InquiryOutcome) {
	t.Helper()
	require.Len(t, outcomes, len(inquiries))
	for i, inquiry := range inquiries {
		assert.Equal(t, inquiry.Email, outcomes[i].Email, "outcome %d out of order", i)
	}
}

func TestPoolCoordinator_SmallBatchSequential(t *testing.T) {
	inquiries := makeInquiries(SequentialThreshold)
	coordinator := NewPoolCoordinator(&stubProcessor{}, 5, time.Second, zerolog.Nop())

	result := coordinator.ProcessBatch(context.Background(), inquiries)

	assertOrderPreserved(t, inquiries, result.Outcomes)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
}

func TestPoolCoordinator_LargeBatchPreservesOrder(t *testing.T) {
	inquiries := makeInquiries(20)
	coordinator := NewPoolCoordinator(&stubProcessor{}, 5, time.Second, zerolog.Nop())

	result := coordinator.ProcessBatch(context.Background(), inquiries)

	assertOrderPreserved(t, inquiries, result.Outcomes)
	for i, outcome := range result.Outcomes {
		assert.Equal(t, fmt.Sprintf("processed: message %d", i), outcome.Response)
	}
}

func TestPoolCoordinator_SmallBatchPanicIsIsolated(t *testing.T) {
	// Below the threshold the coordinator runs items inline; a panicking
	// item must still yield a degraded outcome at its index instead of
	// taking the whole batch down.
	inquiries := makeInquiries(3)
	coordinator := NewPoolCoordinator(&stubProcessor{panicEmail: "customer1@example.com"}, 5, time.Second, zerolog.Nop())

	result := coordinator.ProcessBatch(context.Background(), inquiries)

	require.Len(t, result.Outcomes, 3)
	assert.Equal(t, "processed: message 0", result.Outcomes[0].Response)
	assert.Equal(t, DegradedResponse, result.Outcomes[1].Response)
	assert.Equal(t, "customer1@example.com", result.Outcomes[1].Email)
	assert.Equal(t, "processed: message 2", result.Outcomes[2].Response)
}

func TestPoolCoordinator_PanickingItemIsIsolated(t *testing.T) {
	inquiries := makeInquiries(12)
	coordinator := NewPoolCoordinator(&stubProcessor{panicEmail: "customer7@example.com"}, 5, time.Second, zerolog.Nop())

	result := coordinator.ProcessBatch(context.Background(), inquiries)

	require.Len(t, result.Outcomes, 12)
	degraded := result.Outcomes[7]
	assert.Equal(t, models.CategoryGeneral, degraded.Category)
	assert.Equal(t, DegradedResponse, degraded.Response)
	assert.Equal(t, DegradedEmailTitle, degraded.EmailTitle)
	assert.Equal(t, DegradedEmailBody, degraded.EmailBody)
	assert.Equal(t, "customer7@example.com", degraded.Email)

	// Neighbors are unaffected.
	assert.Equal(t, "processed: message 6", result.Outcomes[6].Response)
	assert.Equal(t, "processed: message 8", result.Outcomes[8].Response)
}

func TestPoolCoordinator_TimedOutItemGetsDegradedOutcome(t *testing.T) {
	inquiries := makeInquiries(10)
	processor := &stubProcessor{slowEmail: "customer3@example.com", delay: 500 * time.Millisecond}
	coordinator := NewPoolCoordinator(processor, 5, 50*time.Millisecond, zerolog.Nop())

	result := coordinator.ProcessBatch(context.Background(), inquiries)

	require.Len(t, result.Outcomes, 10)
	assert.Equal(t, DegradedResponse, result.Outcomes[3].Response)
	assert.Equal(t, "customer3@example.com", result.Outcomes[3].Email)
	assert.Equal(t, "processed: message 2", result.Outcomes[2].Response)
	assert.Equal(t, "processed: message 4", result.Outcomes[4].Response)
}

func TestPoolCoordinator_MatchesSequentialOutcomes(t *testing.T) {
	inquiries := makeInquiries(25)

	sequential := make([]models.InquiryOutcome, len(inquiries))
	processor := &stubProcessor{}
	for i, inquiry := range inquiries {
		sequential[i] = processor.Process(context.Background(), inquiry)
	}

	result := NewPoolCoordinator(&stubProcessor{}, 5, time.Second, zerolog.Nop()).
		ProcessBatch(context.Background(), inquiries)

	require.Len(t, result.Outcomes, len(sequential))
	for i := range sequential {
		assert.Equal(t, sequential[i].Email, result.Outcomes[i].Email)
		assert.Equal(t, sequential[i].Response, result.Outcomes[i].Response)
		assert.Equal(t, sequential[i].Category, result.Outcomes[i].Category)
	}
}

func TestAsyncCoordinator_PreservesOrderWithoutThreshold(t *testing.T) {
	for _, n := range []int{1, 3, 20} {
		inquiries := makeInquiries(n)
		result := NewAsyncCoordinator(&stubProcessor{}, time.Second, zerolog.Nop()).
			ProcessBatch(context.Background(), inquiries)
		assertOrderPreserved(t, inquiries, result.Outcomes)
	}
}

func TestAsyncCoordinator_IsolatesFailuresAndTimeouts(t *testing.T) {
	inquiries := makeInquiries(8)
	processor := &stubProcessor{
		panicEmail: "customer1@example.com",
		slowEmail:  "customer5@example.com",
		delay:      500 * time.Millisecond,
	}

	result := NewAsyncCoordinator(processor, 50*time.Millisecond, zerolog.Nop()).
		ProcessBatch(context.Background(), inquiries)

	require.Len(t, result.Outcomes, 8)
	assert.Equal(t, DegradedResponse, result.Outcomes[1].Response)
	assert.Equal(t, DegradedResponse, result.Outcomes[5].Response)
	for _, i := range []int{0, 2, 3, 4, 6, 7} {
		assert.Equal(t, fmt.Sprintf("processed: message %d", i), result.Outcomes[i].Response)
	}
}

func TestProcessBatch_EmptyInput(t *testing.T) {
	pool := NewPoolCoordinator(&stubProcessor{}, 5, time.Second, zerolog.Nop())
	async := NewAsyncCoordinator(&stubProcessor{}, time.Second, zerolog.Nop())

	assert.Empty(t, pool.ProcessBatch(context.Background(), nil).Outcomes)
	assert.Empty(t, async.ProcessBatch(context.Background(), nil).Outcomes)
}

func TestPoolCoordinator_FullPipelineConcurrencyStress(t *testing.T) {
	// Drive the real pipeline (with deterministic stubs) through the pool
	// and verify parity with sequential processing.
	gateway := &stubGateway{
		expandOut:     "expanded query",
		categorizeOut: "Availability Check",
		answerFunc: func(vars map[string]string) string {
			return "answer for: " + vars["question"]
		},
	}
	pipe := New(gateway, &stubRetriever{context: seattleContext()}, &stubNotifier{}, zerolog.Nop())

	inquiries := makeInquiries(30)
	result := NewPoolCoordinator(pipe, 5, 5*time.Second, zerolog.Nop()).
		ProcessBatch(context.Background(), inquiries)

	require.Len(t, result.Outcomes, 30)
	for i, outcome := range result.Outcomes {
		assert.Equal(t, inquiries[i].Email, outcome.Email)
		assert.Equal(t, models.CategoryAvailability, outcome.Category)
		assert.Equal(t, "answer for: expanded query", outcome.Response)
	}
}
