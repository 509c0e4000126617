// Package pipeline implements inquiry processing: query expansion,
// categorization, retrieval-augmented answer generation, notification and
// durable recording. Processing never fails outright: every stage has a
// fallback and an outer guard keeps the one-outcome-per-inquiry contract.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"realassist/internal/email"
	"realassist/internal/llm"
	"realassist/internal/models"
	"realassist/internal/utils"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Fallback texts, substituted when a stage degrades.
const (
	// FallbackResponse replaces the answer when generation or retrieval fails.
	FallbackResponse = "I apologize, but I'm having trouble processing your inquiry right now. Please try again later or contact our support team directly."
	// ErrorResponse is the outer guard's response when processing blows up.
	ErrorResponse = "I apologize, but I encountered an error processing your inquiry. Please try again later."
)

// Gateway is the language model boundary: a named template plus variables
// in, one text completion out. Must be safe for concurrent use.
type Gateway interface {
	Complete(ctx context.Context, id llm.TemplateID, vars map[string]string) (string, error)
}

// Retriever is the vector search boundary: query text in, ranked listing
// snippets out. Must be safe for concurrent use.
type Retriever interface {
	Retrieve(ctx context.Context, query string) (models.RetrievedContext, error)
}

// Notifier delivers a generated response to the inquirer. A disabled
// notifier returns email.ErrDisabled and performs no delivery attempt.
type Notifier interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Recorder durably records processed inquiries. Append-only from the
// pipeline's perspective; failures are logged by callers, never propagated
// to the original submitter.
type Recorder interface {
	Record(ctx context.Context, inquiry models.Inquiry, outcome models.InquiryOutcome) error
	RecordBatch(ctx context.Context, inquiries []models.Inquiry, outcomes []models.InquiryOutcome) error
}

// Pipeline orchestrates the processing of one inquiry.
type Pipeline struct {
	gateway   Gateway
	retriever Retriever
	notifier  Notifier
	logger    zerolog.Logger
}

// New creates a pipeline with its collaborators injected.
func New(gateway Gateway, retriever Retriever, notifier Notifier, logger zerolog.Logger) *Pipeline {
	return &Pipeline{
		gateway:   gateway,
		retriever: retriever,
		notifier:  notifier,
		logger:    logger.With().Str("component", "pipeline").Logger(),
	}
}

// Process runs the full stage sequence for one inquiry and always returns
// exactly one outcome, never an error. Expected degradations are handled
// per stage; the outer recover is the last line of defense against
// programming errors.
func (p *Pipeline) Process(ctx context.Context, inquiry models.Inquiry) (outcome models.InquiryOutcome) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error().
				Str("email", inquiry.Email).
				Interface("panic", r).
				Msg("Unexpected error processing inquiry")
			outcome = models.InquiryOutcome{
				Email:        inquiry.Email,
				Category:     models.CategoryUnknown,
				Response:     ErrorResponse,
				ProcessingID: uuid.NewString(),
				ProcessedAt:  time.Now().UTC(),
			}
		}
	}()

	p.logger.Info().
		Str("email", inquiry.Email).
		Str("listing_id", inquiry.ListingID).
		Msg("Processing inquiry")

	expanded := p.expand(ctx, inquiry.Message)
	category := p.categorize(ctx, inquiry.Message)
	response := p.answer(ctx, category, expanded)
	p.notify(ctx, inquiry.Email, category, response)

	return models.InquiryOutcome{
		Email:        inquiry.Email,
		Category:     category,
		Response:     response,
		ProcessingID: uuid.NewString(),
		ProcessedAt:  time.Now().UTC(),
	}
}

// expand produces a richer search query from the raw message. Falls back
// to the raw message verbatim; never fails past this stage.
func (p *Pipeline) expand(ctx context.Context, message string) string {
	expanded, err := p.gateway.Complete(ctx, llm.TemplateExpand, map[string]string{
		"message": message,
	})
	if err != nil {
		p.logger.Warn().Err(err).Msg("Query expansion failed, using original query")
		return message
	}

	expanded = strings.TrimSpace(expanded)
	if expanded == "" {
		return message
	}

	p.logger.Debug().Str("expanded", utils.Truncate(expanded, 120)).Msg("Query expanded")
	return expanded
}

// categorize classifies the RAW message (not the expanded query). Any
// failure, and any model output outside the canonical set, resolves to
// General Inquiry.
func (p *Pipeline) categorize(ctx context.Context, message string) models.Category {
	raw, err := p.gateway.Complete(ctx, llm.TemplateCategorize, map[string]string{
		"message": message,
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("Categorization failed")
		return models.CategoryGeneral
	}

	category, matched := models.ParseCategory(raw)
	if !matched {
		p.logger.Warn().
			Str("raw", utils.Truncate(raw, 80)).
			Msg("Categorization output did not match a known category")
	}

	p.logger.Info().Str("category", category.String()).Msg("Inquiry categorized")
	return category
}

// answer runs retrieval-augmented generation on the expanded query with
// the template selected by category. Never raises: any failure substitutes
// the fallback response.
func (p *Pipeline) answer(ctx context.Context, category models.Category, expanded string) string {
	retrieved, err := p.retriever.Retrieve(ctx, expanded)
	if err != nil {
		p.logger.Error().Err(err).Msg("Context retrieval failed")
		return FallbackResponse
	}

	response, err := p.gateway.Complete(ctx, llm.TemplateForCategory(category), map[string]string{
		"context":  retrieved.Text(),
		"question": expanded,
	})
	if err != nil {
		p.logger.Error().Err(err).Msg("Response generation failed")
		return FallbackResponse
	}

	p.logger.Info().Int("snippets", len(retrieved)).Msg("Response generated")
	return strings.TrimSpace(response)
}

// notify emails the response to the inquirer. Failure is logged and
// swallowed; a disabled notifier is a silent no-op, not an error.
func (p *Pipeline) notify(ctx context.Context, to string, category models.Category, response string) {
	subject := fmt.Sprintf("Re: Your Real Estate Inquiry - %s", category)

	err := p.notifier.Send(ctx, to, subject, response)
	switch {
	case err == nil:
		p.logger.Info().Str("email", to).Msg("Email sent")
	case errors.Is(err, email.ErrDisabled):
		p.logger.Debug().Msg("Email delivery disabled, skipping notification")
	default:
		p.logger.Error().Err(err).Str("email", to).Msg("Failed to send email")
	}
}
