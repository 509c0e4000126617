package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"realassist/internal/models"

	"github.com/jmoiron/sqlx"
)

// InquiryStore durably records processed inquiries and serves the history
// queries. Append-only from the pipeline's perspective.
type InquiryStore struct {
	db *sqlx.DB
}

// NewInquiryStore creates the store and ensures its tables exist.
func NewInquiryStore(db *sqlx.DB) (*InquiryStore, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required for inquiry store")
	}

	store := &InquiryStore{db: db}
	if err := store.CreateTables(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to create inquiry tables: %w", err)
	}

	return store, nil
}

// CreateTables creates the inquiry history table and its indexes.
func (s *InquiryStore) CreateTables(ctx context.Context) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS inquiry_history (
			id SERIAL PRIMARY KEY,
			email VARCHAR(255) NOT NULL,
			category VARCHAR(50),
			message TEXT,
			response TEXT,
			listing_id VARCHAR(64),
			email_title VARCHAR(255),
			email_body TEXT,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiry_history_email ON inquiry_history(email)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiry_history_category ON inquiry_history(category)`,
		`CREATE INDEX IF NOT EXISTS idx_inquiry_history_created_at ON inquiry_history(created_at DESC)`,
	}

	for _, query := range queries {
		if _, err := s.db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to create tables: %w", err)
		}
	}

	return nil
}

const insertInquiry = `
	INSERT INTO inquiry_history (email, category, message, response, listing_id, email_title, email_body, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, CURRENT_TIMESTAMP)
`

// Record stores one processed inquiry with its outcome.
func (s *InquiryStore) Record(ctx context.Context, inquiry models.Inquiry, outcome models.InquiryOutcome) error {
	_, err := s.db.ExecContext(ctx, insertInquiry,
		inquiry.Email,
		outcome.Category.String(),
		inquiry.Message,
		outcome.Response,
		inquiry.ListingID,
		outcome.EmailTitle,
		outcome.EmailBody,
	)
	if err != nil {
		return fmt.Errorf("failed to record inquiry: %w", err)
	}
	return nil
}

// RecordBatch stores a processed batch in one transaction. Inquiries and
// outcomes must be index-aligned.
func (s *InquiryStore) RecordBatch(ctx context.Context, inquiries []models.Inquiry, outcomes []models.InquiryOutcome) error {
	if len(inquiries) != len(outcomes) {
		return fmt.Errorf("inquiry/outcome count mismatch: %d vs %d", len(inquiries), len(outcomes))
	}
	if len(inquiries) == 0 {
		return nil
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin batch transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for i, inquiry := range inquiries {
		outcome := outcomes[i]
		if _, err := tx.ExecContext(ctx, insertInquiry,
			inquiry.Email,
			outcome.Category.String(),
			inquiry.Message,
			outcome.Response,
			inquiry.ListingID,
			outcome.EmailTitle,
			outcome.EmailBody,
		); err != nil {
			return fmt.Errorf("failed to record inquiry %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit batch: %w", err)
	}
	return nil
}

// HistoryFilter narrows and pages the history query.
type HistoryFilter struct {
	Email    string
	Category string
	DateFrom *time.Time
	DateTo   *time.Time
	Search   string // substring match over message, response and email
	Skip     int
	Limit    int
}

// History returns stored inquiries, newest first.
func (s *InquiryStore) History(ctx context.Context, filter HistoryFilter) ([]models.InquiryRecord, error) {
	var (
		conditions []string
		args       []interface{}
	)

	arg := func(value interface{}) string {
		args = append(args, value)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Email != "" {
		conditions = append(conditions, "email = "+arg(filter.Email))
	}
	if filter.Category != "" {
		conditions = append(conditions, "category = "+arg(filter.Category))
	}
	if filter.DateFrom != nil {
		conditions = append(conditions, "created_at >= "+arg(*filter.DateFrom))
	}
	if filter.DateTo != nil {
		conditions = append(conditions, "created_at <= "+arg(*filter.DateTo))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		placeholder := arg(pattern)
		conditions = append(conditions, fmt.Sprintf(
			"(message ILIKE %s OR response ILIKE %s OR email ILIKE %s)",
			placeholder, placeholder, placeholder))
	}

	query := "SELECT id, email, category, message, response, listing_id, email_title, email_body, created_at FROM inquiry_history"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += " LIMIT " + arg(limit)
	if filter.Skip > 0 {
		query += " OFFSET " + arg(filter.Skip)
	}

	var records []models.InquiryRecord
	if err := s.db.SelectContext(ctx, &records, query, args...); err != nil {
		return nil, fmt.Errorf("failed to fetch inquiry history: %w", err)
	}

	return records, nil
}

// GetByID returns one stored inquiry.
func (s *InquiryStore) GetByID(ctx context.Context, id int) (*models.InquiryRecord, error) {
	var record models.InquiryRecord
	query := "SELECT id, email, category, message, response, listing_id, email_title, email_body, created_at FROM inquiry_history WHERE id = $1"
	if err := s.db.GetContext(ctx, &record, query, id); err != nil {
		return nil, fmt.Errorf("failed to fetch inquiry %d: %w", id, err)
	}
	return &record, nil
}

// CountSince returns the number of inquiries recorded at or after since.
func (s *InquiryStore) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	query := "SELECT COUNT(*) FROM inquiry_history WHERE created_at >= $1"
	if err := s.db.GetContext(ctx, &count, query, since); err != nil {
		return 0, fmt.Errorf("failed to count recent inquiries: %w", err)
	}
	return count, nil
}

// DB exposes the underlying connection for the analytics service.
func (s *InquiryStore) DB() *sqlx.DB {
	return s.db
}
