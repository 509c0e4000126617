package models

import (
	"fmt"
	"strings"
	"time"
)

// Inquiry represents an inbound customer message about a listing.
// Immutable once received; consumed exactly once by the pipeline.
// @Description Incoming real estate inquiry
type Inquiry struct {
	ListingID   string     `json:"listing_id" example:"LST-1042"`               // Listing the inquiry concerns
	Name        string     `json:"name" example:"Dana Cohen"`                   // Inquirer name
	Email       string     `json:"email" example:"dana@example.com"`            // Inquirer email address
	Message     string     `json:"message" example:"Is this still available?"`  // Free-text message
	PhoneNumber *string    `json:"phone_number,omitempty" example:"+1555.0123"` // Optional phone number
	SubmittedAt *time.Time `json:"submitted_at,omitempty"`                      // Optional submission date
}

// Validate checks the fields the pipeline cannot work without.
func (i Inquiry) Validate() error {
	var missing []string
	if strings.TrimSpace(i.ListingID) == "" {
		missing = append(missing, "listing_id")
	}
	if strings.TrimSpace(i.Email) == "" || !strings.Contains(i.Email, "@") {
		missing = append(missing, "email")
	}
	if strings.TrimSpace(i.Message) == "" {
		missing = append(missing, "message")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidInquiry, strings.Join(missing, ", "))
	}
	return nil
}

// InquiryOutcome is the finalized result of processing one inquiry.
// Every inquiry yields exactly one outcome, regardless of failure mode.
// @Description Result of processing a single inquiry
type InquiryOutcome struct {
	Email        string    `json:"email" example:"dana@example.com"`      // Inquirer email
	Category     Category  `json:"category" example:"Availability Check"` // Resolved category (canonical or Unknown)
	Response     string    `json:"response"`                              // Generated response text
	EmailTitle   string    `json:"email_title,omitempty"`                 // Optional structured email title
	EmailBody    string    `json:"email_body,omitempty"`                  // Optional structured email body
	ProcessingID string    `json:"processing_id,omitempty"`               // Unique per invocation
	ProcessedAt  time.Time `json:"processed_at,omitempty"`                // Completion timestamp (UTC)
}

// InquiryRecord is a durably stored inquiry together with its outcome.
// @Description Stored inquiry history row
type InquiryRecord struct {
	ID         int       `json:"id" db:"id" example:"1"`
	Email      string    `json:"email" db:"email"`
	Category   string    `json:"category" db:"category"`
	Message    string    `json:"message" db:"message"`
	Response   string    `json:"response" db:"response"`
	ListingID  *string   `json:"listing_id,omitempty" db:"listing_id"`
	EmailTitle *string   `json:"email_title,omitempty" db:"email_title"`
	EmailBody  *string   `json:"email_body,omitempty" db:"email_body"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
