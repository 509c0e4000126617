package models

import "time"

// HealthResponse represents a basic health check response
// @Description Health check response
type HealthResponse struct {
	Status    string    `json:"status" example:"healthy"`                 // Health status
	Timestamp time.Time `json:"timestamp" example:"2023-01-01T00:00:00Z"` // Timestamp of the check
	Version   string    `json:"version" example:"1.0.0"`                  // Application version
}

// DBHealthResponse represents a database health check response
// @Description Database health check response
type DBHealthResponse struct {
	Status    string        `json:"status" example:"healthy"`                   // Health status
	Timestamp time.Time     `json:"timestamp" example:"2023-01-01T00:00:00Z"`   // Timestamp of the check
	Connected bool          `json:"connected" example:"true"`                   // Database connection status
	Latency   time.Duration `json:"latency" swaggertype:"string" example:"1ms"` // Database ping latency
	Error     string        `json:"error,omitempty" example:""`                 // Error message if any
}

// ErrorResponse is the generic error payload
// @Description Error payload
type ErrorResponse struct {
	Error string `json:"error" example:"invalid request"` // Error message
}

// BatchProcessResponse wraps the outcomes of a batch submission
// @Description Batch processing result
type BatchProcessResponse struct {
	Outcomes  []InquiryOutcome `json:"outcomes"`            // One outcome per accepted inquiry, input order
	Skipped   int              `json:"skipped" example:"1"` // Malformed rows skipped during parsing
	ElapsedMS int64            `json:"elapsed_ms"`          // Aggregate batch wall-clock duration
	Count     int              `json:"count" example:"12"`  // Number of processed inquiries
	Mode      string           `json:"mode" example:"pool"` // Coordinator mode used
}

// StatusResponse reports combined system status: database, vector store
// and recent processing volume
// @Description Combined system status
type StatusResponse struct {
	Status            string    `json:"status" example:"healthy"`             // healthy or degraded
	DatabaseStatus    string    `json:"database_status" example:"healthy"`    // Database connectivity
	VectorStoreStatus string    `json:"vectorstore_status" example:"healthy"` // Vector index connectivity
	RecentInquiries   int       `json:"recent_inquiries_count" example:"3"`   // Inquiries recorded in the last hour
	LastCheck         time.Time `json:"last_check"`                           // Timestamp of this check
}

// AnalyticsResponse summarizes inquiry activity over a window
// @Description Inquiry analytics summary
type AnalyticsResponse struct {
	TotalInquiries       int            `json:"total_inquiries" example:"42"`
	DateRangeDays        int            `json:"date_range_days" example:"30"`
	CategoryDistribution map[string]int `json:"category_distribution"`
	DailyCounts          map[string]int `json:"daily_counts"`
	TopInquirers         []InquirerStat `json:"top_inquirers"`
}

// InquirerStat is one email's inquiry count within the analytics window.
type InquirerStat struct {
	Email string `json:"email" db:"email"`
	Count int    `json:"count" db:"count"`
}

// IngestResponse reports a listings ingestion run
// @Description Listings ingestion result
type IngestResponse struct {
	Indexed int `json:"indexed" example:"120"` // Listings upserted into the vector index
	Skipped int `json:"skipped" example:"2"`   // Malformed rows skipped
}
