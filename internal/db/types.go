package db

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Run status constants
const (
	RunStatusRunning   = "running"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// CrawlRun represents one search-and-crawl invocation
type CrawlRun struct {
	ID           uuid.UUID       `json:"id"`
	ProfileText  string          `json:"profile_text"`
	Spec         json.RawMessage `json:"spec,omitempty"`
	Filters      json.RawMessage `json:"filters,omitempty"`
	RoleKeywords []string        `json:"role_keywords"`
	PerRole      int             `json:"per_role"`
	Status       string          `json:"status"`
	ErrorMessage *string         `json:"error_message,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	CompletedAt  *time.Time      `json:"completed_at,omitempty"`
}

// CrawlRunInput holds the values recorded when a run starts.
// Spec and Filters are marshaled to JSON when non-nil.
type CrawlRunInput struct {
	ProfileText  string
	Spec         any
	Filters      any
	RoleKeywords []string
	PerRole      int
}

// CrawlPosting is one stored posting of a run, keyed by role.
type CrawlPosting struct {
	ID        uuid.UUID `json:"id"`
	RunID     uuid.UUID `json:"run_id"`
	Role      string    `json:"role"`
	RoleIndex int       `json:"role_index"`
	Position  int       `json:"position"`
	PostingID string    `json:"gi_no"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
}
