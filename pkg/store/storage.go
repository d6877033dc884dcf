package store

import (
	"context"
	"encoding/json"
	"errors"
	"time"
)

// ErrNotFound is returned when no analysis exists for the given id.
var ErrNotFound = errors.New("analysis not found")

// AnalysisStatus tracks an analysis job through its lifecycle.
type AnalysisStatus string

const (
	StatusPending   AnalysisStatus = "pending"
	StatusRunning   AnalysisStatus = "running"
	StatusCompleted AnalysisStatus = "completed"
	StatusFailed    AnalysisStatus = "failed"
)

// Source types accepted for an analysis.
const (
	SourceText = "text"
	SourceS3   = "s3"
	SourceURL  = "url"
)

// AnalysisOptions are the caller-supplied knobs for one network build.
type AnalysisOptions struct {
	MinMentions  int      `json:"min_mentions"`
	UseSentiment bool     `json:"use_sentiment"`
	EntityLabels []string `json:"entity_labels"`
}

// Analysis is one network-building job: where the document comes from, how
// to build the network, and (once finished) the resulting graph or error.
type Analysis struct {
	ID         string          `json:"id"`
	SourceType string          `json:"source_type"`
	Source     string          `json:"source"`
	Options    AnalysisOptions `json:"options"`
	Status     AnalysisStatus  `json:"status"`
	Result     json.RawMessage `json:"result,omitempty"`
	Error      string          `json:"error,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreateAnalysisParams defines the input for creating a new analysis job.
type CreateAnalysisParams struct {
	ID         string
	SourceType string
	Source     string
	Options    AnalysisOptions
}

// AnalysisStore persists analysis jobs and their results. A failed run
// stores only the error; no partial graphs are ever written.
type AnalysisStore interface {
	CreateAnalysis(ctx context.Context, params CreateAnalysisParams) (*Analysis, error)
	GetAnalysis(ctx context.Context, id string) (*Analysis, error)
	ListAnalyses(ctx context.Context, limit, offset int) ([]Analysis, error)
	DeleteAnalysis(ctx context.Context, id string) error

	MarkRunning(ctx context.Context, id string) error
	SaveResult(ctx context.Context, id string, result json.RawMessage) error
	MarkFailed(ctx context.Context, id string, message string) error
}
