package pgx

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	pgxv5 "github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"castnet/pkg/store"
)

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, optionsAndArgs ...any) (pgxv5.Rows, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgxv5.Row
}

// AnalysisDBStore implements the store.AnalysisStore interface on
// PostgreSQL. It works with both a pgxpool.Pool and a single connection.
type AnalysisDBStore struct {
	conn pgxIConn
}

// NewAnalysisDBStore creates a new store backed by the given connection.
func NewAnalysisDBStore(conn pgxIConn) *AnalysisDBStore {
	return &AnalysisDBStore{conn: conn}
}

const analysisColumns = `
	public_id, source_type, source, options, status,
	COALESCE(result, 'null'::jsonb), COALESCE(error, ''), created_at, updated_at
`

func scanAnalysis(row pgxv5.Row) (*store.Analysis, error) {
	var a store.Analysis
	var options []byte
	var result []byte

	err := row.Scan(
		&a.ID, &a.SourceType, &a.Source, &options, &a.Status,
		&result, &a.Error, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgxv5.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(options, &a.Options); err != nil {
		return nil, fmt.Errorf("failed to decode analysis options: %w", err)
	}
	if string(result) != "null" {
		a.Result = result
	}

	return &a, nil
}

// CreateAnalysis inserts a new pending analysis job.
func (s *AnalysisDBStore) CreateAnalysis(
	ctx context.Context,
	params store.CreateAnalysisParams,
) (*store.Analysis, error) {
	options, err := json.Marshal(params.Options)
	if err != nil {
		return nil, fmt.Errorf("failed to encode analysis options: %w", err)
	}

	row := s.conn.QueryRow(ctx, `
		INSERT INTO analyses (public_id, source_type, source, options, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+analysisColumns,
		params.ID, params.SourceType, params.Source, options, store.StatusPending,
	)

	return scanAnalysis(row)
}

// GetAnalysis returns the analysis with the given public id.
func (s *AnalysisDBStore) GetAnalysis(ctx context.Context, id string) (*store.Analysis, error) {
	row := s.conn.QueryRow(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses
		WHERE public_id = $1`,
		id,
	)

	return scanAnalysis(row)
}

// ListAnalyses returns analyses ordered newest first.
func (s *AnalysisDBStore) ListAnalyses(
	ctx context.Context,
	limit, offset int,
) ([]store.Analysis, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	rows, err := s.conn.Query(ctx, `
		SELECT `+analysisColumns+`
		FROM analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`,
		limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	analyses := make([]store.Analysis, 0)
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, *a)
	}

	return analyses, rows.Err()
}

// DeleteAnalysis removes the analysis with the given public id.
func (s *AnalysisDBStore) DeleteAnalysis(ctx context.Context, id string) error {
	tag, err := s.conn.Exec(ctx, `DELETE FROM analyses WHERE public_id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// MarkRunning moves a pending analysis to running.
func (s *AnalysisDBStore) MarkRunning(ctx context.Context, id string) error {
	return s.setStatus(ctx, id, store.StatusRunning)
}

// SaveResult stores the finished graph and marks the analysis completed.
func (s *AnalysisDBStore) SaveResult(
	ctx context.Context,
	id string,
	result json.RawMessage,
) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE analyses
		SET status = $2, result = $3, error = NULL, updated_at = NOW()
		WHERE public_id = $1`,
		id, store.StatusCompleted, []byte(result),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// MarkFailed records the failure message and clears any previous result, so
// a failed run never exposes a partial graph.
func (s *AnalysisDBStore) MarkFailed(ctx context.Context, id string, message string) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE analyses
		SET status = $2, error = $3, result = NULL, updated_at = NOW()
		WHERE public_id = $1`,
		id, store.StatusFailed, message,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *AnalysisDBStore) setStatus(ctx context.Context, id string, status store.AnalysisStatus) error {
	tag, err := s.conn.Exec(ctx, `
		UPDATE analyses
		SET status = $2, updated_at = NOW()
		WHERE public_id = $1`,
		id, status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
