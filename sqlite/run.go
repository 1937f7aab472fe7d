package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pjanik/cardscrape"
)

// Run represents one stored scrape of a source URL.
type Run struct {
	ID          string
	SourceURL   string
	RecordCount int
	CreatedAt   time.Time
}

// RunService stores and retrieves scrape runs.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores the records under a new run, preserving their
// order via positions.
func (s *RunService) CreateRun(ctx context.Context, sourceURL string, records []cardscrape.Record) (*Run, error) {
	if sourceURL == "" {
		return nil, cardscrape.Errorf(cardscrape.EINVALID, "run source URL required")
	}

	run := &Run{
		ID:          uuid.New().String(),
		SourceURL:   sourceURL,
		RecordCount: len(records),
		CreatedAt:   time.Now().UTC(),
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source_url, created_at)
		VALUES (?, ?, ?)
	`, run.ID, run.SourceURL, run.CreatedAt.Format(time.RFC3339))
	if err != nil {
		return nil, err
	}

	for i, r := range records {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO records (id, run_id, position, name, email)
			VALUES (?, ?, ?, ?, ?)
		`, uuid.New().String(), run.ID, i, r.Name, r.Email)
		if err != nil {
			return nil, err
		}
	}

	return run, nil
}

// FindRuns retrieves all runs, most recent first.
func (s *RunService) FindRuns(ctx context.Context) ([]*Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT r.id, r.source_url, r.created_at, COUNT(rec.id)
		FROM runs r
		LEFT JOIN records rec ON rec.run_id = r.id
		GROUP BY r.id
		ORDER BY r.created_at DESC, r.id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var run Run
		var createdAt string
		if err := rows.Scan(&run.ID, &run.SourceURL, &createdAt, &run.RecordCount); err != nil {
			return nil, err
		}
		run.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// FindRunRecords retrieves a run's records in their extraction order.
// Returns ENOTFOUND if the run does not exist.
func (s *RunService) FindRunRecords(ctx context.Context, runID string) ([]cardscrape.Record, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, err
	}
	if exists == 0 {
		return nil, cardscrape.Errorf(cardscrape.ENOTFOUND, "run not found")
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, email
		FROM records
		WHERE run_id = ?
		ORDER BY position ASC
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []cardscrape.Record
	for rows.Next() {
		var r cardscrape.Record
		if err := rows.Scan(&r.Name, &r.Email); err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// Ensure Writer implements cardscrape.RecordWriter at compile time.
var _ cardscrape.RecordWriter = (*Writer)(nil)

// Writer adapts RunService to the cardscrape.RecordWriter interface
// for a fixed source URL.
type Writer struct {
	runs      *RunService
	sourceURL string
}

// NewWriter creates a Writer persisting records as runs of sourceURL.
func NewWriter(runs *RunService, sourceURL string) *Writer {
	return &Writer{runs: runs, sourceURL: sourceURL}
}

// WriteRecords stores the records as a new run.
func (w *Writer) WriteRecords(ctx context.Context, records []cardscrape.Record) error {
	_, err := w.runs.CreateRun(ctx, w.sourceURL, records)
	return err
}
