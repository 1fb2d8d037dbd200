// Package store keeps a history of verification runs in SQLite.
package store

import (
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"

	"github.com/smoke-cloud/fds-inspect-go/pkg/summary"
	"github.com/smoke-cloud/fds-inspect-go/pkg/verify"
)

// Run status values.
const (
	RunStatusPending   = "pending"
	RunStatusCompleted = "completed"
	RunStatusFailed    = "failed"
)

// Run is a stored verification run.
type Run struct {
	ID           string     `json:"id"`
	Chid         string     `json:"chid"`
	Input        string     `json:"input"`
	InputDigest  string     `json:"input_digest"`
	Status       string     `json:"status"`
	StartedAt    *time.Time `json:"started_at,omitempty"`
	CompletedAt  *time.Time `json:"completed_at,omitempty"`
	SuccessCount int        `json:"success_count"`
	WarningCount int        `json:"warning_count"`
	FailureCount int        `json:"failure_count"`
	TotalCount   int        `json:"total_count"`
	ErrorMessage string     `json:"error_message,omitempty"`
	Duration     string     `json:"duration,omitempty"`
}

// Counts returns the run's outcome counts.
func (r *Run) Counts() verify.Counts {
	return verify.Counts{Success: r.SuccessCount, Warning: r.WarningCount, Failure: r.FailureCount}
}

// Digest returns the hex BLAKE2b-256 digest of a model document.
func Digest(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// NewRun returns a pending run with a fresh id for the model document
// data read from input.
func NewRun(chid, input string, data []byte) *Run {
	now := time.Now()
	return &Run{
		ID:          uuid.New().String(),
		Chid:        chid,
		Input:       input,
		InputDigest: Digest(data),
		Status:      RunStatusPending,
		StartedAt:   &now,
	}
}

// Store provides SQLite persistence for verification runs and outcomes.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// NewStore opens the database at dbPath, creating the schema if needed.
// Use ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// An in-memory database exists per connection.
	db.SetMaxOpenConns(1)

	_, err = db.Exec(`
		PRAGMA foreign_keys = ON;
		PRAGMA journal_mode = WAL;
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to configure database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		chid TEXT NOT NULL,
		input TEXT,
		input_digest TEXT,
		status TEXT NOT NULL DEFAULT 'pending',
		started_at DATETIME,
		completed_at DATETIME,
		success_count INTEGER DEFAULT 0,
		warning_count INTEGER DEFAULT 0,
		failure_count INTEGER DEFAULT 0,
		total_count INTEGER DEFAULT 0,
		error_message TEXT,
		summary_json TEXT
	);

	CREATE TABLE IF NOT EXISTS run_outcomes (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		seq INTEGER NOT NULL,
		rule_id TEXT NOT NULL,
		type TEXT NOT NULL,
		message TEXT,
		PRIMARY KEY (run_id, seq)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_chid ON runs(chid);
	CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_run_outcomes_rule ON run_outcomes(rule_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// CreateRun inserts a new run.
func (s *Store) CreateRun(run *Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO runs (id, chid, input, input_digest, status, started_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Chid, run.Input, run.InputDigest, run.Status, run.StartedAt)
	return err
}

const runColumns = `id, chid, input, input_digest, status, started_at, completed_at,
	success_count, warning_count, failure_count, total_count, error_message`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var run Run
	var startedAt, completedAt sql.NullTime
	var input, digest, errMsg sql.NullString

	if err := row.Scan(
		&run.ID, &run.Chid, &input, &digest, &run.Status,
		&startedAt, &completedAt,
		&run.SuccessCount, &run.WarningCount, &run.FailureCount, &run.TotalCount,
		&errMsg,
	); err != nil {
		return nil, err
	}
	run.Input = input.String
	run.InputDigest = digest.String
	run.ErrorMessage = errMsg.String
	if startedAt.Valid {
		run.StartedAt = &startedAt.Time
	}
	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}
	if run.StartedAt != nil && run.CompletedAt != nil {
		run.Duration = run.CompletedAt.Sub(*run.StartedAt).Round(time.Millisecond).String()
	}
	return &run, nil
}

// GetRun retrieves a run by ID. It returns nil, nil when there is none.
func (s *Store) GetRun(id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	run, err := scanRun(s.db.QueryRow(`SELECT `+runColumns+` FROM runs WHERE id = ?`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return run, err
}

// ListRuns retrieves runs, most recent first.
func (s *Store) ListRuns(limit, offset int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.Query(`
		SELECT `+runColumns+` FROM runs
		ORDER BY started_at DESC
		LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	return runs, rows.Err()
}

// CountRuns returns the total number of runs.
func (s *Store) CountRuns() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count)
	return count, err
}

// CompleteRun records the final counts of a run. A non-empty errMsg marks
// the run failed.
func (s *Store) CompleteRun(id string, counts verify.Counts, errMsg string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := RunStatusCompleted
	if errMsg != "" {
		status = RunStatusFailed
	}
	_, err := s.db.Exec(`
		UPDATE runs
		SET status = ?, completed_at = ?, success_count = ?, warning_count = ?,
		    failure_count = ?, total_count = ?, error_message = ?
		WHERE id = ?
	`, status, time.Now(), counts.Success, counts.Warning, counts.Failure, counts.Total(), errMsg, id)
	return err
}

// AddOutcomes appends outcomes to a run, numbering them after any already
// stored.
func (s *Store) AddOutcomes(runID string, outcomes []verify.Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var next int
	if err := tx.QueryRow(`SELECT COALESCE(MAX(seq) + 1, 0) FROM run_outcomes WHERE run_id = ?`, runID).Scan(&next); err != nil {
		return err
	}
	stmt, err := tx.Prepare(`INSERT INTO run_outcomes (run_id, seq, rule_id, type, message) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, o := range outcomes {
		if _, err := stmt.Exec(runID, next+i, o.ID, o.Type.String(), o.Message); err != nil {
			return fmt.Errorf("insert outcome %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// GetOutcomes retrieves the outcomes of a run in order.
func (s *Store) GetOutcomes(runID string) ([]verify.Outcome, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT rule_id, type, message FROM run_outcomes WHERE run_id = ? ORDER BY seq
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var outcomes []verify.Outcome
	for rows.Next() {
		var o verify.Outcome
		var typ string
		var msg sql.NullString
		if err := rows.Scan(&o.ID, &typ, &msg); err != nil {
			return nil, err
		}
		if o.Type, err = verify.ParseOutcomeType(typ); err != nil {
			return nil, err
		}
		o.Message = msg.String
		outcomes = append(outcomes, o)
	}
	return outcomes, rows.Err()
}

// SaveSummary stores the model summary of a run.
func (s *Store) SaveSummary(runID string, sum *summary.InputSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(sum)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	_, err = s.db.Exec(`UPDATE runs SET summary_json = ? WHERE id = ?`, string(data), runID)
	return err
}

// GetSummary returns the stored summary of a run, or nil if none was saved.
func (s *Store) GetSummary(runID string) (*summary.InputSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data sql.NullString
	err := s.db.QueryRow(`SELECT summary_json FROM runs WHERE id = ?`, runID).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) || (err == nil && !data.Valid) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var sum summary.InputSummary
	if err := json.Unmarshal([]byte(data.String), &sum); err != nil {
		return nil, fmt.Errorf("failed to unmarshal summary: %w", err)
	}
	return &sum, nil
}

// DeleteRun deletes a run and its outcomes.
func (s *Store) DeleteRun(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec("DELETE FROM runs WHERE id = ?", id)
	return err
}
