// Package history records organizer runs and their actions in SQLite.
package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/vmunix/cleanfolder/internal/migrations"
)

// Status of a run.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Run is one organizer invocation.
type Run struct {
	ID                string
	Root              string
	Status            Status
	Collision         string
	Moved             int
	Unpacked          int
	UnpackFailed      int
	Pruned            int
	BytesMoved        int64
	UnknownExtensions []string
	Error             string
	StartedAt         time.Time
	FinishedAt        *time.Time
}

// Action is one filesystem change made during a run.
type Action struct {
	ID        int64
	RunID     string
	Kind      string
	Category  string
	Source    string
	Dest      string
	Size      int64
	Error     string
	CreatedAt time.Time
}

// Store persists runs and actions.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the history database at path and applies
// the schema. path may be ":memory:".
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	// One connection: a second one would see a different :memory: database.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return NewStore(db), nil
}

// NewStore wraps an already migrated database.
func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// BeginRun inserts a running run with a fresh id.
func (s *Store) BeginRun(root, collision string) (*Run, error) {
	run := &Run{
		ID:                uuid.NewString(),
		Root:              root,
		Status:            StatusRunning,
		Collision:         collision,
		UnknownExtensions: []string{},
		StartedAt:         time.Now(),
	}
	_, err := s.db.Exec(`
		INSERT INTO runs (id, root, status, collision, started_at)
		VALUES (?, ?, ?, ?, ?)`,
		run.ID, run.Root, run.Status, run.Collision, run.StartedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	return run, nil
}

// FinishRun stores the final status, counters and error of run.
func (s *Store) FinishRun(run *Run) error {
	unknown, err := json.Marshal(run.UnknownExtensions)
	if err != nil {
		return fmt.Errorf("marshal unknown extensions: %w", err)
	}

	now := time.Now()
	result, err := s.db.Exec(`
		UPDATE runs SET status = ?, moved = ?, unpacked = ?, unpack_failed = ?, pruned = ?,
			bytes_moved = ?, unknown_extensions = ?, error = ?, finished_at = ?
		WHERE id = ?`,
		run.Status, run.Moved, run.Unpacked, run.UnpackFailed, run.Pruned,
		run.BytesMoved, string(unknown), nullString(run.Error), now, run.ID,
	)
	if err != nil {
		return fmt.Errorf("update run: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	run.FinishedAt = &now
	return nil
}

// AddAction inserts an action and sets its ID.
func (s *Store) AddAction(a *Action) error {
	now := time.Now()
	result, err := s.db.Exec(`
		INSERT INTO actions (run_id, kind, category, source, dest, size, error, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.RunID, a.Kind, a.Category, a.Source, a.Dest, a.Size, nullString(a.Error), now,
	)
	if err != nil {
		return fmt.Errorf("insert action: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	a.ID = id
	a.CreatedAt = now
	return nil
}

const runColumns = `id, root, status, collision, moved, unpacked, unpack_failed, pruned,
	bytes_moved, unknown_extensions, error, started_at, finished_at`

// ListRuns returns the most recent runs first. limit <= 0 means all.
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC`
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// GetRun finds a run by full id or by a unique id prefix.
func (s *Store) GetRun(id string) (*Run, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(`
		SELECT `+runColumns+` FROM runs
		WHERE substr(id, 1, length(?)) = ?
		ORDER BY (id = ?) DESC, started_at DESC
		LIMIT 2`,
		id, id, id,
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var found []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		found = append(found, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	switch {
	case len(found) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case found[0].ID == id, len(found) == 1:
		return found[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// Actions returns the actions of a run in the order they happened.
func (s *Store) Actions(runID string) ([]*Action, error) {
	rows, err := s.db.Query(`
		SELECT id, run_id, kind, category, source, dest, size, error, created_at
		FROM actions WHERE run_id = ? ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list actions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var actions []*Action
	for rows.Next() {
		a := &Action{}
		var errText sql.NullString
		if err := rows.Scan(&a.ID, &a.RunID, &a.Kind, &a.Category, &a.Source, &a.Dest, &a.Size, &errText, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}
		a.Error = errText.String
		actions = append(actions, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate actions: %w", err)
	}
	return actions, nil
}

func scanRun(rows *sql.Rows) (*Run, error) {
	run := &Run{}
	var (
		unknown  string
		errText  sql.NullString
		finished sql.NullTime
	)
	err := rows.Scan(&run.ID, &run.Root, &run.Status, &run.Collision,
		&run.Moved, &run.Unpacked, &run.UnpackFailed, &run.Pruned,
		&run.BytesMoved, &unknown, &errText, &run.StartedAt, &finished)
	if err != nil {
		return nil, fmt.Errorf("scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(unknown), &run.UnknownExtensions); err != nil {
		return nil, fmt.Errorf("decode unknown extensions of run %s: %w", run.ID, err)
	}
	run.Error = errText.String
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return run, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
