package history

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/raysh454/reqs/internal/logging"
	"github.com/raysh454/reqs/internal/model"
)

//go:embed schema.sql
var schemaFS embed.FS

var ErrEmptyBatchID = errors.New("batch id is required")

// Entry is one recorded outcome.
type Entry struct {
	ID         string            `json:"id"`
	BatchID    string            `json:"batch_id"`
	URL        string            `json:"url"`
	Method     model.Method      `json:"method"`
	Kind       model.OutcomeKind `json:"kind"`
	StatusCode int               `json:"status,omitempty"`
	Duration   time.Duration     `json:"duration"`
	Body       json.RawMessage   `json:"body,omitempty"`
	Error      string            `json:"error,omitempty"`
	RecordedAt time.Time         `json:"recorded_at"`
}

// Store persists outcomes in SQLite so past batches can be listed later.
type Store struct {
	db     *sql.DB
	owned  bool
	logger logging.Logger
}

// Open opens (or creates) the SQLite database at path and applies the schema.
func Open(path string, logger logging.Logger) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("history path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// database/sql pools connections; sqlite handles one writer at a time.
	db.SetMaxOpenConns(1)

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma %q: %w", pragma, err)
		}
	}

	s, err := NewStore(db, logger)
	if err != nil {
		db.Close()
		return nil, err
	}
	s.owned = true
	s.logger.Info("history store opened", logging.Field{Key: "path", Value: path})
	return s, nil
}

// NewStore wraps an existing handle and runs migrations from schema.sql.
// Close does not close a handle passed in here.
func NewStore(db *sql.DB, logger logging.Logger) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	schemaSQL, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return nil, fmt.Errorf("failed to read schema.sql: %w", err)
	}
	if _, err := db.Exec(string(schemaSQL)); err != nil {
		return nil, fmt.Errorf("failed to execute schema: %w", err)
	}

	return &Store{
		db:     db,
		logger: logger.With(logging.Field{Key: "component", Value: "history"}),
	}, nil
}

// NewBatchID returns a fresh identifier for grouping the outcomes of one run.
func NewBatchID() string {
	return uuid.NewString()
}

// Record inserts one outcome under batchID.
func (s *Store) Record(ctx context.Context, batchID string, o model.Outcome) error {
	if batchID == "" {
		return ErrEmptyBatchID
	}
	id := o.ID
	if id == "" {
		id = uuid.NewString()
	}

	var body, errText sql.NullString
	if len(o.Body) > 0 {
		body = sql.NullString{String: string(o.Body), Valid: true}
	}
	if o.Err != nil {
		errText = sql.NullString{String: o.Err.Error(), Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO outcomes (id, batch_id, url, method, kind, status_code, duration_ms, body, error, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, batchID, o.URL, string(o.Method), string(o.Kind), o.StatusCode,
		o.Duration.Milliseconds(), body, errText, time.Now().UnixNano())
	if err != nil {
		return fmt.Errorf("insert outcome %s: %w", o.URL, err)
	}
	s.logger.Debug("recorded outcome",
		logging.Field{Key: "batch_id", Value: batchID},
		logging.Field{Key: "url", Value: o.URL},
		logging.Field{Key: "kind", Value: string(o.Kind)})
	return nil
}

// ListBatch returns the outcomes of one batch in the order they were recorded.
func (s *Store) ListBatch(ctx context.Context, batchID string) ([]Entry, error) {
	if batchID == "" {
		return nil, ErrEmptyBatchID
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, url, method, kind, status_code, duration_ms, body, error, recorded_at
		FROM outcomes WHERE batch_id = ? ORDER BY recorded_at, rowid`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch %s: %w", batchID, err)
	}
	return scanEntries(rows)
}

// Recent returns up to limit outcomes across all batches, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, batch_id, url, method, kind, status_code, duration_ms, body, error, recorded_at
		FROM outcomes ORDER BY recorded_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	return scanEntries(rows)
}

// Close closes the database if the store opened it.
func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e          Entry
			method     string
			kind       string
			durationMS int64
			body       sql.NullString
			errText    sql.NullString
			recordedAt int64
		)
		if err := rows.Scan(&e.ID, &e.BatchID, &e.URL, &method, &kind, &e.StatusCode,
			&durationMS, &body, &errText, &recordedAt); err != nil {
			return nil, fmt.Errorf("scan outcome: %w", err)
		}
		e.Method = model.Method(method)
		e.Kind = model.OutcomeKind(kind)
		e.Duration = time.Duration(durationMS) * time.Millisecond
		if body.Valid {
			e.Body = json.RawMessage(body.String)
		}
		e.Error = errText.String
		e.RecordedAt = time.Unix(0, recordedAt)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate outcomes: %w", err)
	}
	return out, nil
}
