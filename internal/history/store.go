package history

import (
	"database/sql"
	_ "embed"
	"fmt"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sahilm/fuzzy"
)

//go:embed schema.sql
var schemaSQL string

const timeLayout = "2006-01-02 15:04:05.000"

// HistoryEntry represents a single query run
type HistoryEntry struct {
	ID int
	// Source names the input file the query ran against
	Source       string
	Engine       string
	Query        string
	ExecutedAt   time.Time
	Duration     time.Duration
	ResultCount  int
	Success      bool
	ErrorMessage string
}

// Store manages query history persistence
type Store struct {
	db    *sql.DB
	limit int
}

// NewStore opens or creates the history database at path. Only the newest
// limit entries are kept; limit <= 0 keeps everything.
func NewStore(path string, limit int) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history schema: %w", err)
	}

	return &Store{db: db, limit: limit}, nil
}

// Add records a query run
func (s *Store) Add(entry HistoryEntry) error {
	executedAt := entry.ExecutedAt
	if executedAt.IsZero() {
		executedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO query_history
		(source, engine, query, executed_at, duration_ms, result_count, success, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.Source,
		entry.Engine,
		entry.Query,
		executedAt.UTC().Format(timeLayout),
		entry.Duration.Milliseconds(),
		entry.ResultCount,
		entry.Success,
		entry.ErrorMessage,
	)
	if err != nil {
		return fmt.Errorf("failed to record query: %w", err)
	}
	return s.prune()
}

func (s *Store) prune() error {
	if s.limit <= 0 {
		return nil
	}
	_, err := s.db.Exec(`
		DELETE FROM query_history
		WHERE id NOT IN (
			SELECT id FROM query_history ORDER BY executed_at DESC, id DESC LIMIT ?
		)`, s.limit)
	if err != nil {
		return fmt.Errorf("failed to prune history: %w", err)
	}
	return nil
}

const selectColumns = `
	SELECT id, source, engine, query, executed_at,
	       duration_ms, result_count, success, error_message
	FROM query_history`

// GetRecent retrieves the most recent query history entries
func (s *Store) GetRecent(limit int) ([]HistoryEntry, error) {
	return s.query(selectColumns+`
		ORDER BY executed_at DESC, id DESC
		LIMIT ?`, sqlLimit(limit))
}

// Search retrieves entries whose query contains text
func (s *Store) Search(text string, limit int) ([]HistoryEntry, error) {
	return s.query(selectColumns+`
		WHERE query LIKE ?
		ORDER BY executed_at DESC, id DESC
		LIMIT ?`, "%"+text+"%", sqlLimit(limit))
}

// Queries returns distinct successful queries for engine, newest first.
// This is what the query prompt walks with the arrow keys.
func (s *Store) Queries(engine string, limit int) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT query FROM query_history
		WHERE success AND engine = ?
		GROUP BY query
		ORDER BY MAX(executed_at) DESC, MAX(id) DESC
		LIMIT ?`, engine, sqlLimit(limit))
	if err != nil {
		return nil, fmt.Errorf("failed to list queries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}

// Fuzzy ranks the remembered queries for engine against pattern, best
// match first
func (s *Store) Fuzzy(engine, pattern string, limit int) ([]string, error) {
	queries, err := s.Queries(engine, 0)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(pattern) == "" {
		return truncate(queries, limit), nil
	}

	matches := fuzzy.Find(pattern, queries)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Str)
	}
	return truncate(out, limit), nil
}

// sqlLimit maps a non-positive limit to SQLite's "no limit"
func sqlLimit(limit int) int {
	if limit <= 0 {
		return -1
	}
	return limit
}

func truncate(s []string, limit int) []string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}

func (s *Store) query(stmt string, args ...any) ([]HistoryEntry, error) {
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var durationMs int64
		var executedAt string

		err := rows.Scan(
			&e.ID,
			&e.Source,
			&e.Engine,
			&e.Query,
			&executedAt,
			&durationMs,
			&e.ResultCount,
			&e.Success,
			&e.ErrorMessage,
		)
		if err != nil {
			return nil, err
		}

		e.Duration = time.Duration(durationMs) * time.Millisecond
		e.ExecutedAt, _ = time.Parse(timeLayout, executedAt)

		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}
