// Package storage provides the SQLite replay journal: every played session
// with its seed, and every swap attempted in it.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// ErrSessionNotFound is returned when no session has the requested ID.
var ErrSessionNotFound = errors.New("storage: session not found")

// Store manages the SQLite database connection for the journal.
type Store struct {
	db *sql.DB
}

// SessionRecord is one journaled session.
type SessionRecord struct {
	ID         uuid.UUID
	Level      string
	Seed       int64
	StartedAt  time.Time
	FinishedAt time.Time // Zero while the session is unfinished
	Score      int
	MovesUsed  int
	Won        bool
	FinalBoard string
}

// Finished reports whether FinishSession was called for the session.
func (r SessionRecord) Finished() bool {
	return !r.FinishedAt.IsZero()
}

// SwapRecord is one swap attempt in journal order.
type SwapRecord struct {
	Seq      int
	ARow     int
	ACol     int
	BRow     int
	BCol     int
	Accepted bool
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			level TEXT NOT NULL,
			seed INTEGER NOT NULL,
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			finished_at DATETIME,
			score INTEGER NOT NULL DEFAULT 0,
			moves_used INTEGER NOT NULL DEFAULT 0,
			won INTEGER NOT NULL DEFAULT 0,
			final_board TEXT NOT NULL DEFAULT ''
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_level ON sessions(level);
		CREATE INDEX IF NOT EXISTS idx_sessions_started ON sessions(started_at DESC);

		CREATE TABLE IF NOT EXISTS swaps (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			a_row INTEGER NOT NULL,
			a_col INTEGER NOT NULL,
			b_row INTEGER NOT NULL,
			b_col INTEGER NOT NULL,
			accepted INTEGER NOT NULL,
			PRIMARY KEY (session_id, seq)
		);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// StartSession journals a new session and returns its ID.
func (s *Store) StartSession(level string, seed int64) (uuid.UUID, error) {
	id := uuid.New()
	_, err := s.db.Exec(
		"INSERT INTO sessions (id, level, seed) VALUES (?, ?, ?)",
		id.String(), level, seed,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("storage: cannot start session: %w", err)
	}
	return id, nil
}

// RecordSwap appends a swap attempt to a session and returns its sequence number.
func (s *Store) RecordSwap(id uuid.UUID, sw SwapRecord) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record swap: %w", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRow("SELECT COUNT(*) FROM sessions WHERE id = ?", id.String()).Scan(&exists); err != nil {
		return 0, fmt.Errorf("storage: cannot record swap: %w", err)
	}
	if exists == 0 {
		return 0, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}

	var seq int
	if err := tx.QueryRow(
		"SELECT COALESCE(MAX(seq) + 1, 0) FROM swaps WHERE session_id = ?",
		id.String(),
	).Scan(&seq); err != nil {
		return 0, fmt.Errorf("storage: cannot record swap: %w", err)
	}

	_, err = tx.Exec(
		`INSERT INTO swaps (session_id, seq, a_row, a_col, b_row, b_col, accepted)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id.String(), seq, sw.ARow, sw.ACol, sw.BRow, sw.BCol, sw.Accepted,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot record swap: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("storage: cannot record swap: %w", err)
	}
	return seq, nil
}

// FinishSession stores the final result of a session.
func (s *Store) FinishSession(id uuid.UUID, score, movesUsed int, won bool, finalBoard string) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET finished_at = CURRENT_TIMESTAMP, score = ?, moves_used = ?, won = ?, final_board = ?
		 WHERE id = ?`,
		score, movesUsed, won, finalBoard, id.String(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot finish session: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return nil
}

const sessionColumns = `id, level, seed, started_at, finished_at, score, moves_used, won, final_board`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var r SessionRecord
	var id string
	var startedAt, finishedAt any
	if err := row.Scan(&id, &r.Level, &r.Seed, &startedAt, &finishedAt,
		&r.Score, &r.MovesUsed, &r.Won, &r.FinalBoard); err != nil {
		return r, err
	}
	parsed, err := uuid.Parse(id)
	if err != nil {
		return r, fmt.Errorf("storage: bad session id %q: %w", id, err)
	}
	r.ID = parsed
	r.StartedAt = parseTime(startedAt)
	r.FinishedAt = parseTime(finishedAt)
	return r, nil
}

// parseTime handles both time.Time and string datetimes; NULL is the zero time.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Session retrieves one session by ID.
func (s *Store) Session(id uuid.UUID) (SessionRecord, error) {
	r, err := scanSession(s.db.QueryRow(
		"SELECT "+sessionColumns+" FROM sessions WHERE id = ?",
		id.String(),
	))
	if errors.Is(err, sql.ErrNoRows) {
		return r, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err != nil {
		return r, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return r, nil
}

// RecentSessions retrieves the most recently started sessions.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		"SELECT "+sessionColumns+" FROM sessions ORDER BY started_at DESC, rowid DESC LIMIT ?",
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// Swaps returns the swap attempts of a session in journal order.
func (s *Store) Swaps(id uuid.UUID) ([]SwapRecord, error) {
	rows, err := s.db.Query(
		`SELECT seq, a_row, a_col, b_row, b_col, accepted
		 FROM swaps
		 WHERE session_id = ?
		 ORDER BY seq`,
		id.String(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query swaps: %w", err)
	}
	defer rows.Close()

	var out []SwapRecord
	for rows.Next() {
		var sw SwapRecord
		if err := rows.Scan(&sw.Seq, &sw.ARow, &sw.ACol, &sw.BRow, &sw.BCol, &sw.Accepted); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		out = append(out, sw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// LevelStats contains aggregated statistics for the finished sessions of a level.
type LevelStats struct {
	Level      string
	Sessions   int
	Wins       int
	BestScore  int
	AvgScore   float64
	LastPlayed time.Time
}

// AllLevelStats retrieves statistics for every level with a finished session.
func (s *Store) AllLevelStats() (map[string]*LevelStats, error) {
	rows, err := s.db.Query(
		`SELECT level, COUNT(*), SUM(won), MAX(score), AVG(score), MAX(finished_at)
		 FROM sessions
		 WHERE finished_at IS NOT NULL
		 GROUP BY level`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get level stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*LevelStats)
	for rows.Next() {
		var ls LevelStats
		var lastPlayed any
		if err := rows.Scan(&ls.Level, &ls.Sessions, &ls.Wins, &ls.BestScore, &ls.AvgScore, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		ls.LastPlayed = parseTime(lastPlayed)
		stats[ls.Level] = &ls
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
