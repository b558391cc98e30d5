// Package storage provides the SQLite play journal: one row per play
// session and one per map entered. It stores statistics only; a session
// cannot be resumed from it.
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

// ErrUnknownSession is returned when a session id has no journal row.
var ErrUnknownSession = errors.New("storage: unknown session")

// Store manages the SQLite database connection for the play journal.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Session is one play-through, from start to quit.
type Session struct {
	ID        string
	Player    string
	StartMap  int
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is still open
	Counters
	MapsVisited int // distinct maps entered, including the start map
}

// Duration returns how long the session lasted, or 0 if it is still open.
func (s Session) Duration() time.Duration {
	if s.EndedAt.IsZero() {
		return 0
	}
	return s.EndedAt.Sub(s.StartedAt)
}

// Counters are the totals written when a session ends.
type Counters struct {
	Ticks    int
	Moves    int
	Warps    int
	Failures int
	Respawns int
}

// Visit records the character entering a map.
type Visit struct {
	SessionID string
	MapID     int
	EnteredAt time.Time
}

// MapStats aggregates the visits of one map across all sessions.
type MapStats struct {
	MapID     int
	Visits    int
	Sessions  int
	LastVisit time.Time
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

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	// Open database
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db, now: func() time.Time { return time.Now().UTC() }}

	// Run migrations
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
			player TEXT NOT NULL,
			start_map INTEGER NOT NULL,
			started_at DATETIME NOT NULL,
			ended_at DATETIME,
			ticks INTEGER NOT NULL DEFAULT 0,
			moves INTEGER NOT NULL DEFAULT 0,
			warps INTEGER NOT NULL DEFAULT 0,
			failures INTEGER NOT NULL DEFAULT 0,
			respawns INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_started_at ON sessions(started_at);

		CREATE TABLE IF NOT EXISTS map_visits (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			map_id INTEGER NOT NULL,
			entered_at DATETIME NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_map_visits_session ON map_visits(session_id);
		CREATE INDEX IF NOT EXISTS idx_map_visits_map ON map_visits(map_id);
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

// StartSession opens a journal entry and records the visit to the start map.
// Returns the new session ID.
func (s *Store) StartSession(player string, startMap int) (string, error) {
	id := uuid.NewString()
	now := s.now()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("storage: cannot begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO sessions (id, player, start_map, started_at) VALUES (?, ?, ?, ?)",
		id, player, startMap, now,
	); err != nil {
		return "", fmt.Errorf("storage: cannot start session: %w", err)
	}
	if _, err := tx.Exec(
		"INSERT INTO map_visits (session_id, map_id, entered_at) VALUES (?, ?, ?)",
		id, startMap, now,
	); err != nil {
		return "", fmt.Errorf("storage: cannot record visit: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("storage: cannot commit session: %w", err)
	}
	return id, nil
}

// RecordVisit notes that the session entered a map.
func (s *Store) RecordVisit(sessionID string, mapID int) error {
	res, err := s.db.Exec(
		`INSERT INTO map_visits (session_id, map_id, entered_at)
		 SELECT ?, ?, ? WHERE EXISTS (SELECT 1 FROM sessions WHERE id = ?)`,
		sessionID, mapID, s.now(), sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot record visit: %w", err)
	}
	return requireRow(res, sessionID)
}

// EndSession closes a session and stores its counters.
func (s *Store) EndSession(sessionID string, c Counters) error {
	res, err := s.db.Exec(
		`UPDATE sessions
		 SET ended_at = ?, ticks = ?, moves = ?, warps = ?, failures = ?, respawns = ?
		 WHERE id = ?`,
		s.now(), c.Ticks, c.Moves, c.Warps, c.Failures, c.Respawns, sessionID,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot end session: %w", err)
	}
	return requireRow(res, sessionID)
}

func requireRow(res sql.Result, sessionID string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot get affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrUnknownSession, sessionID)
	}
	return nil
}

const sessionColumns = `s.id, s.player, s.start_map, s.started_at, s.ended_at,
	s.ticks, s.moves, s.warps, s.failures, s.respawns,
	(SELECT COUNT(DISTINCT v.map_id) FROM map_visits v WHERE v.session_id = s.id)`

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+sessionColumns+`
		 FROM sessions s
		 ORDER BY s.started_at DESC, s.rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return sessions, nil
}

// SessionByID retrieves one session.
// Returns nil if the session does not exist.
func (s *Store) SessionByID(sessionID string) (*Session, error) {
	row := s.db.QueryRow(`SELECT `+sessionColumns+` FROM sessions s WHERE s.id = ?`, sessionID)
	sess, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &sess, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(r scanner) (Session, error) {
	var sess Session
	var startedAt, endedAt any
	err := r.Scan(
		&sess.ID,
		&sess.Player,
		&sess.StartMap,
		&startedAt,
		&endedAt,
		&sess.Ticks,
		&sess.Moves,
		&sess.Warps,
		&sess.Failures,
		&sess.Respawns,
		&sess.MapsVisited,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return sess, err
	}
	if err != nil {
		return sess, fmt.Errorf("storage: cannot scan session: %w", err)
	}
	sess.StartedAt = parseTime(startedAt)
	sess.EndedAt = parseTime(endedAt)
	return sess, nil
}

// Visits retrieves the maps a session entered, in order.
func (s *Store) Visits(sessionID string) ([]Visit, error) {
	rows, err := s.db.Query(
		`SELECT session_id, map_id, entered_at
		 FROM map_visits
		 WHERE session_id = ?
		 ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query visits: %w", err)
	}
	defer rows.Close()

	var visits []Visit
	for rows.Next() {
		var v Visit
		var enteredAt any
		if err := rows.Scan(&v.SessionID, &v.MapID, &enteredAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		v.EnteredAt = parseTime(enteredAt)
		visits = append(visits, v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return visits, nil
}

// AllMapStats aggregates visits per map, most visited first.
func (s *Store) AllMapStats() ([]MapStats, error) {
	rows, err := s.db.Query(
		`SELECT map_id, COUNT(*), COUNT(DISTINCT session_id), MAX(entered_at)
		 FROM map_visits
		 GROUP BY map_id
		 ORDER BY COUNT(*) DESC, map_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get map stats: %w", err)
	}
	defer rows.Close()

	var stats []MapStats
	for rows.Next() {
		var m MapStats
		var lastVisit any
		if err := rows.Scan(&m.MapID, &m.Visits, &m.Sessions, &lastVisit); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		m.LastVisit = parseTime(lastVisit)
		stats = append(stats, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// timeLayouts are the forms a DATETIME value can come back in.
var timeLayouts = []string{
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// parseTime handles both time.Time and string column values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		for _, layout := range timeLayouts {
			if parsed, err := time.Parse(layout, v); err == nil {
				return parsed
			}
		}
	case []byte:
		return parseTime(string(v))
	}
	return time.Time{}
}
