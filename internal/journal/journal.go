package journal

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
	session_id   TEXT PRIMARY KEY,
	label        TEXT,
	config_json  TEXT NOT NULL,
	created_at   TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS session_events (
	id           INTEGER PRIMARY KEY AUTOINCREMENT,
	session_id   TEXT NOT NULL,
	seq          INTEGER NOT NULL,
	kind         TEXT NOT NULL,
	payload_json TEXT,
	created_at   TEXT NOT NULL,
	FOREIGN KEY (session_id) REFERENCES sessions(session_id)
);

CREATE INDEX IF NOT EXISTS idx_session_events_lookup
ON session_events(session_id, seq);
`

// #endregion schema

// #region store
// Store persists session telemetry in SQLite. This is host-side logging: the
// engine itself never touches it.
type Store struct {
	db *sql.DB
}

// NewStore opens a SQLite database and runs migrations.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("pragma: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("pragma fk: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for use by inspection tooling.
func (s *Store) DB() *sql.DB {
	return s.db
}

// #endregion store

// #region sessions
// CreateSession registers a new session and returns its ID.
func (s *Store) CreateSession(label, configJSON string) (string, error) {
	id := uuid.New().String()
	_, err := s.db.Exec(
		`INSERT INTO sessions (session_id, label, config_json, created_at) VALUES (?, ?, ?, ?)`,
		id, label, configJSON, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("create session: %w", err)
	}
	return id, nil
}

// Session returns metadata for one session.
func (s *Store) Session(sessionID string) (SessionInfo, error) {
	var info SessionInfo
	var createdStr string
	err := s.db.QueryRow(
		`SELECT s.session_id, s.label, s.config_json, s.created_at,
		        (SELECT COUNT(*) FROM session_events e WHERE e.session_id = s.session_id)
		 FROM sessions s WHERE s.session_id = ?`, sessionID,
	).Scan(&info.SessionID, &info.Label, &info.ConfigJSON, &createdStr, &info.EventCount)
	if err != nil {
		return SessionInfo{}, fmt.Errorf("get session %s: %w", sessionID, err)
	}
	info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
	return info, nil
}

// Sessions lists the most recent sessions.
func (s *Store) Sessions(limit int) ([]SessionInfo, error) {
	rows, err := s.db.Query(
		`SELECT s.session_id, s.label, s.config_json, s.created_at,
		        (SELECT COUNT(*) FROM session_events e WHERE e.session_id = s.session_id)
		 FROM sessions s ORDER BY s.created_at DESC LIMIT ?`, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var infos []SessionInfo
	for rows.Next() {
		var info SessionInfo
		var createdStr string
		if err := rows.Scan(&info.SessionID, &info.Label, &info.ConfigJSON, &createdStr, &info.EventCount); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		info.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		infos = append(infos, info)
	}
	return infos, rows.Err()
}

// #endregion sessions

// #region events
// AppendEvent writes one event row.
func (s *Store) AppendEvent(sessionID string, seq int, kind, payloadJSON string) error {
	_, err := s.db.Exec(
		`INSERT INTO session_events (session_id, seq, kind, payload_json, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, seq, kind, nullIfEmpty(payloadJSON),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("append event: %w", err)
	}
	return nil
}

// Entries returns all events of a session in sequence order.
func (s *Store) Entries(sessionID string) ([]Entry, error) {
	rows, err := s.db.Query(
		`SELECT session_id, seq, kind, payload_json, created_at
		 FROM session_events WHERE session_id = ? ORDER BY seq ASC`, sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var payload sql.NullString
		var createdStr string
		if err := rows.Scan(&e.SessionID, &e.Seq, &e.Kind, &payload, &createdStr); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if payload.Valid {
			e.PayloadJSON = payload.String
		}
		e.CreatedAt, _ = time.Parse(time.RFC3339Nano, createdStr)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// #endregion events

// #region helpers
func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
