// Package db persists tour sessions as JSON state snapshots in sqlite.
package db

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/neurotoxic-dev/tour-server/internal/game"
)

// DB wraps database operations.
type DB struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// NewDB opens a sqlite database and runs migrations.
func NewDB(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}
	if err := conn.Ping(); err != nil {
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		band_name TEXT NOT NULL,
		day INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS session_states (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		day INTEGER NOT NULL,
		state_json TEXT NOT NULL,
		game_over INTEGER NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS session_ownership (
		session_id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_session_states_session_id ON session_states(session_id);
	CREATE INDEX IF NOT EXISTS idx_session_ownership_user_id ON session_ownership(user_id);
	`

	_, err := db.conn.Exec(schema)
	return err
}

// SaveSessionOwnership records which user owns a session.
func (db *DB) SaveSessionOwnership(sessionID, userID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	_, err := db.conn.Exec(`
		INSERT OR REPLACE INTO session_ownership (session_id, user_id)
		VALUES (?, ?)
	`, sessionID, userID)
	return err
}

// GetSessionOwner returns the owner of a session.
func (db *DB) GetSessionOwner(sessionID string) (string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var userID string
	err := db.conn.QueryRow(`
		SELECT user_id FROM session_ownership WHERE session_id = ?
	`, sessionID).Scan(&userID)
	if err != nil {
		return "", err
	}
	return userID, nil
}

// IsSessionOwner checks whether the user owns the session.
func (db *DB) IsSessionOwner(sessionID, userID string) (bool, error) {
	owner, err := db.GetSessionOwner(sessionID)
	if err != nil {
		return false, err
	}
	return owner == userID, nil
}

// GetUserSessions returns the ids of all sessions a user owns, newest
// first.
func (db *DB) GetUserSessions(userID string) ([]string, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	rows, err := db.conn.Query(`
		SELECT session_id FROM session_ownership WHERE user_id = ? ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// SaveSession upserts a session row and appends a state snapshot.
func (db *DB) SaveSession(sessionID, bandName string, state *game.State) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	stateJSON, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO sessions (id, band_name, day, created_at, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		ON CONFLICT(id) DO UPDATE SET day = excluded.day, updated_at = CURRENT_TIMESTAMP
	`, sessionID, bandName, state.Player.Day)
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		INSERT INTO session_states (session_id, day, state_json, game_over)
		VALUES (?, ?, ?, ?)
	`, sessionID, state.Player.Day, stateJSON, boolToInt(state.GameOver))
	if err != nil {
		return err
	}

	return tx.Commit()
}

// LoadSession loads the latest state snapshot for a session.
func (db *DB) LoadSession(sessionID string) (*game.State, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	var stateJSON string
	err := db.conn.QueryRow(`
		SELECT state_json
		FROM session_states
		WHERE session_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, sessionID).Scan(&stateJSON)
	if err != nil {
		return nil, err
	}

	var state game.State
	if err := json.Unmarshal([]byte(stateJSON), &state); err != nil {
		return nil, fmt.Errorf("unmarshal state: %w", err)
	}
	return &state, nil
}

// DeleteSession removes a session and its snapshots.
func (db *DB) DeleteSession(sessionID string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, q := range []string{
		`DELETE FROM session_states WHERE session_id = ?`,
		`DELETE FROM session_ownership WHERE session_id = ?`,
		`DELETE FROM sessions WHERE id = ?`,
	} {
		if _, err := tx.Exec(q, sessionID); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
