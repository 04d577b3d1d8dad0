package game

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/trytobebee/gridsnake/pkg/config"

	_ "modernc.org/sqlite"
)

// SessionRecord is one finished game
type SessionRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"sessionId"`
	StartTime time.Time `json:"startTime"`
	EndTime   time.Time `json:"endTime"`
	Score     int       `json:"score"`
	FoodEaten int       `json:"foodEaten"`
	Ticks     uint64    `json:"ticks"`
	Won       bool      `json:"won"`
}

// SQLiteStore keeps the high score and game history in a SQLite file
type SQLiteStore struct {
	db  *sql.DB
	key string
}

// OpenSQLiteStore opens (creating if needed) the database at path
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// One writer; sqlite serializes anyway
	db.SetMaxOpenConns(1)

	s := &SQLiteStore{db: db, key: config.HighScoreKey}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS high_scores (
			key TEXT PRIMARY KEY,
			score INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS game_sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT,
			start_time DATETIME,
			end_time DATETIME,
			score INTEGER,
			food_eaten INTEGER,
			ticks INTEGER,
			won INTEGER
		)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) HighScore() (int, error) {
	var score int
	err := s.db.QueryRow(`SELECT score FROM high_scores WHERE key = ?`, s.key).Scan(&score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read high score: %w", err)
	}
	return score, nil
}

func (s *SQLiteStore) SetHighScore(score int) error {
	_, err := s.db.Exec(`INSERT INTO high_scores (key, score, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET score = excluded.score, updated_at = CURRENT_TIMESTAMP`, s.key, score)
	if err != nil {
		return fmt.Errorf("failed to save high score: %w", err)
	}
	return nil
}

// RecordSession appends a finished game to the history
func (s *SQLiteStore) RecordSession(rec SessionRecord) error {
	won := 0
	if rec.Won {
		won = 1
	}
	_, err := s.db.Exec(`INSERT INTO game_sessions (session_id, start_time, end_time, score, food_eaten, ticks, won)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		rec.SessionID, rec.StartTime.UTC(), rec.EndTime.UTC(), rec.Score, rec.FoodEaten, int64(rec.Ticks), won)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// RecentSessions returns up to limit games, newest first
func (s *SQLiteStore) RecentSessions(limit int) ([]SessionRecord, error) {
	rows, err := s.db.Query(`SELECT id, session_id, start_time, end_time, score, food_eaten, ticks, won
		FROM game_sessions ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query sessions: %w", err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			rec   SessionRecord
			ticks int64
			won   int
		)
		if err := rows.Scan(&rec.ID, &rec.SessionID, &rec.StartTime, &rec.EndTime, &rec.Score, &rec.FoodEaten, &ticks, &won); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		rec.Ticks = uint64(ticks)
		rec.Won = won != 0
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
