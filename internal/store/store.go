// Package store provides SQLite persistence for run history.
package store

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/jaehoon-dev/themeradar/internal/scoring"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: All methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex // Protects all database operations
}

// Run is one recorded pipeline pass.
type Run struct {
	ID        string
	CreatedAt time.Time
	NewsCount int
	Themes    []scoring.ReportRow
	Picks     []scoring.Pick
}

// Open creates a new Store with the given database path.
// Creates tables if they don't exist.
// Uses WAL mode for better concurrent read performance (file-based DBs only).
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so all pooled connections see the same database
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}

	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}

	return s, nil
}

// createTables creates the required tables and indexes if they don't exist.
func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		created_at DATETIME NOT NULL,
		news_count INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS theme_rows (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		theme TEXT NOT NULL,
		news_count INTEGER NOT NULL,
		avg_delta_pct REAL NOT NULL,
		strength REAL NOT NULL,
		risk_tier INTEGER NOT NULL,
		PRIMARY KEY (run_id, position)
	);

	CREATE TABLE IF NOT EXISTS picks (
		run_id TEXT NOT NULL,
		position INTEGER NOT NULL,
		theme TEXT NOT NULL,
		stock_name TEXT NOT NULL,
		ticker TEXT NOT NULL,
		change_pct REAL NOT NULL,
		news_count INTEGER NOT NULL,
		ai_score REAL NOT NULL,
		volume INTEGER,
		PRIMARY KEY (run_id, position)
	);

	CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
// Thread-safe: acquires write lock to prevent closing during in-flight operations.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// SaveRun records one pipeline pass and returns the generated run ID.
// The whole run is written in a single transaction.
func (s *Store) SaveRun(createdAt time.Time, newsCount int, rows []scoring.ReportRow, picks []scoring.Pick) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		"INSERT INTO runs (id, created_at, news_count) VALUES (?, ?, ?)",
		runID, createdAt, newsCount,
	); err != nil {
		return "", err
	}

	for i, r := range rows {
		if _, err := tx.Exec(`
			INSERT INTO theme_rows (run_id, position, theme, news_count, avg_delta_pct, strength, risk_tier)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			runID, i, r.Theme, r.NewsCount, r.AvgDeltaPct, r.Strength, r.RiskTier,
		); err != nil {
			return "", err
		}
	}

	for i, p := range picks {
		var volume any
		if p.Volume.Valid {
			volume = p.Volume.Value
		}
		if _, err := tx.Exec(`
			INSERT INTO picks (run_id, position, theme, stock_name, ticker, change_pct, news_count, ai_score, volume)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, p.Theme, p.StockName, p.Ticker, p.ChangePct, p.NewsCount, p.AIScore, volume,
		); err != nil {
			return "", err
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return runID, nil
}

// GetRun loads one run with its theme rows and picks.
func (s *Store) GetRun(runID string) (Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var run Run
	err := s.db.QueryRow(
		"SELECT id, created_at, news_count FROM runs WHERE id = ?", runID,
	).Scan(&run.ID, &run.CreatedAt, &run.NewsCount)
	if err != nil {
		return Run{}, err
	}

	if run.Themes, err = s.queryThemeRows(runID); err != nil {
		return Run{}, err
	}
	if run.Picks, err = s.queryPicks(runID); err != nil {
		return Run{}, err
	}
	return run, nil
}

// RecentRuns returns run headers ordered newest first. Theme rows and picks
// are not loaded; use GetRun for the full record.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(
		"SELECT id, created_at, news_count FROM runs ORDER BY created_at DESC LIMIT ?", limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.CreatedAt, &run.NewsCount); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// queryThemeRows loads a run's theme rows in position order.
// Caller must hold s.mu (read lock is sufficient).
func (s *Store) queryThemeRows(runID string) ([]scoring.ReportRow, error) {
	rows, err := s.db.Query(`
		SELECT theme, news_count, avg_delta_pct, strength, risk_tier
		FROM theme_rows WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scoring.ReportRow
	for rows.Next() {
		var r scoring.ReportRow
		if err := rows.Scan(&r.Theme, &r.NewsCount, &r.AvgDeltaPct, &r.Strength, &r.RiskTier); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// queryPicks loads a run's picks in position order.
// Caller must hold s.mu (read lock is sufficient).
func (s *Store) queryPicks(runID string) ([]scoring.Pick, error) {
	rows, err := s.db.Query(`
		SELECT theme, stock_name, ticker, change_pct, news_count, ai_score, volume
		FROM picks WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []scoring.Pick
	for rows.Next() {
		var p scoring.Pick
		var volume sql.NullInt64
		if err := rows.Scan(&p.Theme, &p.StockName, &p.Ticker, &p.ChangePct, &p.NewsCount, &p.AIScore, &volume); err != nil {
			return nil, err
		}
		if volume.Valid {
			p.Volume.Value = volume.Int64
			p.Volume.Valid = true
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
