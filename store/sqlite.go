package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

type SQLiteDB struct {
	db *sql.DB
}

func NewSQLiteDB(path string) (*SQLiteDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	return &SQLiteDB{db: db}, nil
}

func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

func (s *SQLiteDB) Migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			agent TEXT NOT NULL,
			baseline TEXT NOT NULL,
			players INTEGER NOT NULL,
			games INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			total INTEGER NOT NULL DEFAULT 0,
			wins INTEGER NOT NULL DEFAULT 0,
			draws INTEGER NOT NULL DEFAULT 0,
			losses INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL,
			game_index INTEGER NOT NULL,
			cash TEXT NOT NULL,
			winners TEXT NOT NULL,
			turns INTEGER NOT NULL,
			rounds INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			FOREIGN KEY (run_id) REFERENCES runs(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_run_id ON games(run_id, game_index)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}
	return nil
}

// SaveRun inserts the run, assigning it a new id if it has none.
func (s *SQLiteDB) SaveRun(run *Run) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	query := `INSERT INTO runs (
		id, agent, baseline, players, games, seed, total, wins, draws, losses
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	// SQLite integers are signed
	_, err := s.db.Exec(query,
		run.ID, run.Agent, run.Baseline, run.Players, run.Games, int64(run.Seed),
		run.Total, run.Wins, run.Draws, run.Losses,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

func (s *SQLiteDB) SaveGames(runID string, games []Game) error {
	if len(games) == 0 {
		return nil
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`INSERT INTO games (
		run_id, game_index, cash, winners, turns, rounds, duration_ns
	) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, g := range games {
		cash, err := json.Marshal(g.Cash)
		if err != nil {
			return err
		}
		winners, err := json.Marshal(g.Winners)
		if err != nil {
			return err
		}
		_, err = stmt.Exec(runID, g.Index, string(cash), string(winners), g.Turns, g.Rounds, int64(g.Duration))
		if err != nil {
			return fmt.Errorf("failed to save game %d: %w", g.Index, err)
		}
	}

	return tx.Commit()
}

func (s *SQLiteDB) GetRun(id string) (*Run, error) {
	query := `SELECT
		id, agent, baseline, players, games, seed, total, wins, draws, losses, created_at
		FROM runs WHERE id = ?`

	var run Run
	var seed int64
	err := s.db.QueryRow(query, id).Scan(
		&run.ID, &run.Agent, &run.Baseline, &run.Players, &run.Games, &seed,
		&run.Total, &run.Wins, &run.Draws, &run.Losses, &run.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	run.Seed = uint64(seed)
	return &run, nil
}

// GetGames returns the run's games ordered by index.
func (s *SQLiteDB) GetGames(runID string) ([]Game, error) {
	rows, err := s.db.Query(`SELECT game_index, cash, winners, turns, rounds, duration_ns
		FROM games WHERE run_id = ? ORDER BY game_index`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	games := []Game{}
	for rows.Next() {
		var g Game
		var cash, winners string
		var duration int64
		if err := rows.Scan(&g.Index, &cash, &winners, &g.Turns, &g.Rounds, &duration); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(cash), &g.Cash); err != nil {
			return nil, fmt.Errorf("failed to decode cash of game %d: %w", g.Index, err)
		}
		if err := json.Unmarshal([]byte(winners), &g.Winners); err != nil {
			return nil, fmt.Errorf("failed to decode winners of game %d: %w", g.Index, err)
		}
		g.Duration = time.Duration(duration)
		games = append(games, g)
	}
	return games, rows.Err()
}

// ListRuns returns the most recent runs first.
func (s *SQLiteDB) ListRuns(limit int) ([]Run, error) {
	rows, err := s.db.Query(`SELECT
		id, agent, baseline, players, games, seed, total, wins, draws, losses, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var run Run
		var seed int64
		if err := rows.Scan(
			&run.ID, &run.Agent, &run.Baseline, &run.Players, &run.Games, &seed,
			&run.Total, &run.Wins, &run.Draws, &run.Losses, &run.CreatedAt,
		); err != nil {
			return nil, err
		}
		run.Seed = uint64(seed)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}
