package store

import "time"

// DB persists evaluation runs and their games.
type DB interface {
	Close() error
	Migrate() error
	SaveRun(run *Run) error
	SaveGames(runID string, games []Game) error
	GetRun(id string) (*Run, error)
	GetGames(runID string) ([]Game, error)
	ListRuns(limit int) ([]Run, error)
}

// Run is one evaluation of a strategy against a baseline.
type Run struct {
	ID        string
	Agent     string
	Baseline  string
	Players   int
	Games     int
	Seed      uint64
	Total     int
	Wins      int
	Draws     int
	Losses    int
	CreatedAt time.Time
}

// Game is the result of one evaluation game.
type Game struct {
	Index    int
	Cash     []int // By seat
	Winners  []int
	Turns    int
	Rounds   int
	Duration time.Duration
}
