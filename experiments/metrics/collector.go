package metrics

import (
	"time"

	"github.com/coder/quartz"
)

type GameMetric struct {
	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
	Players   int
	Turns     int   // Turns in which dice were placed
	Rounds    int   // Rounds scored
	Cash      []int // Final cash by seat
	Winners   []int // Seats holding the most cash
}

type Collector interface {
	Start(players int)
	AddTurn()
	AddRound()
	Complete(cash []int, winners []int) GameMetric
}

type collector struct {
	clock     quartz.Clock
	startTime time.Time
	players   int
	turns     int
	rounds    int
}

// NewCollector returns a collector timing games with the given clock.
func NewCollector(clock quartz.Clock) Collector {
	return &collector{clock: clock}
}

func (m *collector) Start(players int) {
	m.startTime = m.clock.Now()
	m.players = players
	m.turns = 0
	m.rounds = 0
}

func (m *collector) AddTurn() {
	m.turns++
}

func (m *collector) AddRound() {
	m.rounds++
}

func (m *collector) Complete(cash []int, winners []int) GameMetric {
	end := m.clock.Now()
	cashCopy := make([]int, len(cash))
	copy(cashCopy, cash)
	winnersCopy := make([]int, len(winners))
	copy(winnersCopy, winners)
	return GameMetric{
		StartTime: m.startTime,
		EndTime:   end,
		Duration:  end.Sub(m.startTime),
		Players:   m.players,
		Turns:     m.turns,
		Rounds:    m.rounds,
		Cash:      cashCopy,
		Winners:   winnersCopy,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(players int) {}
func (m *dummyCollector) AddTurn()          {}
func (m *dummyCollector) AddRound()         {}
func (m *dummyCollector) Complete(cash []int, winners []int) GameMetric {
	return GameMetric{}
}
