package engine

import (
	"fmt"

	"lasvegas/agent"
	"lasvegas/experiments/metrics"
	"lasvegas/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Engine plays a single game locally, one seat per player.
type Engine struct {
	State     *game.State
	Seats     []agent.Seat
	rng       *rand.Rand
	collector metrics.Collector
}

type Option func(*Engine)

func WithCollector(c metrics.Collector) Option {
	return func(e *Engine) {
		e.collector = c
	}
}

func LocalEngine(rules *game.Rules, seats []agent.Seat, rng *rand.Rand, options ...Option) *Engine {
	if len(seats) < 2 || len(seats) > rules.MaxPlayers {
		panic(fmt.Sprintf("need 2..%d seats, got %d", rules.MaxPlayers, len(seats)))
	}
	for i, seat := range seats {
		if seat.Strategy == agent.Model && seat.Estimator == nil {
			panic(fmt.Sprintf("seat %d plays the model strategy without an estimator", i))
		}
	}

	eng := &Engine{
		State:     game.Initial(rules, len(seats), rng),
		Seats:     seats,
		rng:       rng,
		collector: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(eng)
	}
	return eng
}

// Run plays rounds until the game ends. Every round each seat takes a turn
// in order until all dice are placed, then the round is scored.
func (e *Engine) Run() metrics.GameMetric {
	e.collector.Start(len(e.Seats))

	for !e.State.GameEnd() {
		for !e.State.RoundEnd() {
			for i, seat := range e.Seats {
				if e.State.DiceLeft(i) == 0 {
					continue
				}
				e.State = seat.Turn(e.State, i, e.rng)
				e.collector.AddTurn()
			}
		}

		log.Debug().Ints("payouts", e.State.Payouts()).Msgf("round %d scored", e.State.RoundNum)
		e.State = e.State.AdvanceRound()
		log.Debug().Uint64("hash", uint64(e.State.Hash())).Int("round", e.State.RoundNum).Ints("cash", e.State.Cash).Msg("round advanced")
		e.collector.AddRound()
	}

	winners := e.State.Leaders()
	log.Debug().Ints("cash", e.State.Cash).Ints("winners", winners).Msg("game over")
	return e.collector.Complete(e.State.Cash, winners)
}
