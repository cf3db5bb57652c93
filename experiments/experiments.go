// Package experiments measures how strategies fare in seat 0 against
// scripted or model baselines over many independent games.
package experiments

import (
	"context"
	"fmt"

	"lasvegas/agent"
	"lasvegas/engine"
	"lasvegas/estimator"
	"lasvegas/experiments/metrics"
	"lasvegas/game"

	"github.com/coder/quartz"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

// Stats summarizes seat 0's results. Total is the cash won over all games.
type Stats struct {
	Total  int
	Wins   int
	Draws  int
	Losses int
}

func (s Stats) Games() int {
	return s.Wins + s.Draws + s.Losses
}

// Score counts a draw as half a win.
func (s Stats) Score() float64 {
	return float64(s.Wins) + float64(s.Draws)/2
}

func (s *Stats) Add(cash int, standing game.Standing) {
	s.Total += cash
	switch standing {
	case game.Win:
		s.Wins++
	case game.Draw:
		s.Draws++
	default:
		s.Losses++
	}
}

func (s *Stats) merge(other Stats) {
	s.Total += other.Total
	s.Wins += other.Wins
	s.Draws += other.Draws
	s.Losses += other.Losses
}

type Result struct {
	Stats Stats
	Games []metrics.GameMetric // Indexed by game
}

type Evaluator struct {
	rules         *game.Rules
	players       int
	workers       int
	baselineModel estimator.Estimator
	clock         quartz.Clock
}

type Option func(*Evaluator)

// WithPlayers sets the number of players per game, MaxPlayers by default.
func WithPlayers(players int) Option {
	return func(e *Evaluator) {
		e.players = players
	}
}

// WithWorkers sets how many games are played at once. Games with a model
// seat are always played one at a time.
func WithWorkers(workers int) Option {
	return func(e *Evaluator) {
		e.workers = workers
	}
}

func WithBaselineEstimator(est estimator.Estimator) Option {
	return func(e *Evaluator) {
		e.baselineModel = est
	}
}

func WithClock(clock quartz.Clock) Option {
	return func(e *Evaluator) {
		e.clock = clock
	}
}

func NewEvaluator(rules *game.Rules, options ...Option) *Evaluator {
	e := &Evaluator{
		rules:   rules,
		players: rules.MaxPlayers,
		workers: 1,
		clock:   quartz.NewReal(),
	}
	for _, option := range options {
		option(e)
	}
	if e.workers < 1 {
		e.workers = 1
	}
	return e
}

// Evaluate plays games with seat in seat 0 against the named baseline. Game
// i is seeded with seed+i, so results do not depend on the worker count.
func (e *Evaluator) Evaluate(ctx context.Context, seat agent.Seat, baseline string, games int, seed uint64) (Result, error) {
	if _, err := agent.Opponents(baseline, 0, e.baselineModel, nil); err != nil {
		return Result{}, err
	}
	if seat.Strategy == agent.Model && seat.Estimator == nil {
		return Result{}, fmt.Errorf("strategy %s needs an estimator", seat.Strategy)
	}

	workers := e.workers
	if seat.Strategy == agent.Model || usesModel(baseline) {
		workers = 1
	}

	log.Info().Msgf("evaluating %s against %s baseline over %d games with %d workers...", seat.Strategy, baseline, games, workers)

	gameMetrics := make([]metrics.GameMetric, games)
	stats := make([]Stats, workers)
	g, ctx := errgroup.WithContext(ctx)
	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for i := w; i < games; i += workers {
				if err := ctx.Err(); err != nil {
					return err
				}
				state, metric, err := e.playGame(seat, baseline, seed+uint64(i))
				if err != nil {
					return err
				}
				stats[w].Add(state.Cash[0], state.Standing(0))
				gameMetrics[i] = metric
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	result := Result{Games: gameMetrics}
	for _, s := range stats {
		result.Stats.merge(s)
	}

	log.Info().Msgf("completed evaluation of %s: %+v", seat.Strategy, result.Stats)
	return result, nil
}

func usesModel(baseline string) bool {
	strategy, err := agent.ParseStrategy(baseline)
	return err == nil && strategy == agent.Model
}

func (e *Evaluator) playGame(seat agent.Seat, baseline string, seed uint64) (*game.State, metrics.GameMetric, error) {
	rng := rand.New(rand.NewSource(seed))
	opponents, err := agent.Opponents(baseline, e.players-1, e.baselineModel, rng)
	if err != nil {
		return nil, metrics.GameMetric{}, err
	}
	seats := append([]agent.Seat{seat}, opponents...)

	eng := engine.LocalEngine(e.rules, seats, rng, engine.WithCollector(metrics.NewCollector(e.clock)))
	metric := eng.Run()
	return eng.State, metric, nil
}
