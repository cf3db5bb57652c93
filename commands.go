package main

import (
	"context"
	"errors"
	"fmt"

	"lasvegas/agent"
	"lasvegas/config"
	"lasvegas/engine"
	"lasvegas/estimator"
	"lasvegas/experiments"
	"lasvegas/experiments/metrics"
	"lasvegas/store"
	"lasvegas/training"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type EvalCmd struct {
	Agents     []string `arg:"" default:"greedy" help:"Strategies to evaluate in seat 0 (random, biggest, richest, greedy, model)"`
	Baseline   string   `help:"Opponent strategy or 'changing' (overrides the config file)"`
	Games      int      `help:"Games per strategy (overrides the config file)"`
	Workers    int      `help:"Games played at once (overrides the config file)"`
	TrainGames int      `default:"1000" help:"Self-play games used to train the model strategy"`
	Out        string   `help:"Directory for CSV game records"`
	DB         string   `name:"db" help:"SQLite database to record runs in"`
}

func (c *EvalCmd) Run(g *Globals) error {
	cfg, seed, err := g.setup()
	if err != nil {
		return err
	}
	ctx := context.Background()
	rng := rand.New(rand.NewSource(seed))

	evaluation := cfg.Evaluation
	if c.Baseline != "" {
		evaluation.Baseline = c.Baseline
	}
	if c.Games > 0 {
		evaluation.Games = c.Games
	}
	if c.Workers > 0 {
		evaluation.Workers = c.Workers
	}

	seats := make([]agent.Seat, 0, len(c.Agents))
	var model estimator.Estimator
	for _, name := range c.Agents {
		strategy, err := agent.ParseStrategy(name)
		if err != nil {
			return err
		}
		seat := agent.Seat{Strategy: strategy}
		if strategy == agent.Model {
			if model == nil {
				model, err = trainModel(ctx, cfg, c.TrainGames, rng)
				if err != nil {
					return err
				}
			}
			seat.Estimator = model
		}
		seats = append(seats, seat)
	}

	evaluator := experiments.NewEvaluator(cfg.Rules,
		experiments.WithPlayers(evaluation.Players),
		experiments.WithWorkers(evaluation.Workers),
		experiments.WithBaselineEstimator(model),
	)
	report, err := evaluator.Compare(ctx, seats, evaluation.Baseline, evaluation.Games, seed)
	if err != nil {
		return err
	}

	for i, stats := range report.Stats {
		logStats(report.Configs[i].Agent, evaluation.Baseline, stats)
	}

	if c.Out != "" {
		writer, err := metrics.NewWriter(c.Out, "eval")
		if err != nil {
			return fmt.Errorf("failed to create experiment writer: %w", err)
		}
		if err := report.Write(writer); err != nil {
			return err
		}
		log.Info().Msgf("wrote game records to %s", writer.Dir())
	}

	if c.DB != "" {
		if err := saveReport(c.DB, report); err != nil {
			return err
		}
	}
	return nil
}

type TrainCmd struct {
	Games     int    `default:"1000" help:"Self-play training games"`
	Baseline  string `default:"changing" help:"Opponent strategy during training"`
	EvalGames int    `default:"100" help:"Games to evaluate the trained model against the configured baseline"`
}

func (c *TrainCmd) Run(g *Globals) error {
	cfg, seed, err := g.setup()
	if err != nil {
		return err
	}
	ctx := context.Background()
	rng := rand.New(rand.NewSource(seed))

	model := estimator.NewLinear(cfg.Rules.Dimensions(), rng)
	trainer := training.NewTrainer(cfg.Rules, cfg.Training, model, rng)
	if err := trainer.Train(ctx, c.Games, c.Baseline); err != nil {
		return err
	}

	if c.EvalGames == 0 {
		return nil
	}
	evaluator := experiments.NewEvaluator(cfg.Rules, experiments.WithPlayers(cfg.Evaluation.Players))
	result, err := evaluator.Evaluate(ctx, agent.Seat{Strategy: agent.Model, Estimator: model}, cfg.Evaluation.Baseline, c.EvalGames, seed)
	if err != nil {
		return err
	}
	logStats(agent.Model.String(), cfg.Evaluation.Baseline, result.Stats)
	return nil
}

type PlayCmd struct {
	Strategies []string `arg:"" help:"Strategy of each seat, 2 to 5 seats (random, biggest, richest, greedy, model)"`
	TrainGames int      `default:"1000" help:"Self-play games used to train the model strategy"`
}

func (c *PlayCmd) Run(g *Globals) error {
	cfg, seed, err := g.setup()
	if err != nil {
		return err
	}
	if len(c.Strategies) < 2 || len(c.Strategies) > cfg.Rules.MaxPlayers {
		return fmt.Errorf("need 2 to %d strategies, got %d", cfg.Rules.MaxPlayers, len(c.Strategies))
	}
	rng := rand.New(rand.NewSource(seed))

	seats := make([]agent.Seat, len(c.Strategies))
	var model estimator.Estimator
	for i, name := range c.Strategies {
		strategy, err := agent.ParseStrategy(name)
		if err != nil {
			return err
		}
		if strategy == agent.Model && model == nil {
			model, err = trainModel(context.Background(), cfg, c.TrainGames, rng)
			if err != nil {
				return err
			}
		}
		seats[i] = agent.Seat{Strategy: strategy, Estimator: model}
	}

	e := engine.LocalEngine(cfg.Rules, seats, rng)
	e.Run()

	for p, cash := range e.State.Cash {
		log.Info().Msgf("seat %d (%s): %d %s", p, seats[p].Strategy, cash, e.State.Standing(p))
	}
	return nil
}

type RunsCmd struct {
	ID    string `arg:"" optional:"" help:"Run to show game by game"`
	DB    string `name:"db" required:"" help:"SQLite database the runs were saved in"`
	Limit int    `default:"20" help:"Most recent runs to list"`
}

func (c *RunsCmd) Run(g *Globals) error {
	if _, _, err := g.setup(); err != nil {
		return err
	}
	db, err := store.NewSQLiteDB(c.DB)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	if c.ID == "" {
		runs, err := db.ListRuns(c.Limit)
		if err != nil {
			return fmt.Errorf("failed to list runs: %w", err)
		}
		for _, run := range runs {
			logRun(run)
		}
		log.Info().Msgf("listed %d runs", len(runs))
		return nil
	}

	run, err := db.GetRun(c.ID)
	if err != nil {
		return fmt.Errorf("failed to load run %s: %w", c.ID, err)
	}
	logRun(*run)
	games, err := db.GetGames(run.ID)
	if err != nil {
		return fmt.Errorf("failed to load games of run %s: %w", run.ID, err)
	}
	for _, game := range games {
		log.Info().
			Ints("cash", game.Cash).
			Ints("winners", game.Winners).
			Int("turns", game.Turns).
			Int("rounds", game.Rounds).
			Msgf("game %d", game.Index)
	}
	return nil
}

func logRun(run store.Run) {
	log.Info().
		Str("id", run.ID).
		Int("players", run.Players).
		Int("games", run.Games).
		Int("total", run.Total).
		Int("wins", run.Wins).
		Int("draws", run.Draws).
		Int("losses", run.Losses).
		Time("created", run.CreatedAt).
		Msgf("%s vs %s", run.Agent, run.Baseline)
}

func trainModel(ctx context.Context, cfg *config.Config, games int, rng *rand.Rand) (estimator.Estimator, error) {
	if games <= 0 {
		return nil, errors.New("the model strategy needs training games")
	}
	model := estimator.NewLinear(cfg.Rules.Dimensions(), rng)
	trainer := training.NewTrainer(cfg.Rules, cfg.Training, model, rng)
	if err := trainer.Train(ctx, games, agent.Changing); err != nil {
		return nil, fmt.Errorf("failed to train model: %w", err)
	}
	return model, nil
}

func logStats(agentName, baseline string, stats experiments.Stats) {
	log.Info().
		Int("total", stats.Total).
		Int("wins", stats.Wins).
		Int("draws", stats.Draws).
		Int("losses", stats.Losses).
		Float64("score", stats.Score()).
		Msgf("%s vs %s", agentName, baseline)
}

func saveReport(path string, report experiments.Report) error {
	db, err := store.NewSQLiteDB(path)
	if err != nil {
		return err
	}
	defer db.Close()
	if err := db.Migrate(); err != nil {
		return err
	}

	for i, config := range report.Configs {
		stats := report.Stats[i]
		run := &store.Run{
			Agent:    config.Agent,
			Baseline: config.Baseline,
			Players:  config.Players,
			Games:    config.Games,
			Seed:     config.Seed,
			Total:    stats.Total,
			Wins:     stats.Wins,
			Draws:    stats.Draws,
			Losses:   stats.Losses,
		}
		if err := db.SaveRun(run); err != nil {
			return err
		}

		games := []store.Game{}
		for _, record := range report.Records {
			if record.Config != config.ID {
				continue
			}
			games = append(games, store.Game{
				Index:    len(games),
				Cash:     record.Cash,
				Winners:  record.Winners,
				Turns:    record.Turns,
				Rounds:   record.Rounds,
				Duration: record.Duration,
			})
		}
		if err := db.SaveGames(run.ID, games); err != nil {
			return err
		}
		log.Info().Msgf("saved run %s (%s vs %s)", run.ID, config.Agent, config.Baseline)
	}
	return nil
}
