package experiments

import (
	"context"
	"fmt"

	"lasvegas/agent"
	"lasvegas/experiments/metrics"

	"github.com/rs/zerolog/log"
)

// Report holds the outcome of comparing several strategies against one
// baseline. Configs, Stats and the records' Config ids line up by index.
type Report struct {
	Configs []metrics.AgentConfig
	Stats   []Stats
	Records []metrics.GameRecord
}

// Compare evaluates each seat against the baseline with the same seed, so
// every strategy is dealt the same games.
func (e *Evaluator) Compare(ctx context.Context, seats []agent.Seat, baseline string, games int, seed uint64) (Report, error) {
	report := Report{}
	count := 0

	for ci, seat := range seats {
		config := metrics.AgentConfig{
			ID:       ci + 1,
			Agent:    seat.Strategy.String(),
			Baseline: baseline,
			Players:  e.players,
			Games:    games,
			Seed:     seed,
		}
		log.Info().Msgf("starting matchup %d of %d: %s vs %s...", ci+1, len(seats), config.Agent, baseline)

		result, err := e.Evaluate(ctx, seat, baseline, games, seed)
		if err != nil {
			return Report{}, fmt.Errorf("failed to evaluate %s: %w", config.Agent, err)
		}

		report.Configs = append(report.Configs, config)
		report.Stats = append(report.Stats, result.Stats)
		for _, metric := range result.Games {
			count++
			report.Records = append(report.Records, metrics.GameRecord{
				ID:         count,
				Config:     config.ID,
				GameMetric: metric,
			})
		}
	}
	return report, nil
}

// Write stores the report's agent configs and game records as CSV files.
func (r Report) Write(writer *metrics.Writer) error {
	if err := writer.WriteAgentConfigs(r.Configs); err != nil {
		return fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err := writer.WriteGameRecords(r.Records); err != nil {
		return fmt.Errorf("failed to store game records: %w", err)
	}
	log.Info().Msg("stored game records")
	return nil
}
