// Package config loads game rules, training hyperparameters and evaluation
// settings from an HCL file. Anything the file leaves out keeps its default.
package config

import (
	"errors"
	"fmt"
	"os"

	"lasvegas/agent"
	"lasvegas/game"
	"lasvegas/training"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

type Config struct {
	Rules      *game.Rules
	Training   training.Config
	Evaluation Evaluation
}

type Evaluation struct {
	Games    int
	Baseline string // Strategy name or "changing"
	Workers  int
	Players  int
}

// file mirrors the HCL layout. Pointers tell absent attributes from zeros.
type file struct {
	Rules      *rulesBlock      `hcl:"rules,block"`
	Training   *trainingBlock   `hcl:"training,block"`
	Evaluation *evaluationBlock `hcl:"evaluation,block"`
}

type rulesBlock struct {
	MaxPlayers   *int     `hcl:"max_players,optional"`
	MaxRounds    *int     `hcl:"max_rounds,optional"`
	MaxDice      *int     `hcl:"max_dice,optional"`
	CashNorm     *float64 `hcl:"cash_norm,optional"`
	Bills        []int    `hcl:"bills,optional"`
	BillsPerSpot *int     `hcl:"bills_per_spot,optional"`
	MinSpotCash  *int     `hcl:"min_spot_cash,optional"`
}

type trainingBlock struct {
	WinReward     *float64 `hcl:"win_reward,optional"`
	TieReward     *float64 `hcl:"tie_reward,optional"`
	Epsilon       *float64 `hcl:"epsilon,optional"`
	MemorySize    *int     `hcl:"memory_size,optional"`
	MinibatchSize *int     `hcl:"minibatch_size,optional"`
	DiscountRate  *float64 `hcl:"discount_rate,optional"`
	InvalidReward *float64 `hcl:"invalid_reward,optional"`
}

type evaluationBlock struct {
	Games    *int    `hcl:"games,optional"`
	Baseline *string `hcl:"baseline,optional"`
	Workers  *int    `hcl:"workers,optional"`
	Players  *int    `hcl:"players,optional"`
}

func Default() *Config {
	rules := game.NewStandardRules()
	return &Config{
		Rules:    rules,
		Training: training.DefaultConfig(),
		Evaluation: Evaluation{
			Games:    1000,
			Baseline: agent.Changing,
			Workers:  1,
			Players:  rules.MaxPlayers,
		},
	}
}

// Load reads the configuration from filename. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	if _, err := os.Stat(filename); os.IsNotExist(err) {
		return Default(), nil
	}

	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}
	return decode(f)
}

// Parse reads the configuration from HCL source.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL: %s", diags.Error())
	}
	return decode(f)
}

func decode(f *hcl.File) (*Config, error) {
	var raw file
	diags := gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config := Default()
	if r := raw.Rules; r != nil {
		set(&config.Rules.MaxPlayers, r.MaxPlayers)
		set(&config.Rules.MaxRounds, r.MaxRounds)
		set(&config.Rules.MaxDice, r.MaxDice)
		set(&config.Rules.CashNorm, r.CashNorm)
		set(&config.Rules.BillsPerSpot, r.BillsPerSpot)
		set(&config.Rules.MinSpotCash, r.MinSpotCash)
		if r.Bills != nil {
			config.Rules.Bills = r.Bills
		}
		// Players default to the table size
		if r.MaxPlayers != nil {
			config.Evaluation.Players = *r.MaxPlayers
		}
	}
	if t := raw.Training; t != nil {
		set(&config.Training.WinReward, t.WinReward)
		set(&config.Training.TieReward, t.TieReward)
		set(&config.Training.Epsilon, t.Epsilon)
		set(&config.Training.MemorySize, t.MemorySize)
		set(&config.Training.MinibatchSize, t.MinibatchSize)
		set(&config.Training.DiscountRate, t.DiscountRate)
		set(&config.Training.InvalidReward, t.InvalidReward)
	}
	if e := raw.Evaluation; e != nil {
		set(&config.Evaluation.Games, e.Games)
		set(&config.Evaluation.Baseline, e.Baseline)
		set(&config.Evaluation.Workers, e.Workers)
		set(&config.Evaluation.Players, e.Players)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func set[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

func (c *Config) Validate() error {
	if err := c.Rules.Validate(); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	if err := c.Training.Validate(); err != nil {
		return fmt.Errorf("invalid training config: %w", err)
	}
	if c.Evaluation.Games < 0 {
		return errors.New("evaluation games must not be negative")
	}
	if c.Evaluation.Workers < 1 {
		return errors.New("evaluation needs at least one worker")
	}
	if c.Evaluation.Players < 2 || c.Evaluation.Players > c.Rules.MaxPlayers {
		return fmt.Errorf("evaluation players %d outside 2..%d", c.Evaluation.Players, c.Rules.MaxPlayers)
	}
	if c.Evaluation.Baseline != agent.Changing {
		if _, err := agent.ParseStrategy(c.Evaluation.Baseline); err != nil {
			return fmt.Errorf("invalid evaluation baseline: %w", err)
		}
	}
	return nil
}
