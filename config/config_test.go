package config

import (
	"os"
	"path/filepath"
	"testing"

	"lasvegas/agent"
	"lasvegas/game"
	"lasvegas/training"

	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		config, err := Load(filepath.Join(t.TempDir(), "absent.hcl"))
		require.NoError(t, err)
		require.Equal(t, game.NewStandardRules(), config.Rules)
		require.Equal(t, training.DefaultConfig(), config.Training)
		require.Equal(t, agent.Changing, config.Evaluation.Baseline)
	})

	t.Run("reads a file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "lasvegas.hcl")
		src := `
rules {
  max_players = 4
  max_rounds  = 2
}
training {
  epsilon        = 0
  minibatch_size = 16
}
evaluation {
  games    = 50
  baseline = "greedy"
  workers  = 4
}
`
		require.NoError(t, os.WriteFile(path, []byte(src), 0644))

		config, err := Load(path)
		require.NoError(t, err)
		require.Equal(t, 4, config.Rules.MaxPlayers)
		require.Equal(t, 2, config.Rules.MaxRounds)
		require.Equal(t, 8, config.Rules.MaxDice, "unset rules keep their defaults")
		require.Equal(t, 0.0, config.Training.Epsilon, "explicit zero overrides the default")
		require.Equal(t, 16, config.Training.MinibatchSize)
		require.Equal(t, 100.0, config.Training.WinReward)
		require.Equal(t, Evaluation{Games: 50, Baseline: "greedy", Workers: 4, Players: 4}, config.Evaluation)
	})

	t.Run("syntax errors", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "broken.hcl")
		require.NoError(t, os.WriteFile(path, []byte("rules {"), 0644))
		_, err := Load(path)
		require.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	t.Run("custom deck", func(t *testing.T) {
		config, err := Parse([]byte(`
rules {
  bills = [50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50, 50]
}
`), "deck.hcl")
		require.NoError(t, err)
		require.Len(t, config.Rules.Bills, 18)
		require.Equal(t, 50, config.Rules.MaxBill())
	})

	invalid := map[string]string{
		"tie above win":          `training { tie_reward = 200 }`,
		"minibatch above memory": `training { minibatch_size = 2000 }`,
		"unknown baseline":       `evaluation { baseline = "lucky" }`,
		"too many players":       `evaluation { players = 6 }`,
		"no workers":             `evaluation { workers = 0 }`,
		"invalid rules":          `rules { max_players = 1 }`,
		"deck runs out":          `rules { max_rounds = 10 }`,
		"unknown attribute":      `rules { max_spots = 7 }`,
		"wrong attribute type":   `training { epsilon = "high" }`,
	}
	for name, src := range invalid {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(src), "invalid.hcl")
			require.Error(t, err)
		})
	}
}
