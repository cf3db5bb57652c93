package agent

import (
	"testing"

	"lasvegas/estimator"
	"lasvegas/game"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func TestChooseAction(t *testing.T) {
	t.Run("takes the best score when that face was rolled", func(t *testing.T) {
		scores := estimator.Scores{0.1, 0.7, 0.3, 0.2, 0.0, 0.5}
		require.Equal(t, 1, ChooseAction(scores, game.Roll{1, 1, 1, 1, 1, 1}))
	})

	t.Run("skips faces that were not rolled", func(t *testing.T) {
		scores := estimator.Scores{0.1, 0.7, 0.3, 0.2, 0.0, 0.5}
		require.Equal(t, 5, ChooseAction(scores, game.Roll{2, 0, 1, 0, 0, 1}))
		require.Equal(t, 4, ChooseAction(scores, game.Roll{0, 0, 0, 0, 3, 0}))
	})

	t.Run("later face wins equal scores", func(t *testing.T) {
		require.Equal(t, 4, ChooseAction(estimator.Scores{}, game.Roll{1, 0, 2, 0, 1, 0}))
	})

	t.Run("always returns a rolled face", func(t *testing.T) {
		rng := rand.New(rand.NewSource(4))
		for i := 0; i < 500; i++ {
			var scores estimator.Scores
			for j := range scores {
				scores[j] = rng.Float64()*2 - 1
			}
			roll := game.RollDice(1+rng.Intn(8), rng)

			require.Greater(t, roll[ChooseAction(scores, roll)], 0)
		}
	})

	t.Run("panics on an empty roll", func(t *testing.T) {
		require.Panics(t, func() {
			ChooseAction(estimator.Scores{1, 2, 3, 4, 5, 6}, game.Roll{})
		})
	})
}

func TestArgmax(t *testing.T) {
	require.Equal(t, 1, Argmax(estimator.Scores{0, 3, 1, 3, 0, 0}))
	require.Equal(t, 0, Argmax(estimator.Scores{}))
}
