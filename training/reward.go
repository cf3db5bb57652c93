package training

import "lasvegas/game"

// Reward scores the step from prev to next for seat 0: the cash won, plus
// the win or tie bonus once the game is over. Invalid steps earn only the
// invalid reward.
func Reward(prev, next *game.State, valid bool, config Config) float64 {
	if !valid {
		return config.InvalidReward
	}
	reward := float64(next.Cash[0] - prev.Cash[0])
	if next.GameEnd() {
		switch next.Standing(0) {
		case game.Win:
			reward += config.WinReward
		case game.Draw:
			reward += config.TieReward
		}
	}
	return reward
}
