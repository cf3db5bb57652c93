package agent

import (
	"sort"

	"lasvegas/estimator"
	"lasvegas/game"
)

// ChooseAction returns the highest scoring face that appears in the roll.
// Among equal scores the later face wins. It panics on an empty roll.
func ChooseAction(scores estimator.Scores, roll game.Roll) int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] < scores[order[j]]
	})

	for k := len(order) - 1; k >= 0; k-- {
		if a := order[k]; roll[a] > 0 {
			return a
		}
	}
	panic("no face in the roll to choose")
}

// Argmax returns the first face with the highest score, whether or not it
// was rolled.
func Argmax(scores estimator.Scores) int {
	best := 0
	for i, s := range scores {
		if s > scores[best] {
			best = i
		}
	}
	return best
}
