package agent

import (
	"fmt"

	"lasvegas/estimator"

	"golang.org/x/exp/rand"
)

// Changing is the baseline name under which every opponent draws a fresh
// scripted strategy each game.
const Changing = "changing"

// Opponents returns the seats for count opponents playing the named
// baseline. A model baseline plays with est.
func Opponents(baseline string, count int, est estimator.Estimator, rng *rand.Rand) ([]Seat, error) {
	seats := make([]Seat, count)
	if baseline == Changing {
		for i := range seats {
			seats[i] = Seat{Strategy: Baselines[rng.Intn(len(Baselines))]}
		}
		return seats, nil
	}

	strategy, err := ParseStrategy(baseline)
	if err != nil {
		return nil, fmt.Errorf("invalid baseline: %w", err)
	}
	if strategy == Model && est == nil {
		return nil, fmt.Errorf("baseline %q needs an estimator", baseline)
	}
	for i := range seats {
		seats[i] = Seat{Strategy: strategy, Estimator: est}
	}
	return seats, nil
}
