// Package agent implements the turn strategies: given a state and the seat
// to act, roll that player's remaining dice and commit one face to its spot.
package agent

import (
	"fmt"
	"strings"

	"lasvegas/estimator"
	"lasvegas/game"

	"golang.org/x/exp/rand"
)

type Strategy int

const (
	Random  Strategy = iota // Any face that was rolled
	Biggest                 // The face rolled most often
	Richest                 // The spot with the largest top bill
	Greedy                  // The spot with the largest estimated winnings
	Model                   // The face the estimator scores highest
)

// Baselines are the scripted strategies opponents are drawn from.
var Baselines = []Strategy{Biggest, Greedy, Random, Richest}

var strategyNames = map[Strategy]string{
	Random:  "random",
	Biggest: "biggest",
	Richest: "richest",
	Greedy:  "greedy",
	Model:   "model",
}

func (s Strategy) String() string {
	if name, ok := strategyNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy returns the strategy with the given name.
func ParseStrategy(name string) (Strategy, error) {
	for s, n := range strategyNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown strategy %q", name)
}

// Seat pairs a strategy with the estimator it consults. Only the model
// strategy uses the estimator.
type Seat struct {
	Strategy  Strategy
	Estimator estimator.Estimator
}

func (s Seat) Turn(state *game.State, player int, rng *rand.Rand) *game.State {
	return Turn(state, player, s.Strategy, s.Estimator, rng)
}

// Turn rolls the player's remaining dice and places every die of the face
// the strategy picks on that face's spot. A player without dice leaves the
// state unchanged.
func Turn(state *game.State, player int, strategy Strategy, est estimator.Estimator, rng *rand.Rand) *game.State {
	left := state.DiceLeft(player)
	if left == 0 {
		return state.Copy()
	}
	if strategy == Model {
		return modelTurn(state, player, est, rng)
	}

	roll := game.RollDice(left, rng)
	var spot int
	switch strategy {
	case Random:
		spot = randomSpot(roll, rng)
	case Biggest:
		spot = biggestSpot(roll)
	case Richest:
		spot = richestSpot(state, roll)
	case Greedy:
		spot = greedySpot(state, player, roll)
	default:
		panic(fmt.Sprintf("unknown strategy %v", strategy))
	}
	return state.Place(player, spot, roll[spot])
}

func randomSpot(roll game.Roll, rng *rand.Rand) int {
	i := 0
	for roll[i] == 0 {
		i = rng.Intn(game.NumFaces)
	}
	return i
}

func biggestSpot(roll game.Roll) int {
	best := 0
	for i, n := range roll {
		if n > roll[best] {
			best = i
		}
	}
	return best
}

func richestSpot(state *game.State, roll game.Roll) int {
	best := -1
	for i, n := range roll {
		if n == 0 {
			continue
		}
		if best < 0 || topBill(state.Spots[i]) > topBill(state.Spots[best]) {
			best = i
		}
	}
	return best
}

func greedySpot(state *game.State, player int, roll game.Roll) int {
	maxGain := -1
	maxSpot := 0
	for i, n := range roll {
		if n > 0 {
			gain := WinningCash(state, player, i)
			if gain > maxGain {
				maxGain = gain
				maxSpot = i
			}
		}
	}
	return maxSpot
}

// WinningCash estimates what the player would win at the spot. The estimate
// walks the ranking of the dice already on the spot down to the player and
// offers the spot's top bill; ties and the player's own new dice are not
// taken into account.
func WinningCash(state *game.State, player, spot int) int {
	s := state.Spots[spot]
	for _, p := range game.Ranked(s.Dice) {
		if p == player {
			return topBill(s)
		}
	}
	return 0
}

func topBill(spot game.Spot) int {
	if len(spot.Bills) == 0 {
		return 0
	}
	return spot.Bills[0]
}

func modelTurn(state *game.State, player int, est estimator.Estimator, rng *rand.Rand) *game.State {
	if est == nil {
		panic("model strategy needs an estimator")
	}

	// The estimator always plays from seat 0
	if player != 0 {
		state = state.Promote(player)
	}

	roll := game.RollDice(state.DiceLeft(0), rng)
	scores := est.Predict(state.Vector(roll))
	a := ChooseAction(scores, roll)
	state = state.Place(0, a, roll[a])

	if player != 0 {
		state = state.Promote(player)
	}
	return state
}
