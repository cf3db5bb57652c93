package game

import (
	"errors"
	"fmt"
)

// Rules holds the fixed parameters of a game. Rules are shared by every
// state of a game and must not be modified once the game has started.
type Rules struct {
	MaxPlayers   int
	MaxRounds    int
	MaxDice      int     // Dice available to each player per round
	CashNorm     float64 // Scale used to normalize cash in feature vectors
	Bills        []int   // The full bill deck, in thousands
	BillsPerSpot int     // Bill slots per spot, zero padded
	MinSpotCash  int     // Bills are dealt to a spot until it holds at least this much
}

// NewStandardRules returns the rules of the published game: 5 players,
// 4 rounds, 8 dice each and the 54 bill deck.
func NewStandardRules() *Rules {
	return &Rules{
		MaxPlayers:   5,
		MaxRounds:    4,
		MaxDice:      8,
		CashNorm:     500,
		Bills:        StandardBills(),
		BillsPerSpot: 5,
		MinSpotCash:  50,
	}
}

// StandardBills returns a fresh copy of the standard bill deck.
func StandardBills() []int {
	counts := []struct{ value, count int }{
		{10, 6}, {20, 8}, {30, 8}, {40, 6}, {50, 6},
		{60, 5}, {70, 5}, {80, 5}, {90, 5},
	}
	bills := []int{}
	for _, c := range counts {
		for i := 0; i < c.count; i++ {
			bills = append(bills, c.value)
		}
	}
	return bills
}

// MaxBill returns the largest denomination in the deck.
func (r *Rules) MaxBill() int {
	maxBill := 0
	for _, b := range r.Bills {
		maxBill = max(maxBill, b)
	}
	return maxBill
}

// Dimensions returns the length of the feature vector produced by State.Vector.
// Per-player entries are always sized for MaxPlayers.
func (r *Rules) Dimensions() int {
	dims := 2 // Player count and round number
	// Cash of each player
	dims += r.MaxPlayers
	// Dice of each player and the bill slots on every spot
	dims += NumSpots * (r.MaxPlayers + r.BillsPerSpot)
	// Count of each face in the roll
	dims += NumFaces
	return dims
}

// Validate reports whether the rules describe a playable game.
func (r *Rules) Validate() error {
	if r.MaxPlayers < 2 {
		return fmt.Errorf("max players must be at least 2, got %d", r.MaxPlayers)
	}
	if r.MaxRounds < 1 {
		return fmt.Errorf("max rounds must be at least 1, got %d", r.MaxRounds)
	}
	if r.MaxDice < 1 {
		return fmt.Errorf("max dice must be at least 1, got %d", r.MaxDice)
	}
	if r.CashNorm <= 0 {
		return fmt.Errorf("cash norm must be positive, got %v", r.CashNorm)
	}
	if r.BillsPerSpot < 1 {
		return fmt.Errorf("bills per spot must be at least 1, got %d", r.BillsPerSpot)
	}
	if r.MinSpotCash < 1 {
		return fmt.Errorf("min spot cash must be positive, got %d", r.MinSpotCash)
	}
	if len(r.Bills) == 0 {
		return errors.New("bill deck is empty")
	}
	total, smallest := 0, r.Bills[0]
	for _, b := range r.Bills {
		if b <= 0 {
			return fmt.Errorf("bill denominations must be positive, got %d", b)
		}
		total += b
		smallest = min(smallest, b)
	}
	if smallest*r.BillsPerSpot < r.MinSpotCash {
		return fmt.Errorf("a spot could need more than %d bills to reach %d", r.BillsPerSpot, r.MinSpotCash)
	}
	if need := r.Deals() * NumSpots * r.worstSpotCash(); total < need {
		return fmt.Errorf("bill deck totals %d, need at least %d to deal %d rounds", total, need, r.Deals())
	}
	return nil
}

// Deals returns how many times bills are dealt in a game: once at the start
// and again for every round after the first except the last.
func (r *Rules) Deals() int {
	return max(1, r.MaxRounds-1)
}

// worstSpotCash bounds the cash a single spot can take from the deck: the
// largest sum of bills still short of MinSpotCash plus the largest bill.
func (r *Rules) worstSpotCash() int {
	reachable := make([]bool, r.MinSpotCash)
	reachable[0] = true
	for _, b := range r.Bills {
		for s := r.MinSpotCash - 1; s >= b; s-- {
			if reachable[s-b] {
				reachable[s] = true
			}
		}
	}
	below := 0
	for s := r.MinSpotCash - 1; s >= 0; s-- {
		if reachable[s] {
			below = s
			break
		}
	}
	return below + r.MaxBill()
}
