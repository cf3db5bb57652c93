package game

import (
	"sort"

	"golang.org/x/exp/rand"
)

// ShuffledDeck returns a shuffled copy of the rules' bill deck.
func ShuffledDeck(rules *Rules, rng *rand.Rand) []int {
	deck := make([]int, len(rules.Bills))
	copy(deck, rules.Bills)
	rng.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Deal draws bills from the front of the deck onto each spot until the spot
// holds at least MinSpotCash, pads every spot with zero bills up to
// BillsPerSpot and sorts the bills highest first. It returns the bills for
// each spot and the undealt remainder of the deck.
func Deal(deck []int, rules *Rules) (spots [NumSpots][]int, rest []int) {
	rest = deck
	for i := range spots {
		bills := make([]int, 0, rules.BillsPerSpot)
		for sum(bills) < rules.MinSpotCash {
			if len(rest) == 0 {
				panic("bill deck exhausted while dealing")
			}
			bills = append(bills, rest[0])
			rest = rest[1:]
		}
		if len(bills) > rules.BillsPerSpot {
			panic("spot was dealt more bills than it has slots")
		}
		for len(bills) < rules.BillsPerSpot {
			bills = append(bills, 0)
		}
		sort.Sort(sort.Reverse(sort.IntSlice(bills)))
		spots[i] = bills
	}
	return spots, rest
}

func sum(values []int) int {
	total := 0
	for _, v := range values {
		total += v
	}
	return total
}
