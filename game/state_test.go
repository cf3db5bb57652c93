package game

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// blankState returns a state with no dice placed and no bills on any spot.
func blankState(rules *Rules, players int) *State {
	s := &State{
		Rules:    rules,
		Players:  players,
		RoundNum: 1,
		Cash:     make([]int, players),
	}
	for i := range s.Spots {
		s.Spots[i] = Spot{Dice: make([]int, players), Bills: []int{}}
	}
	return s
}

func smallRules(maxDice, maxRounds int) *Rules {
	rules := NewStandardRules()
	rules.MaxDice = maxDice
	rules.MaxRounds = maxRounds
	return rules
}

func totalCash(s *State) int {
	return sum(s.Cash)
}

func totalBills(s *State) int {
	total := 0
	for _, spot := range s.Spots {
		total += sum(spot.Bills)
	}
	return total
}

// placeRandomly places every remaining die one at a time on random spots.
func placeRandomly(s *State, rng *rand.Rand) *State {
	for !s.RoundEnd() {
		for p := 0; p < s.Players; p++ {
			if s.DiceLeft(p) > 0 {
				s = s.Place(p, rng.Intn(NumSpots), 1)
			}
		}
	}
	return s
}

func TestInitial(t *testing.T) {
	rules := NewStandardRules()
	rng := rand.New(rand.NewSource(1))

	t.Run("new game has dealt spots and no dice or cash", func(t *testing.T) {
		s := Initial(rules, 3, rng)

		require.Equal(t, 3, s.Players)
		require.Equal(t, 1, s.RoundNum)
		require.Equal(t, []int{0, 0, 0}, s.Cash)
		dealt := 0
		for _, spot := range s.Spots {
			require.Equal(t, []int{0, 0, 0}, spot.Dice, "No dice should be placed")
			require.Len(t, spot.Bills, rules.BillsPerSpot, "Every spot should have a full row of bill slots")
			require.GreaterOrEqual(t, sum(spot.Bills), rules.MinSpotCash)
			for _, b := range spot.Bills {
				if b > 0 {
					dealt++
				}
			}
		}
		require.Equal(t, len(rules.Bills), dealt+len(s.BillDeck), "Dealt and undealt bills should make up the deck")
	})

	t.Run("dice left equals max dice before any placement", func(t *testing.T) {
		s := Initial(rules, 5, rng)
		for p := 0; p < 5; p++ {
			require.Equal(t, rules.MaxDice, s.DiceLeft(p))
		}
		require.False(t, s.RoundEnd())
		require.False(t, s.GameEnd())
	})

	t.Run("panics on unsupported player counts", func(t *testing.T) {
		require.Panics(t, func() { Initial(rules, 1, rng) })
		require.Panics(t, func() { Initial(rules, rules.MaxPlayers+1, rng) })
	})
}

func TestRoundEnd(t *testing.T) {
	rules := smallRules(4, 2)

	t.Run("round ends only when every player has placed all dice", func(t *testing.T) {
		s := blankState(rules, 2)
		s = s.Place(0, 0, 4)
		require.False(t, s.RoundEnd(), "Player 1 still has dice")

		s = s.Place(1, 2, 3)
		require.False(t, s.RoundEnd(), "Player 1 still has one die")
		require.Equal(t, 1, s.DiceLeft(1))

		s = s.Place(1, 5, 1)
		require.True(t, s.RoundEnd())
		require.Equal(t, 0, s.DiceLeft(0))
		require.Equal(t, 0, s.DiceLeft(1))
	})

	t.Run("round end agrees with committed dice for random play", func(t *testing.T) {
		rng := rand.New(rand.NewSource(7))
		s := Initial(rules, 4, rng)
		for !s.RoundEnd() {
			p := rng.Intn(4)
			if s.DiceLeft(p) > 0 {
				s = s.Place(p, rng.Intn(NumSpots), 1)
			}
			allUsed := true
			for q := 0; q < 4; q++ {
				used := 0
				for _, spot := range s.Spots {
					used += spot.Dice[q]
				}
				allUsed = allUsed && used == rules.MaxDice
			}
			require.Equal(t, allUsed, s.RoundEnd())
		}
	})
}

func TestPlace(t *testing.T) {
	rules := smallRules(4, 2)

	t.Run("does not modify the original state", func(t *testing.T) {
		s := blankState(rules, 2)
		next := s.Place(1, 3, 2)

		require.Equal(t, 0, s.Spots[3].Dice[1], "Original state should not change")
		require.Equal(t, 2, next.Spots[3].Dice[1])
	})

	t.Run("panics when placing more dice than are left", func(t *testing.T) {
		s := blankState(rules, 2).Place(0, 0, 3)
		require.Panics(t, func() { s.Place(0, 1, 2) })
	})

	t.Run("panics on invalid seats and spots", func(t *testing.T) {
		s := blankState(rules, 2)
		require.Panics(t, func() { s.Place(2, 0, 1) })
		require.Panics(t, func() { s.Place(0, NumSpots, 1) })
	})
}

func TestResolveSpot(t *testing.T) {
	t.Run("unique counts are paid highest first", func(t *testing.T) {
		paid, left := resolveSpot(Spot{Dice: []int{5, 2}, Bills: []int{10, 8}})

		require.Equal(t, []int{10, 8}, paid)
		require.Empty(t, left)
	})

	t.Run("tied players get nothing and take no bill", func(t *testing.T) {
		paid, left := resolveSpot(Spot{Dice: []int{3, 3}, Bills: []int{10, 8, 6, 4, 2}})

		require.Equal(t, []int{0, 0}, paid)
		require.Equal(t, []int{10, 8, 6, 4, 2}, left)
	})

	t.Run("next unique player takes the bill tied players skipped", func(t *testing.T) {
		paid, left := resolveSpot(Spot{Dice: []int{4, 4, 2}, Bills: []int{90, 50, 20}})

		require.Equal(t, []int{0, 0, 90}, paid)
		require.Equal(t, []int{50, 20}, left)
	})

	t.Run("payout stops silently when bills run out", func(t *testing.T) {
		paid, left := resolveSpot(Spot{Dice: []int{1, 4, 3}, Bills: []int{60}})

		require.Equal(t, []int{0, 60, 0}, paid)
		require.Empty(t, left)
	})

	t.Run("a lone player without dice still has a unique count", func(t *testing.T) {
		paid, _ := resolveSpot(Spot{Dice: []int{5, 0}, Bills: []int{70, 20}})

		require.Equal(t, []int{70, 20}, paid)
	})
}

func TestAdvanceRound(t *testing.T) {
	t.Run("tied spot pays nothing and single round game ends", func(t *testing.T) {
		s := blankState(smallRules(3, 1), 2)
		s.Spots[0].Bills = []int{10, 8, 6, 4, 2}
		s = s.Place(0, 0, 3).Place(1, 0, 3)

		next := s.AdvanceRound()

		require.Equal(t, []int{0, 0}, next.Cash, "Tied players should not be paid")
		require.Equal(t, []int{10, 8, 6, 4, 2}, next.Spots[0].Bills)
		require.True(t, next.GameEnd())
	})

	t.Run("unique counts are paid in rank order", func(t *testing.T) {
		s := blankState(smallRules(5, 1), 2)
		s.Spots[0].Bills = []int{10, 8}
		s = s.Place(0, 0, 5).Place(1, 0, 2).Place(1, 1, 3)

		next := s.AdvanceRound()

		require.Equal(t, []int{10, 8}, next.Cash)
		require.Empty(t, next.Spots[0].Bills)
	})

	t.Run("panics before the round has ended", func(t *testing.T) {
		s := blankState(smallRules(3, 2), 2).Place(0, 0, 3)
		require.Panics(t, func() { s.AdvanceRound() })
	})

	t.Run("deals new bills and clears dice for the next round", func(t *testing.T) {
		rules := smallRules(2, 3)
		rng := rand.New(rand.NewSource(11))
		s := placeRandomly(Initial(rules, 3, rng), rng)
		deckBefore := len(s.BillDeck)

		next := s.AdvanceRound()

		require.Equal(t, 2, next.RoundNum)
		require.Less(t, len(next.BillDeck), deckBefore, "New bills should come from the deck")
		for _, spot := range next.Spots {
			require.Equal(t, []int{0, 0, 0}, spot.Dice)
			require.Len(t, spot.Bills, rules.BillsPerSpot)
			require.GreaterOrEqual(t, sum(spot.Bills), rules.MinSpotCash)
		}
		require.Equal(t, deckBefore, len(s.BillDeck), "Original state should keep its deck")
	})

	t.Run("round number stops at the last round", func(t *testing.T) {
		rules := smallRules(2, 2)
		rng := rand.New(rand.NewSource(3))
		s := placeRandomly(Initial(rules, 2, rng), rng)

		next := s.AdvanceRound()

		require.Equal(t, 2, next.RoundNum)
		require.True(t, next.GameEnd(), "Entering the last round leaves the board scored and full")
		final := next.AdvanceRound()
		require.Equal(t, 2, final.RoundNum)
	})

	t.Run("cash paid equals bills removed", func(t *testing.T) {
		rng := rand.New(rand.NewSource(42))
		for i := 0; i < 50; i++ {
			rules := smallRules(1+rng.Intn(8), 1)
			s := placeRandomly(Initial(rules, 2+rng.Intn(4), rng), rng)

			next := s.AdvanceRound()

			paid := totalCash(next) - totalCash(s)
			removed := totalBills(s) - totalBills(next)
			require.Equal(t, removed, paid)
			require.Equal(t, s.Payouts(), func() []int {
				delta := make([]int, s.Players)
				for p := range delta {
					delta[p] = next.Cash[p] - s.Cash[p]
				}
				return delta
			}(), "Payouts should predict the cash awarded")
		}
	})
}

func TestPromote(t *testing.T) {
	rules := smallRules(6, 2)
	s := blankState(rules, 4)
	s.Cash = []int{10, 20, 30, 40}
	s = s.Place(0, 0, 1).Place(1, 0, 2).Place(2, 1, 3).Place(3, 5, 4)

	t.Run("moves the player to seat 0", func(t *testing.T) {
		promoted := s.Promote(2)

		require.Equal(t, []int{30, 20, 10, 40}, promoted.Cash)
		require.Equal(t, []int{0, 2, 1, 0}, promoted.Spots[0].Dice)
		require.Equal(t, []int{3, 0, 0, 0}, promoted.Spots[1].Dice)
		require.Equal(t, []int{10, 20, 30, 40}, s.Cash, "Original state should not change")
	})

	t.Run("promoting twice restores the order", func(t *testing.T) {
		for p := 0; p < s.Players; p++ {
			restored := s.Promote(p).Promote(p)
			require.Equal(t, s.Cash, restored.Cash)
			for i := range s.Spots {
				require.Equal(t, s.Spots[i].Dice, restored.Spots[i].Dice)
			}
		}
	})

	// Promoting p and then 1 restores the order only for p = 1, where it is
	// the same as promoting 1 twice. The swap is its own inverse for every seat.
	t.Run("promote is its own inverse for seat 1", func(t *testing.T) {
		restored := s.Promote(1).Promote(1)
		require.Equal(t, s.Cash, restored.Cash)
		require.Equal(t, s.Spots[0].Dice, restored.Spots[0].Dice)
	})

	t.Run("panics on invalid seats", func(t *testing.T) {
		require.Panics(t, func() { s.Promote(4) })
	})
}

func TestStanding(t *testing.T) {
	s := blankState(NewStandardRules(), 3)

	s.Cash = []int{90, 40, 60}
	require.Equal(t, Win, s.Standing(0))
	require.Equal(t, Loss, s.Standing(2))
	require.Equal(t, []int{0}, s.Leaders())

	s.Cash = []int{60, 40, 60}
	require.Equal(t, Draw, s.Standing(0))
	require.Equal(t, Draw, s.Standing(2))
	require.Equal(t, Loss, s.Standing(1))
	require.Equal(t, []int{0, 2}, s.Leaders())
}

func TestCopy(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := Initial(NewStandardRules(), 3, rng)

	c := s.Copy()
	c.Cash[0] = 100
	c.Spots[0].Dice[1] = 2
	c.Spots[0].Bills[0] = 0
	c.BillDeck[0] = -1

	require.Equal(t, 0, s.Cash[0])
	require.Equal(t, 0, s.Spots[0].Dice[1])
	require.NotEqual(t, 0, s.Spots[0].Bills[0])
	require.NotEqual(t, -1, s.BillDeck[0])
	require.Same(t, s.Rules, c.Rules, "Rules should be shared")
}

func TestHash(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	s := Initial(NewStandardRules(), 3, rng)

	require.Equal(t, s.Hash(), s.Copy().Hash())
	require.NotEqual(t, s.Hash(), s.Place(0, 0, 1).Hash())
}
