package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"sort"

	"golang.org/x/exp/rand"
)

// Spot is a betting location. Dice holds the number of dice each player
// has committed here, Bills the payouts still on offer, highest first.
type Spot struct {
	Dice  []int
	Bills []int
}

// State is a snapshot of a game between turns. Operations on State never
// modify the receiver; they return a new, independent copy.
type State struct {
	Rules    *Rules // Shared and immutable
	Players  int
	RoundNum int
	Cash     []int
	BillDeck []int // Bills not yet dealt
	Spots    [NumSpots]Spot
}

// Initial shuffles the bill deck, deals the first round and returns the
// state of a new game with no dice placed and no cash awarded.
func Initial(rules *Rules, players int, rng *rand.Rand) *State {
	if players < 2 || players > rules.MaxPlayers {
		panic(fmt.Sprintf("player count %d outside 2..%d", players, rules.MaxPlayers))
	}
	s := &State{
		Rules:    rules,
		Players:  players,
		RoundNum: 1,
		Cash:     make([]int, players),
	}
	bills, rest := Deal(ShuffledDeck(rules, rng), rules)
	s.BillDeck = rest
	for i := range s.Spots {
		s.Spots[i] = Spot{Dice: make([]int, players), Bills: bills[i]}
	}
	return s
}

func (s *State) Copy() *State {
	cashCopy := make([]int, len(s.Cash))
	copy(cashCopy, s.Cash)

	deckCopy := make([]int, len(s.BillDeck))
	copy(deckCopy, s.BillDeck)

	gs := &State{
		Rules:    s.Rules,
		Players:  s.Players,
		RoundNum: s.RoundNum,
		Cash:     cashCopy,
		BillDeck: deckCopy,
	}
	for i, spot := range s.Spots {
		diceCopy := make([]int, len(spot.Dice))
		copy(diceCopy, spot.Dice)
		billsCopy := make([]int, len(spot.Bills))
		copy(billsCopy, spot.Bills)
		gs.Spots[i] = Spot{Dice: diceCopy, Bills: billsCopy}
	}
	return gs
}

// DiceLeft returns the number of dice the player has not yet placed this round.
func (s *State) DiceLeft(player int) int {
	used := 0
	for _, spot := range s.Spots {
		used += spot.Dice[player]
	}
	return s.Rules.MaxDice - used
}

// RoundEnd reports whether every player has placed all of their dice.
func (s *State) RoundEnd() bool {
	for p := 0; p < s.Players; p++ {
		if s.DiceLeft(p) != 0 {
			return false
		}
	}
	return true
}

// GameEnd reports whether the last round has been played out.
func (s *State) GameEnd() bool {
	return s.RoundNum == s.Rules.MaxRounds && s.RoundEnd()
}

// Place returns a new state with count more of the player's dice on the spot.
func (s *State) Place(player, spot, count int) *State {
	if player < 0 || player >= s.Players {
		panic(fmt.Sprintf("player %d outside 0..%d", player, s.Players-1))
	}
	if spot < 0 || spot >= NumSpots {
		panic(fmt.Sprintf("spot %d outside 0..%d", spot, NumSpots-1))
	}
	if count < 0 || count > s.DiceLeft(player) {
		panic(fmt.Sprintf("player %d cannot place %d dice with %d left", player, count, s.DiceLeft(player)))
	}
	newGs := s.Copy()
	newGs.Spots[spot].Dice[player] += count
	return newGs
}

// Ranked returns the players at a spot ordered from most to fewest dice.
// Among equal counts the higher seat comes first.
func Ranked(dice []int) []int {
	players := make([]int, len(dice))
	for i := range players {
		players[i] = i
	}
	sort.SliceStable(players, func(i, j int) bool {
		return dice[players[i]] < dice[players[j]]
	})
	// Reverse the ascending order
	for i, j := 0, len(players)-1; i < j; i, j = i+1, j-1 {
		players[i], players[j] = players[j], players[i]
	}
	return players
}

// resolveSpot pays the spot's bills out in rank order. Players whose dice
// count is shared by another player are skipped without taking a bill. It
// returns the cash paid to each player and the bills left over.
func resolveSpot(spot Spot) (paid []int, left []int) {
	counts := make(map[int]int)
	for _, count := range spot.Dice {
		counts[count]++
	}

	paid = make([]int, len(spot.Dice))
	left = spot.Bills
	for _, player := range Ranked(spot.Dice) {
		if counts[spot.Dice[player]] != 1 {
			continue
		}
		if len(left) == 0 {
			break
		}
		paid[player] += left[0]
		left = left[1:]
	}
	return paid, left
}

// Payouts returns the cash each player would be awarded if the round were
// scored now.
func (s *State) Payouts() []int {
	total := make([]int, s.Players)
	for _, spot := range s.Spots {
		paid, _ := resolveSpot(spot)
		for p, c := range paid {
			total[p] += c
		}
	}
	return total
}

// AdvanceRound scores the finished round and returns the state for the
// start of the next one. Bills are re-dealt and dice cleared unless the
// game has reached its last round.
func (s *State) AdvanceRound() *State {
	if !s.RoundEnd() {
		panic("cannot advance round: players still have dice to place")
	}

	newGs := s.Copy()
	if newGs.RoundNum < newGs.Rules.MaxRounds {
		newGs.RoundNum++
	}

	for i, spot := range newGs.Spots {
		paid, left := resolveSpot(spot)
		for p, c := range paid {
			newGs.Cash[p] += c
		}
		newGs.Spots[i].Bills = left
	}

	if newGs.RoundNum != newGs.Rules.MaxRounds {
		bills, rest := Deal(newGs.BillDeck, newGs.Rules)
		newGs.BillDeck = rest
		for i := range newGs.Spots {
			newGs.Spots[i] = Spot{Dice: make([]int, newGs.Players), Bills: bills[i]}
		}
	}
	return newGs
}

// Promote swaps the given player with the player in seat 0. The network
// always plays from seat 0, and swapping seats does not change the game.
// Promoting the same player twice restores the original order.
func (s *State) Promote(player int) *State {
	if player < 0 || player >= s.Players {
		panic(fmt.Sprintf("player %d outside 0..%d", player, s.Players-1))
	}
	newGs := s.Copy()
	newGs.Cash[0], newGs.Cash[player] = newGs.Cash[player], newGs.Cash[0]
	for _, spot := range newGs.Spots {
		spot.Dice[0], spot.Dice[player] = spot.Dice[player], spot.Dice[0]
	}
	return newGs
}

// Standing returns the player's placing by cash: a win for the only player
// with the most cash, a draw when that amount is shared.
func (s *State) Standing(player int) Standing {
	best := s.Cash[0]
	for _, c := range s.Cash {
		best = max(best, c)
	}
	if s.Cash[player] != best {
		return Loss
	}
	leaders := 0
	for _, c := range s.Cash {
		if c == best {
			leaders++
		}
	}
	if leaders == 1 {
		return Win
	}
	return Draw
}

// Leaders returns the seats holding the most cash.
func (s *State) Leaders() []int {
	leaders := []int{}
	for p := 0; p < s.Players; p++ {
		if s.Standing(p) != Loss {
			leaders = append(leaders, p)
		}
	}
	return leaders
}

func (s *State) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.Players))
	binary.Write(hasher, binary.LittleEndian, int64(s.RoundNum))

	for _, c := range s.Cash {
		binary.Write(hasher, binary.LittleEndian, int64(c))
	}

	for _, spot := range s.Spots {
		for _, d := range spot.Dice {
			binary.Write(hasher, binary.LittleEndian, int64(d))
		}
		for _, b := range spot.Bills {
			binary.Write(hasher, binary.LittleEndian, int64(b))
		}
	}

	// The undealt deck decides future rounds
	for _, b := range s.BillDeck {
		binary.Write(hasher, binary.LittleEndian, int64(b))
	}

	return StateHash(hasher.Sum64())
}
