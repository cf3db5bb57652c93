package game

import "golang.org/x/exp/rand"

// Roll counts how many freshly rolled dice show each face. Index 0 is face 1.
type Roll [NumFaces]int

// RollDice rolls count dice and returns the number of each face.
func RollDice(count int, rng *rand.Rand) Roll {
	var r Roll
	for i := 0; i < count; i++ {
		r[rng.Intn(NumFaces)]++
	}
	return r
}

// Total returns the number of dice in the roll.
func (r Roll) Total() int {
	return sum(r[:])
}

// Empty reports whether no face was rolled.
func (r Roll) Empty() bool {
	return r.Total() == 0
}
