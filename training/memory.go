package training

import (
	"fmt"

	"lasvegas/game"

	"golang.org/x/exp/rand"
)

// Transition is one learning step of the player in seat 0.
type Transition struct {
	State  *game.State
	Roll   game.Roll
	Action int
	Reward float64
	Next   *game.State
}

// Memory is a bounded replay memory ordered newest first.
type Memory struct {
	size        int
	transitions []Transition
}

func NewMemory(size int) *Memory {
	if size < 1 {
		panic(fmt.Sprintf("memory size %d must be positive", size))
	}
	return &Memory{
		size:        size,
		transitions: make([]Transition, 0, size),
	}
}

// Push stores t as the newest transition, evicting the oldest when full.
func (m *Memory) Push(t Transition) {
	if len(m.transitions) < m.size {
		m.transitions = append(m.transitions, Transition{})
	}
	copy(m.transitions[1:], m.transitions[:len(m.transitions)-1])
	m.transitions[0] = t
}

func (m *Memory) Len() int {
	return len(m.transitions)
}

// At returns the i-th newest transition.
func (m *Memory) At(i int) Transition {
	return m.transitions[i]
}

// Sample returns n distinct transitions chosen uniformly at random.
func (m *Memory) Sample(n int, rng *rand.Rand) []Transition {
	if n > len(m.transitions) {
		panic(fmt.Sprintf("cannot sample %d of %d transitions", n, len(m.transitions)))
	}
	batch := make([]Transition, n)
	for i, j := range rng.Perm(len(m.transitions))[:n] {
		batch[i] = m.transitions[j]
	}
	return batch
}
