// Package training teaches an estimator to play seat 0 by self-play
// against scripted opponents, using an epsilon-greedy policy and a replay
// memory of past transitions.
package training

import (
	"context"
	"fmt"

	"lasvegas/agent"
	"lasvegas/estimator"
	"lasvegas/game"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Trainer struct {
	rules         *game.Rules
	config        Config
	model         estimator.Estimator
	baselineModel estimator.Estimator
	players       int
	rng           *rand.Rand
	memory        *Memory
	updates       int
}

type Option func(*Trainer)

// WithBaselineEstimator sets the estimator used by opponents playing the
// model strategy.
func WithBaselineEstimator(est estimator.Estimator) Option {
	return func(t *Trainer) {
		t.baselineModel = est
	}
}

// WithPlayers sets the number of players per game, MaxPlayers by default.
func WithPlayers(players int) Option {
	return func(t *Trainer) {
		t.players = players
	}
}

func NewTrainer(rules *game.Rules, config Config, model estimator.Estimator, rng *rand.Rand, options ...Option) *Trainer {
	if model == nil {
		panic("trainer needs an estimator")
	}
	t := &Trainer{
		rules:   rules,
		config:  config,
		model:   model,
		players: rules.MaxPlayers,
		rng:     rng,
		memory:  NewMemory(config.MemorySize),
	}
	for _, option := range options {
		option(t)
	}
	return t
}

func (t *Trainer) Memory() *Memory {
	return t.memory
}

// Updates returns the number of minibatches trained on so far.
func (t *Trainer) Updates() int {
	return t.updates
}

// Train plays games against the named baseline and trains the model on a
// minibatch after every step once the memory holds enough transitions.
func (t *Trainer) Train(ctx context.Context, games int, baseline string) error {
	if err := t.config.Validate(); err != nil {
		return fmt.Errorf("invalid training config: %w", err)
	}

	log.Info().Msgf("training for %d games against %s baseline...", games, baseline)

	for g := 0; g < games; g++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		opponents, err := agent.Opponents(baseline, t.players-1, t.baselineModel, t.rng)
		if err != nil {
			return err
		}

		state := game.Initial(t.rules, t.players, t.rng)
		steps := 0
		for !state.GameEnd() {
			transition := t.Step(state, opponents)
			t.memory.Push(transition)
			if t.memory.Len() >= t.config.MinibatchSize {
				t.learn()
			}
			state = transition.Next
			steps++
		}

		log.Debug().Ints("cash", state.Cash).Msgf("completed training game %d of %d in %d steps", g+1, games, steps)
	}

	log.Info().Msgf("completed training with %d minibatch updates", t.updates)
	return nil
}

// Step plays one turn for seat 0 and lets the opponents respond. When seat 0
// places its last die the opponents play out the round; otherwise each
// takes a single turn. A finished round is scored before the transition is
// returned.
func (t *Trainer) Step(state *game.State, opponents []agent.Seat) Transition {
	if len(opponents) != state.Players-1 {
		panic(fmt.Sprintf("need %d opponents, got %d", state.Players-1, len(opponents)))
	}

	roll := game.RollDice(state.DiceLeft(0), t.rng)

	var scores estimator.Scores
	if t.rng.Float64() < t.config.Epsilon {
		for i := range scores {
			scores[i] = t.rng.Float64()
		}
	} else {
		scores = t.model.Predict(state.Vector(roll))
	}

	valid := roll[agent.Argmax(scores)] > 0
	action := agent.ChooseAction(scores, roll)
	next := state.Place(0, action, roll[action])

	if next.DiceLeft(0) == 0 {
		for !next.RoundEnd() {
			next = t.opponentTurns(next, opponents)
		}
	} else {
		next = t.opponentTurns(next, opponents)
	}

	if next.RoundEnd() {
		next = next.AdvanceRound()
	}

	return Transition{
		State:  state,
		Roll:   roll,
		Action: action,
		Reward: Reward(state, next, valid, t.config),
		Next:   next,
	}
}

func (t *Trainer) opponentTurns(state *game.State, opponents []agent.Seat) *game.State {
	for i, seat := range opponents {
		state = seat.Turn(state, i+1, t.rng)
	}
	return state
}

func (t *Trainer) learn() {
	features, targets := t.Targets(t.memory.Sample(t.config.MinibatchSize, t.rng))
	t.model.TrainOnBatch(features, targets)
	t.updates++
}

// Targets builds the training batch: the model's current scores for each
// stored state, with the taken action's score replaced by the normalized
// reward plus, unless the game ended, the discounted current score.
func (t *Trainer) Targets(batch []Transition) ([][]float64, []estimator.Scores) {
	features := make([][]float64, len(batch))
	targets := make([]estimator.Scores, len(batch))
	for i, tr := range batch {
		features[i] = tr.State.Vector(tr.Roll)
		target := t.model.Predict(features[i])
		value := tr.Reward / t.rules.CashNorm
		if !tr.Next.GameEnd() {
			value += t.config.DiscountRate * target[tr.Action]
		}
		target[tr.Action] = value
		targets[i] = target
	}
	return features, targets
}
