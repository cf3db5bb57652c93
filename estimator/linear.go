package estimator

import (
	"fmt"
	"math"

	"golang.org/x/exp/rand"
)

type LinearOption func(l *Linear)

// WithLearningRate sets the step size used by TrainOnBatch.
func WithLearningRate(rate float64) LinearOption {
	return func(l *Linear) {
		if rate > 0 {
			l.rate = rate
		}
	}
}

// Linear is a single layer linear model trained with minibatch gradient
// descent on the mean squared error.
type Linear struct {
	dims    int
	rate    float64
	weights [][]float64 // One row per spot, last column is the bias
}

// NewLinear returns a model for inputs of the given size with weights drawn
// uniformly from [-sqrt(3/dims), sqrt(3/dims)].
func NewLinear(dims int, rng *rand.Rand, options ...LinearOption) *Linear {
	if dims <= 0 {
		panic("dims must be positive")
	}
	l := &Linear{
		dims: dims,
		rate: 0.01,
	}
	for _, option := range options {
		option(l)
	}

	limit := math.Sqrt(3 / float64(dims))
	l.weights = make([][]float64, len(Scores{}))
	for i := range l.weights {
		row := make([]float64, dims+1)
		for j := 0; j < dims; j++ {
			row[j] = (rng.Float64()*2 - 1) * limit
		}
		l.weights[i] = row
	}
	return l
}

func (l *Linear) Predict(features []float64) Scores {
	l.check(features)
	var scores Scores
	for i, row := range l.weights {
		out := row[l.dims]
		for j, x := range features {
			out += row[j] * x
		}
		scores[i] = out
	}
	return scores
}

func (l *Linear) TrainOnBatch(features [][]float64, targets []Scores) {
	if len(features) != len(targets) {
		panic(fmt.Sprintf("batch has %d inputs but %d targets", len(features), len(targets)))
	}
	if len(features) == 0 {
		return
	}

	// Accumulate gradients before applying them so every sample in the
	// batch is scored against the same weights
	grads := make([][]float64, len(l.weights))
	for i := range grads {
		grads[i] = make([]float64, l.dims+1)
	}
	for n, x := range features {
		predicted := l.Predict(x)
		for i := range l.weights {
			diff := predicted[i] - targets[n][i]
			for j, v := range x {
				grads[i][j] += diff * v
			}
			grads[i][l.dims] += diff
		}
	}

	scale := 2 * l.rate / float64(len(features))
	for i, row := range l.weights {
		for j := range row {
			row[j] -= scale * grads[i][j]
		}
	}
}

func (l *Linear) check(features []float64) {
	if len(features) != l.dims {
		panic(fmt.Sprintf("expected %d features, got %d", l.dims, len(features)))
	}
}
