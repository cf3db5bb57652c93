// Package estimator defines the value estimator the model strategy and the
// trainer consult, with two small implementations.
package estimator

import "lasvegas/game"

// Scores holds one estimated value per spot.
type Scores [game.NumSpots]float64

// Estimator maps a feature vector to a score for each spot. Implementations
// are called from a single goroutine.
type Estimator interface {
	Predict(features []float64) Scores
	TrainOnBatch(features [][]float64, targets []Scores)
}

// Constant always predicts the same scores and ignores training.
type Constant struct {
	Scores Scores
}

func (c Constant) Predict(features []float64) Scores {
	return c.Scores
}

func (c Constant) TrainOnBatch(features [][]float64, targets []Scores) {}
