package training

import "errors"

// Config holds the reward shaping and learning hyperparameters.
type Config struct {
	WinReward     float64 // Bonus for the only player with the most cash
	TieReward     float64 // Bonus for sharing the most cash
	Epsilon       float64 // Probability of exploring with random scores
	MemorySize    int     // Transitions kept in replay memory
	MinibatchSize int
	DiscountRate  float64
	InvalidReward float64 // Reward when the best scored face was not rolled
}

func DefaultConfig() Config {
	return Config{
		WinReward:     100,
		TieReward:     50,
		Epsilon:       0.1,
		MemorySize:    1000,
		MinibatchSize: 32,
		DiscountRate:  0.9,
		InvalidReward: -1,
	}
}

func (c Config) Validate() error {
	if c.TieReward > c.WinReward {
		return errors.New("tie reward exceeds win reward")
	}
	if c.MinibatchSize < 1 {
		return errors.New("minibatch size must be positive")
	}
	if c.MinibatchSize > c.MemorySize {
		return errors.New("minibatch size exceeds memory size")
	}
	if c.Epsilon < 0 || c.Epsilon > 1 {
		return errors.New("epsilon must be within [0, 1]")
	}
	if c.DiscountRate < 0 || c.DiscountRate > 1 {
		return errors.New("discount rate must be within [0, 1]")
	}
	return nil
}
