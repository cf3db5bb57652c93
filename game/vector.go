package game

// Vector encodes the state and a roll as the estimator's input. Every value
// is scaled by a fixed constant from the rules, and per-player values are
// zero padded to MaxPlayers so the length is always Rules.Dimensions().
func (s *State) Vector(roll Roll) []float64 {
	r := s.Rules
	maxBill := float64(r.MaxBill())
	maxDice := float64(r.MaxDice)
	vec := make([]float64, 0, r.Dimensions())

	vec = append(vec, float64(s.Players)/float64(r.MaxPlayers))
	vec = append(vec, float64(s.RoundNum)/float64(r.MaxRounds))

	vec = appendPadded(vec, s.Cash, r.MaxPlayers, r.CashNorm)

	for _, spot := range s.Spots {
		vec = appendPadded(vec, spot.Dice, r.MaxPlayers, maxDice)
		vec = appendPadded(vec, spot.Bills, r.BillsPerSpot, maxBill)
	}

	for _, n := range roll {
		vec = append(vec, float64(n)/maxDice)
	}
	return vec
}

func appendPadded(vec []float64, values []int, width int, norm float64) []float64 {
	for i := 0; i < width; i++ {
		if i < len(values) {
			vec = append(vec, float64(values[i])/norm)
		} else {
			vec = append(vec, 0)
		}
	}
	return vec
}
