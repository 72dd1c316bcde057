package searcher

import (
	"errors"
	"math"
)

// Hyperparameters for the Monte Carlo searchers

const CSquared = 2.0 // Exploration constant, UCB1 = w/n + sqrt(CSquared*ln(N)/n)

// Use rewards to estimate the chance of winning
const WIN = 1.0
const LOSS = 1 - WIN

var ErrNoLegalPlays = errors.New("no legal plays")

func ucb1(rewards float64, visits float64, c2LnN float64) float64 {
	// Prioritize unexplored children
	if visits == 0 {
		return math.Inf(1)
	}

	return rewards/visits + math.Sqrt(c2LnN/visits)
}

// normalizer is the shared numerator of the exploration term
func normalizer(cSquared, parentVisits float64) float64 {
	if parentVisits <= 0 {
		panic("cannot compute UCB1: parent has no visits")
	}
	return cSquared * math.Log(parentVisits)
}

func reward(winner, player int) float64 {
	if winner == player {
		return WIN
	}
	return LOSS
}
