package experiments

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// Summary aggregates the games of one match-up
type Summary struct {
	Agent1, Agent2     int // Agent ids in match-up order
	Wins1, Wins2       int // Wins1 takes every game when an agent plays itself
	SeatZeroWins       int
	MeanMoves         float64
	StdMoves           float64 // NaN with a single game
	MeanDecisionMillis float64
}

// summarize relies on Run laying out the games of each match-up contiguously
func summarize(config Config, result Result) []Summary {
	decisions := make(map[int][]float64, len(result.Games))
	for _, m := range result.Moves {
		decisions[m.Game] = append(decisions[m.Game], float64(m.Duration.Microseconds())/1000)
	}

	summaries := make([]Summary, 0, len(config.MatchUps))
	for k, matchUp := range config.MatchUps {
		s := Summary{Agent1: matchUp[0], Agent2: matchUp[1]}
		records := result.Games[k*config.Games : (k+1)*config.Games]

		moves := make([]float64, 0, len(records))
		var millis []float64
		for _, r := range records {
			winner := r.Agent0
			if r.Winner == 0 {
				s.SeatZeroWins++
			}
			if r.Winner == 1 {
				winner = r.Agent1
			}
			if winner == s.Agent1 {
				s.Wins1++
			} else {
				s.Wins2++
			}
			moves = append(moves, float64(r.TotalMoves))
			millis = append(millis, decisions[r.ID]...)
		}

		s.MeanMoves, s.StdMoves = stat.MeanStdDev(moves, nil)
		s.MeanDecisionMillis = math.NaN()
		if len(millis) > 0 {
			s.MeanDecisionMillis = stat.Mean(millis, nil)
		}
		summaries = append(summaries, s)
	}
	return summaries
}
