package engine

import (
	"errors"

	"santorini/experiments/metrics"
)

var ErrTooManyMoves = errors.New("game exceeded the maximum number of moves")

type Engine interface {
	// Run plays a game till there's a winner and returns the winning player
	Run() (winner int, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
