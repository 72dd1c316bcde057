package player

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/meta"
	"santorini/searcher"
)

// Player chooses one of the legal plays of state and returns its index in plays
type Player interface {
	SelectMove(state game.State, plays []game.Play) (int, error)
}

type Option func(f *factory)

type factory struct {
	in  LineReader
	out io.Writer
}

// WithConsole supplies the input and output of human seats
func WithConsole(in LineReader, out io.Writer) Option {
	return func(f *factory) {
		f.in = in
		f.out = out
	}
}

// New builds the seat described by config. Searchers without a budget get meta.DURATION per
// decision, except the rollout evaluator which falls back to a fixed trial count.
func New(config metrics.AgentConfig, rng *rand.Rand, options ...Option) (Player, error) {
	f := factory{}
	for _, option := range options {
		option(&f)
	}

	block, err := searcher.ParseBlockStrategy(config.Block)
	if err != nil {
		return nil, fmt.Errorf("failed to configure agent %d: %w", config.ID, err)
	}
	opts := []searcher.Option{
		searcher.WithBlockStrategy(block),
		searcher.WithDuration(config.Duration),
		searcher.WithEpisodes(config.Episodes),
		searcher.WithMetrics(),
	}
	budgeted := append(opts, searcher.WithDuration(defaultDuration(config)))

	switch config.Kind {
	case "heuristic":
		return searcher.NewHeuristic(rng, opts...), nil
	case "flat":
		return searcher.NewFlatMonteCarlo(rng, budgeted...), nil
	case "tree":
		return searcher.NewTreeSearch(rng, budgeted...), nil
	case "rollout":
		return searcher.NewRollout(rng, opts...), nil
	case "human":
		if f.in == nil || f.out == nil {
			return nil, fmt.Errorf("agent %d is human but no console was given", config.ID)
		}
		return NewHuman(f.in, f.out), nil
	default:
		return nil, fmt.Errorf("unknown agent kind %q for agent %d", config.Kind, config.ID)
	}
}

func defaultDuration(config metrics.AgentConfig) time.Duration {
	if config.Duration > 0 || config.Episodes > 0 {
		return config.Duration
	}
	return meta.DURATION
}
