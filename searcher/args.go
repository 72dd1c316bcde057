package searcher

import (
	"time"

	"santorini/experiments/metrics"
)

type Option func(s *settings)

type settings struct {
	duration time.Duration
	episodes int
	cSquared float64
	block    BlockStrategy
	metrics  metrics.Collector
}

func newSettings(options []Option) settings {
	s := settings{ // Default values
		cSquared: CSquared,
		block:    BlockFirstStopper,
		metrics:  metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(&s)
	}
	return s
}

// requireBudget panics for searchers that would otherwise never stop
func (s settings) requireBudget() {
	if s.episodes <= 0 && s.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
}

// exhausted reports whether a search that began at start and finished n episodes must stop.
// An episode count takes precedence over a duration so searches can be made reproducible.
func (s settings) exhausted(start time.Time, n int) bool {
	if s.episodes > 0 {
		return n >= s.episodes
	}
	return time.Since(start) >= s.duration
}

// WithDuration bounds each decision by wall-clock time
func WithDuration(duration time.Duration) Option {
	return func(s *settings) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithEpisodes bounds each decision by a fixed number of simulations (per candidate for the
// rollout evaluator)
func WithEpisodes(episodes int) Option {
	return func(s *settings) {
		if episodes > 0 {
			s.episodes = episodes
		}
	}
}

func WithExploration(cSquared float64) Option {
	return func(s *settings) {
		if cSquared >= 0 {
			s.cSquared = cSquared
		}
	}
}

func WithBlockStrategy(block BlockStrategy) Option {
	return func(s *settings) {
		s.block = block
	}
}

func WithMetrics() Option {
	return func(s *settings) {
		s.metrics = metrics.NewCollector()
	}
}
