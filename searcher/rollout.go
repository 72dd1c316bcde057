package searcher

import (
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/meta"
)

// Rollout scores every safe candidate play by finishing many heuristic games after it
type Rollout struct {
	rng      *rand.Rand
	settings settings
	last     metrics.SearchMetric
}

// NewRollout runs meta.ROLLOUT_TRIALS games per candidate unless a budget is given. With only a
// duration the budget is shared round robin across the candidates.
func NewRollout(rng *rand.Rand, options ...Option) *Rollout {
	s := newSettings(options)
	if s.episodes <= 0 && s.duration <= 0 {
		s.episodes = meta.ROLLOUT_TRIALS
	}
	return &Rollout{rng: rng, settings: s}
}

func (r *Rollout) LastMetric() metrics.SearchMetric {
	return r.last
}

type score struct {
	index  int
	wins   float64
	trials float64
}

func (s score) ratio() float64 {
	if s.trials == 0 {
		return 0
	}
	return s.wins / s.trials
}

func (r *Rollout) SelectMove(state game.State, plays []game.Play) (int, error) {
	if len(plays) == 0 {
		return 0, ErrNoLegalPlays
	}

	m := r.settings.metrics
	m.Start("rollout")
	best := r.evaluate(state, plays)
	r.last = m.Complete()

	log.Debug().
		Str("searcher", "rollout").
		Int("episodes", r.last.Episodes).
		Dur("duration", r.last.Duration).
		Msg("selected play")
	return best, nil
}

func (r *Rollout) evaluate(state game.State, plays []game.Play) int {
	if obvious := ObviousPlay(state, plays, r.settings.block); obvious >= 0 {
		return obvious
	}

	candidates := lo.FilterMap(plays, func(play game.Play, i int) (*score, bool) {
		return &score{index: i}, !IsBlunder(state, play)
	})
	switch len(candidates) {
	case 0:
		// Every play loses, take the first
		return 0
	case 1:
		return candidates[0].index
	}

	if r.settings.episodes > 0 {
		for _, c := range candidates {
			for n := 0; n < r.settings.episodes; n++ {
				r.trial(state, plays, c)
			}
		}
	} else {
		// Every candidate gets at least one trial before the deadline is honoured
		start := time.Now()
		for n := 0; n < len(candidates) || time.Since(start) < r.settings.duration; n++ {
			r.trial(state, plays, candidates[n%len(candidates)])
		}
	}

	best := lo.MaxBy(candidates, func(a, b *score) bool {
		return a.ratio() > b.ratio()
	})
	return best.index
}

func (r *Rollout) trial(state game.State, plays []game.Play, c *score) {
	winner := PlayOut(state.Play(plays[c.index]), r.rng, r.settings.block)
	c.wins += reward(winner, state.Player)
	c.trials++
	r.settings.metrics.AddEpisode()
	r.settings.metrics.AddFullPlayout()
}
