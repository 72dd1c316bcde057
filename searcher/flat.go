package searcher

import (
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
)

// FlatMonteCarlo searches without an explicit tree: every decision point along a simulated game
// looks its successors up in a transposition table kept for the whole game session. Each
// simulation adds at most one new state to the table.
type FlatMonteCarlo struct {
	table    *Table
	rng      *rand.Rand
	settings settings
	last     metrics.SearchMetric
}

func NewFlatMonteCarlo(rng *rand.Rand, options ...Option) *FlatMonteCarlo {
	s := newSettings(options)
	s.requireBudget()
	return &FlatMonteCarlo{
		table:    NewTable(),
		rng:      rng,
		settings: s,
	}
}

func (f *FlatMonteCarlo) Table() *Table {
	return f.table
}

func (f *FlatMonteCarlo) LastMetric() metrics.SearchMetric {
	return f.last
}

func (f *FlatMonteCarlo) SelectMove(state game.State, plays []game.Play) (int, error) {
	if len(plays) == 0 {
		return 0, ErrNoLegalPlays
	}

	m := f.settings.metrics
	m.Start("flat")
	best := 0
	if len(plays) > 1 {
		start := time.Now()
		for n := 0; !f.settings.exhausted(start, n); n++ {
			f.simulate(state)
			m.AddEpisode()
		}
		best = f.bestPlay(state, plays)
	}
	m.SetSize(f.table.Len())
	m.SetPruned(f.table.Prune(state.Play(plays[best])))
	f.last = m.Complete()

	log.Debug().
		Str("searcher", "flat").
		Int("episodes", f.last.Episodes).
		Int("table", f.table.Len()).
		Int("pruned", f.last.Pruned).
		Msg("selected play")
	return best, nil
}

// bestPlay picks the play whose successor has the highest ratio: the opponent moving there is
// the most likely to lose. Unknown successors count as 0, ties go to the first play.
func (f *FlatMonteCarlo) bestPlay(state game.State, plays []game.Play) int {
	best := 0
	bestRatio := -1.0
	for i, play := range plays {
		e, _ := f.table.Get(state.Play(play))
		if ratio := e.Ratio(); ratio > bestRatio {
			bestRatio = ratio
			best = i
		}
	}
	return best
}

func (f *FlatMonteCarlo) simulate(root game.State) {
	visited := []game.State{root}
	expanded := false
	state := root
	winner := game.NoWinner
	for {
		if winner = state.Climber(); winner != game.NoWinner {
			break
		}
		plays := state.LegalPlays()
		if len(plays) == 0 {
			winner = game.Opponent(state.Player)
			break
		}
		state = f.step(state, plays, &expanded)
		visited = append(visited, state)
	}
	f.settings.metrics.AddFullPlayout()

	// Heights strictly grow every ply, so the visited states are all distinct
	for _, s := range visited {
		f.table.RecordOutcome(s, s.Player == winner)
	}
}

// step chooses the successor to continue the simulation with. With every successor known it
// takes the max UCB1 one, otherwise a random unknown one, which becomes this simulation's single
// expansion if none has happened yet.
func (f *FlatMonteCarlo) step(state game.State, plays []game.Play, expanded *bool) game.State {
	successors := make([]game.State, len(plays))
	entries := make([]Entry, len(plays))
	var missing []int
	total := 0.0
	for i, play := range plays {
		successors[i] = state.Play(play)
		e, ok := f.table.Get(successors[i])
		if !ok {
			missing = append(missing, i)
			continue
		}
		entries[i] = e
		total += e.Playouts
	}

	if len(missing) > 0 {
		next := successors[missing[f.rng.Intn(len(missing))]]
		if !*expanded {
			f.table.AddNew(next)
			*expanded = true
		}
		return next
	}

	if total == 0 {
		return successors[f.rng.Intn(len(successors))]
	}
	c2LnN := normalizer(f.settings.cSquared, total)
	best := 0
	bestScore := -1.0
	for i, e := range entries {
		if score := ucb1(e.Wins, e.Playouts, c2LnN); score > bestScore {
			bestScore = score
			best = i
		}
	}
	return successors[best]
}
