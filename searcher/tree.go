package searcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/utils"
)

// TreeSearch builds a fresh tree for every decision. Positions the heuristic can decide outright
// are never rolled out, every other new node is scored with a single heuristic playout.
type TreeSearch struct {
	rng      *rand.Rand
	settings settings
	last     metrics.SearchMetric
}

func NewTreeSearch(rng *rand.Rand, options ...Option) *TreeSearch {
	s := newSettings(options)
	s.requireBudget()
	return &TreeSearch{rng: rng, settings: s}
}

func (t *TreeSearch) LastMetric() metrics.SearchMetric {
	return t.last
}

func (t *TreeSearch) SelectMove(state game.State, plays []game.Play) (int, error) {
	if len(plays) == 0 {
		return 0, ErrNoLegalPlays
	}

	m := t.settings.metrics
	m.Start("tree")
	best := 0
	if len(plays) > 1 {
		best = t.search(state, plays)
	}
	t.last = m.Complete()

	log.Debug().
		Str("searcher", "tree").
		Int("episodes", t.last.Episodes).
		Int("nodes", t.last.Size).
		Dur("duration", t.last.Duration).
		Msg("selected play")
	return best, nil
}

func (t *TreeSearch) search(state game.State, plays []game.Play) int {
	if i := WinningPlay(state, plays); i >= 0 {
		return i
	}

	tr := newTree(state, t.settings.block)
	root := &tr.nodes[0]
	if root.resolved() {
		// Lost whatever we do, so leave it to the heuristic
		return SelectHeuristic(state, plays, t.rng, t.settings.block)
	}
	chosen := root.plays[0]
	if len(root.plays) > 1 {
		start := time.Now()
		for n := 1; ; n++ {
			t.iterate(tr)
			t.settings.metrics.AddEpisode()
			if t.settings.exhausted(start, n) {
				break
			}
		}
		chosen = tr.nodes[0].plays[tr.robustChild()]
	}
	t.settings.metrics.SetSize(len(tr.nodes))

	index := utils.FindIndex(plays, chosen)
	if index < 0 {
		panic(fmt.Sprintf("chosen play %v is not among the %d legal plays", chosen, len(plays)))
	}
	return index
}

// iterate descends from the root to a resolved node or a newly created child and backs up the
// outcome found there
func (t *TreeSearch) iterate(tr *tree) {
	index := 0
	for {
		if n := &tr.nodes[index]; n.resolved() {
			tr.backup(index, n.winner)
			return
		}

		i, created := tr.selectChild(index, t.rng, t.settings.cSquared)
		child := tr.nodes[index].children[i]
		if !created {
			index = child
			continue
		}

		winner := tr.nodes[child].winner
		if winner == unresolved {
			winner = PlayOut(tr.nodes[child].state, t.rng, tr.block)
			t.settings.metrics.AddFullPlayout()
		}
		tr.backup(child, winner)
		return
	}
}
