package searcher

import (
	"math"

	"github.com/samber/lo"
	"golang.org/x/exp/rand"

	"santorini/game"
)

const unresolved = game.NoWinner

// node lives in a tree arena and refers to its relatives by index
type node struct {
	state    game.State
	parent   int   // -1 for the root
	plays    []game.Play
	children []int // Index of the child node per play, -1 until the play is first selected
	fresh    int   // Number of plays without a child node yet

	// wins counts outcomes won by the player who made the play leading here, the opponent of
	// state.Player, so a parent maximizes its children's scores directly
	wins   float64
	visits float64

	// winner is fixed once the position is resolved without search
	winner int
}

type tree struct {
	nodes []node
	block BlockStrategy
}

func newTree(root game.State, block BlockStrategy) *tree {
	t := &tree{block: block}
	t.add(-1, root)
	return t
}

func (t *tree) add(parent int, state game.State) int {
	t.nodes = append(t.nodes, node{state: state, parent: parent, winner: unresolved})
	index := len(t.nodes) - 1
	t.expand(index)
	return index
}

// expand generates the node's candidate plays and resolves positions the heuristic decides
// outright: no plays, an immediate win, a threat that cannot be stopped or only blunders left.
// A single stoppable threat restricts the candidates to the blocking plays.
func (t *tree) expand(index int) {
	n := &t.nodes[index]
	state := n.state
	if winner := state.Climber(); winner != game.NoWinner {
		n.winner = winner
		return
	}

	plays := state.LegalPlays()
	switch {
	case len(plays) == 0:
		n.winner = game.Opponent(state.Player)
		return
	case WinningPlay(state, plays) >= 0:
		n.winner = state.Player
		return
	}

	loser := game.Opponent(state.Player)
	switch threats := Threats(state); len(threats) {
	case 0:
	case 1:
		plays = lo.Filter(plays, func(p game.Play, _ int) bool { return p.Build == threats[0] })
		if len(plays) == 0 {
			n.winner = loser
			return
		}
		n.plays = plays
		n.children = makeChildren(len(plays))
		n.fresh = len(plays)
		return
	default:
		// One build can only cap one of them
		n.winner = loser
		return
	}

	plays = lo.Filter(plays, func(p game.Play, _ int) bool { return !IsBlunder(state, p) })
	if len(plays) == 0 {
		n.winner = loser
		return
	}
	n.plays = plays
	n.children = makeChildren(len(plays))
	n.fresh = len(plays)
}

func makeChildren(n int) []int {
	children := make([]int, n)
	for i := range children {
		children[i] = -1
	}
	return children
}

func (n *node) resolved() bool {
	return n.winner != unresolved
}

// selectChild returns the index of the chosen play and whether its child node was just created.
// Plays never tried are picked uniformly at random first, then the max UCB1 child.
func (t *tree) selectChild(index int, rng *rand.Rand, cSquared float64) (int, bool) {
	n := &t.nodes[index]
	if n.fresh > 0 {
		k := rng.Intn(n.fresh)
		for i, child := range n.children {
			if child != -1 {
				continue
			}
			if k == 0 {
				n.fresh--
				state := n.state.Play(n.plays[i])
				child := t.add(index, state) // may grow the arena, n is stale afterwards
				t.nodes[index].children[i] = child
				return i, true
			}
			k--
		}
		panic("node has fresh plays but no empty child slot")
	}

	c2LnN := normalizer(cSquared, n.visits)
	best := -1
	bestScore := math.Inf(-1)
	for i, child := range n.children {
		c := &t.nodes[child]
		if score := ucb1(c.wins, c.visits, c2LnN); score > bestScore {
			bestScore = score
			best = i
		}
	}
	return best, false
}

// backup credits winner along the path from index to the root
func (t *tree) backup(index int, winner int) {
	for index != -1 {
		n := &t.nodes[index]
		n.visits++
		n.wins += reward(winner, game.Opponent(n.state.Player))
		index = n.parent
	}
}

// robustChild returns the play index of the most visited root child, the first on ties, or -1
// when no child was ever created
func (t *tree) robustChild() int {
	root := &t.nodes[0]
	best := -1
	maxVisits := -1.0
	for i, child := range root.children {
		if child == -1 {
			continue
		}
		if v := t.nodes[child].visits; v > maxVisits {
			maxVisits = v
			best = i
		}
	}
	return best
}
