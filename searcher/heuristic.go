package searcher

import (
	"fmt"

	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
)

// BlockStrategy decides what counts as an obvious block when the opponent threatens to win
type BlockStrategy int

const (
	// BlockFirstStopper builds on the first threatened cell any play can reach, even if the
	// opponent has other winning steps
	BlockFirstStopper BlockStrategy = iota
	// BlockUnambiguous only blocks when exactly one cell is threatened and otherwise leaves the
	// choice to the blunder filter
	BlockUnambiguous
)

func (b BlockStrategy) String() string {
	switch b {
	case BlockFirstStopper:
		return "first-stopper"
	case BlockUnambiguous:
		return "unambiguous"
	default:
		return fmt.Sprintf("BlockStrategy(%d)", int(b))
	}
}

// ParseBlockStrategy accepts the names printed by String, "" selects the default
func ParseBlockStrategy(name string) (BlockStrategy, error) {
	switch name {
	case "", "first-stopper":
		return BlockFirstStopper, nil
	case "unambiguous":
		return BlockUnambiguous, nil
	default:
		return 0, fmt.Errorf("unknown block strategy %q", name)
	}
}

// WinningPlay returns the index of the first play stepping onto WinHeight, or -1
func WinningPlay(state game.State, plays []game.Play) int {
	for i, play := range plays {
		if state.Height(play.End) == game.WinHeight {
			return i
		}
	}
	return -1
}

// Threats returns the distinct cells the opponent could step onto to win next turn: cells at
// WinHeight next to an opponent pawn at WinHeight-1. The mover cannot enter them without winning
// first, so only building on them stops the threat.
func Threats(state game.State) []game.Position {
	var threats []game.Position
	opponent := game.Opponent(state.Player)
	for pawn := 0; pawn < game.PawnCount; pawn++ {
		them := state.Positions[opponent][pawn]
		if state.Height(them) != game.WinHeight-1 {
			continue
		}
		for _, end := range game.Neighbors(them) {
			if state.Height(end) == game.WinHeight && !containsPosition(threats, end) {
				threats = append(threats, end)
			}
		}
	}
	return threats
}

func containsPosition(positions []game.Position, p game.Position) bool {
	for _, q := range positions {
		if q == p {
			return true
		}
	}
	return false
}

// BlockingPlay returns the index of the obvious block under the given strategy, or -1
func BlockingPlay(state game.State, plays []game.Play, block BlockStrategy) int {
	threats := Threats(state)
	if block == BlockUnambiguous && len(threats) != 1 {
		return -1
	}
	for _, threat := range threats {
		for i, play := range plays {
			// This stops this particular winning step but there may be others, we can only stop one
			if play.Build == threat {
				return i
			}
		}
	}
	return -1
}

// ObviousPlay returns an immediate win, else an obvious block, else -1
func ObviousPlay(state game.State, plays []game.Play, block BlockStrategy) int {
	if i := WinningPlay(state, plays); i >= 0 {
		return i
	}
	return BlockingPlay(state, plays, block)
}

// IsBlunder reports whether play raises a cell to WinHeight next to an opponent pawn that can
// climb onto it next turn
func IsBlunder(state game.State, play game.Play) bool {
	if state.Height(play.Build) != game.WinHeight-1 {
		return false
	}
	opponent := game.Opponent(state.Player)
	for pawn := 0; pawn < game.PawnCount; pawn++ {
		them := state.Positions[opponent][pawn]
		if game.Adjacent(them, play.Build) && state.Height(them) == game.WinHeight-1 {
			return true
		}
	}
	return false
}

// Blunders returns the ascending indices of blunders among plays
func Blunders(state game.State, plays []game.Play) []int {
	var blunders []int
	for i, play := range plays {
		if IsBlunder(state, play) {
			blunders = append(blunders, i)
		}
	}
	return blunders
}

// SelectHeuristic is the tactical one-ply policy: an obvious play if there is one, otherwise a
// uniformly random play that is not a blunder, otherwise the first play.
func SelectHeuristic(state game.State, plays []game.Play, rng *rand.Rand, block BlockStrategy) int {
	if obvious := ObviousPlay(state, plays, block); obvious >= 0 {
		return obvious
	}

	blunders := Blunders(state, plays)
	if len(blunders) == len(plays) {
		// All the plays are losers, so just pick the first one
		return 0
	}
	return pickAvoiding(len(plays), blunders, rng)
}

// pickAvoiding draws uniformly among [0, n) minus the sorted excluded indices by walking the
// exclusions and skipping over them
func pickAvoiding(n int, excluded []int, rng *rand.Rand) int {
	r := rng.Intn(n - len(excluded))
	skip := r
	base := 0
	for _, blunder := range excluded {
		if base+skip < blunder {
			return base + skip
		}
		skip -= blunder - base
		base = blunder + 1
	}

	if base+skip >= n {
		// It shouldn't be possible to get here
		panic(fmt.Sprintf("couldn't find index %d among %d plays minus %d blunders", r, n, len(excluded)))
	}
	return base + skip
}

// Heuristic is the standalone seat for SelectHeuristic
type Heuristic struct {
	rng      *rand.Rand
	settings settings
	last     metrics.SearchMetric
}

// NewHeuristic needs no search budget, only WithBlockStrategy and WithMetrics apply
func NewHeuristic(rng *rand.Rand, options ...Option) *Heuristic {
	return &Heuristic{rng: rng, settings: newSettings(options)}
}

func (h *Heuristic) SelectMove(state game.State, plays []game.Play) (int, error) {
	if len(plays) == 0 {
		return 0, ErrNoLegalPlays
	}
	h.settings.metrics.Start("heuristic")
	index := SelectHeuristic(state, plays, h.rng, h.settings.block)
	h.last = h.settings.metrics.Complete()
	return index, nil
}

func (h *Heuristic) LastMetric() metrics.SearchMetric {
	return h.last
}

// PlayOut plays state to the end with SelectHeuristic for both sides and returns the winner
func PlayOut(state game.State, rng *rand.Rand, block BlockStrategy) int {
	for {
		if winner := state.Climber(); winner != game.NoWinner {
			return winner
		}
		plays := state.LegalPlays()
		if len(plays) == 0 {
			// Player to move loses because they have no legal plays
			return game.Opponent(state.Player)
		}
		state = state.Play(plays[SelectHeuristic(state, plays, rng, block)])
	}
}
