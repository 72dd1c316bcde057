package game

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash"
)

// State is a value type: Play returns a modified copy and never touches the receiver, so states
// can be shared freely between search nodes and used as map keys. Two states are transpositions
// of each other iff every field matches.
type State struct {
	Player    int                         // Player to move, 0 or 1
	Positions [2][PawnCount]Position      // First index is player, second index is pawn number
	Heights   [BoardWidth][BoardWidth]int // Indexed [x][y], each from 0 to MaxHeight inclusive
}

// NewState returns a state with flat heights, player 0 to move and the given pawn positions
func NewState(positions [2][PawnCount]Position) State {
	return State{Positions: positions}
}

// Validate checks the structural invariants of a state built from external input
func (s State) Validate() error {
	if s.Player != 0 && s.Player != 1 {
		return fmt.Errorf("invalid player %d", s.Player)
	}
	seen := make(map[Position]bool, 2*PawnCount)
	for player := 0; player < 2; player++ {
		for pawn := 0; pawn < PawnCount; pawn++ {
			p := s.Positions[player][pawn]
			if !p.InBounds() {
				return fmt.Errorf("pawn %d of player %d is off the board at (%d,%d)", pawn, player, p.X, p.Y)
			}
			if seen[p] {
				return fmt.Errorf("two pawns share cell (%d,%d)", p.X, p.Y)
			}
			seen[p] = true
		}
	}
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardWidth; y++ {
			if h := s.Heights[x][y]; h < 0 || h > MaxHeight {
				return fmt.Errorf("cell (%d,%d) has invalid height %d", x, y, h)
			}
		}
	}
	return nil
}

func (s State) Height(p Position) int {
	return s.Heights[p.X][p.Y]
}

// Start is the current cell of the mover's pawn
func (s State) Start(pawn int) Position {
	return s.Positions[s.Player][pawn]
}

// Occupied reports whether any pawn of either player stands on p
func (s State) Occupied(p Position) bool {
	for player := 0; player < 2; player++ {
		for pawn := 0; pawn < PawnCount; pawn++ {
			if s.Positions[player][pawn] == p {
				return true
			}
		}
	}
	return false
}

// isLegalTarget checks that the target can be moved to or built upon: below the max height and
// without a pawn on it
func (s State) isLegalTarget(target Position) bool {
	return s.Heights[target.X][target.Y] < MaxHeight && !s.Occupied(target)
}

// LegalPlays returns every legal play for the player to move.
//
// Order is deterministic: pawn 0 before pawn 1, ends in neighbor order, and for each end the
// build on the vacated cell first followed by the other builds in neighbor order. Blockage is
// checked against the pre-move state, where the start cell still holds the moving pawn, so the
// vacated cell is never emitted twice.
func (s State) LegalPlays() []Play {
	plays := make([]Play, 0, MaxLegalPlays)
	for pawn := 0; pawn < PawnCount; pawn++ {
		start := s.Positions[s.Player][pawn]
		startHeight := s.Heights[start.X][start.Y]
		for _, end := range neighbors(start) {
			if !s.isLegalTarget(end) || s.Heights[end.X][end.Y]-startHeight > 1 {
				continue
			}
			// All valid moves will be able to build on the cell they just vacated
			plays = append(plays, Play{Pawn: pawn, End: end, Build: start})
			for _, build := range neighbors(end) {
				if s.isLegalTarget(build) {
					plays = append(plays, Play{Pawn: pawn, End: end, Build: build})
				}
			}
		}
	}
	return plays
}

// Play returns the successor state: the pawn moves, the build cell rises by one and the turn
// passes to the opponent. The play is assumed to be one of s.LegalPlays().
func (s State) Play(play Play) State {
	next := s
	next.Positions[s.Player][play.Pawn] = play.End
	next.Heights[play.Build.X][play.Build.Y]++
	next.Player = Opponent(s.Player)
	return next
}

// Climber returns the owner of a pawn standing at WinHeight, or NoWinner. Since that can only
// happen as the result of the latest move, it is the player who just moved.
func (s State) Climber() int {
	for player := 0; player < 2; player++ {
		for pawn := 0; pawn < PawnCount; pawn++ {
			p := s.Positions[player][pawn]
			if s.Heights[p.X][p.Y] == WinHeight {
				return player
			}
		}
	}
	return NoWinner
}

// Winner returns the winning player or NoWinner if the game is ongoing. A player with no legal
// play loses.
func (s State) Winner() int {
	if winner := s.Climber(); winner != NoWinner {
		return winner
	}
	if len(s.LegalPlays()) == 0 {
		return Opponent(s.Player)
	}
	return NoWinner
}

// Terminal is shorthand for Winner() != NoWinner
func (s State) Terminal() bool {
	return s.Winner() != NoWinner
}

// Hash combines the fields in the same order equality compares them
func (s State) Hash() StateHash {
	buf := make([]byte, 0, 1+4*PawnCount+BoardWidth*BoardWidth)

	// Hash current player
	buf = append(buf, byte(s.Player))
	// Hash pawn positions
	for player := 0; player < 2; player++ {
		for pawn := 0; pawn < PawnCount; pawn++ {
			p := s.Positions[player][pawn]
			buf = append(buf, byte(p.X), byte(p.Y))
		}
	}
	// Hash heights
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardWidth; y++ {
			buf = append(buf, byte(s.Heights[x][y]))
		}
	}
	return StateHash(xxhash.Sum64(buf))
}

func (h StateHash) String() string {
	return fmt.Sprintf("%016x", uint64(h))
}

// String draws the board: each cell shows its height, then the player letter (a or b) and pawn
// number of any pawn on it
func (s State) String() string {
	var sb strings.Builder
	sb.WriteString("     ")
	for x := 0; x < BoardWidth; x++ {
		fmt.Fprintf(&sb, "x=%d ", x)
	}
	sb.WriteString("\n")
	divider := "    " + strings.Repeat("+---", BoardWidth) + "+\n"
	for y := 0; y < BoardWidth; y++ {
		sb.WriteString(divider)
		fmt.Fprintf(&sb, "y=%d ", y)
		for x := 0; x < BoardWidth; x++ {
			cell := [3]byte{byte('0' + s.Heights[x][y]), ' ', ' '}
			for player := 0; player < 2; player++ {
				for pawn := 0; pawn < PawnCount; pawn++ {
					if s.Positions[player][pawn] == (Position{X: x, Y: y}) {
						cell[1] = byte('a' + player)
						cell[2] = byte('0' + pawn)
					}
				}
			}
			sb.WriteString("|")
			sb.Write(cell[:])
		}
		sb.WriteString("|\n")
	}
	sb.WriteString(divider)
	fmt.Fprintf(&sb, "player %c to move\n", 'a'+s.Player)
	return sb.String()
}
