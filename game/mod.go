package game

const (
	BoardWidth = 5 // The board is a 5x5 square of cells
	PawnCount  = 2 // Each player has 2 pawns
	MaxHeight  = 4 // A cell at MaxHeight is domed and can no longer be entered or built on

	// Stepping onto a cell of this height wins the game
	WinHeight = MaxHeight - 1

	// Each pawn could have 8 places to move and then 8 places to build
	MaxLegalPlays = PawnCount * 8 * 8
)

// NoWinner is returned by Winner while the game is still ongoing
const NoWinner = -1

type StateHash uint64

// Position is a cell on the board, 0 <= X, Y < BoardWidth
type Position struct {
	X int
	Y int
}

func (p Position) InBounds() bool {
	return p.X >= 0 && p.X < BoardWidth && p.Y >= 0 && p.Y < BoardWidth
}

// Play is one full turn: move one of the mover's pawns to End, then raise the height of Build.
// The starting cell is implied by the state the play is applied to.
type Play struct {
	Pawn  int
	End   Position
	Build Position
}

// Opponent returns the other player index
func Opponent(player int) int {
	return 1 - player
}

// Valid end positions from making a king's move, from a central cell there are eight
// but from edges and corners there are fewer. Read-only after init.
var kingMoves [BoardWidth][BoardWidth][]Position

func init() {
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardWidth; y++ {
			kingMoves[x][y] = computeNeighbors(Position{X: x, Y: y})
		}
	}
}

// computeNeighbors enumerates in a fixed order: dx from -1 to 1, then dy from -1 to 1
func computeNeighbors(p Position) []Position {
	ends := make([]Position, 0, 8)
	for dx := -1; dx < 2; dx++ {
		for dy := -1; dy < 2; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			end := Position{X: p.X + dx, Y: p.Y + dy}
			if end.InBounds() {
				ends = append(ends, end)
			}
		}
	}
	return ends
}

func neighbors(p Position) []Position {
	return kingMoves[p.X][p.Y]
}

// Neighbors returns the king's move neighbors of p. The slice is shared, callers must not
// modify it.
func Neighbors(p Position) []Position {
	return neighbors(p)
}

// Adjacent reports whether a and b are distinct cells within one king's move
// (squared distance at most 2)
func Adjacent(a, b Position) bool {
	dx := a.X - b.X
	dy := a.Y - b.Y
	d2 := dx*dx + dy*dy
	return d2 > 0 && d2 <= 2
}
