package game

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// positionFields is the number of integers per line of a positions file:
// x0 y0 x1 y1 for player 0's pawns, then x2 y2 x3 y3 for player 1's
const positionFields = 4 * PawnCount

// RandomState places the four pawns on distinct random cells of a flat board, player 0 to move
func RandomState(rng *rand.Rand) State {
	cells := make([]int, BoardWidth*BoardWidth)
	for i := range cells {
		cells[i] = i
	}
	rng.Shuffle(len(cells), func(i, j int) {
		cells[i], cells[j] = cells[j], cells[i]
	})

	var positions [2][PawnCount]Position
	for player := 0; player < 2; player++ {
		for pawn := 0; pawn < PawnCount; pawn++ {
			index := cells[player*PawnCount+pawn]
			positions[player][pawn] = Position{X: index % BoardWidth, Y: index / BoardWidth}
		}
	}
	return NewState(positions)
}

// rotate turns a cell 90 degrees around the board center
func rotate(p Position) Position {
	return Position{X: BoardWidth - 1 - p.Y, Y: p.X}
}

func less(a, b Position) bool {
	return a.X < b.X || (a.X == b.X && a.Y < b.Y)
}

func sortedPair(a, b Position) [PawnCount]Position {
	if less(b, a) {
		return [PawnCount]Position{b, a}
	}
	return [PawnCount]Position{a, b}
}

// rotateAll rotates every pawn and keeps each player's pair sorted
func rotateAll(positions [2][PawnCount]Position) [2][PawnCount]Position {
	var rotated [2][PawnCount]Position
	for player := 0; player < 2; player++ {
		rotated[player] = sortedPair(rotate(positions[player][0]), rotate(positions[player][1]))
	}
	return rotated
}

// CanonicalStartingPositions enumerates every starting placement once per class of board
// rotations. Pawns of the same player are interchangeable so each pair is kept sorted. The
// representative of a class is the first member found in lexicographic cell order.
func CanonicalStartingPositions() []State {
	cells := make([]Position, 0, BoardWidth*BoardWidth)
	for x := 0; x < BoardWidth; x++ {
		for y := 0; y < BoardWidth; y++ {
			cells = append(cells, Position{X: x, Y: y})
		}
	}

	seen := make(map[[2][PawnCount]Position]bool)
	var states []State
	for a := range cells {
		for b := range cells {
			for c := range cells {
				for d := range cells {
					if a == b || a == c || a == d || b == c || b == d || c == d {
						continue
					}
					position := [2][PawnCount]Position{
						sortedPair(cells[a], cells[b]),
						sortedPair(cells[c], cells[d]),
					}
					if seen[position] {
						continue
					}
					states = append(states, NewState(position))
					for i := 0; i < 4; i++ {
						seen[position] = true
						position = rotateAll(position)
					}
				}
			}
		}
	}
	return states
}

// ReadPositions parses a positions file. Malformed or invalid lines are logged and skipped, only
// read errors are returned.
func ReadPositions(r io.Reader) ([]State, error) {
	var states []State
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		state, err := parsePosition(text)
		if err != nil {
			log.Warn().Err(err).Int("line", line).Msg("skipping starting position")
			continue
		}
		states = append(states, state)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read positions: %w", err)
	}
	return states, nil
}

func parsePosition(text string) (State, error) {
	fields := strings.Fields(text)
	if len(fields) != positionFields {
		return State{}, fmt.Errorf("expected %d integers, got %d", positionFields, len(fields))
	}
	values := make([]int, positionFields)
	for i, field := range fields {
		v, err := strconv.Atoi(field)
		if err != nil {
			return State{}, fmt.Errorf("field %d: %w", i, err)
		}
		values[i] = v
	}

	var positions [2][PawnCount]Position
	for player := 0; player < 2; player++ {
		for pawn := 0; pawn < PawnCount; pawn++ {
			i := 2 * (player*PawnCount + pawn)
			positions[player][pawn] = Position{X: values[i], Y: values[i+1]}
		}
	}
	state := NewState(positions)
	if err := state.Validate(); err != nil {
		return State{}, err
	}
	return state, nil
}

// WritePositions writes the pawn positions of each state in the positions file format
func WritePositions(w io.Writer, states []State) error {
	bw := bufio.NewWriter(w)
	for _, s := range states {
		p := s.Positions
		_, err := fmt.Fprintf(bw, "%d %d %d %d %d %d %d %d\n",
			p[0][0].X, p[0][0].Y, p[0][1].X, p[0][1].Y,
			p[1][0].X, p[1][0].Y, p[1][1].X, p[1][1].Y)
		if err != nil {
			return fmt.Errorf("failed to write positions: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write positions: %w", err)
	}
	return nil
}
