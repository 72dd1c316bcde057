package player

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"santorini/game"
	"santorini/utils"
)

// LineReader is satisfied by *readline.Instance
type LineReader interface {
	Readline() (string, error)
}

// Direction keys, the letters around s on a keyboard or the digits around 5 on a numpad
var directions = map[string]game.Position{
	"q": {X: -1, Y: -1}, "w": {X: 0, Y: -1}, "e": {X: 1, Y: -1},
	"a": {X: -1, Y: 0}, "d": {X: 1, Y: 0},
	"z": {X: -1, Y: 1}, "x": {X: 0, Y: 1}, "c": {X: 1, Y: 1},
	"7": {X: -1, Y: -1}, "8": {X: 0, Y: -1}, "9": {X: 1, Y: -1},
	"4": {X: -1, Y: 0}, "6": {X: 1, Y: 0},
	"1": {X: -1, Y: 1}, "2": {X: 0, Y: 1}, "3": {X: 1, Y: 1},
}

// Human asks a person for plays written as "<pawn> <move-dir> <build-dir>", e.g. "a0 d w"
type Human struct {
	in  LineReader
	out io.Writer
}

func NewHuman(in LineReader, out io.Writer) *Human {
	return &Human{in: in, out: out}
}

// SelectMove prompts until the input names one of the legal plays. Only reader errors are
// returned.
func (h *Human) SelectMove(state game.State, plays []game.Play) (int, error) {
	if len(plays) == 0 {
		return 0, errors.New("no legal plays to choose from")
	}

	fmt.Fprint(h.out, state)
	letter := 'a' + rune(state.Player)
	for {
		fmt.Fprintf(h.out, "Enter pawn (%c0 or %c1), move and build directions (q w e a d z x c)\n", letter, letter)
		line, err := h.in.Readline()
		if err != nil {
			return 0, fmt.Errorf("failed to read play: %w", err)
		}

		play, err := parsePlay(state, line)
		if err != nil {
			fmt.Fprintln(h.out, err)
			continue
		}
		if i := utils.FindIndex(plays, play); i >= 0 {
			return i, nil
		}
		fmt.Fprintln(h.out, "That play is not legal. Try again.")
	}
}

func parsePlay(state game.State, line string) (game.Play, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) != 3 {
		return game.Play{}, errors.New("expected a pawn and two directions")
	}

	pawn, err := parsePawn(state.Player, fields[0])
	if err != nil {
		return game.Play{}, err
	}
	move, ok := directions[fields[1]]
	if !ok {
		return game.Play{}, fmt.Errorf("invalid move direction %q", fields[1])
	}
	build, ok := directions[fields[2]]
	if !ok {
		return game.Play{}, fmt.Errorf("invalid build direction %q", fields[2])
	}

	start := state.Start(pawn)
	end := game.Position{X: start.X + move.X, Y: start.Y + move.Y}
	return game.Play{
		Pawn:  pawn,
		End:   end,
		Build: game.Position{X: end.X + build.X, Y: end.Y + build.Y},
	}, nil
}

// parsePawn accepts the board label of a pawn, like a1, or just its number
func parsePawn(player int, field string) (int, error) {
	label := string(rune('a' + player))
	field = strings.TrimPrefix(field, label)
	switch field {
	case "0":
		return 0, nil
	case "1":
		return 1, nil
	default:
		return 0, fmt.Errorf("invalid pawn, enter %s0 or %s1", label, label)
	}
}
