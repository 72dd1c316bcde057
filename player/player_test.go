package player

import (
	"bytes"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/searcher"
)

type scriptedReader struct {
	lines []string
}

func (r *scriptedReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func cornerState() game.State {
	return game.NewState([2][game.PawnCount]game.Position{
		{{X: 0, Y: 0}, {X: 4, Y: 4}},
		{{X: 0, Y: 4}, {X: 4, Y: 0}},
	})
}

func TestHuman(t *testing.T) {
	t.Run("parses pawn, move and build", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()
		var out bytes.Buffer
		h := NewHuman(&scriptedReader{lines: []string{"a0 c d"}}, &out)

		i, err := h.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, game.Play{Pawn: 0, End: game.Position{X: 1, Y: 1}, Build: game.Position{X: 2, Y: 1}}, plays[i])
		require.Contains(t, out.String(), "player a to move", "Board should be shown")
	})

	t.Run("numpad keys and bare pawn numbers", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()
		h := NewHuman(&scriptedReader{lines: []string{"1 7 3"}}, io.Discard)

		i, err := h.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, game.Play{Pawn: 1, End: game.Position{X: 3, Y: 3}, Build: game.Position{X: 4, Y: 4}}, plays[i],
			"Building back on the vacated cell is allowed")
	})

	t.Run("re-prompts on invalid input", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()
		var out bytes.Buffer
		h := NewHuman(&scriptedReader{lines: []string{
			"",
			"b0 x x", // Other player's pawn
			"a0 s x", // Unknown direction
			"a0 q x", // Off the board
			"a0 x x",
		}}, &out)

		i, err := h.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, game.Play{Pawn: 0, End: game.Position{X: 0, Y: 1}, Build: game.Position{X: 0, Y: 2}}, plays[i])
		require.Contains(t, out.String(), "That play is not legal")
		require.Contains(t, out.String(), "invalid move direction")
	})

	t.Run("reader errors propagate", func(t *testing.T) {
		s := cornerState()
		h := NewHuman(&scriptedReader{}, io.Discard)

		_, err := h.SelectMove(s, s.LegalPlays())

		require.ErrorIs(t, err, io.EOF)
	})
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("builds every search kind", func(t *testing.T) {
		kinds := map[string]any{
			"heuristic": &searcher.Heuristic{},
			"flat":      &searcher.FlatMonteCarlo{},
			"tree":      &searcher.TreeSearch{},
			"rollout":   &searcher.Rollout{},
		}
		for kind, want := range kinds {
			p, err := New(metrics.AgentConfig{ID: 1, Kind: kind, Episodes: 5}, rng)
			require.NoError(t, err, kind)
			require.IsType(t, want, p, kind)
			require.Implements(t, (*metrics.Reporter)(nil), p, "%s should report metrics", kind)
		}
	})

	t.Run("searchers without a budget get a default duration", func(t *testing.T) {
		require.NotPanics(t, func() {
			_, err := New(metrics.AgentConfig{Kind: "tree"}, rng)
			require.NoError(t, err)
		})
	})

	t.Run("configured players choose legal plays", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()
		for _, kind := range []string{"heuristic", "flat", "tree", "rollout"} {
			p, err := New(metrics.AgentConfig{Kind: kind, Episodes: 3, Duration: time.Second}, rng)
			require.NoError(t, err)

			i, err := p.SelectMove(s, plays)

			require.NoError(t, err, kind)
			require.True(t, i >= 0 && i < len(plays), "%s returned index %d", kind, i)
		}
	})

	t.Run("human needs a console", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Kind: "human"}, rng)
		require.Error(t, err)

		p, err := New(metrics.AgentConfig{Kind: "human"}, rng, WithConsole(&scriptedReader{}, io.Discard))
		require.NoError(t, err)
		require.IsType(t, &Human{}, p)
	})

	t.Run("rejects unknown kinds and block strategies", func(t *testing.T) {
		_, err := New(metrics.AgentConfig{Kind: "minimax"}, rng)
		require.Error(t, err)

		_, err = New(metrics.AgentConfig{Kind: "flat", Block: "sometimes"}, rng)
		require.Error(t, err)
	})
}
