package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/player"
	"santorini/searcher"
)

// fixedPlayer always returns the same index
type fixedPlayer struct {
	index int
	err   error
}

func (p fixedPlayer) SelectMove(game.State, []game.Play) (int, error) {
	return p.index, p.err
}

func heuristics(seed uint64) [2]player.Player {
	rng := rand.New(rand.NewSource(seed))
	return [2]player.Player{
		searcher.NewHeuristic(rng, searcher.WithMetrics()),
		searcher.NewHeuristic(rng, searcher.WithMetrics()),
	}
}

func TestLocalRun(t *testing.T) {
	t.Run("plays a game to the end", func(t *testing.T) {
		start := game.RandomState(rand.New(rand.NewSource(3)))
		steps := 0
		e := NewLocal(start, heuristics(3), WithObserver(func(step int, play game.Play, state game.State) {
			steps = step
		}))

		winner, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Contains(t, []int{0, 1}, winner)
		require.Equal(t, winner, gameMetric.Winner)
		require.Equal(t, 0, gameMetric.StartingPlayer)
		require.Equal(t, len(moveMetrics), gameMetric.TotalMoves)
		require.Equal(t, steps, len(moveMetrics), "Observer should see every play")
		require.Equal(t, winner, e.State().Winner(), "Final state should agree on the winner")
		for i, mm := range moveMetrics {
			require.Equal(t, i+1, mm.Step)
			require.Equal(t, i%2, mm.Player, "Seats should alternate")
			require.Equal(t, "heuristic", mm.Searcher, "Reporters should fill in search metrics")
		}
	})

	t.Run("stepping onto height 3 wins", func(t *testing.T) {
		s := game.NewState([2][game.PawnCount]game.Position{
			{{X: 2, Y: 2}, {X: 0, Y: 0}},
			{{X: 4, Y: 4}, {X: 4, Y: 0}},
		})
		s.Heights[2][2] = 2
		s.Heights[2][3] = 3
		seats := heuristics(1)

		winner, gameMetric, _, err := NewLocal(s, seats).Run()

		require.NoError(t, err)
		require.Equal(t, 0, winner)
		require.Equal(t, 1, gameMetric.TotalMoves)
	})

	t.Run("player without plays loses", func(t *testing.T) {
		s := game.NewState([2][game.PawnCount]game.Position{
			{{X: 0, Y: 0}, {X: 4, Y: 4}},
			{{X: 2, Y: 2}, {X: 2, Y: 3}},
		})
		for _, p := range []game.Position{{X: 0, Y: 1}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 3, Y: 3}, {X: 3, Y: 4}, {X: 4, Y: 3}} {
			s.Heights[p.X][p.Y] = game.MaxHeight
		}

		winner, gameMetric, moveMetrics, err := NewLocal(s, heuristics(1)).Run()

		require.NoError(t, err)
		require.Equal(t, 1, winner)
		require.Empty(t, moveMetrics)
		require.Equal(t, 0, gameMetric.TotalMoves)
	})

	t.Run("out of range index is an error", func(t *testing.T) {
		start := game.RandomState(rand.New(rand.NewSource(1)))
		seats := [2]player.Player{fixedPlayer{index: 500}, fixedPlayer{}}

		winner, _, _, err := NewLocal(start, seats).Run()

		require.Error(t, err)
		require.Equal(t, game.NoWinner, winner)
	})

	t.Run("player errors are wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		start := game.RandomState(rand.New(rand.NewSource(1)))
		seats := [2]player.Player{fixedPlayer{}, fixedPlayer{err: boom}}

		_, _, moveMetrics, err := NewLocal(start, seats).Run()

		require.ErrorIs(t, err, boom)
		require.Len(t, moveMetrics, 1, "Player 0 should have moved before player 1 failed")
	})

	t.Run("needs both seats", func(t *testing.T) {
		require.Panics(t, func() {
			NewLocal(game.State{}, [2]player.Player{fixedPlayer{}, nil})
		})
	})
}

func TestLocalImplementsEngine(t *testing.T) {
	var e Engine = NewLocal(game.State{}, [2]player.Player{fixedPlayer{}, fixedPlayer{}})
	require.NotNil(t, e)
	var _ metrics.Reporter = searcher.NewHeuristic(nil)
}
