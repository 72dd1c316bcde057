package searcher

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizer(t *testing.T) {
	t.Run("panics with zero parent visits", func(t *testing.T) {
		require.Panics(t, func() {
			normalizer(CSquared, 0)
		}, "Should panic when N is 0")
	})

	t.Run("scales ln(N) by the exploration constant", func(t *testing.T) {
		require.InDelta(t, 2.0*math.Log(100), normalizer(2.0, 100), 1e-9)
	})
}

func TestUCB1(t *testing.T) {
	c2LnN := normalizer(CSquared, 100)

	t.Run("computing UCB1 value", func(t *testing.T) {
		got := ucb1(5.0, 10, c2LnN)

		expected := 5.0/10 + math.Sqrt(2.0*math.Log(100)/10.0)
		require.InDelta(t, expected, got, 0.0001,
			"Should compute w/n + sqrt(c^2*ln(N)/n)")
	})

	t.Run("unvisited child takes priority", func(t *testing.T) {
		require.True(t, math.IsInf(ucb1(0, 0, c2LnN), 1), "Unvisited children should score +Inf")
	})

	t.Run("exploration term increases with parent visits", func(t *testing.T) {
		score1 := ucb1(5.0, 10, normalizer(CSquared, 100))
		score2 := ucb1(5.0, 10, normalizer(CSquared, 1000))

		require.Greater(t, score2, score1,
			"More parent visits should increase exploration term")
	})

	t.Run("exploration term decreases with child visits", func(t *testing.T) {
		score1 := ucb1(5.0, 10, c2LnN)
		score2 := ucb1(5.0, 20, c2LnN)

		require.Greater(t, score1, score2,
			"More child visits should decrease exploration term")
	})

	t.Run("exploitation term increases with rewards", func(t *testing.T) {
		score1 := ucb1(5.0, 10, c2LnN)
		score2 := ucb1(10.0, 10, c2LnN)

		require.Greater(t, score2, score1,
			"More rewards should increase exploitation term")
	})

	t.Run("no exploration without an exploration constant", func(t *testing.T) {
		require.InDelta(t, 0.5, ucb1(5, 10, normalizer(0, 100)), 1e-9)
	})
}

func TestReward(t *testing.T) {
	require.Equal(t, WIN, reward(1, 1), "Winner should be rewarded")
	require.Equal(t, LOSS, reward(0, 1), "Loser should not be rewarded")
}
