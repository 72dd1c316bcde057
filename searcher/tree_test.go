package searcher

import (
	"testing"

	"github.com/stretchr/testify/require"

	"santorini/game"
)

func TestTreeSearch(t *testing.T) {
	t.Run("panics without a budget", func(t *testing.T) {
		require.Panics(t, func() {
			NewTreeSearch(newRNG(1))
		}, "Should panic when neither episodes nor duration is set")
	})

	t.Run("no legal plays", func(t *testing.T) {
		_, err := NewTreeSearch(newRNG(1), WithEpisodes(10)).SelectMove(cornerState(), nil)
		require.ErrorIs(t, err, ErrNoLegalPlays)
	})

	t.Run("single play returns without simulating", func(t *testing.T) {
		s := forcedState()
		ts := NewTreeSearch(newRNG(1), WithEpisodes(100), WithMetrics())

		i, err := ts.SelectMove(s, s.LegalPlays())

		require.NoError(t, err)
		require.Equal(t, 0, i)
		require.Equal(t, 0, ts.LastMetric().Episodes, "Search loop should not run")
		require.Equal(t, 0, ts.LastMetric().Size, "No tree should be built")
	})

	t.Run("takes an immediate win", func(t *testing.T) {
		s := winningState()
		plays := s.LegalPlays()
		ts := NewTreeSearch(newRNG(1), WithEpisodes(100), WithMetrics())

		i, err := ts.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, pos(2, 3), plays[i].End)
		require.Equal(t, 0, ts.LastMetric().Episodes)
	})

	t.Run("only considers blocking a single threat", func(t *testing.T) {
		s := threatState(pos(3, 3))
		plays := s.LegalPlays()
		ts := NewTreeSearch(newRNG(2), WithEpisodes(60), WithMetrics())

		i, err := ts.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, pos(3, 3), plays[i].Build)
		require.Equal(t, 60, ts.LastMetric().Episodes)
	})

	t.Run("lost position falls back to the heuristic", func(t *testing.T) {
		s := threatState(pos(3, 3), pos(4, 3))
		plays := s.LegalPlays()
		ts := NewTreeSearch(newRNG(2), WithEpisodes(60), WithMetrics())

		i, err := ts.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, BlockingPlay(s, plays, BlockFirstStopper), i)
		require.Equal(t, 0, ts.LastMetric().Episodes, "A decided root should not be searched")
	})

	t.Run("avoids blunders", func(t *testing.T) {
		s := blunderState()
		plays := s.LegalPlays()

		i, err := NewTreeSearch(newRNG(3), WithEpisodes(100)).SelectMove(s, plays)

		require.NoError(t, err)
		require.False(t, IsBlunder(s, plays[i]))
	})

	t.Run("search grows one node per episode", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()
		ts := NewTreeSearch(newRNG(4), WithEpisodes(30), WithMetrics())

		i, err := ts.SelectMove(s, plays)

		require.NoError(t, err)
		require.True(t, i >= 0 && i < len(plays))
		m := ts.LastMetric()
		require.Equal(t, "tree", m.Searcher)
		require.Equal(t, 30, m.Episodes)
		require.Equal(t, 31, m.Size, "Root plus one child per episode")
	})

	t.Run("same seed same play", func(t *testing.T) {
		s := game.RandomState(newRNG(8))
		plays := s.LegalPlays()

		i1, err := NewTreeSearch(newRNG(5), WithEpisodes(80)).SelectMove(s, plays)
		require.NoError(t, err)
		i2, err := NewTreeSearch(newRNG(5), WithEpisodes(80)).SelectMove(s, plays)
		require.NoError(t, err)

		require.Equal(t, i1, i2)
	})
}
