package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"santorini/meta"
)

func TestRollout(t *testing.T) {
	t.Run("defaults to a fixed number of trials", func(t *testing.T) {
		r := NewRollout(newRNG(1))
		require.Equal(t, meta.ROLLOUT_TRIALS, r.settings.episodes)
	})

	t.Run("no legal plays", func(t *testing.T) {
		_, err := NewRollout(newRNG(1)).SelectMove(cornerState(), nil)
		require.ErrorIs(t, err, ErrNoLegalPlays)
	})

	t.Run("obvious play skips the rollouts", func(t *testing.T) {
		s := winningState()
		plays := s.LegalPlays()
		r := NewRollout(newRNG(1), WithMetrics())

		i, err := r.SelectMove(s, plays)

		require.NoError(t, err)
		require.Equal(t, pos(2, 3), plays[i].End)
		require.Equal(t, 0, r.LastMetric().Episodes)
	})

	t.Run("fixed trials per safe candidate", func(t *testing.T) {
		s := blunderState()
		plays := s.LegalPlays()
		safe := len(plays) - len(Blunders(s, plays))
		r := NewRollout(newRNG(2), WithEpisodes(2), WithMetrics())

		i, err := r.SelectMove(s, plays)

		require.NoError(t, err)
		require.False(t, IsBlunder(s, plays[i]), "Blunders should never be candidates")
		require.Equal(t, 2*safe, r.LastMetric().Episodes)
		require.Equal(t, "rollout", r.LastMetric().Searcher)
	})

	t.Run("time box still tries every candidate", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()
		r := NewRollout(newRNG(3), WithDuration(time.Nanosecond), WithMetrics())

		i, err := r.SelectMove(s, plays)

		require.NoError(t, err)
		require.True(t, i >= 0 && i < len(plays))
		require.GreaterOrEqual(t, r.LastMetric().Episodes, len(plays))
	})

	t.Run("same seed same play", func(t *testing.T) {
		s := cornerState()
		plays := s.LegalPlays()

		i1, err := NewRollout(newRNG(4), WithEpisodes(3)).SelectMove(s, plays)
		require.NoError(t, err)
		i2, err := NewRollout(newRNG(4), WithEpisodes(3)).SelectMove(s, plays)
		require.NoError(t, err)

		require.Equal(t, i1, i2)
	})
}
