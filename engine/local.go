package engine

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/meta"
	"santorini/player"
)

// Observer sees every play as it is applied, with the state it produced
type Observer func(step int, play game.Play, state game.State)

type Option func(e *Local)

func WithObserver(observer Observer) Option {
	return func(e *Local) {
		e.observer = observer
	}
}

// Local drives a game between two in-process seats
type Local struct {
	state    game.State
	players  [2]player.Player
	observer Observer
}

var _ Engine = (*Local)(nil)

func NewLocal(state game.State, players [2]player.Player, options ...Option) *Local {
	if players[0] == nil || players[1] == nil {
		panic("need a player for each seat")
	}
	e := &Local{state: state, players: players}
	for _, option := range options {
		option(e)
	}
	return e
}

// State is the current position, the final one once Run has returned
func (e *Local) State() game.State {
	return e.state
}

// Run alternates the seats until one player steps onto WinHeight or the player to move has no
// legal plays, in which case the other player wins.
func (e *Local) Run() (int, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		StartingPlayer: e.state.Player,
		Winner:         game.NoWinner,
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	finish := func(winner int, err error) (int, metrics.GameMetric, []metrics.MoveMetric, error) {
		gameMetric.Winner = winner
		gameMetric.EndTime = time.Now()
		gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
		gameMetric.TotalMoves = len(moveMetrics)
		return winner, gameMetric, moveMetrics, err
	}

	log.Info().Msgf("player %d is starting from %s", e.state.Player, e.state.Hash())

	for step := 1; ; step++ {
		if step > meta.MAX_TURNS {
			return finish(game.NoWinner, ErrTooManyMoves)
		}

		mover := e.state.Player
		plays := e.state.LegalPlays()
		if len(plays) == 0 {
			winner := game.Opponent(mover)
			log.Info().Msgf("player %d has no legal plays, player %d wins after %d moves", mover, winner, step-1)
			return finish(winner, nil)
		}

		i, err := e.players[mover].SelectMove(e.state, plays)
		if err != nil {
			return finish(game.NoWinner, fmt.Errorf("player %d failed to select a play: %w", mover, err))
		}
		if i < 0 || i >= len(plays) {
			return finish(game.NoWinner, fmt.Errorf("player %d selected play %d out of %d legal plays", mover, i, len(plays)))
		}

		moveMetric := metrics.MoveMetric{Step: step, Player: mover}
		if reporter, ok := e.players[mover].(metrics.Reporter); ok {
			moveMetric.SearchMetric = reporter.LastMetric()
		}
		moveMetrics = append(moveMetrics, moveMetric)

		play := plays[i]
		won := e.state.Height(play.End) == game.WinHeight
		e.state = e.state.Play(play)
		log.Debug().
			Int("step", step).
			Int("player", mover).
			Int("pawn", play.Pawn).
			Str("state", e.state.Hash().String()).
			Msg("applied play")
		if e.observer != nil {
			e.observer(step, play, e.state)
		}

		if won {
			log.Info().Msgf("player %d wins after %d moves", mover, step)
			return finish(mover, nil)
		}
	}
}
