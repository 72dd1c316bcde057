package experiments

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"

	"santorini/engine"
	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/player"
)

type Result struct {
	Games     []metrics.GameRecord
	Moves     []metrics.MoveRecord
	Summaries []Summary
}

type match struct {
	id     int
	seats  [2]metrics.AgentConfig
	start  game.State
	winner int
	metric metrics.GameMetric
	moves  []metrics.MoveMetric
}

// Run plays every game of the experiment. Games run concurrently, each with its own players and
// random source seeded from the experiment seed and the game id, so results do not depend on
// scheduling for episode-bounded agents.
func Run(ctx context.Context, config Config) (Result, error) {
	starts, err := loadPositions(config.Positions)
	if err != nil {
		return Result{}, err
	}

	log.Info().Msgf("starting %s experiment with seed %d...", config.Name, config.Seed)

	games := make([]*match, 0, len(config.MatchUps)*config.Games)
	for _, matchUp := range config.MatchUps {
		a, b := config.agent(matchUp[0]), config.agent(matchUp[1])
		for i := 0; i < config.Games; i++ {
			g := &match{id: len(games) + 1, seats: [2]metrics.AgentConfig{a, b}}
			if i%2 == 1 {
				g.seats = [2]metrics.AgentConfig{b, a}
			}
			games = append(games, g)
		}
	}

	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(config.Concurrency)
	for _, g := range games {
		g := g
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return playGame(g, config.Seed, starts)
		})
	}
	if err := group.Wait(); err != nil {
		return Result{}, err
	}

	var result Result
	for _, g := range games {
		result.Games = append(result.Games, metrics.GameRecord{
			ID:         g.id,
			Agent0:     g.seats[0].ID,
			Agent1:     g.seats[1].ID,
			GameMetric: g.metric,
		})
		for _, mm := range g.moves {
			result.Moves = append(result.Moves, metrics.MoveRecord{Game: g.id, MoveMetric: mm})
		}
	}
	result.Summaries = summarize(config, result)
	for _, s := range result.Summaries {
		log.Info().Msgf("agent %d vs agent %d: %d-%d, %.1f±%.1f moves per game, %.2fms per decision",
			s.Agent1, s.Agent2, s.Wins1, s.Wins2, s.MeanMoves, s.StdMoves, s.MeanDecisionMillis)
	}
	log.Info().Msgf("completed %s experiment", config.Name)
	return result, nil
}

func playGame(g *match, seed uint64, starts []game.State) error {
	rng := rand.New(rand.NewSource(seed + uint64(g.id)))
	if len(starts) > 0 {
		g.start = starts[(g.id-1)%len(starts)]
	} else {
		g.start = game.RandomState(rng)
	}

	var seats [2]player.Player
	for i, config := range g.seats {
		p, err := player.New(config, rng)
		if err != nil {
			return err
		}
		seats[i] = p
	}

	log.Info().Msgf("starting game %d between agent0=%d and agent1=%d...", g.id, g.seats[0].ID, g.seats[1].ID)
	winner, gameMetric, moveMetrics, err := engine.NewLocal(g.start, seats).Run()
	if err != nil {
		return fmt.Errorf("failed to play game %d: %w", g.id, err)
	}
	g.winner, g.metric, g.moves = winner, gameMetric, moveMetrics
	log.Info().Msgf("completed game %d with winner: agent %d", g.id, g.seats[winner].ID)
	return nil
}

func loadPositions(path string) ([]game.State, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open positions file: %w", err)
	}
	defer f.Close()

	states, err := game.ReadPositions(f)
	if err != nil {
		return nil, err
	}
	if len(states) == 0 {
		return nil, fmt.Errorf("positions file %s has no valid positions", path)
	}
	return states, nil
}

// Save writes the agent configs and the game and move records under config.Output
func Save(config Config, result Result) (string, error) {
	writer, err := metrics.NewWriter(config.Output, config.Name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	if err = writer.WriteAgentConfigs(config.Agents); err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	if err = writer.WriteGameRecords(result.Games); err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	if err = writer.WriteMoveRecords(result.Moves); err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")
	return writer.Dir(), nil
}
