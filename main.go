package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"os/signal"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"lukechampine.com/frand"

	"santorini/engine"
	"santorini/experiments"
	"santorini/experiments/metrics"
	"santorini/game"
	"santorini/player"
)

func main() {
	mode := flag.String("mode", "play", "play, experiment or positions")
	p0 := flag.String("p0", "human", "Agent kind of player a: human, heuristic, flat, tree or rollout")
	p1 := flag.String("p1", "rollout", "Agent kind of player b")
	duration := flag.Duration("duration", 0, "Search time per move")
	episodes := flag.Int("episodes", 0, "Search episodes per move (trials per candidate for rollout)")
	block := flag.String("block", "", "Block strategy: first-stopper or unambiguous")
	seed := flag.Uint64("seed", 0, "Random seed, a fresh one is drawn when 0")
	config := flag.String("config", "", "Experiment config file")
	out := flag.String("out", "", "Output directory for experiments, output file for positions")
	level := flag.String("log-level", "info", "Log level")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})
	lvl, err := zerolog.ParseLevel(*level)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid log level")
	}
	zerolog.SetGlobalLevel(lvl)

	if *seed == 0 {
		*seed = frand.Uint64n(math.MaxUint64) + 1
	}

	switch *mode {
	case "play":
		seats := [2]metrics.AgentConfig{
			{ID: 0, Kind: *p0, Duration: *duration, Episodes: *episodes, Block: *block},
			{ID: 1, Kind: *p1, Duration: *duration, Episodes: *episodes, Block: *block},
		}
		err = play(seats, *seed)
	case "experiment":
		err = experiment(*config, *out, *seed)
	case "positions":
		err = positions(*out)
	default:
		err = fmt.Errorf("unknown mode %q", *mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *mode)
	}
}

func play(configs [2]metrics.AgentConfig, seed uint64) error {
	log.Info().Uint64("seed", seed).Msg("starting game")
	rng := rand.New(rand.NewSource(seed))

	var console []player.Option
	if configs[0].Kind == "human" || configs[1].Kind == "human" {
		rl, err := readline.New("> ")
		if err != nil {
			return fmt.Errorf("failed to open console: %w", err)
		}
		defer rl.Close()
		console = append(console, player.WithConsole(rl, os.Stdout))
	}

	var seats [2]player.Player
	for i, config := range configs {
		p, err := player.New(config, rng, console...)
		if err != nil {
			return err
		}
		seats[i] = p
	}

	start := game.RandomState(rng)
	fmt.Print(start)
	e := engine.NewLocal(start, seats, engine.WithObserver(func(step int, play game.Play, state game.State) {
		fmt.Printf("\nmove %d: %c%d to (%d,%d), build (%d,%d)\n",
			step, 'a'+game.Opponent(state.Player), play.Pawn, play.End.X, play.End.Y, play.Build.X, play.Build.Y)
	}))
	winner, gameMetric, _, err := e.Run()
	if err != nil {
		return err
	}
	fmt.Printf("\n%v\nplayer %c wins after %d moves\n", e.State(), 'a'+winner, gameMetric.TotalMoves)
	return nil
}

func experiment(path, out string, seed uint64) error {
	if path == "" {
		return fmt.Errorf("experiment mode needs -config")
	}
	config, err := experiments.LoadConfig(path)
	if err != nil {
		return err
	}
	if out != "" {
		config.Output = out
	}
	if config.Seed == 0 {
		config.Seed = seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	result, err := experiments.Run(ctx, config)
	if err != nil {
		return err
	}
	if config.Output == "" {
		return nil
	}
	dir, err := experiments.Save(config, result)
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("saved experiment")
	return nil
}

func positions(out string) error {
	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("failed to create positions file: %w", err)
		}
		defer f.Close()
		w = f
	}
	states := game.CanonicalStartingPositions()
	if err := game.WritePositions(w, states); err != nil {
		return err
	}
	log.Info().Int("positions", len(states)).Msg("wrote starting positions")
	return nil
}
