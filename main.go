package main

import (
	"boardgame/agent"
	"boardgame/config"
	"boardgame/engine"
	"boardgame/experiments"
	"boardgame/experiments/metrics"
	"boardgame/game"
	"boardgame/game/connectfour"
	"boardgame/game/reversi"
	"boardgame/game/tictactoe"
	"boardgame/predictor"
	"boardgame/searcher"
	"boardgame/selfplay"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

var games = map[string]func() game.Observable{
	"tictactoe":   func() game.Observable { return tictactoe.New() },
	"connectfour": func() game.Observable { return connectfour.New() },
	"reversi":     func() game.Observable { return reversi.New() },
}

func main() {
	configPath := flag.String("config", "", "YAML config file")
	gameName := flag.String("game", "", "Game to play: tictactoe, connectfour or reversi")
	experiment := flag.String("experiment", "play", "What to run: play, baseline or selfplay")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.TimeOnly})

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}
	if *gameName != "" {
		cfg.Game = *gameName
	}
	zerolog.SetGlobalLevel(cfg.Level())
	if cfg.Seed == 0 {
		cfg.Seed = uint64(time.Now().UnixNano())
	}

	newState, ok := games[cfg.Game]
	if !ok {
		log.Fatal().Msgf("unknown game %q", cfg.Game)
	}

	p, closePredictor, err := newPredictor(cfg, newState())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create predictor")
	}
	defer closePredictor()

	switch *experiment {
	case "play":
		err = play(cfg, newState, p)
	case "baseline":
		err = baseline(cfg, newState, p)
	case "selfplay":
		err = train(cfg, newState)
	default:
		err = fmt.Errorf("unknown experiment %q", *experiment)
	}
	if err != nil {
		log.Fatal().Err(err).Msgf("%s failed", *experiment)
	}
}

// newPredictor returns a predictor safe for concurrent use and its cleanup
func newPredictor(cfg config.Config, state game.Observable) (searcher.Predictor, func(), error) {
	switch cfg.Predictor.Kind {
	case "deep":
		d, err := predictor.NewDeepFor(state, cfg.Predictor.Hidden)
		if err != nil {
			return nil, nil, err
		}
		s := predictor.NewSerial(d)
		return s, s.Close, nil
	case "onnx":
		rows, cols := boardShape(state)
		o, err := predictor.NewOnnx(predictor.OnnxConfig{
			ModelPath: cfg.Predictor.ModelPath,
			Rows:      rows,
			Cols:      cols,
			Actions:   state.ActionSpace(),
		})
		if err != nil {
			return nil, nil, err
		}
		return o, func() {
			if err := o.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to close onnx session")
			}
		}, nil
	default:
		return predictor.Uniform{}, func() {}, nil
	}
}

func boardShape(state game.Observable) (int, int) {
	switch state.(type) {
	case connectfour.State:
		return connectfour.Height, connectfour.Width
	case reversi.State:
		return reversi.Width, reversi.Width
	default:
		return tictactoe.Width, tictactoe.Width
	}
}

func newMCTS(cfg config.Config, rng *rand.Rand, p searcher.Predictor) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithSimulations(cfg.Search.Simulations),
		searcher.WithRand(rng),
		searcher.WithMetrics(),
	}
	if p != nil {
		return searcher.NewMCTS(append(options, searcher.WithPredictor(p, cfg.Search.CPUCT))...)
	}
	options = append(options,
		searcher.WithExpansionThreshold(cfg.Search.ExpansionThreshold),
		searcher.WithSelection(searcher.UCB1(cfg.Search.CUCB1)),
	)
	return searcher.NewMCTS(options...)
}

// play runs one game of the guided search against the plain search and
// prints the final board
func play(cfg config.Config, newState func() game.Observable, p searcher.Predictor) error {
	rng := rand.New(rand.NewSource(cfg.Seed))
	e := engine.LocalEngine(
		agent.NewEvaluationAgent(newMCTS(cfg, rng, p)),
		agent.NewEvaluationAgent(newMCTS(cfg, rng, nil)),
	)
	e.MaxTurns = cfg.Arena.MaxTurns

	final, gameMetric, _, err := e.Run(newState())
	if err != nil {
		return err
	}
	fmt.Println(final)
	fmt.Printf("first player point: %.1f in %d moves (%s)\n", gameMetric.FirstPlayerPoint, gameMetric.TotalMoves, gameMetric.Duration)
	return nil
}

func baseline(cfg config.Config, newState func() game.Observable, p searcher.Predictor) error {
	arena := experiments.Arena{
		Games:    cfg.Arena.Games,
		NewState: func() game.State { return newState() },
		MaxTurns: cfg.Arena.MaxTurns,
	}
	candidate := metrics.AgentConfig{ID: 1, Kind: "pvmcts", Simulations: cfg.Search.Simulations, Temperature: cfg.Search.Temperature, C: cfg.Search.CPUCT}
	matchUps := experiments.BaselineMatchUps(candidate, cfg.Search.Simulations, cfg.Game == "tictactoe")

	results, err := experiments.RunExperiment(cfg.Game+"_baseline", cfg.Arena.OutputDir, arena, matchUps, p, cfg.Seed)
	if err != nil {
		return err
	}
	for i, result := range results {
		fmt.Printf("%s vs %s: %.3f\n", matchUps[i][0].Kind, matchUps[i][1].Kind, result.Average)
	}
	return nil
}

// train generates self-play records and fits an in-process network to them
func train(cfg config.Config, newState func() game.Observable) error {
	d, err := predictor.NewDeepFor(newState(), cfg.Predictor.Hidden)
	if err != nil {
		return err
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	records, err := selfplay.Generate(cfg.SelfPlay.Games, newState, newMCTS(cfg, rng, d), cfg.SelfPlay.Temperature, rng)
	if err != nil {
		return err
	}
	log.Info().Msgf("training on %d records for %d epochs...", len(records), cfg.SelfPlay.Epochs)
	return selfplay.Train(d, records, cfg.SelfPlay.Epochs, cfg.SelfPlay.LearningRate)
}
