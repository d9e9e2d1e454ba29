package experiments

import (
	"boardgame/agent"
	"boardgame/engine"
	"boardgame/experiments/metrics"
	"boardgame/game"
	"boardgame/searcher"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

const NumGames = 10 // Per match up

// Arena plays one agent against another, alternating who moves first
type Arena struct {
	Games    int
	NewState func() game.State
	MaxTurns int
}

type Game struct {
	FirstIsA bool
	Point    float64 // Point of agent A: 1 win, 0.5 draw, 0 loss
	metrics.GameMetric
	Moves []metrics.MoveMetric
}

type Result struct {
	Games   []Game
	Average float64 // Average point of agent A
}

// Evaluate plays Games games between a and b. a moves first in even games.
func (ar Arena) Evaluate(a, b agent.Agent) (Result, error) {
	games := ar.Games
	if games <= 0 {
		games = NumGames
	}

	result := Result{Games: make([]Game, 0, games)}
	total := 0.0
	for i := 0; i < games; i++ {
		firstIsA := i%2 == 0
		e := engine.LocalEngine(a, b)
		if !firstIsA {
			e = engine.LocalEngine(b, a)
		}
		e.MaxTurns = ar.MaxTurns

		_, gameMetric, moveMetrics, err := e.Run(ar.NewState())
		if err != nil {
			return result, fmt.Errorf("game %d of %d: %w", i+1, games, err)
		}

		point := gameMetric.FirstPlayerPoint
		if !firstIsA {
			point = 1 - point
		}
		total += point
		result.Games = append(result.Games, Game{FirstIsA: firstIsA, Point: point, GameMetric: gameMetric, Moves: moveMetrics})
		log.Debug().Msgf("game %d of %d: agent A scored %.1f", i+1, games, point)
	}
	result.Average = total / float64(games)
	return result, nil
}

// NewAgent builds the agent a config describes. pvmcts agents search with
// predictor.
func NewAgent(config metrics.AgentConfig, predictor searcher.Predictor, rng *rand.Rand) (agent.Agent, error) {
	switch config.Kind {
	case "random":
		return agent.NewRandomAgent(rng), nil
	case "alphabeta":
		return agent.NewAlphaBetaAgent(), nil
	case "mcts", "pvmcts":
	default:
		return nil, fmt.Errorf("unknown agent kind %q", config.Kind)
	}

	options := []searcher.Option{searcher.WithRand(rng), searcher.WithMetrics()}
	if config.Simulations > 0 {
		options = append(options, searcher.WithSimulations(config.Simulations))
	}
	if config.Kind == "pvmcts" {
		if predictor == nil {
			return nil, fmt.Errorf("agent %d: pvmcts needs a predictor", config.ID)
		}
		c := config.C
		if c <= 0 {
			c = searcher.C_PUCT
		}
		options = append(options, searcher.WithPredictor(predictor, c))
	} else if config.C > 0 {
		options = append(options, searcher.WithSelection(searcher.UCB1(config.C)))
	}

	mcts := searcher.NewMCTS(options...)
	if config.Temperature > 0 {
		return agent.NewTrainingAgent(mcts, config.Temperature, rng), nil
	}
	return agent.NewEvaluationAgent(mcts), nil
}

// RunExperiment evaluates every match up in the arena and stores the agent
// configs, game records and move records as CSV under root/name
func RunExperiment(name, root string, arena Arena, matchUps [][2]metrics.AgentConfig, predictor searcher.Predictor, seed uint64) ([]Result, error) {
	count := 0
	configs := []metrics.AgentConfig{}
	seen := map[int]bool{}
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}
	results := make([]Result, 0, len(matchUps))

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		config1, config2 := matchUp[0], matchUp[1]
		for _, config := range matchUp {
			if !seen[config.ID] {
				seen[config.ID] = true
				configs = append(configs, config)
			}
		}

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(matchUps), config1, config2)

		rng := rand.New(rand.NewSource(seed + uint64(mi)))
		a, err := NewAgent(config1, predictor, rng)
		if err != nil {
			return nil, err
		}
		b, err := NewAgent(config2, predictor, rng)
		if err != nil {
			return nil, err
		}

		result, err := arena.Evaluate(a, b)
		if err != nil {
			return nil, fmt.Errorf("matchup %d: %w", mi+1, err)
		}
		results = append(results, result)

		for _, g := range result.Games {
			count++
			record := metrics.GameRecord{ID: count, Agent1: config1.ID, Agent2: config2.ID, GameMetric: g.GameMetric}
			if !g.FirstIsA {
				record.Agent1, record.Agent2 = config2.ID, config1.ID
			}
			gameRecords = append(gameRecords, record)
			for _, mm := range g.Moves {
				moveRecords = append(moveRecords, metrics.MoveRecord{Game: count, MoveMetric: mm})
			}
		}

		log.Info().Msgf("completed matchup %d of %d: agent %d averaged %.3f against agent %d", mi+1, len(matchUps), config1.ID, result.Average, config2.ID)
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return nil, fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err = writer.WriteAgentConfigs(configs); err != nil {
		return nil, fmt.Errorf("failed to store agent configs: %w", err)
	}
	if err = writer.WriteGameRecords(gameRecords); err != nil {
		return nil, fmt.Errorf("failed to write game records: %w", err)
	}
	if err = writer.WriteMoveRecords(moveRecords); err != nil {
		return nil, fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msgf("stored results in %s", writer.Dir())

	return results, nil
}

// BaselineMatchUps pairs candidate against the baseline players: random,
// plain MCTS and, when the game is small enough, alpha-beta
func BaselineMatchUps(candidate metrics.AgentConfig, simulations int, withAlphaBeta bool) [][2]metrics.AgentConfig {
	matchUps := [][2]metrics.AgentConfig{
		{candidate, {ID: 100, Kind: "random"}},
		{candidate, {ID: 101, Kind: "mcts", Simulations: simulations}},
	}
	if withAlphaBeta {
		matchUps = append(matchUps, [2]metrics.AgentConfig{candidate, {ID: 102, Kind: "alphabeta"}})
	}
	return matchUps
}
