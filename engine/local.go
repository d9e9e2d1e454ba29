package engine

import (
	"boardgame/agent"
	"boardgame/experiments/metrics"
	"boardgame/game"
	"boardgame/meta"
	"boardgame/utils"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// Local plays both sides in process. Agents[0] moves when IsFirstPlayer()
// is true.
type Local struct {
	Agents   [2]agent.Agent
	MaxTurns int
}

func LocalEngine(first, second agent.Agent) *Local {
	if first == nil || second == nil {
		panic("need two agents")
	}
	return &Local{Agents: [2]agent.Agent{first, second}, MaxTurns: meta.MAX_TURNS}
}

// Run executes the entire game loop until the game is done.
func (e *Local) Run(state game.State) (game.State, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{StartTime: time.Now()}
	var moveMetrics []metrics.MoveMetric

	maxTurns := e.MaxTurns
	if maxTurns <= 0 {
		maxTurns = meta.MAX_TURNS
	}

	turn := 1
	for !state.IsDone() {
		if turn > maxTurns {
			return state, finish(gameMetric, turn-1, state), moveMetrics, fmt.Errorf("%w after %d turns", ErrTurnLimit, maxTurns)
		}

		player := 1
		if !state.IsFirstPlayer() {
			player = 2
		}
		action, searchMetric, err := e.Agents[player-1].FindAction(state)
		if err != nil {
			return state, finish(gameMetric, turn-1, state), moveMetrics, fmt.Errorf("player %d on turn %d: %w", player, turn, err)
		}
		if utils.FindIndex(state.LegalActions(), action) < 0 {
			return state, finish(gameMetric, turn-1, state), moveMetrics, fmt.Errorf("%w %d by player %d on turn %d", ErrIllegalAction, action, player, turn)
		}
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Player:       player,
			SearchMetric: searchMetric,
		})
		log.Debug().Msgf("turn %d: player %d plays %d", turn, player, action)

		state = state.Next(action)
		turn++
	}

	gameMetric = finish(gameMetric, turn-1, state)
	log.Info().Msgf("game over after %d turns, first player scored %.1f", gameMetric.TotalMoves, gameMetric.FirstPlayerPoint)
	return state, gameMetric, moveMetrics, nil
}

func finish(gameMetric metrics.GameMetric, moves int, state game.State) metrics.GameMetric {
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	if state.IsDone() {
		gameMetric.FirstPlayerPoint = game.FirstPlayerPoint(state)
	}
	return gameMetric
}
