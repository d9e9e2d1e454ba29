package engine

import (
	"boardgame/experiments/metrics"
	"boardgame/game"
	"errors"
)

var (
	ErrTurnLimit     = errors.New("turn limit reached")
	ErrIllegalAction = errors.New("illegal action")
)

type Engine interface {
	// Run plays a game from state till it is done or the turn limit is reached
	Run(state game.State) (game.State, metrics.GameMetric, []metrics.MoveMetric, error)
}
