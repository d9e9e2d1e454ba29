package agent

import (
	"boardgame/experiments/metrics"
	"boardgame/game"
)

type Agent interface {
	// FindAction returns the action to play and performance metrics (if collected) from the search
	FindAction(state game.State) (game.Action, metrics.SearchMetric, error)
}
