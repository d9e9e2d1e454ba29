package searcher

import (
	"boardgame/game"
	"boardgame/meta"
	"errors"
)

// Hyperparameters for MCTS

const DefaultSimulations = meta.SIMULATIONS

const C_UCB1 = 2.0 // Exploration constant of UCB1
const C_PUCT = 1.0 // Exploration constant of PUCT

// Rollout leaves are expanded after this many playouts
const EXPANSION_THRESHOLD = 10

var ErrGameOver = errors.New("cannot search a terminal state")

// Evaluator produces leaf values. Values are from the perspective of the
// player to move at the evaluated state.
type Evaluator interface {
	// Evaluate returns the leaf value and the priors to expand with (nil for
	// no priors), aligned with state.LegalActions()
	Evaluate(state game.State) (priors []float64, value float64, err error)
	// ExpandAfter is the number of leaf evaluations after which a leaf is expanded
	ExpandAfter() int
}

// Predictor is an external policy/value model. Priors are either aligned with
// state.LegalActions() or indexed by action over the game's full action space.
type Predictor interface {
	Predict(state game.State) (priors []float64, value float64, err error)
}
