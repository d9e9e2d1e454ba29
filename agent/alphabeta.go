package agent

import (
	"boardgame/experiments/metrics"
	"boardgame/game"
	"math"
	"time"
)

type alphaBetaAgent struct{}

// NewAlphaBetaAgent returns a perfect player that searches the whole game
// tree. Only usable on games as small as tic-tac-toe.
func NewAlphaBetaAgent() Agent {
	return alphaBetaAgent{}
}

func (alphaBetaAgent) FindAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	start := time.Now()
	actions := state.LegalActions()
	if state.IsDone() || len(actions) == 0 {
		return 0, metrics.SearchMetric{}, game.ErrNoLegalActions
	}

	best := actions[0]
	alpha := math.Inf(-1)
	evaluations := 0
	for _, action := range actions {
		score := -alphaBeta(state.Next(action), math.Inf(-1), -alpha, &evaluations)
		if score > alpha {
			best = action
			alpha = score
		}
	}
	return best, metrics.SearchMetric{Duration: time.Since(start), Evaluations: evaluations}, nil
}

// alphaBeta is the negamax value of state for the player to move
func alphaBeta(state game.State, alpha, beta float64, evaluations *int) float64 {
	*evaluations++
	if state.IsDone() {
		return game.Outcome(state)
	}

	for _, action := range state.LegalActions() {
		score := -alphaBeta(state.Next(action), -beta, -alpha, evaluations)
		if score > alpha {
			alpha = score
		}
		// Cut off once the opponent would avoid this line
		if alpha >= beta {
			return alpha
		}
	}
	return alpha
}
