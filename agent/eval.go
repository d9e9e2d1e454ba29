package agent

import (
	"boardgame/experiments/metrics"
	"boardgame/game"
	"boardgame/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	return a.mcts.Action(state, 0)
}
