package agent

import (
	"boardgame/experiments/metrics"
	"boardgame/game"
	"boardgame/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. Actions
// are sampled from the visit counts sharpened by 1/temperature.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, rng *rand.Rand) Agent {
	if temperature <= 0 {
		temperature = 1
	}
	return trainingAgent{mcts: mcts, temperature: temperature, rng: rng}
}

func (a trainingAgent) FindAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	scores, metric, err := a.mcts.Scores(state, a.temperature)
	if err != nil {
		return 0, metric, err
	}
	return state.LegalActions()[searcher.Sample(scores, a.rng)], metric, nil
}
