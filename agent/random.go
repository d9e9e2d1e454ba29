package agent

import (
	"boardgame/experiments/metrics"
	"boardgame/game"

	"golang.org/x/exp/rand"
)

type randomAgent struct {
	rng *rand.Rand
}

func NewRandomAgent(rng *rand.Rand) Agent {
	return randomAgent{rng: rng}
}

func (a randomAgent) FindAction(state game.State) (game.Action, metrics.SearchMetric, error) {
	action, err := game.RandomAction(state, a.rng)
	return action, metrics.SearchMetric{}, err
}
