package predictor

import (
	"boardgame/game"
)

// Uniform spreads the prior evenly over the legal actions and reports a fixed value
type Uniform struct {
	Value float64
}

func (u Uniform) Predict(state game.State) ([]float64, float64, error) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, 0, game.ErrNoLegalActions
	}
	priors := make([]float64, len(actions))
	for i := range priors {
		priors[i] = 1 / float64(len(actions))
	}
	return priors, u.Value, nil
}
