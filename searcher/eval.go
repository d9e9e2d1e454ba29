package searcher

import (
	"boardgame/game"
	"boardgame/utils"
	"fmt"
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/floats"
)

type playout struct {
	rng       *rand.Rand
	threshold int
}

// NewPlayout evaluates leaves by random self-play to a terminal state and
// expands them after threshold playouts
func NewPlayout(rng *rand.Rand, threshold int) Evaluator {
	if threshold <= 0 {
		threshold = EXPANSION_THRESHOLD
	}
	return &playout{rng: rng, threshold: threshold}
}

func (p *playout) Evaluate(state game.State) ([]float64, float64, error) {
	value, err := Rollout(state, p.rng)
	return nil, value, err
}

func (p *playout) ExpandAfter() int {
	return p.threshold
}

// Rollout plays uniformly random actions until the game ends and returns the
// outcome for the player to move at state, negated once per ply
func Rollout(state game.State, rng *rand.Rand) (float64, error) {
	sign := 1.0
	for !state.IsDone() {
		action, err := game.RandomAction(state, rng)
		if err != nil {
			return 0, err
		}
		state = state.Next(action)
		sign = -sign
	}
	return sign * game.Outcome(state), nil
}

type guided struct {
	predictor Predictor
}

// NewGuided evaluates leaves with one predictor call and expands them
// immediately with the predicted priors
func NewGuided(predictor Predictor) Evaluator {
	return &guided{predictor: predictor}
}

func (g *guided) Evaluate(state game.State) ([]float64, float64, error) {
	raw, value, err := g.predictor.Predict(state)
	if err != nil {
		return nil, 0, fmt.Errorf("predictor failed: %w", err)
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, 0, game.ErrNoLegalActions
	}
	return legalPriors(actions, raw), clamp(value), nil
}

func (g *guided) ExpandAfter() int {
	return 1
}

// legalPriors restricts raw to the legal actions and renormalizes it. raw may
// be aligned with actions or cover the full action space; anything that cannot
// form a distribution falls back to uniform.
func legalPriors(actions []game.Action, raw []float64) []float64 {
	priors := make([]float64, len(actions))
	switch {
	case len(raw) == len(actions):
		copy(priors, raw)
	case len(raw) > int(utils.Max(actions)):
		for i, action := range actions {
			priors[i] = raw[action]
		}
	default:
		return uniform(len(actions))
	}

	for _, p := range priors {
		if p < 0 || math.IsNaN(p) || math.IsInf(p, 0) {
			return uniform(len(actions))
		}
	}
	sum := floats.Sum(priors)
	if sum == 0 {
		return uniform(len(actions))
	}
	floats.Scale(1/sum, priors)
	return priors
}

func uniform(n int) []float64 {
	priors := make([]float64, n)
	for i := range priors {
		priors[i] = 1 / float64(n)
	}
	return priors
}

func clamp(value float64) float64 {
	if math.IsNaN(value) {
		return 0
	}
	return math.Max(-1, math.Min(1, value))
}
