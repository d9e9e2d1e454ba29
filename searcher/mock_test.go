package searcher

import (
	"boardgame/game"
	"errors"
)

// endlessState never ends and always offers the same number of actions
type endlessState struct {
	branching int
	depth     int
}

func (s endlessState) IsDone() bool        { return false }
func (s endlessState) IsLose() bool        { return false }
func (s endlessState) IsDraw() bool        { return false }
func (s endlessState) IsFirstPlayer() bool { return s.depth%2 == 0 }

func (s endlessState) LegalActions() []game.Action {
	actions := make([]game.Action, s.branching)
	for i := range actions {
		actions[i] = game.Action(i)
	}
	return actions
}

func (s endlessState) Next(game.Action) game.State {
	return endlessState{branching: s.branching, depth: s.depth + 1}
}

// stuckState breaks the contract: not over, yet nothing to play
type stuckState struct {
	endlessState
}

func (s stuckState) LegalActions() []game.Action { return nil }

type mockPredictor struct {
	priors []float64
	value  float64
	err    error
	calls  int
}

func (m *mockPredictor) Predict(state game.State) ([]float64, float64, error) {
	m.calls++
	if m.err != nil {
		return nil, 0, m.err
	}
	if m.priors != nil {
		return m.priors, m.value, nil
	}
	return uniform(len(state.LegalActions())), m.value, nil
}

var errPredict = errors.New("predictor unavailable")
