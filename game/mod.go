package game

import (
	"errors"

	"golang.org/x/exp/rand"
)

// Action identifies a move within a game's fixed action space
type Action int

var ErrNoLegalActions = errors.New("non-terminal state has no legal actions")

// State should be immutable - operations on State always return a new copy.
// Every state is seen from the side of the player to move: Next returns the
// position from the opponent's side.
type State interface {
	IsDone() bool
	// IsLose reports whether the player to move has already lost
	IsLose() bool
	IsDraw() bool
	// LegalActions is never empty for a non-terminal state; games with no
	// placement available expose a pass action instead
	LegalActions() []Action
	Next(Action) State
	IsFirstPlayer() bool
}

// Observable states can be fed to a neural predictor
type Observable interface {
	State
	// ActionSpace is the size of the full action space, legal or not
	ActionSpace() int
	// Observe returns two planes (own pieces, enemy pieces) flattened row-major
	Observe() []float64
}

// Outcome is the value of a terminal state for the player to move
func Outcome(s State) float64 {
	if s.IsLose() {
		return -1
	}
	return 0
}

// FirstPlayerPoint scores an ended game: 1 first player won, 0 lost, 0.5 draw
func FirstPlayerPoint(ended State) float64 {
	if ended.IsLose() {
		if ended.IsFirstPlayer() {
			return 0
		}
		return 1
	}
	return 0.5
}

// FirstPlayerValue scores an ended game: 1 first player won, -1 lost, 0 draw
func FirstPlayerValue(ended State) float64 {
	if ended.IsLose() {
		if ended.IsFirstPlayer() {
			return -1
		}
		return 1
	}
	return 0
}

func RandomAction(s State, rng *rand.Rand) (Action, error) {
	actions := s.LegalActions()
	if len(actions) == 0 {
		return 0, ErrNoLegalActions
	}
	return actions[rng.Intn(len(actions))], nil
}

// Play applies a sequence of actions
func Play(s State, actions ...Action) State {
	for _, action := range actions {
		s = s.Next(action)
	}
	return s
}

