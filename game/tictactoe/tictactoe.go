package tictactoe

import "boardgame/game"

const (
	Width = 3
	Cells = Width * Width
)

// State holds the mover's stones and the opponent's stones
type State struct {
	pieces [Cells]bool
	enemy  [Cells]bool
}

func New() State {
	return State{}
}

// IsLose checks whether the opponent has completed three in a row
func (s State) IsLose() bool {
	cells := s.enemy[:]
	if game.Line(cells, Width, Width, 0, 0, 1, 1, Width) || game.Line(cells, Width, Width, 0, 2, 1, -1, Width) {
		return true
	}
	for i := 0; i < Width; i++ {
		if game.Line(cells, Width, Width, 0, i, 1, 0, Width) || game.Line(cells, Width, Width, i, 0, 0, 1, Width) {
			return true
		}
	}
	return false
}

func (s State) IsDraw() bool {
	return game.Count(s.pieces[:])+game.Count(s.enemy[:]) == Cells && !s.IsLose()
}

func (s State) IsDone() bool {
	return s.IsLose() || s.IsDraw()
}

func (s State) Next(action game.Action) game.State {
	pieces := s.pieces
	pieces[action] = true
	return State{pieces: s.enemy, enemy: pieces}
}

func (s State) LegalActions() []game.Action {
	actions := make([]game.Action, 0, Cells)
	for i := 0; i < Cells; i++ {
		if !s.pieces[i] && !s.enemy[i] {
			actions = append(actions, game.Action(i))
		}
	}
	return actions
}

func (s State) IsFirstPlayer() bool {
	return game.Count(s.pieces[:]) == game.Count(s.enemy[:])
}

func (s State) ActionSpace() int {
	return Cells
}

func (s State) Observe() []float64 {
	return game.Planes(s.pieces[:], s.enemy[:])
}

func (s State) String() string {
	return game.Render(s.pieces[:], s.enemy[:], Width, s.IsFirstPlayer())
}
