package connectfour

import "boardgame/game"

const (
	Width  = 7
	Height = 6
	Cells  = Width * Height
	// Connect is the number of stones in a row that wins
	Connect = 4
)

// State holds the mover's stones and the opponent's stones; row 0 is the top
type State struct {
	pieces [Cells]bool
	enemy  [Cells]bool
}

func New() State {
	return State{}
}

func (s State) IsLose() bool {
	cells := s.enemy[:]
	for y := 0; y < Height; y++ {
		for x := 0; x < Width; x++ {
			if game.Line(cells, Width, Height, x, y, 1, 0, Connect) ||
				game.Line(cells, Width, Height, x, y, 0, 1, Connect) ||
				game.Line(cells, Width, Height, x, y, 1, -1, Connect) ||
				game.Line(cells, Width, Height, x, y, 1, 1, Connect) {
				return true
			}
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

// Next drops a stone into the column given by action
func (s State) Next(action game.Action) game.State {
	pieces := s.pieces
	column := int(action)
	for y := Height - 1; y >= 0; y-- {
		cell := column + y*Width
		if !s.pieces[cell] && !s.enemy[cell] {
			pieces[cell] = true
			break
		}
	}
	return State{pieces: s.enemy, enemy: pieces}
}

func (s State) LegalActions() []game.Action {
	actions := make([]game.Action, 0, Width)
	for x := 0; x < Width; x++ {
		if !s.pieces[x] && !s.enemy[x] {
			actions = append(actions, game.Action(x))
		}
	}
	return actions
}

func (s State) IsFirstPlayer() bool {
	return game.Count(s.pieces[:]) == game.Count(s.enemy[:])
}

func (s State) ActionSpace() int {
	return Width
}

func (s State) Observe() []float64 {
	return game.Planes(s.pieces[:], s.enemy[:])
}

func (s State) String() string {
	return game.Render(s.pieces[:], s.enemy[:], Width, s.IsFirstPlayer())
}
