package reversi

import "boardgame/game"

const (
	Width = 6
	Cells = Width * Width
	// Pass is legal only when no placement is
	Pass game.Action = Cells
)

var directions = [8][2]int{{1, 0}, {1, 1}, {0, 1}, {-1, 1}, {-1, 0}, {-1, -1}, {0, -1}, {1, -1}}

// State holds the mover's stones and the opponent's stones. depth counts
// plies from the opening and passEnd marks two consecutive passes.
type State struct {
	pieces  [Cells]bool
	enemy   [Cells]bool
	depth   int
	passEnd bool
}

func New() State {
	var s State
	s.pieces[14], s.pieces[21] = true, true
	s.enemy[15], s.enemy[20] = true, true
	return s
}

func (s State) IsDone() bool {
	return game.Count(s.pieces[:])+game.Count(s.enemy[:]) == Cells || s.passEnd
}

func (s State) IsLose() bool {
	return s.IsDone() && game.Count(s.pieces[:]) < game.Count(s.enemy[:])
}

func (s State) IsDraw() bool {
	return s.IsDone() && game.Count(s.pieces[:]) == game.Count(s.enemy[:])
}

// Next places a stone and flips every bracketed line. The flipped cells are
// collected before the new board is built; the receiver is never modified.
func (s State) Next(action game.Action) game.State {
	pieces, enemy := s.pieces, s.enemy
	if action != Pass {
		cell := int(action)
		pieces[cell] = true
		for _, flipped := range s.flips(cell%Width, cell/Width) {
			pieces[flipped] = true
			enemy[flipped] = false
		}
	}

	next := State{pieces: enemy, enemy: pieces, depth: s.depth + 1}
	if action == Pass {
		actions := next.LegalActions()
		if len(actions) == 1 && actions[0] == Pass {
			next.passEnd = true
		}
	}
	return next
}

func (s State) LegalActions() []game.Action {
	actions := []game.Action{}
	for y := 0; y < Width; y++ {
		for x := 0; x < Width; x++ {
			if s.isLegal(x, y) {
				actions = append(actions, game.Action(x+y*Width))
			}
		}
	}
	if len(actions) == 0 {
		actions = append(actions, Pass)
	}
	return actions
}

func (s State) isLegal(x, y int) bool {
	cell := x + y*Width
	if s.pieces[cell] || s.enemy[cell] {
		return false
	}
	return len(s.flips(x, y)) > 0
}

// flips lists the enemy stones a placement at (x, y) would turn over
func (s State) flips(x, y int) []int {
	var flipped []int
	for _, d := range directions {
		var line []int
		cx, cy := x+d[0], y+d[1]
		for inside(cx, cy) && s.enemy[cx+cy*Width] {
			line = append(line, cx+cy*Width)
			cx, cy = cx+d[0], cy+d[1]
		}
		if len(line) > 0 && inside(cx, cy) && s.pieces[cx+cy*Width] {
			flipped = append(flipped, line...)
		}
	}
	return flipped
}

func inside(x, y int) bool {
	return x >= 0 && x < Width && y >= 0 && y < Width
}

func (s State) IsFirstPlayer() bool {
	return s.depth%2 == 0
}

// ActionSpace includes the pass action
func (s State) ActionSpace() int {
	return Cells + 1
}

func (s State) Observe() []float64 {
	return game.Planes(s.pieces[:], s.enemy[:])
}

func (s State) String() string {
	return game.Render(s.pieces[:], s.enemy[:], Width, s.IsFirstPlayer())
}
