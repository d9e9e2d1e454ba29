package game

import "strings"

// Planes flattens own and enemy occupancy into the Observable layout
func Planes(own, enemy []bool) []float64 {
	planes := make([]float64, len(own)+len(enemy))
	for i, occupied := range own {
		if occupied {
			planes[i] = 1
		}
	}
	for i, occupied := range enemy {
		if occupied {
			planes[len(own)+i] = 1
		}
	}
	return planes
}

// Render draws a board with 'o' for the first player, 'x' for the second
// and '-' for empty cells
func Render(own, enemy []bool, width int, firstPlayer bool) string {
	mine, theirs := 'o', 'x'
	if !firstPlayer {
		mine, theirs = theirs, mine
	}
	var b strings.Builder
	for i := range own {
		switch {
		case own[i]:
			b.WriteRune(mine)
		case enemy[i]:
			b.WriteRune(theirs)
		default:
			b.WriteRune('-')
		}
		if i%width == width-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

// Count returns the number of occupied cells
func Count(cells []bool) int {
	n := 0
	for _, occupied := range cells {
		if occupied {
			n++
		}
	}
	return n
}

// Line reports whether length cells starting at (x, y) and stepping by
// (dx, dy) are all occupied on a width x height board
func Line(cells []bool, width, height, x, y, dx, dy, length int) bool {
	for k := 0; k < length; k++ {
		if x < 0 || x >= width || y < 0 || y >= height || !cells[x+y*width] {
			return false
		}
		x, y = x+dx, y+dy
	}
	return true
}
