package searcher

import "math"

// Selection picks the child to descend into. Children with no visits are
// always preferred, so ratio-based scores never divide by zero.
type Selection interface {
	pick(children []*node) int
}

type ucb1 struct {
	c float64
}

// UCB1 scores -(w/n) + c*sqrt(2*ln(T)/n), negated because a child's value is
// from the opponent's perspective
func UCB1(c float64) Selection {
	return ucb1{c: c}
}

func (u ucb1) pick(children []*node) int {
	total := 0
	for i, child := range children {
		if child.n == 0 {
			return i
		}
		total += child.n
	}

	bound := newUCT(u.c, float64(total))
	best := 0
	bestScore := math.Inf(-1)
	for i, child := range children {
		if score := bound.evaluate(-child.w, float64(child.n)); score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

type uct struct {
	c         float64
	numerator float64
}

func newUCT(c float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{c: c, numerator: 2 * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCB1 = q/n + c*sqrt(2*ln(N)/n)
	return q/n + u.c*math.Sqrt(u.numerator/n)
}

type puct struct {
	c float64
}

// PUCT scores (n>0 ? -(w/n) : 0) + c*p*sqrt(T)/(1+n)
func PUCT(c float64) Selection {
	return puct{c: c}
}

func (p puct) pick(children []*node) int {
	total := 0
	unvisited := false
	for _, child := range children {
		total += child.n
		if child.n == 0 {
			unvisited = true
		}
	}
	sqrtTotal := math.Sqrt(float64(total))

	best := -1
	bestScore := math.Inf(-1)
	for i, child := range children {
		if unvisited && child.n > 0 {
			continue
		}
		if score := p.score(child, sqrtTotal); best == -1 || score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

func (p puct) score(child *node, sqrtTotal float64) float64 {
	q := 0.0
	if child.n > 0 {
		q = -child.w / float64(child.n)
	}
	return q + p.c*child.p*sqrtTotal/float64(1+child.n)
}
