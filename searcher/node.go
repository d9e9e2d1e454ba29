package searcher

import (
	"boardgame/game"
)

// node owns its children exclusively; traversal is always top-down
type node struct {
	state    game.State
	n        int     // visits
	w        float64 // accumulated value from this node's mover's perspective
	p        float64 // prior
	children []*node // aligned with state.LegalActions() once expanded
}

func newNode(state game.State, p float64) *node {
	return &node{state: state, p: p}
}

func (nd *node) expanded() bool {
	return len(nd.children) > 0
}

func (nd *node) update(value float64) {
	nd.w += value
	nd.n++
}

// expand adds one child per legal action. A nil priors slice leaves every
// child prior at 0.
func (nd *node) expand(priors []float64) error {
	if nd.expanded() {
		panic("node is already expanded")
	}
	if nd.state.IsDone() {
		panic("cannot expand a terminal node")
	}

	actions := nd.state.LegalActions()
	if len(actions) == 0 {
		return game.ErrNoLegalActions
	}

	nd.children = make([]*node, len(actions))
	for i, action := range actions {
		p := 0.0
		if priors != nil {
			p = priors[i]
		}
		nd.children[i] = newNode(nd.state.Next(action), p)
	}
	return nil
}

func (nd *node) visits() []float64 {
	visits := make([]float64, len(nd.children))
	for i, child := range nd.children {
		visits[i] = float64(child.n)
	}
	return visits
}
