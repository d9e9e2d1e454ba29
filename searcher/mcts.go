package searcher

import (
	"boardgame/experiments/metrics"
	"boardgame/game"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// MCTS runs a fixed number of simulations over a tree built fresh for every
// decision. One MCTS must not search from several goroutines at once; run
// independent instances for independent games.
type MCTS struct {
	simulations int
	threshold   int
	selection   Selection
	evaluator   Evaluator
	rng         *rand.Rand
	metrics     metrics.Collector
}

func WithSimulations(simulations int) Option {
	return func(m *MCTS) {
		if simulations > 0 {
			m.simulations = simulations
		}
	}
}

// WithExpansionThreshold sets the playouts before a rollout leaf is expanded.
// It has no effect when an evaluator is supplied.
func WithExpansionThreshold(threshold int) Option {
	return func(m *MCTS) {
		if threshold > 0 {
			m.threshold = threshold
		}
	}
}

func WithEvaluator(evaluator Evaluator) Option {
	return func(m *MCTS) {
		if evaluator != nil {
			m.evaluator = evaluator
		}
	}
}

// WithPredictor switches to the guided variant: predictor-evaluated leaves
// and PUCT selection
func WithPredictor(predictor Predictor, c float64) Option {
	return func(m *MCTS) {
		if predictor != nil {
			m.evaluator = NewGuided(predictor)
			m.selection = PUCT(c)
		}
	}
}

func WithSelection(selection Selection) Option {
	return func(m *MCTS) {
		if selection != nil {
			m.selection = selection
		}
	}
}

func WithRand(rng *rand.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		simulations: DefaultSimulations,
		threshold:   EXPANSION_THRESHOLD,
		selection:   UCB1(C_UCB1),
		metrics:     metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(uint64(time.Now().UnixNano())))
	}
	if m.evaluator == nil {
		m.evaluator = NewPlayout(m.rng, m.threshold)
	}
	return m
}

// Tree is the result of one decision
type Tree struct {
	root    *node
	actions []game.Action
	Metric  metrics.SearchMetric
}

// Actions are the root's legal actions
func (t *Tree) Actions() []game.Action {
	return t.actions
}

// Visits are the root children's visit counts aligned with Actions(). An
// unexpanded root reports zero visits for every action.
func (t *Tree) Visits() []float64 {
	if !t.root.expanded() {
		return make([]float64, len(t.actions))
	}
	return t.root.visits()
}

// Search builds a tree for state and runs the configured number of
// simulations. A predictor failure aborts the search.
func (m *MCTS) Search(state game.State) (*Tree, error) {
	if state.IsDone() {
		return nil, ErrGameOver
	}
	actions := state.LegalActions()
	if len(actions) == 0 {
		return nil, game.ErrNoLegalActions
	}

	root := newNode(state, 0)
	m.metrics.Start()
	// Rollout roots are expanded up front so every simulation reaches a child
	if m.evaluator.ExpandAfter() > 1 {
		if err := root.expand(nil); err != nil {
			return nil, err
		}
		m.metrics.AddExpansion()
	}

	for i := 0; i < m.simulations; i++ {
		if _, err := m.evaluate(root); err != nil {
			return nil, fmt.Errorf("simulation %d of %d: %w", i+1, m.simulations, err)
		}
		m.metrics.AddSimulation()
	}

	tree := &Tree{root: root, actions: actions, Metric: m.metrics.Complete()}
	log.Debug().Msgf("searched %d simulations over %d actions, root value %.3f", m.simulations, len(actions), root.w/float64(max(root.n, 1)))
	return tree, nil
}

func (m *MCTS) evaluate(nd *node) (float64, error) {
	if nd.state.IsDone() {
		value := game.Outcome(nd.state)
		nd.update(value)
		m.metrics.AddTerminal()
		return value, nil
	}

	if !nd.expanded() {
		priors, value, err := m.evaluator.Evaluate(nd.state)
		if err != nil {
			return 0, err
		}
		nd.update(value)
		m.metrics.AddEvaluation()
		if nd.n >= m.evaluator.ExpandAfter() {
			if err := nd.expand(priors); err != nil {
				return 0, err
			}
			m.metrics.AddExpansion()
		}
		return value, nil
	}

	child := nd.children[m.selection.pick(nd.children)]
	value, err := m.evaluate(child)
	if err != nil {
		return 0, err
	}
	value = -value
	nd.update(value)
	return value, nil
}

// Scores searches state and converts the root visit counts into a
// distribution over state.LegalActions()
func (m *MCTS) Scores(state game.State, temperature float64) ([]float64, metrics.SearchMetric, error) {
	tree, err := m.Search(state)
	if err != nil {
		return nil, metrics.SearchMetric{}, err
	}
	return Boltzmann(tree.Visits(), temperature), tree.Metric, nil
}

// Action searches state and picks the most visited action at temperature 0,
// or samples from the Boltzmann distribution otherwise
func (m *MCTS) Action(state game.State, temperature float64) (game.Action, metrics.SearchMetric, error) {
	scores, metric, err := m.Scores(state, temperature)
	if err != nil {
		return 0, metric, err
	}
	actions := state.LegalActions()
	if temperature == 0 {
		return actions[Argmax(scores)], metric, nil
	}
	return actions[Sample(scores, m.rng)], metric, nil
}

