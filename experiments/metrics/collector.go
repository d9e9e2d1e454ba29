package metrics

import (
	"time"
)

type SearchMetric struct {
	Duration    time.Duration
	Simulations int
	Evaluations int // Leaf evaluations (playouts or predictor calls)
	Terminals   int // Visits that ended on a terminal state
	Expansions  int
}

type MoveMetric struct {
	Step   int
	Player int // 1 first player, 2 second player
	SearchMetric
}

type GameMetric struct {
	StartTime        time.Time
	EndTime          time.Time
	Duration         time.Duration
	TotalMoves       int
	FirstPlayerPoint float64
}

// Collector is driven by a single search; it is not safe for concurrent use
type Collector interface {
	Start()
	AddSimulation()
	AddEvaluation()
	AddTerminal()
	AddExpansion()
	Complete() SearchMetric
}

type collector struct {
	startTime   time.Time
	simulations int
	evaluations int
	terminals   int
	expansions  int
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start() {
	*m = collector{startTime: time.Now()}
}

func (m *collector) AddSimulation() {
	m.simulations++
}

func (m *collector) AddEvaluation() {
	m.evaluations++
}

func (m *collector) AddTerminal() {
	m.terminals++
}

func (m *collector) AddExpansion() {
	m.expansions++
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Duration:    time.Since(m.startTime),
		Simulations: m.simulations,
		Evaluations: m.evaluations,
		Terminals:   m.terminals,
		Expansions:  m.expansions,
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start()                 {}
func (m *dummyCollector) AddSimulation()         {}
func (m *dummyCollector) AddEvaluation()         {}
func (m *dummyCollector) AddTerminal()           {}
func (m *dummyCollector) AddExpansion()          {}
func (m *dummyCollector) Complete() SearchMetric { return SearchMetric{} }
