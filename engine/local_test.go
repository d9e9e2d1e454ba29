package engine

import (
	"boardgame/agent"
	"boardgame/experiments/metrics"
	"boardgame/game"
	"boardgame/game/connectfour"
	"boardgame/game/reversi"
	"boardgame/game/tictactoe"
	"boardgame/meta"
	"boardgame/searcher"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scripted plays a fixed sequence of actions
type scripted struct {
	actions []game.Action
}

func (s *scripted) FindAction(game.State) (game.Action, metrics.SearchMetric, error) {
	action := s.actions[0]
	s.actions = s.actions[1:]
	return action, metrics.SearchMetric{}, nil
}

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func TestLocalRun(t *testing.T) {
	t.Run("random games end", func(t *testing.T) {
		for _, state := range []game.State{tictactoe.New(), connectfour.New(), reversi.New()} {
			e := LocalEngine(agent.NewRandomAgent(seeded(1)), agent.NewRandomAgent(seeded(2)))

			final, gameMetric, moveMetrics, err := e.Run(state)

			require.NoError(t, err)
			require.True(t, final.IsDone())
			require.Len(t, moveMetrics, gameMetric.TotalMoves)
			require.Contains(t, []float64{0, 0.5, 1}, gameMetric.FirstPlayerPoint)
		}
	})

	t.Run("players alternate", func(t *testing.T) {
		// o o o
		// x x -
		// - - -
		e := LocalEngine(&scripted{[]game.Action{0, 1, 2}}, &scripted{[]game.Action{3, 4}})

		final, gameMetric, moveMetrics, err := e.Run(tictactoe.New())

		require.NoError(t, err)
		require.True(t, final.IsLose())
		require.Equal(t, 1.0, gameMetric.FirstPlayerPoint)
		require.Equal(t, 5, gameMetric.TotalMoves)
		for i, m := range moveMetrics {
			require.Equal(t, i+1, m.Step)
			require.Equal(t, i%2+1, m.Player)
		}
	})

	t.Run("alpha-beta self-play draws", func(t *testing.T) {
		e := LocalEngine(agent.NewAlphaBetaAgent(), agent.NewAlphaBetaAgent())

		_, gameMetric, _, err := e.Run(tictactoe.New())

		require.NoError(t, err)
		require.Equal(t, 0.5, gameMetric.FirstPlayerPoint)
	})

	t.Run("mcts never loses a won position", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithSimulations(1000), searcher.WithRand(seeded(3)))
		e := LocalEngine(agent.NewEvaluationAgent(mcts), agent.NewAlphaBetaAgent())

		_, gameMetric, _, err := e.Run(game.Play(tictactoe.New(), 0, 3, 1, 4))

		require.NoError(t, err)
		require.Equal(t, 1.0, gameMetric.FirstPlayerPoint)
	})

	t.Run("illegal action is rejected", func(t *testing.T) {
		e := LocalEngine(&scripted{[]game.Action{4}}, &scripted{[]game.Action{4}})

		final, _, moveMetrics, err := e.Run(tictactoe.New())

		require.ErrorIs(t, err, ErrIllegalAction)
		require.Len(t, moveMetrics, 1)
		require.False(t, final.IsDone())
	})

	t.Run("turn limit", func(t *testing.T) {
		e := LocalEngine(agent.NewRandomAgent(seeded(4)), agent.NewRandomAgent(seeded(5)))
		e.MaxTurns = 3

		_, gameMetric, _, err := e.Run(connectfour.New())

		require.ErrorIs(t, err, ErrTurnLimit)
		require.Equal(t, 3, gameMetric.TotalMoves)
	})

	t.Run("turn limit defaults to the shared constant", func(t *testing.T) {
		e := LocalEngine(agent.NewRandomAgent(seeded(6)), agent.NewRandomAgent(seeded(7)))

		require.Equal(t, meta.MAX_TURNS, e.MaxTurns)
	})
}
