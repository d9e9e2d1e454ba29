package tictactoe

import (
	"boardgame/game"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	s := New()

	require.False(t, s.IsDone(), "Empty board should not be over")
	require.True(t, s.IsFirstPlayer(), "First player moves on the empty board")
	require.Len(t, s.LegalActions(), Cells, "Every cell should be legal")
	require.Equal(t, "---\n---\n---\n", s.String())
}

func TestNext(t *testing.T) {
	t.Run("swaps roles and leaves the receiver untouched", func(t *testing.T) {
		s := New()
		next := s.Next(4).(State)

		require.Len(t, s.LegalActions(), Cells, "Receiver should not change")
		require.False(t, next.IsFirstPlayer(), "Second player moves after one stone")
		require.NotContains(t, next.LegalActions(), game.Action(4))
		require.Equal(t, "---\n-o-\n---\n", next.String())
	})

	t.Run("completed row means the mover has lost", func(t *testing.T) {
		// o plays 0, 1, 2 while x plays 3, 4
		s := game.Play(New(), 0, 3, 1, 4, 2)

		require.True(t, s.IsLose(), "Opponent completed three in a row")
		require.True(t, s.IsDone())
		require.False(t, s.IsDraw())
		require.Equal(t, 1.0, game.FirstPlayerPoint(s))
		require.Equal(t, 1.0, game.FirstPlayerValue(s))
		require.Equal(t, -1.0, game.Outcome(s))
	})

	t.Run("diagonal win", func(t *testing.T) {
		s := game.Play(New(), 1, 0, 2, 4, 3, 8)

		require.True(t, s.IsLose())
		require.True(t, s.IsFirstPlayer(), "First player is to move and has lost")
		require.Equal(t, 0.0, game.FirstPlayerPoint(s))
	})

	t.Run("full board without a line is a draw", func(t *testing.T) {
		// o x o
		// o x x
		// x o o
		s := game.Play(New(), 0, 1, 2, 4, 3, 5, 7, 6, 8)

		require.True(t, s.IsDraw())
		require.False(t, s.IsLose())
		require.Equal(t, 0.5, game.FirstPlayerPoint(s))
		require.Equal(t, 0.0, game.Outcome(s))
	})
}

func TestObserve(t *testing.T) {
	s := New().Next(0).(State)
	planes := s.Observe()

	require.Len(t, planes, 2*Cells)
	require.Equal(t, 0.0, planes[0], "Mover has no stones")
	require.Equal(t, 1.0, planes[Cells], "Enemy stone at cell 0")
}
