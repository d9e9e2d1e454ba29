package predictor

import (
	"boardgame/game"
	"boardgame/game/connectfour"
	"boardgame/game/reversi"
	"boardgame/game/tictactoe"
	"boardgame/searcher"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// plainState is a state that cannot be observed
type plainState struct {
	game.State
}

func TestUniform(t *testing.T) {
	state := game.Play(tictactoe.New(), 4)

	priors, value, err := Uniform{Value: 0.3}.Predict(state)

	require.NoError(t, err)
	require.Equal(t, 0.3, value)
	require.Len(t, priors, 8)
	for _, p := range priors {
		require.Equal(t, 0.125, p)
	}
}

func TestDeep(t *testing.T) {
	t.Run("policy covers the action space and value is bounded", func(t *testing.T) {
		for _, state := range []game.Observable{tictactoe.New(), connectfour.New(), reversi.New()} {
			d, err := NewDeepFor(state, []int{16})
			require.NoError(t, err)

			priors, value, err := d.Predict(state)

			require.NoError(t, err)
			require.Len(t, priors, state.ActionSpace())
			total := 0.0
			for _, p := range priors {
				require.GreaterOrEqual(t, p, 0.0)
				total += p
			}
			require.InDelta(t, 1.0, total, 1e-6, "Softmax output should sum to 1")
			require.LessOrEqual(t, math.Abs(value), 1.0)
		}
	})

	t.Run("applied weights reproduce predictions", func(t *testing.T) {
		state := game.Play(tictactoe.New(), 0, 4)
		d, err := NewDeepFor(tictactoe.New(), []int{8})
		require.NoError(t, err)
		policyWeights, valueWeights := d.Weights()

		config := DefaultDeepConfig(2*tictactoe.Cells, tictactoe.Cells)
		config.HiddenLayers = []int{8}
		config.PolicyWeights = policyWeights
		config.ValueWeights = valueWeights
		clone, err := NewDeep(config)
		require.NoError(t, err)

		p1, v1, err := d.Predict(state)
		require.NoError(t, err)
		p2, v2, err := clone.Predict(state)
		require.NoError(t, err)

		require.InDeltaSlice(t, p1, p2, 1e-9)
		require.InDelta(t, v1, v2, 1e-9)
	})

	t.Run("rejects states it cannot observe", func(t *testing.T) {
		d, err := NewDeepFor(tictactoe.New(), nil)
		require.NoError(t, err)

		_, _, err = d.Predict(plainState{tictactoe.New()})
		require.Error(t, err)

		_, _, err = d.Predict(connectfour.New())
		require.Error(t, err, "Observation size should match the network")
	})

	t.Run("rejects an empty shape", func(t *testing.T) {
		_, err := NewDeep(DeepConfig{})

		require.Error(t, err)
	})

	t.Run("guides a search", func(t *testing.T) {
		d, err := NewDeepFor(connectfour.New(), []int{16})
		require.NoError(t, err)
		m := searcher.NewMCTS(searcher.WithSimulations(50), searcher.WithPredictor(d, searcher.C_PUCT))
		state := game.Play(connectfour.New(), 3, 3, 3, 3, 3, 3)

		action, _, err := m.Action(state, 0)

		require.NoError(t, err)
		require.Contains(t, state.LegalActions(), action)
	})
}

type countingPredictor struct {
	mu       sync.Mutex
	inFlight int
	overlap  bool
	calls    int
}

func (c *countingPredictor) Predict(state game.State) ([]float64, float64, error) {
	c.mu.Lock()
	c.inFlight++
	if c.inFlight > 1 {
		c.overlap = true
	}
	c.calls++
	c.mu.Unlock()

	priors, value, err := Uniform{}.Predict(state)

	c.mu.Lock()
	c.inFlight--
	c.mu.Unlock()
	return priors, value, err
}

func TestSerial(t *testing.T) {
	t.Run("concurrent callers are served one at a time", func(t *testing.T) {
		inner := &countingPredictor{}
		s := NewSerial(inner)
		defer s.Close()

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for range 20 {
					priors, _, err := s.Predict(tictactoe.New())
					require.NoError(t, err)
					require.Len(t, priors, tictactoe.Cells)
				}
			}()
		}
		wg.Wait()

		require.False(t, inner.overlap, "Inner predictor should never run concurrently")
		require.Equal(t, 16*20, inner.calls)
	})

	t.Run("errors pass through", func(t *testing.T) {
		s := NewSerial(failing{})
		defer s.Close()

		_, _, err := s.Predict(tictactoe.New())

		require.ErrorIs(t, err, errFailing)
	})

	t.Run("closed queue rejects calls", func(t *testing.T) {
		s := NewSerial(Uniform{})
		s.Close()
		s.Close()

		_, _, err := s.Predict(tictactoe.New())

		require.ErrorIs(t, err, ErrClosed)
	})

	t.Run("independent searches share one deep predictor", func(t *testing.T) {
		d, err := NewDeepFor(tictactoe.New(), []int{8})
		require.NoError(t, err)
		s := NewSerial(d)
		defer s.Close()

		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m := searcher.NewMCTS(searcher.WithSimulations(30), searcher.WithPredictor(s, searcher.C_PUCT))
				_, _, err := m.Action(tictactoe.New(), 0)
				require.NoError(t, err)
			}()
		}
		wg.Wait()
	})
}

var errFailing = errors.New("model crashed")

type failing struct{}

func (failing) Predict(game.State) ([]float64, float64, error) {
	return nil, 0, errFailing
}
