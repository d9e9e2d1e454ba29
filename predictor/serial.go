package predictor

import (
	"boardgame/game"
	"boardgame/searcher"
	"errors"
	"sync"
)

var ErrClosed = errors.New("predictor is closed")

type request struct {
	state    game.State
	respChan chan response
}

type response struct {
	priors []float64
	value  float64
	err    error
}

// Serial fronts a predictor that is not safe for concurrent use with a
// single goroutine draining a request queue
type Serial struct {
	predictor    searcher.Predictor
	requestsChan chan request
	done         chan struct{}
	closeOnce    sync.Once
}

func NewSerial(predictor searcher.Predictor) *Serial {
	s := &Serial{
		predictor:    predictor,
		requestsChan: make(chan request),
		done:         make(chan struct{}),
	}
	go s.loop()
	return s
}

func (s *Serial) loop() {
	for {
		select {
		case req := <-s.requestsChan:
			priors, value, err := s.predictor.Predict(req.state)
			req.respChan <- response{priors: priors, value: value, err: err}
		case <-s.done:
			return
		}
	}
}

func (s *Serial) Predict(state game.State) ([]float64, float64, error) {
	select {
	case <-s.done:
		return nil, 0, ErrClosed
	default:
	}

	respChan := make(chan response, 1)
	select {
	case s.requestsChan <- request{state: state, respChan: respChan}:
	case <-s.done:
		return nil, 0, ErrClosed
	}

	resp := <-respChan
	return resp.priors, resp.value, resp.err
}

// Close stops the queue; later calls fail with ErrClosed
func (s *Serial) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
