package selfplay

import (
	"boardgame/game"
	"boardgame/predictor"
	"boardgame/searcher"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Record is one training example: the position seen by the player to move,
// the search policy over the full action space and the final game value from
// that player's side
type Record struct {
	Observation []float64
	Policy      []float64
	Value       float64
}

// Play runs one self-play game from state, sampling every action from the
// search distribution at temperature
func Play(mcts *searcher.MCTS, state game.Observable, temperature float64, rng *rand.Rand) ([]Record, error) {
	var records []Record
	var current game.State = state
	for !current.IsDone() {
		observable, ok := current.(game.Observable)
		if !ok {
			return nil, fmt.Errorf("state %T cannot be observed", current)
		}
		scores, _, err := mcts.Scores(current, temperature)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", len(records)+1, err)
		}

		actions := current.LegalActions()
		policy := make([]float64, observable.ActionSpace())
		for i, action := range actions {
			policy[action] = scores[i]
		}
		records = append(records, Record{Observation: observable.Observe(), Policy: policy})

		current = current.Next(actions[searcher.Sample(scores, rng)])
	}

	value := game.FirstPlayerValue(current)
	for i := range records {
		records[i].Value = value
		value = -value
	}
	return records, nil
}

// Generate plays games self-play games from fresh states
func Generate(games int, newState func() game.Observable, mcts *searcher.MCTS, temperature float64, rng *rand.Rand) ([]Record, error) {
	var records []Record
	for i := 0; i < games; i++ {
		h, err := Play(mcts, newState(), temperature, rng)
		if err != nil {
			return nil, fmt.Errorf("game %d: %w", i+1, err)
		}
		records = append(records, h...)
		log.Info().Msgf("self-play %d/%d: %d moves", i+1, games, len(h))
	}
	return records, nil
}

// Train fits d to the records
func Train(d *predictor.Deep, records []Record, epochs int, learningRate float64) error {
	observations := make([][]float64, len(records))
	policies := make([][]float64, len(records))
	values := make([]float64, len(records))
	for i, r := range records {
		observations[i] = r.Observation
		policies[i] = r.Policy
		values[i] = r.Value
	}
	return d.Fit(observations, policies, values, epochs, learningRate)
}
