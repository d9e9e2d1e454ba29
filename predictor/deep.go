package predictor

import (
	"boardgame/game"
	"fmt"
	"math"

	"github.com/patrikeh/go-deep"
	"github.com/patrikeh/go-deep/training"
)

// DeepConfig describes the two in-process networks. Weights are optional and
// use the layout of deep.Neural.Weights().
type DeepConfig struct {
	Inputs        int
	Actions       int
	HiddenLayers  []int
	PolicyWeights [][][]float64
	ValueWeights  [][][]float64
}

func DefaultDeepConfig(inputs, actions int) DeepConfig {
	return DeepConfig{
		Inputs:       inputs,
		Actions:      actions,
		HiddenLayers: []int{64, 32},
	}
}

// Deep predicts with a softmax policy network over the full action space and
// a regression value network clipped to [-1, 1]. deep.Neural keeps
// activations between calls, so Deep is not safe for concurrent use; wrap it
// with NewSerial when sharing it.
type Deep struct {
	policy *deep.Neural
	value  *deep.Neural
	config DeepConfig
}

func NewDeep(config DeepConfig) (*Deep, error) {
	if config.Inputs <= 0 || config.Actions <= 0 {
		return nil, fmt.Errorf("invalid network shape: %d inputs, %d actions", config.Inputs, config.Actions)
	}

	policy := deep.NewNeural(&deep.Config{
		Inputs:     config.Inputs,
		Layout:     append(append([]int{}, config.HiddenLayers...), config.Actions),
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeMultiClass,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})
	value := deep.NewNeural(&deep.Config{
		Inputs:     config.Inputs,
		Layout:     append(append([]int{}, config.HiddenLayers...), 1),
		Activation: deep.ActivationReLU,
		Mode:       deep.ModeRegression,
		Weight:     deep.NewNormal(0.0, 0.1),
		Bias:       true,
	})

	// Apply loaded weights if any
	if config.PolicyWeights != nil {
		policy.ApplyWeights(config.PolicyWeights)
	}
	if config.ValueWeights != nil {
		value.ApplyWeights(config.ValueWeights)
	}

	return &Deep{policy: policy, value: value, config: config}, nil
}

// NewDeepFor sizes the networks from an observable state
func NewDeepFor(state game.Observable, hiddenLayers []int) (*Deep, error) {
	config := DefaultDeepConfig(len(state.Observe()), state.ActionSpace())
	if len(hiddenLayers) > 0 {
		config.HiddenLayers = hiddenLayers
	}
	return NewDeep(config)
}

func (d *Deep) Predict(state game.State) ([]float64, float64, error) {
	observable, ok := state.(game.Observable)
	if !ok {
		return nil, 0, fmt.Errorf("state %T cannot be observed", state)
	}
	input := observable.Observe()
	if len(input) != d.config.Inputs {
		return nil, 0, fmt.Errorf("observation has %d values, network expects %d", len(input), d.config.Inputs)
	}

	priors := d.policy.Predict(input)
	value := math.Max(-1, math.Min(1, d.value.Predict(input)[0]))
	return priors, value, nil
}

// Weights returns the current policy and value network weights
func (d *Deep) Weights() (policy, value [][][]float64) {
	return d.policy.Dump().Weights, d.value.Dump().Weights
}

// Fit trains both networks with SGD on observations paired with target
// policies over the full action space and target values
func (d *Deep) Fit(observations, policies [][]float64, values []float64, epochs int, learningRate float64) error {
	if len(observations) != len(policies) || len(observations) != len(values) {
		return fmt.Errorf("mismatched training data: %d observations, %d policies, %d values", len(observations), len(policies), len(values))
	}
	if len(observations) == 0 {
		return nil
	}

	policyData := make(training.Examples, len(observations))
	valueData := make(training.Examples, len(observations))
	for i, observation := range observations {
		if len(observation) != d.config.Inputs || len(policies[i]) != d.config.Actions {
			return fmt.Errorf("example %d has %d inputs and %d actions, network expects %d and %d", i, len(observation), len(policies[i]), d.config.Inputs, d.config.Actions)
		}
		policyData[i] = training.Example{Input: observation, Response: policies[i]}
		valueData[i] = training.Example{Input: observation, Response: []float64{values[i]}}
	}
	policyData.Shuffle()
	valueData.Shuffle()

	training.NewTrainer(training.NewSGD(learningRate, 0.5, 0.0, false), 0).Train(d.policy, policyData, nil, epochs)
	training.NewTrainer(training.NewSGD(learningRate, 0.5, 0.0, false), 0).Train(d.value, valueData, nil, epochs)
	return nil
}
