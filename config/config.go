package config

import (
	"boardgame/meta"
	"boardgame/searcher"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

type Search struct {
	Simulations        int     `yaml:"simulations"`
	CUCB1              float64 `yaml:"c_ucb1"`
	CPUCT              float64 `yaml:"c_puct"`
	ExpansionThreshold int     `yaml:"expansion_threshold"`
	Temperature        float64 `yaml:"temperature"`
}

type Arena struct {
	Games     int    `yaml:"games"`
	MaxTurns  int    `yaml:"max_turns"`
	OutputDir string `yaml:"output_dir"`
}

type SelfPlay struct {
	Games        int     `yaml:"games"`
	Temperature  float64 `yaml:"temperature"`
	Epochs       int     `yaml:"epochs"`
	LearningRate float64 `yaml:"learning_rate"`
}

type Predictor struct {
	Kind      string `yaml:"kind"` // uniform, deep or onnx
	ModelPath string `yaml:"model_path"`
	Hidden    []int  `yaml:"hidden"`
}

type Config struct {
	LogLevel  string    `yaml:"log_level"`
	Game      string    `yaml:"game"`
	Seed      uint64    `yaml:"seed"`
	Search    Search    `yaml:"search"`
	Arena     Arena     `yaml:"arena"`
	SelfPlay  SelfPlay  `yaml:"self_play"`
	Predictor Predictor `yaml:"predictor"`
}

func Default() Config {
	return Config{
		LogLevel: "info",
		Game:     "tictactoe",
		Search: Search{
			Simulations:        meta.SIMULATIONS,
			CUCB1:              searcher.C_UCB1,
			CPUCT:              searcher.C_PUCT,
			ExpansionThreshold: searcher.EXPANSION_THRESHOLD,
		},
		Arena: Arena{
			Games:     meta.ARENA_GAMES,
			MaxTurns:  meta.MAX_TURNS,
			OutputDir: "experiments",
		},
		SelfPlay: SelfPlay{
			Games:        meta.SP_GAMES,
			Temperature:  meta.SP_TEMPERATURE,
			Epochs:       10,
			LearningRate: 0.01,
		},
		Predictor: Predictor{Kind: "uniform"},
	}
}

// Load overlays the YAML file at path on the defaults. An empty path returns
// the defaults.
func Load(path string) (Config, error) {
	config := Default()
	if path == "" {
		return config, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return config, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &config); err != nil {
		return config, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	var errs []error
	if c.Search.Simulations <= 0 {
		errs = append(errs, fmt.Errorf("search.simulations must be positive, got %d", c.Search.Simulations))
	}
	if c.Search.ExpansionThreshold <= 0 {
		errs = append(errs, fmt.Errorf("search.expansion_threshold must be positive, got %d", c.Search.ExpansionThreshold))
	}
	if c.Search.CUCB1 < 0 || c.Search.CPUCT < 0 {
		errs = append(errs, errors.New("search exploration constants must not be negative"))
	}
	if c.Search.Temperature < 0 || c.SelfPlay.Temperature < 0 {
		errs = append(errs, errors.New("temperatures must not be negative"))
	}
	if c.Arena.Games <= 0 {
		errs = append(errs, fmt.Errorf("arena.games must be positive, got %d", c.Arena.Games))
	}
	switch c.Predictor.Kind {
	case "uniform", "deep":
	case "onnx":
		if c.Predictor.ModelPath == "" {
			errs = append(errs, errors.New("predictor.model_path is required for onnx"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown predictor kind %q", c.Predictor.Kind))
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, fmt.Errorf("log_level: %w", err))
	}
	return errors.Join(errs...)
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
