package config

import (
	"math"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"sentinet/internal/nn"
)

// Config is the application's configuration model.
// It captures the model hyperparameters, data sources and runtime plumbing.
type Config struct {
	Model    nn.Options     `yaml:"model"`
	Training TrainingConfig `yaml:"training"`
	Data     DataConfig     `yaml:"data"`
	Storage  StorageConfig  `yaml:"storage"`
	Logging  LoggingConfig  `yaml:"logging"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Progress ProgressConfig `yaml:"progress"`
}

type TrainingConfig struct {
	Epochs int `yaml:"epochs"`
	// Number of trailing documents held out for evaluation
	TestSize int `yaml:"testSize"`
}

type DataConfig struct {
	// One review per line
	ReviewsPath string `yaml:"reviewsPath"`
	// One label per line, aligned with ReviewsPath
	LabelsPath string `yaml:"labelsPath"`
	// Lower-case reviews while loading
	Lowercase bool `yaml:"lowercase"`
}

type StorageConfig struct {
	// If empty, read from env SENTINET_DB
	DBPath string `yaml:"dbPath"`
}

type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	// Optional rotating log file; stderr is always written
	Path       string `yaml:"path"`
	MaxAgeDays int    `yaml:"maxAgeDays"`
}

type MetricsConfig struct {
	// e.g. ":9090"; if empty, read from env METRICS_ADDR
	Addr string `yaml:"addr"`
}

type ProgressConfig struct {
	// Console status lines per second
	RPS float64 `yaml:"rps"`
}

// Default returns a sensible default configuration.
func Default() Config {
	return Config{
		Model:    nn.DefaultOptions(),
		Training: TrainingConfig{Epochs: 5, TestSize: 1000},
		Data:     DataConfig{ReviewsPath: "./reviews.txt", LabelsPath: "./labels.txt", Lowercase: true},
		Storage:  StorageConfig{DBPath: "./sentinet.db"},
		Logging:  LoggingConfig{Level: "info", MaxAgeDays: 7},
		Progress: ProgressConfig{RPS: 10},
	}
}

// ResolveEnv fills in config fields from environment variables if set.
func (c *Config) ResolveEnv() {
	if v := os.Getenv("SENTINET_DB"); v != "" {
		c.Storage.DBPath = v
	}
	if c.Metrics.Addr == "" {
		c.Metrics.Addr = os.Getenv("METRICS_ADDR")
	}
	if v := os.Getenv("SENTINET_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	m := c.Model
	switch {
	case m.MinCount < 0:
		return errors.Errorf("model.minCount must be >= 0, got %d", m.MinCount)
	case m.PolarityCutoff < 0 || math.IsNaN(m.PolarityCutoff):
		return errors.Errorf("model.polarityCutoff must be >= 0, got %v", m.PolarityCutoff)
	case m.PolarityMinCount < 0:
		return errors.Errorf("model.polarityMinCount must be >= 0, got %d", m.PolarityMinCount)
	case m.HiddenNodes <= 0:
		return errors.Errorf("model.hiddenNodes must be > 0, got %d", m.HiddenNodes)
	case m.LearningRate <= 0 || math.IsNaN(m.LearningRate) || math.IsInf(m.LearningRate, 0):
		return errors.Errorf("model.learningRate must be a positive finite number, got %v", m.LearningRate)
	case m.PositiveLabel == "" || m.NegativeLabel == "":
		return errors.New("model.positiveLabel and model.negativeLabel are required")
	case m.PositiveLabel == m.NegativeLabel:
		return errors.Errorf("model.positiveLabel and model.negativeLabel are both %q", m.PositiveLabel)
	case c.Training.Epochs < 0:
		return errors.Errorf("training.epochs must be >= 0, got %d", c.Training.Epochs)
	case c.Training.TestSize < 0:
		return errors.Errorf("training.testSize must be >= 0, got %d", c.Training.TestSize)
	}
	return nil
}

// Load reads YAML config from path on top of the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "read config")
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "parse config %s", path)
	}
	cfg.ResolveEnv()
	return cfg, cfg.Validate()
}

// Save writes YAML config to path, creating directories as needed.
func Save(path string, cfg Config) error {
	if path == "" {
		return errors.New("empty path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	b, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
