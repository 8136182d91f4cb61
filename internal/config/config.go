package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"

	"textenc/internal/domain"
)

const envPrefix = "textenc"

// TSNEConfig tunes the projection embedding.
type TSNEConfig struct {
	Iterations        int     `yaml:"iterations" validate:"gte=0"`
	LearningRate      float64 `yaml:"learning_rate" validate:"gte=0"`
	EarlyExaggeration float64 `yaml:"early_exaggeration" validate:"gte=0"`
	Seed              int64   `yaml:"seed"`
}

// AnalyticsConfig configures the analytics views.
type AnalyticsConfig struct {
	TopFeatures int        `yaml:"top_features" validate:"gte=0"`
	TSNE        TSNEConfig `yaml:"tsne"`
}

// ChunkerConfig configures how input files are split into documents.
// SentencesPerChunk of zero keeps one document per file.
type ChunkerConfig struct {
	Type              string `yaml:"type" validate:"oneof=sentence"`
	SentencesPerChunk int    `yaml:"sentences_per_chunk" validate:"gte=0"`
	OverlapSentences  int    `yaml:"overlap_sentences" validate:"gte=0"`
}

// LogConfig configures the application logger.
type LogConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error"`
	JSON  bool   `yaml:"json"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Preprocessing domain.PreprocessingConfig `yaml:"preprocessing"`
	Encoding      domain.EncodingConfig      `yaml:"encoding"`
	Analytics     AnalyticsConfig            `yaml:"analytics"`
	Chunker       ChunkerConfig              `yaml:"chunker"`
	Log           LogConfig                  `yaml:"log"`
}

// envOverrides are read from TEXTENC_* variables.
type envOverrides struct {
	LogLevel    string `envconfig:"LOG_LEVEL"`
	Strategy    string `envconfig:"STRATEGY"`
	MaxFeatures *int   `envconfig:"MAX_FEATURES"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./textenc.yaml first, then ~/.config/textenc/config.yaml.
// If neither exists, it writes defaults to ~/.config/textenc/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "textenc.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv overrides cfg with TEXTENC_LOG_LEVEL, TEXTENC_STRATEGY and
// TEXTENC_MAX_FEATURES when they are set.
func ApplyEnv(cfg *AppConfig) error {
	var env envOverrides
	if err := envconfig.Process(envPrefix, &env); err != nil {
		return err
	}
	if env.LogLevel != "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.Strategy != "" {
		s, err := domain.ParseStrategy(env.Strategy)
		if err != nil {
			return err
		}
		cfg.Encoding.Strategy = s
	}
	if env.MaxFeatures != nil {
		cfg.Encoding.MaxFeatures = *env.MaxFeatures
	}
	return nil
}

// Validate checks every section against its field constraints.
func (c *AppConfig) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file exists.
func Default() *AppConfig {
	return &AppConfig{
		Preprocessing: domain.PreprocessingConfig{Lowercase: true, RemovePunctuation: true},
		Encoding:      domain.DefaultEncodingConfig(),
		Analytics: AnalyticsConfig{
			TopFeatures: 15,
			TSNE:        TSNEConfig{Iterations: 1000, EarlyExaggeration: 12, Seed: 42},
		},
		Chunker: ChunkerConfig{Type: "sentence"},
		Log:     LogConfig{Level: "info"},
	}
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "textenc", "config.yaml"), nil
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Encoding.Strategy == "" {
		cfg.Encoding.Strategy = domain.StrategyCount
	}
	cfg.Encoding = cfg.Encoding.WithDefaults()
	if cfg.Analytics.TopFeatures == 0 {
		cfg.Analytics.TopFeatures = 15
	}
	if cfg.Analytics.TSNE.Iterations == 0 {
		cfg.Analytics.TSNE.Iterations = 1000
	}
	if cfg.Analytics.TSNE.EarlyExaggeration == 0 {
		cfg.Analytics.TSNE.EarlyExaggeration = 12
	}
	if cfg.Chunker.Type == "" {
		cfg.Chunker.Type = "sentence"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}
