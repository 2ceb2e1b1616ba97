package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/lemmaflow/pkg/lemmaflow/internalerr"
)

// Config is the full run configuration. Every field can also be set from
// the command line.
type Config struct {
	Input     string `yaml:"input"`
	Stopwords string `yaml:"stopwords"`
	Lexicon   string `yaml:"lexicon"`
	Output    string `yaml:"output"`
	DB        string `yaml:"db"`

	Limit     int  `yaml:"limit"` // 0 = unlimited
	ChunkSize int  `yaml:"chunk_size"`
	BatchSize int  `yaml:"batch_size"`
	Workers   int  `yaml:"workers"`
	StripHTML bool `yaml:"strip_html"`

	// NoLemmatizer skips loading the dictionary lemmatizer; tokens are
	// only lowercased and filtered.
	NoLemmatizer bool `yaml:"no_lemmatizer"`

	Log Log `yaml:"log"`
}

// Log configures the logger
type Log struct {
	Level string `yaml:"level"`
	JSON  bool   `yaml:"json"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		ChunkSize: 500,
		BatchSize: 50,
		Workers:   runtime.NumCPU(),
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads a YAML config file on top of Default.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("%w: %s: %v", internalerr.ErrInvalidConfig, path, err)
	}

	return cfg, nil
}

// Validate checks scalar parameters. Chunk size and worker count are
// independent; only their sign is checked.
func (c Config) Validate() error {
	if c.ChunkSize <= 0 {
		return fmt.Errorf("%w: chunk_size must be positive, got %d", internalerr.ErrInvalidConfig, c.ChunkSize)
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("%w: batch_size must be positive, got %d", internalerr.ErrInvalidConfig, c.BatchSize)
	}
	if c.Workers <= 0 {
		return fmt.Errorf("%w: workers must be positive, got %d", internalerr.ErrInvalidConfig, c.Workers)
	}
	if c.Limit < 0 {
		return fmt.Errorf("%w: limit must not be negative, got %d", internalerr.ErrInvalidConfig, c.Limit)
	}
	return nil
}
