package config

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/localrivet/configurator"

	"github.com/localrivet/edmundson/internal/summarizer"
)

// Config represents the Edmundson configuration
type Config struct {
	// Store contains storage-related configuration.
	Store struct {
		// SQLitePath is the path to the SQLite database holding word profiles.
		SQLitePath string `json:"sqlite_path" env:"SQLITE_PATH" validate:"required"`
	} `json:"store"`

	// Summarizer contains the default summarization settings.
	Summarizer struct {
		// Method is the default method ("cue", "key").
		Method string `json:"method" env:"SUMMARIZER_METHOD" validate:"required"`

		// SentencesCount is the default number of sentences to select.
		SentencesCount int `json:"sentences_count" env:"SUMMARIZER_SENTENCES_COUNT" validate:"min:1"`

		// Stemmer is the word stemmer ("null", "lowercase", "snowball").
		Stemmer string `json:"stemmer" env:"SUMMARIZER_STEMMER"`

		// Language is the stemmer language.
		Language string `json:"language" env:"SUMMARIZER_LANGUAGE"`

		// BonusWordValue is the cue method weight of bonus words.
		BonusWordValue float64 `json:"bonus_word_value" env:"SUMMARIZER_BONUS_WORD_VALUE"`

		// StigmaWordValue is the cue method weight of stigma words.
		StigmaWordValue float64 `json:"stigma_word_value" env:"SUMMARIZER_STIGMA_WORD_VALUE"`

		// Weight is the key method significance threshold.
		Weight float64 `json:"weight" env:"SUMMARIZER_WEIGHT"`

		// Profile is the stored word profile used when no words are given.
		Profile string `json:"profile" env:"SUMMARIZER_PROFILE"`
	} `json:"summarizer"`

	// Logging contains logging-related configuration.
	Logging struct {
		// Level is the minimum log level to display ("debug", "info", "warn", "error").
		Level string `json:"level" env:"LOG_LEVEL" validate:"required"`

		// Format is the log format to use ("text", "json").
		Format string `json:"format" env:"LOG_FORMAT"`
	} `json:"logging"`

	// Internal state (not saved to config file)
	configPath     string       `json:"-"`
	mutex          sync.RWMutex `json:"-"`
	lastModifiedAt time.Time    `json:"-"`
}

// Default configuration values
const (
	DefaultConfigFilename = ".edmundsonconfig"
	DefaultSQLitePath     = ".edmundson.db"
	DefaultLogLevel       = "info"
	DefaultLogFormat      = "text"
	EnvPrefix             = "EDMUNDSON"
)

// NewConfig creates a new Config instance with default values
func NewConfig() *Config {
	defaults := summarizer.DefaultOptions()

	config := &Config{}
	config.Store.SQLitePath = DefaultSQLitePath
	config.Summarizer.Method = defaults.Method
	config.Summarizer.SentencesCount = defaults.SentencesCount
	config.Summarizer.Stemmer = defaults.Stemmer
	config.Summarizer.Language = defaults.Language
	config.Summarizer.BonusWordValue = defaults.BonusWordValue
	config.Summarizer.StigmaWordValue = defaults.StigmaWordValue
	config.Summarizer.Weight = defaults.Weight
	config.Logging.Level = DefaultLogLevel
	config.Logging.Format = DefaultLogFormat
	return config
}

// LoadConfigWithPath loads the configuration from a specific path. Values
// from a .env file in the working directory are exported to the environment
// first, then environment variables prefixed with EDMUNDSON_ override the
// file.
func LoadConfigWithPath(configPath string) (*Config, error) {
	// Configuration loading logs go to stderr so stdout stays usable for
	// summaries and the stdio transport.
	stdLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))

	// A missing .env file is not an error
	_ = godotenv.Load()

	cfg := NewConfig()

	// Try to find config file if path is default
	if configPath == DefaultConfigFilename {
		foundPath, err := configurator.FindConfigFile(configPath)
		if err == nil {
			configPath = foundPath
			stdLogger.Debug("Found config file at " + foundPath)
		}
	}

	config := configurator.New(stdLogger).
		WithProvider(configurator.NewDefaultProvider())

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		stdLogger.Debug("Config file not found, using default configuration", "path", configPath)
	} else {
		stdLogger.Debug("Loading configuration", "path", configPath)
		config = config.WithProvider(configurator.NewFileProvider(configPath))
	}

	config = config.
		WithProvider(configurator.NewEnvProvider(EnvPrefix)).
		WithValidator(configurator.NewDefaultValidator())

	ctx := context.Background()
	if err := config.Load(ctx, cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// Store the config path for future operations
	cfg.configPath = configPath
	cfg.lastModifiedAt = time.Now()

	return cfg, nil
}

// SaveToFile saves the configuration to the specified file
func (c *Config) SaveToFile(path string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	// Create directory if needed
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	if err := configurator.SaveToFile(c, path, configurator.FormatJSON); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	c.configPath = path
	c.lastModifiedAt = time.Now()

	return nil
}

// Save saves the configuration to the last used file path
func (c *Config) Save() error {
	if c.configPath == "" {
		c.configPath = DefaultConfigFilename
	}
	return c.SaveToFile(c.configPath)
}

// GetConfigPath returns the path of the currently loaded configuration file
func (c *Config) GetConfigPath() string {
	return c.configPath
}

// SummarizerOptions converts the summarizer section into summarizer options.
// Word lists are left empty; they come from profiles or flags.
func (c *Config) SummarizerOptions() summarizer.Options {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	return summarizer.Options{
		Method:          c.Summarizer.Method,
		SentencesCount:  c.Summarizer.SentencesCount,
		Stemmer:         c.Summarizer.Stemmer,
		Language:        c.Summarizer.Language,
		BonusWordValue:  c.Summarizer.BonusWordValue,
		StigmaWordValue: c.Summarizer.StigmaWordValue,
		Weight:          c.Summarizer.Weight,
	}
}
