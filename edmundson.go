// Package edmundson summarizes plain text with the Edmundson cue and key
// methods and serves the summarizer as MCP tools.
package edmundson

import (
	"log/slog"

	"github.com/localrivet/edmundson/internal/config"
	"github.com/localrivet/edmundson/internal/document"
	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/profilestore"
	"github.com/localrivet/edmundson/internal/server"
	"github.com/localrivet/edmundson/internal/summarizer"
	"github.com/localrivet/edmundson/internal/telemetry"
)

// Config represents the configuration for the edmundson service.
type Config = config.Config

// Options configures a summarization run.
type Options = summarizer.Options

// WordLists holds the raw bonus, stigma and null words.
type WordLists = summarizer.WordLists

// Profile is a named set of word lists.
type Profile = profilestore.Profile

// Server represents the edmundson service.
type Server struct {
	config     *config.Config
	store      profilestore.ProfileStore
	summarizer *summarizer.TextSummarizer
	toolServer *server.MCPSummarizerToolServer
	logger     *slog.Logger
}

// ServerOptions defines the options for creating a new Server.
type ServerOptions struct {
	Config     *Config      // Pre-filled config. If nil, ConfigPath is used.
	ConfigPath string       // Path to config file. Used if Config is nil. If both are empty, DefaultConfig() is used.
	Logger     *slog.Logger // External logger. If nil, slog.Default() is used.
}

// NewServer creates a new Server with the given options.
func NewServer(opts ServerOptions) (*Server, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	var cfg *Config
	var err error

	if opts.Config != nil {
		cfg = opts.Config
		logger.Debug("Using provided Config object for server initialization")
	} else if opts.ConfigPath != "" {
		logger.Debug("Loading configuration for server initialization", "path", opts.ConfigPath)
		cfg, err = config.LoadConfigWithPath(opts.ConfigPath)
		if err != nil {
			return nil, errortypes.ConfigError(err, "Failed to load configuration from path: "+opts.ConfigPath)
		}
	} else {
		logger.Debug("No Config object or ConfigPath provided, using default configuration")
		cfg = DefaultConfig()
	}

	store, summ, err := CreateComponents(cfg, logger)
	if err != nil {
		return nil, err
	}

	toolServer := server.NewToolServer(store, summ, logger)
	toolServer.SetDefaultProfile(cfg.Summarizer.Profile)
	if err := toolServer.Initialize(); err != nil {
		store.Close()
		return nil, errortypes.ConfigError(err, "Failed to initialize MCP summarizer tool server component")
	}

	logger.Info("Edmundson server successfully initialized")
	return &Server{
		config:     cfg,
		store:      store,
		summarizer: summ,
		toolServer: toolServer,
		logger:     logger,
	}, nil
}

// DefaultConfig returns the default configuration for the edmundson service.
func DefaultConfig() *Config {
	return config.NewConfig()
}

// Start starts the MCP server on stdio. It blocks until stdin is closed.
func (s *Server) Start() error {
	s.logger.Info("Starting edmundson service")
	return s.toolServer.Start()
}

// Stop stops the service and closes the profile store.
func (s *Server) Stop() error {
	s.logger.Info("Stopping edmundson service")
	if err := s.toolServer.Stop(); err != nil {
		s.logger.Error("Error stopping tool server", "error", err)
		return err
	}

	if err := s.store.Close(); err != nil {
		s.logger.Error("Failed to close store", "error", err)
		return err
	}

	s.logger.Info("Edmundson service stopped")
	return nil
}

// Options returns the default summarization options of the server. Words
// come from the configured default profile when it exists.
func (s *Server) Options() (Options, error) {
	opts := s.summarizer.Options()
	if name := s.config.Summarizer.Profile; name != "" {
		profile, err := s.store.Load(name)
		if err != nil {
			return opts, err
		}
		opts.Words = profile.Words()
	}
	return opts, nil
}

// Summarize summarizes text with opts and returns the selected sentences in
// document order.
func (s *Server) Summarize(text string, opts Options) ([]string, error) {
	result, err := s.summarizer.Run(text, opts)
	if err != nil {
		s.logger.Debug("Summarization failed", "method", opts.Method, "error", err)
		return nil, err
	}
	return document.Texts(result.Sentences), nil
}

// SummarizeWithProfile summarizes text with the default options and the
// words of the named profile.
func (s *Server) SummarizeWithProfile(text, profile string) ([]string, error) {
	p, err := s.store.Load(profile)
	if err != nil {
		return nil, err
	}
	opts := s.summarizer.Options()
	opts.Words = p.Words()
	return s.Summarize(text, opts)
}

// SaveProfile creates or replaces a word profile.
func (s *Server) SaveProfile(profile Profile) (Profile, error) {
	return s.store.Save(profile)
}

// GetStore returns the profile store used by the server.
func (s *Server) GetStore() profilestore.ProfileStore {
	return s.store
}

// GetSummarizer returns the summarizer used by the server.
func (s *Server) GetSummarizer() *summarizer.TextSummarizer {
	return s.summarizer
}

// GetToolServer returns the MCP tool server, e.g. to register its tools on
// another MCP server.
func (s *Server) GetToolServer() *server.MCPSummarizerToolServer {
	return s.toolServer
}

// CreateComponents creates and initializes the profile store and the
// summarizer without creating a server. Both share one metrics collector.
func CreateComponents(cfg *Config, logger *slog.Logger) (profilestore.ProfileStore, *summarizer.TextSummarizer, error) {
	if logger == nil {
		logger = slog.Default()
	}

	metrics := telemetry.NewMetricsCollector()

	logger.Debug("Initializing SQLite profile store", "path", cfg.Store.SQLitePath)
	store := profilestore.NewSQLiteProfileStore(metrics)
	if err := store.Initialize(cfg.Store.SQLitePath); err != nil {
		return nil, nil, err
	}

	opts := cfg.SummarizerOptions()
	logger.Debug("Initializing summarizer", "method", opts.Method, "stemmer", opts.Stemmer, "language", opts.Language)
	summ := summarizer.NewTextSummarizer(opts, metrics, logger)
	if err := summ.Initialize(); err != nil {
		store.Close()
		return nil, nil, err
	}

	return store, summ, nil
}

// Summarize is a convenience function that summarizes text without a
// profile store or server.
func Summarize(text string, opts Options) ([]string, error) {
	summ := summarizer.NewTextSummarizer(opts, nil, nil)
	if err := summ.Initialize(); err != nil {
		return nil, err
	}
	result, err := summ.Run(text, opts)
	if err != nil {
		return nil, err
	}
	return document.Texts(result.Sentences), nil
}
