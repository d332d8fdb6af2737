// Package server provides the MCP server implementation for the edmundson
// summarizer.
package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/localrivet/gomcp/server"

	"github.com/localrivet/edmundson/internal/document"
	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/logger"
	"github.com/localrivet/edmundson/internal/profilestore"
	"github.com/localrivet/edmundson/internal/summarizer"
	"github.com/localrivet/edmundson/internal/tools"
)

// Common server error types
var (
	ErrServerNotInitialized = errors.New("server not initialized")
	ErrMissingDependencies  = errors.New("one or more required dependencies are nil")
)

// toolCount is the number of tools registered by RegisterTools.
const toolCount = 6

// MCPSummarizerToolServer implements the SummarizerToolServer interface
// for handling MCP tool calls related to summarization and word profiles.
type MCPSummarizerToolServer struct {
	store          profilestore.ProfileStore
	summarizer     *summarizer.TextSummarizer
	logger         *slog.Logger
	defaultProfile string
	mcpServer      server.Server
}

// NewToolServer creates a new MCPSummarizerToolServer instance. A nil logger
// is replaced by slog.Default().
func NewToolServer(store profilestore.ProfileStore, summ *summarizer.TextSummarizer, log *slog.Logger) *MCPSummarizerToolServer {
	if log == nil {
		log = slog.Default()
	}
	return &MCPSummarizerToolServer{
		store:      store,
		summarizer: summ,
		logger:     logger.WithContext(log, "server"),
	}
}

// SetDefaultProfile names the profile used by summarize requests that carry
// neither a profile nor any word list.
func (s *MCPSummarizerToolServer) SetDefaultProfile(name string) {
	s.defaultProfile = name
}

// Initialize creates the MCP server and registers the tools.
func (s *MCPSummarizerToolServer) Initialize() error {
	s.logger.Info("Initializing MCP Summarizer Tool Server")

	if s.store == nil || s.summarizer == nil {
		return errortypes.ConfigError(ErrMissingDependencies, "server initialization failed")
	}

	s.mcpServer = s.RegisterTools(server.NewServer("edmundson"))
	s.logger.Info("MCP Summarizer Tool Server initialized successfully", "tool_count", toolCount)
	return nil
}

// RegisterTools registers the summarizer tools on srv and returns it, so the
// tools can be embedded in another MCP server.
func (s *MCPSummarizerToolServer) RegisterTools(srv server.Server) server.Server {
	return srv.
		Tool(tools.ToolSummarize, "Summarize text with the Edmundson cue or key method",
			s.handleSummarize).
		Tool(tools.ToolSaveProfile, "Create or replace a named word profile",
			s.handleSaveProfile).
		Tool(tools.ToolGetProfile, "Get the word lists of a profile",
			s.handleGetProfile).
		Tool(tools.ToolListProfiles, "List the stored word profiles",
			s.handleListProfiles).
		Tool(tools.ToolDeleteProfile, "Delete a word profile",
			s.handleDeleteProfile).
		Tool(tools.ToolSummarizerStats, "Report summarizer health and metrics",
			s.handleSummarizerStats)
}

// Start starts the MCP server on the stdio transport.
func (s *MCPSummarizerToolServer) Start() error {
	if s.mcpServer == nil {
		return errortypes.ConfigError(ErrServerNotInitialized, "cannot start server")
	}

	s.logger.Info("Starting MCP Summarizer Tool Server")
	return s.mcpServer.AsStdio().Run()
}

// Stop gracefully shuts down the MCP server.
func (s *MCPSummarizerToolServer) Stop() error {
	s.logger.Info("Stopping MCP Summarizer Tool Server")
	// The server will exit when stdin is closed
	return nil
}

// fail logs err and returns its in-band code and message.
func (s *MCPSummarizerToolServer) fail(err error) (string, string) {
	errortypes.LogError(s.logger, err)
	resp := errorToResponse(err)
	return resp.Code, resp.Message
}

// summarizeOptions merges a request into the summarizer defaults.
func (s *MCPSummarizerToolServer) summarizeOptions(req tools.SummarizeRequest) (summarizer.Options, error) {
	opts := s.summarizer.Options()
	if req.Method != "" {
		opts.Method = req.Method
	}
	if req.SentencesCount != 0 {
		opts.SentencesCount = req.SentencesCount
	}
	if req.Stemmer != "" {
		opts.Stemmer = req.Stemmer
	}
	if req.Language != "" {
		opts.Language = req.Language
	}
	if req.BonusWordValue != nil {
		opts.BonusWordValue = *req.BonusWordValue
	}
	if req.StigmaWordValue != nil {
		opts.StigmaWordValue = *req.StigmaWordValue
	}
	if req.Weight != nil {
		opts.Weight = *req.Weight
	}

	profileName := req.Profile
	if profileName == "" && len(req.Bonus) == 0 && len(req.Stigma) == 0 && len(req.Null) == 0 {
		profileName = s.defaultProfile
	}
	if profileName != "" {
		profile, err := s.store.Load(profileName)
		if err != nil {
			return opts, err
		}
		opts.Words = profile.Words()
	}

	if len(req.Bonus) > 0 {
		opts.Words.Bonus = req.Bonus
	}
	if len(req.Stigma) > 0 {
		opts.Words.Stigma = req.Stigma
	}
	if len(req.Null) > 0 {
		opts.Words.Null = req.Null
	}
	return opts, nil
}

// handleSummarize handles the summarize MCP tool call.
func (s *MCPSummarizerToolServer) handleSummarize(ctx *server.Context, req tools.SummarizeRequest) (tools.SummarizeResponse, error) {
	s.logger.Info("Processing summarize request", "text_length", len(req.Text), "method", req.Method, "profile", req.Profile)

	response := tools.SummarizeResponse{
		Status:    tools.StatusSuccess,
		Sentences: []string{},
	}

	opts, err := s.summarizeOptions(req)
	if err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(err)
		return response, nil
	}

	result, err := s.summarizer.Run(req.Text, opts)
	if err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(err)
		return response, nil
	}

	response.Method = result.Method
	response.Summary = result.Text()
	response.Sentences = document.Texts(result.Sentences)
	if req.IncludeRatings {
		response.Ratings = make([]tools.SentenceRating, len(result.Ratings))
		for i, r := range result.Ratings {
			response.Ratings[i] = tools.SentenceRating{
				Order:    r.Order,
				Rating:   r.Rating,
				Sentence: r.Sentence.String(),
			}
		}
	}

	s.logger.Info("Successfully summarized text", "method", result.Method, "selected", len(result.Sentences), "rated", len(result.Ratings))
	return response, nil
}

// handleSaveProfile handles the save_profile MCP tool call.
func (s *MCPSummarizerToolServer) handleSaveProfile(ctx *server.Context, req tools.SaveProfileRequest) (tools.SaveProfileResponse, error) {
	s.logger.Info("Processing save_profile request", "name", req.Name)

	response := tools.SaveProfileResponse{
		Status: tools.StatusSuccess,
	}

	saved, err := s.store.Save(profilestore.Profile{
		Name:   req.Name,
		Bonus:  req.Bonus,
		Stigma: req.Stigma,
		Null:   req.Null,
	})
	if err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(err)
		return response, nil
	}

	response.Name = saved.Name
	response.Revision = saved.Revision
	s.logger.Info("Successfully saved profile", "name", saved.Name, "revision", saved.Revision)
	return response, nil
}

// handleGetProfile handles the get_profile MCP tool call.
func (s *MCPSummarizerToolServer) handleGetProfile(ctx *server.Context, req tools.GetProfileRequest) (tools.GetProfileResponse, error) {
	s.logger.Info("Processing get_profile request", "name", req.Name)

	response := tools.GetProfileResponse{
		Status: tools.StatusSuccess,
	}

	profile, err := s.store.Load(req.Name)
	if err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(err)
		return response, nil
	}

	response.Name = profile.Name
	response.Bonus = profile.Bonus
	response.Stigma = profile.Stigma
	response.Null = profile.Null
	response.Revision = profile.Revision
	response.UpdatedAt = profile.UpdatedAt.Format(time.RFC3339)
	return response, nil
}

// handleListProfiles handles the list_profiles MCP tool call.
func (s *MCPSummarizerToolServer) handleListProfiles(ctx *server.Context, req tools.ListProfilesRequest) (tools.ListProfilesResponse, error) {
	s.logger.Info("Processing list_profiles request")

	response := tools.ListProfilesResponse{
		Status:   tools.StatusSuccess,
		Profiles: []tools.ProfileSummary{},
	}

	summaries, err := s.store.List()
	if err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(err)
		return response, nil
	}

	for _, summary := range summaries {
		response.Profiles = append(response.Profiles, tools.ProfileSummary{
			Name:      summary.Name,
			Revision:  summary.Revision,
			UpdatedAt: summary.UpdatedAt.Format(time.RFC3339),
			Bonus:     summary.Bonus,
			Stigma:    summary.Stigma,
			Null:      summary.Null,
		})
	}

	s.logger.Info("Successfully listed profiles", "count", len(response.Profiles))
	return response, nil
}

// handleDeleteProfile handles the delete_profile MCP tool call.
func (s *MCPSummarizerToolServer) handleDeleteProfile(ctx *server.Context, req tools.DeleteProfileRequest) (tools.DeleteProfileResponse, error) {
	s.logger.Info("Processing delete_profile request", "name", req.Name)

	response := tools.DeleteProfileResponse{
		Status: tools.StatusSuccess,
	}

	if err := s.store.Delete(req.Name); err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(err)
		return response, nil
	}

	s.logger.Info("Successfully deleted profile", "name", req.Name)
	return response, nil
}

// handleSummarizerStats handles the summarizer_stats MCP tool call.
func (s *MCPSummarizerToolServer) handleSummarizerStats(ctx *server.Context, req tools.SummarizerStatsRequest) (tools.SummarizerStatsResponse, error) {
	s.logger.Info("Processing summarizer_stats request", "reset", req.Reset)

	response := tools.SummarizerStatsResponse{
		Status: tools.StatusSuccess,
	}

	report, err := summarizer.CreateHealthReportJSON(s.summarizer)
	if err != nil {
		response.Status = tools.StatusError
		response.Code, response.Error = s.fail(errortypes.InternalError(err, "failed to create health report"))
		return response, nil
	}
	response.Report = report
	response.Metrics = s.summarizer.Metrics().GetReport()

	if req.Reset {
		if err := summarizer.ResetMetrics(s.summarizer); err != nil {
			response.Status = tools.StatusError
			response.Code, response.Error = s.fail(errortypes.InternalError(err, "failed to reset metrics"))
		}
	}
	return response, nil
}
