// Package tools defines the request and response schemas of the MCP tools
// exposed by the edmundson server.
package tools

const (
	// ToolSummarize is the name of the summarize MCP tool
	ToolSummarize = "summarize"

	// ToolSaveProfile is the name of the save_profile MCP tool
	ToolSaveProfile = "save_profile"

	// ToolGetProfile is the name of the get_profile MCP tool
	ToolGetProfile = "get_profile"

	// ToolListProfiles is the name of the list_profiles MCP tool
	ToolListProfiles = "list_profiles"

	// ToolDeleteProfile is the name of the delete_profile MCP tool
	ToolDeleteProfile = "delete_profile"

	// ToolSummarizerStats is the name of the summarizer_stats MCP tool
	ToolSummarizerStats = "summarizer_stats"

	// StatusSuccess marks a successful tool call
	StatusSuccess = "success"

	// StatusError marks a failed tool call; Code and Error describe the failure
	StatusError = "error"
)

// SummarizeRequest defines the input schema for the summarize tool.
// Zero values fall back to the server defaults.
type SummarizeRequest struct {
	// Text is the plain text to summarize
	Text string `json:"text"`

	// Method is "cue" or "key"
	Method string `json:"method,omitempty"`

	// SentencesCount is the number of sentences to select
	SentencesCount int `json:"sentences_count,omitempty"`

	// Profile names a stored word profile
	Profile string `json:"profile,omitempty"`

	// Bonus, Stigma and Null replace the matching profile lists when set
	Bonus  []string `json:"bonus,omitempty"`
	Stigma []string `json:"stigma,omitempty"`
	Null   []string `json:"null,omitempty"`

	// BonusWordValue and StigmaWordValue weight the cue method
	BonusWordValue  *float64 `json:"bonus_word_value,omitempty"`
	StigmaWordValue *float64 `json:"stigma_word_value,omitempty"`

	// Weight is the key method significance threshold
	Weight *float64 `json:"weight,omitempty"`

	// Stemmer is "null", "lowercase" or "snowball"
	Stemmer string `json:"stemmer,omitempty"`

	// Language is the stemmer language
	Language string `json:"language,omitempty"`

	// IncludeRatings adds the rating of every sentence to the response
	IncludeRatings bool `json:"include_ratings,omitempty"`
}

// SentenceRating is the rating of one sentence
type SentenceRating struct {
	Order    int     `json:"order"`
	Rating   float64 `json:"rating"`
	Sentence string  `json:"sentence"`
}

// SummarizeResponse defines the output schema for the summarize tool
type SummarizeResponse struct {
	// Status indicates the result of the operation ("success" or "error")
	Status string `json:"status"`

	// Method is the method that produced the summary
	Method string `json:"method,omitempty"`

	// Summary is the selected sentences joined by a space
	Summary string `json:"summary"`

	// Sentences holds the selected sentences in document order
	Sentences []string `json:"sentences"`

	// Ratings holds every sentence rating when requested
	Ratings []SentenceRating `json:"ratings,omitempty"`

	// Code is a machine readable error code if Status is "error"
	Code string `json:"code,omitempty"`

	// Error contains an error message if Status is "error"
	Error string `json:"error,omitempty"`
}

// SaveProfileRequest defines the input schema for the save_profile tool
type SaveProfileRequest struct {
	Name   string   `json:"name"`
	Bonus  []string `json:"bonus"`
	Stigma []string `json:"stigma"`
	Null   []string `json:"null,omitempty"`
}

// SaveProfileResponse defines the output schema for the save_profile tool
type SaveProfileResponse struct {
	Status   string `json:"status"`
	Name     string `json:"name,omitempty"`
	Revision string `json:"revision,omitempty"`
	Code     string `json:"code,omitempty"`
	Error    string `json:"error,omitempty"`
}

// GetProfileRequest defines the input schema for the get_profile tool
type GetProfileRequest struct {
	Name string `json:"name"`
}

// GetProfileResponse defines the output schema for the get_profile tool
type GetProfileResponse struct {
	Status    string   `json:"status"`
	Name      string   `json:"name,omitempty"`
	Bonus     []string `json:"bonus,omitempty"`
	Stigma    []string `json:"stigma,omitempty"`
	Null      []string `json:"null,omitempty"`
	Revision  string   `json:"revision,omitempty"`
	UpdatedAt string   `json:"updated_at,omitempty"`
	Code      string   `json:"code,omitempty"`
	Error     string   `json:"error,omitempty"`
}

// ListProfilesRequest defines the input schema for the list_profiles tool
type ListProfilesRequest struct{}

// ProfileSummary describes a stored profile without its words
type ProfileSummary struct {
	Name      string `json:"name"`
	Revision  string `json:"revision"`
	UpdatedAt string `json:"updated_at"`
	Bonus     int    `json:"bonus"`
	Stigma    int    `json:"stigma"`
	Null      int    `json:"null"`
}

// ListProfilesResponse defines the output schema for the list_profiles tool
type ListProfilesResponse struct {
	Status   string           `json:"status"`
	Profiles []ProfileSummary `json:"profiles"`
	Code     string           `json:"code,omitempty"`
	Error    string           `json:"error,omitempty"`
}

// DeleteProfileRequest defines the input schema for the delete_profile tool
type DeleteProfileRequest struct {
	Name string `json:"name"`
}

// DeleteProfileResponse defines the output schema for the delete_profile tool
type DeleteProfileResponse struct {
	Status string `json:"status"`
	Code   string `json:"code,omitempty"`
	Error  string `json:"error,omitempty"`
}

// SummarizerStatsRequest defines the input schema for the summarizer_stats tool
type SummarizerStatsRequest struct {
	// Reset clears the metrics after the report is taken
	Reset bool `json:"reset,omitempty"`
}

// SummarizerStatsResponse defines the output schema for the summarizer_stats tool
type SummarizerStatsResponse struct {
	Status string `json:"status"`

	// Report is the JSON health report of the summarizer
	Report string `json:"report,omitempty"`

	// Metrics is the plain text dump of every collected metric
	Metrics string `json:"metrics,omitempty"`

	Code  string `json:"code,omitempty"`
	Error string `json:"error,omitempty"`
}
