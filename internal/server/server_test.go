package server

import (
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/profilestore"
	"github.com/localrivet/edmundson/internal/stemmer"
	"github.com/localrivet/edmundson/internal/summarizer"
	"github.com/localrivet/edmundson/internal/tools"
)

var testError = errors.New("test error")

const newsText = "Good news today. Bad news spreads! Good, good day?"

// MockStore implements the profilestore.ProfileStore interface for testing
type MockStore struct {
	Profiles    map[string]profilestore.Profile
	DeletedIDs  []string
	ReturnError bool
}

func NewMockStore(profiles ...profilestore.Profile) *MockStore {
	m := &MockStore{Profiles: map[string]profilestore.Profile{}}
	for _, p := range profiles {
		m.Profiles[p.Name] = p
	}
	return m
}

func (m *MockStore) Initialize(dbPath string) error {
	if m.ReturnError {
		return testError
	}
	return nil
}

func (m *MockStore) Close() error {
	return nil
}

func (m *MockStore) Save(profile profilestore.Profile) (profilestore.Profile, error) {
	if m.ReturnError {
		return profilestore.Profile{}, errortypes.DatabaseError(testError, "failed to save profile")
	}
	p, err := profilestore.Normalize(profile)
	if err != nil {
		return profilestore.Profile{}, err
	}
	p.UpdatedAt = time.Unix(1700000000, 0).UTC()
	m.Profiles[p.Name] = p
	return p, nil
}

func (m *MockStore) Load(name string) (profilestore.Profile, error) {
	if m.ReturnError {
		return profilestore.Profile{}, errortypes.DatabaseError(testError, "failed to load profile")
	}
	p, ok := m.Profiles[name]
	if !ok {
		return profilestore.Profile{}, errortypes.NotFoundError(profilestore.ErrProfileNotFound, "word profile not found")
	}
	return p, nil
}

func (m *MockStore) List() ([]profilestore.Summary, error) {
	if m.ReturnError {
		return nil, errortypes.DatabaseError(testError, "failed to list profiles")
	}
	var summaries []profilestore.Summary
	for _, p := range m.Profiles {
		summaries = append(summaries, profilestore.Summary{
			Name:     p.Name,
			Revision: p.Revision,
			Bonus:    len(p.Bonus),
			Stigma:   len(p.Stigma),
			Null:     len(p.Null),
		})
	}
	sort.Slice(summaries, func(i, j int) bool { return summaries[i].Name < summaries[j].Name })
	return summaries, nil
}

func (m *MockStore) Delete(name string) error {
	if m.ReturnError {
		return errortypes.DatabaseError(testError, "failed to delete profile")
	}
	if _, ok := m.Profiles[name]; !ok {
		return errortypes.NotFoundError(profilestore.ErrProfileNotFound, "word profile not found")
	}
	delete(m.Profiles, name)
	m.DeletedIDs = append(m.DeletedIDs, name)
	return nil
}

func newTestServer(t *testing.T, store profilestore.ProfileStore) *MCPSummarizerToolServer {
	t.Helper()

	opts := summarizer.DefaultOptions()
	opts.SentencesCount = 2
	opts.Stemmer = stemmer.NameLowercase
	summ := summarizer.NewTextSummarizer(opts, nil, nil)
	if err := summ.Initialize(); err != nil {
		t.Fatalf("Failed to initialize summarizer: %v", err)
	}

	server := NewToolServer(store, summ, nil)
	if err := server.Initialize(); err != nil {
		t.Fatalf("Failed to initialize server: %v", err)
	}
	return server
}

func newsProfile() profilestore.Profile {
	return profilestore.Profile{Name: "news", Bonus: []string{"good"}, Stigma: []string{"bad"}}
}

func TestInitializeMissingDependencies(t *testing.T) {
	server := NewToolServer(nil, nil, nil)
	err := server.Initialize()
	if err == nil {
		t.Fatal("Expected error for missing dependencies")
	}
	if !errortypes.IsConfigError(err) || !errors.Is(err, ErrMissingDependencies) {
		t.Errorf("Expected config error wrapping ErrMissingDependencies, got %v", err)
	}

	if err := server.Start(); !errors.Is(err, ErrServerNotInitialized) {
		t.Errorf("Expected ErrServerNotInitialized from Start, got %v", err)
	}
}

func TestSummarizeWithProfile(t *testing.T) {
	server := newTestServer(t, NewMockStore(newsProfile()))

	response, err := server.handleSummarize(nil, tools.SummarizeRequest{
		Text:           newsText,
		Profile:        "news",
		IncludeRatings: true,
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != tools.StatusSuccess {
		t.Fatalf("Expected status 'success', got '%s' (%s)", response.Status, response.Error)
	}
	if response.Method != summarizer.MethodCue {
		t.Errorf("Expected method cue, got %s", response.Method)
	}
	if response.Summary != "Good news today. Good, good day?" {
		t.Errorf("Unexpected summary: %q", response.Summary)
	}
	if len(response.Ratings) != 3 {
		t.Fatalf("Expected 3 ratings, got %d", len(response.Ratings))
	}
	if response.Ratings[1].Rating != -1 || response.Ratings[1].Sentence != "Bad news spreads!" {
		t.Errorf("Unexpected rating for second sentence: %+v", response.Ratings[1])
	}
}

func TestSummarizeKeyWithInlineWords(t *testing.T) {
	server := newTestServer(t, NewMockStore())

	response, err := server.handleSummarize(nil, tools.SummarizeRequest{
		Text:           newsText,
		Method:         "key",
		SentencesCount: 1,
		Bonus:          []string{"good"},
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	if response.Status != tools.StatusSuccess {
		t.Fatalf("Expected status 'success', got '%s' (%s)", response.Status, response.Error)
	}
	if len(response.Sentences) != 1 || response.Sentences[0] != "Good, good day?" {
		t.Errorf("Unexpected sentences: %v", response.Sentences)
	}
	if response.Ratings != nil {
		t.Errorf("Expected ratings to be omitted, got %v", response.Ratings)
	}
}

func TestSummarizeInlineWordsOverrideProfile(t *testing.T) {
	server := newTestServer(t, NewMockStore(newsProfile()))

	// Stigma "spreads" replaces the profile stigma list, bonus stays "good".
	response, err := server.handleSummarize(nil, tools.SummarizeRequest{
		Text:           newsText,
		Profile:        "news",
		Stigma:         []string{"spreads"},
		IncludeRatings: true,
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	want := []float64{1, -1, 2}
	for i, r := range response.Ratings {
		if r.Rating != want[i] {
			t.Errorf("Rating %d = %v, want %v", i, r.Rating, want[i])
		}
	}
}

func TestSummarizeDefaultProfile(t *testing.T) {
	server := newTestServer(t, NewMockStore(newsProfile()))
	server.SetDefaultProfile("news")

	response, err := server.handleSummarize(nil, tools.SummarizeRequest{Text: newsText})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if response.Status != tools.StatusSuccess {
		t.Errorf("Expected status 'success', got '%s' (%s)", response.Status, response.Error)
	}
}

func TestSummarizeErrors(t *testing.T) {
	tests := []struct {
		name     string
		store    *MockStore
		req      tools.SummarizeRequest
		wantCode string
		wantText string
	}{
		{
			name:     "empty bonus words",
			store:    NewMockStore(),
			req:      tools.SummarizeRequest{Text: newsText},
			wantCode: StatusCodeConfigError,
			wantText: "Set of bonus words is empty",
		},
		{
			name:     "empty stigma words",
			store:    NewMockStore(),
			req:      tools.SummarizeRequest{Text: newsText, Bonus: []string{"good"}},
			wantCode: StatusCodeConfigError,
			wantText: "Set of stigma words is empty",
		},
		{
			name:     "unknown profile",
			store:    NewMockStore(),
			req:      tools.SummarizeRequest{Text: newsText, Profile: "missing"},
			wantCode: StatusCodeNotFound,
		},
		{
			name:     "unknown method",
			store:    NewMockStore(newsProfile()),
			req:      tools.SummarizeRequest{Text: newsText, Profile: "news", Method: "title"},
			wantCode: StatusCodeValidationError,
		},
		{
			name:     "negative count",
			store:    NewMockStore(newsProfile()),
			req:      tools.SummarizeRequest{Text: newsText, Profile: "news", SentencesCount: -1},
			wantCode: StatusCodeValidationError,
		},
		{
			name:     "store failure",
			store:    &MockStore{ReturnError: true},
			req:      tools.SummarizeRequest{Text: newsText, Profile: "news"},
			wantCode: StatusCodeDatabaseError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTestServer(t, tt.store)

			response, err := server.handleSummarize(nil, tt.req)
			if err != nil {
				t.Fatalf("Handler returned error: %v", err)
			}

			if response.Status != tools.StatusError {
				t.Fatalf("Expected status 'error', got '%s'", response.Status)
			}
			if response.Code != tt.wantCode {
				t.Errorf("Expected code %s, got %s (%s)", tt.wantCode, response.Code, response.Error)
			}
			if tt.wantText != "" && !strings.Contains(response.Error, tt.wantText) {
				t.Errorf("Expected error to contain %q, got %q", tt.wantText, response.Error)
			}
		})
	}
}

func TestProfileTools(t *testing.T) {
	store := NewMockStore()
	server := newTestServer(t, store)

	saved, err := server.handleSaveProfile(nil, tools.SaveProfileRequest{
		Name:   "finance",
		Bonus:  []string{"profit", "growth"},
		Stigma: []string{"loss"},
	})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if saved.Status != tools.StatusSuccess || saved.Revision == "" {
		t.Fatalf("Unexpected save response: %+v", saved)
	}

	got, err := server.handleGetProfile(nil, tools.GetProfileRequest{Name: "finance"})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if got.Status != tools.StatusSuccess {
		t.Fatalf("Expected status 'success', got '%s'", got.Status)
	}
	if strings.Join(got.Bonus, ",") != "growth,profit" {
		t.Errorf("Unexpected bonus words: %v", got.Bonus)
	}
	if got.UpdatedAt != "2023-11-14T22:13:20Z" {
		t.Errorf("Unexpected updated_at: %s", got.UpdatedAt)
	}

	list, err := server.handleListProfiles(nil, tools.ListProfilesRequest{})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if len(list.Profiles) != 1 || list.Profiles[0].Bonus != 2 {
		t.Errorf("Unexpected list response: %+v", list)
	}

	deleted, err := server.handleDeleteProfile(nil, tools.DeleteProfileRequest{Name: "finance"})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if deleted.Status != tools.StatusSuccess || len(store.DeletedIDs) != 1 {
		t.Errorf("Unexpected delete response: %+v", deleted)
	}

	missing, err := server.handleGetProfile(nil, tools.GetProfileRequest{Name: "finance"})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if missing.Status != tools.StatusError || missing.Code != StatusCodeNotFound {
		t.Errorf("Expected not found error, got %+v", missing)
	}
}

func TestSaveProfileValidation(t *testing.T) {
	server := newTestServer(t, NewMockStore())

	response, err := server.handleSaveProfile(nil, tools.SaveProfileRequest{Name: " "})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if response.Status != tools.StatusError || response.Code != StatusCodeValidationError {
		t.Errorf("Expected validation error, got %+v", response)
	}
}

func TestProfileToolsStoreErrors(t *testing.T) {
	server := newTestServer(t, &MockStore{ReturnError: true})

	list, _ := server.handleListProfiles(nil, tools.ListProfilesRequest{})
	if list.Status != tools.StatusError || list.Code != StatusCodeDatabaseError {
		t.Errorf("Expected database error from list, got %+v", list)
	}

	deleted, _ := server.handleDeleteProfile(nil, tools.DeleteProfileRequest{Name: "x"})
	if deleted.Status != tools.StatusError || deleted.Code != StatusCodeDatabaseError {
		t.Errorf("Expected database error from delete, got %+v", deleted)
	}
}

func TestSummarizerStats(t *testing.T) {
	server := newTestServer(t, NewMockStore(newsProfile()))

	if _, err := server.handleSummarize(nil, tools.SummarizeRequest{Text: newsText, Profile: "news"}); err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}

	stats, err := server.handleSummarizerStats(nil, tools.SummarizerStatsRequest{Reset: true})
	if err != nil {
		t.Fatalf("Handler returned error: %v", err)
	}
	if stats.Status != tools.StatusSuccess {
		t.Fatalf("Expected status 'success', got '%s'", stats.Status)
	}

	var report summarizer.HealthReport
	if err := json.Unmarshal([]byte(stats.Report), &report); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	if report.TotalRequests != 1 || report.Calls[summarizer.MethodCue] != 1 {
		t.Errorf("Unexpected report: %+v", report)
	}
	if !strings.Contains(stats.Metrics, "summarizer.success") {
		t.Errorf("Expected metrics dump to mention summarizer.success, got %s", stats.Metrics)
	}

	after, _ := server.handleSummarizerStats(nil, tools.SummarizerStatsRequest{})
	if err := json.Unmarshal([]byte(after.Report), &report); err != nil {
		t.Fatalf("Failed to parse report: %v", err)
	}
	if report.TotalRequests != 0 {
		t.Errorf("Expected metrics to be reset, got %d requests", report.TotalRequests)
	}
}
