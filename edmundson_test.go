package edmundson

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/summarizer"
)

const marketText = "Stocks rose sharply. Analysts were hardly surprised. Stocks and bonds rose."

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := DefaultConfig()
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "edmundson.db")
	cfg.Summarizer.Profile = "markets"

	srv, err := NewServer(ServerOptions{Config: cfg})
	require.NoError(t, err)
	t.Cleanup(func() { srv.Stop() })
	return srv
}

func TestServerOptionsUseDefaultProfile(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.Options()
	require.Error(t, err)
	assert.True(t, errortypes.IsNotFoundError(err))

	_, err = srv.SaveProfile(Profile{
		Name:   "markets",
		Bonus:  []string{"rose"},
		Stigma: []string{"hardly"},
	})
	require.NoError(t, err)

	opts, err := srv.Options()
	require.NoError(t, err)
	assert.Equal(t, []string{"rose"}, opts.Words.Bonus)

	// first and last sentence tie at 1; the earlier one wins
	opts.SentencesCount = 1
	sentences, err := srv.Summarize(marketText, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stocks rose sharply."}, sentences)
}

func TestServerSummarizeWithProfile(t *testing.T) {
	srv := newTestServer(t)

	_, err := srv.SummarizeWithProfile(marketText, "missing")
	assert.True(t, errortypes.IsNotFoundError(err))

	_, err = srv.SaveProfile(Profile{
		Name:   "markets",
		Bonus:  []string{"rose"},
		Stigma: []string{"hardly"},
	})
	require.NoError(t, err)

	sentences, err := srv.SummarizeWithProfile(marketText, "markets")
	require.NoError(t, err)
	assert.Len(t, sentences, summarizer.DefaultSentencesCount)

	names, err := srv.GetStore().List()
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "markets", names[0].Name)
	assert.NotNil(t, srv.GetSummarizer())
	assert.NotNil(t, srv.GetToolServer())
}

func TestSummarize(t *testing.T) {
	opts := summarizer.DefaultOptions()
	opts.Method = summarizer.MethodKey
	opts.SentencesCount = 1
	opts.Words = WordLists{Bonus: []string{"Stocks", "rose"}}

	sentences, err := Summarize(marketText, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"Stocks rose sharply."}, sentences)

	opts.Words = WordLists{}
	_, err = Summarize(marketText, opts)
	require.Error(t, err)
	assert.True(t, errortypes.IsConfigError(err))
	assert.ErrorIs(t, err, summarizer.ErrEmptyWordSet)
}
