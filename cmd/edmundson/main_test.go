package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/stemmer"
	"github.com/localrivet/edmundson/internal/summarizer"
)

func TestMergeWords(t *testing.T) {
	base := summarizer.WordLists{
		Bonus:  []string{"good"},
		Stigma: []string{"bad"},
		Null:   []string{"the"},
	}

	merged := mergeWords(base, []string{"great"}, nil, []string{})
	assert.Equal(t, []string{"great"}, merged.Bonus)
	assert.Equal(t, []string{"bad"}, merged.Stigma)
	assert.Equal(t, []string{"the"}, merged.Null)

	// base is passed by value
	assert.Equal(t, []string{"good"}, base.Bonus)
}

func TestReadInput(t *testing.T) {
	text, err := readInput("", strings.NewReader("from stdin"))
	require.NoError(t, err)
	assert.Equal(t, "from stdin", text)

	text, err = readInput("-", strings.NewReader("dash"))
	require.NoError(t, err)
	assert.Equal(t, "dash", text)

	path := filepath.Join(t.TempDir(), "article.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o644))
	text, err = readInput(path, strings.NewReader("ignored"))
	require.NoError(t, err)
	assert.Equal(t, "from file", text)

	_, err = readInput(filepath.Join(t.TempDir(), "missing.txt"), nil)
	require.Error(t, err)
	assert.True(t, errortypes.IsValidationError(err))
}

func TestSummaryResult(t *testing.T) {
	opts := summarizer.DefaultOptions()
	opts.Method = summarizer.MethodCue
	opts.SentencesCount = 1
	opts.Stemmer = stemmer.NameLowercase
	opts.Words = summarizer.WordLists{
		Bonus:  []string{"good"},
		Stigma: []string{"bad"},
	}

	summ := summarizer.NewTextSummarizer(opts, nil, nil)
	require.NoError(t, summ.Initialize())

	result, err := summ.Run("Bad weather. Good morning.", opts)
	require.NoError(t, err)

	out := summaryResult(result, false)
	assert.Equal(t, summarizer.MethodCue, out.Method)
	assert.Equal(t, []string{"Good morning."}, out.Sentences)
	assert.Empty(t, out.Ratings)

	out = summaryResult(result, true)
	require.Len(t, out.Ratings, 2)
	assert.False(t, out.Ratings[0].Selected)
	assert.Equal(t, -1.0, out.Ratings[0].Rating)
	assert.True(t, out.Ratings[1].Selected)
	assert.Equal(t, 1.0, out.Ratings[1].Rating)
	assert.Equal(t, "Good morning.", out.Ratings[1].Sentence)
}

func TestNewAppCommands(t *testing.T) {
	cmd := newApp()

	var names []string
	for _, c := range cmd.Commands {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"cue", "key", "profile", "config", "serve"}, names)
}
