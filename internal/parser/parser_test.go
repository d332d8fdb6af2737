package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/localrivet/edmundson/internal/document"
)

func TestWords(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "simple", text: "good news today", want: []string{"good", "news", "today"}},
		{name: "punctuation", text: "Hello, world!", want: []string{"Hello", "world"}},
		{name: "apostrophe", text: "don't stop", want: []string{"don't", "stop"}},
		{name: "numbers", text: "in 2024 alone", want: []string{"in", "2024", "alone"}},
		{name: "only punctuation", text: "... --- !!!", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Words(tt.text))
		})
	}
}

func TestParse(t *testing.T) {
	p, err := New("english")
	require.NoError(t, err)

	doc := p.Parse("Good news today. Bad news spreads! Good, good day?")

	require.Len(t, doc.Sentences(), 3)
	assert.Equal(t, []string{"Good news today.", "Bad news spreads!", "Good, good day?"},
		document.Texts(doc.Sentences()))
	assert.Equal(t, []string{"Good", "good", "day"}, doc.Sentences()[2].Words())
	assert.Equal(t, []string{
		"Good", "news", "today",
		"Bad", "news", "spreads",
		"Good", "good", "day",
	}, doc.Words())
}

func TestParseBlank(t *testing.T) {
	p, err := New("english")
	require.NoError(t, err)

	doc := p.Parse("   \n\t ")
	assert.Empty(t, doc.Sentences())
	assert.Empty(t, doc.Words())
}

func TestParseCollapsesWhitespace(t *testing.T) {
	p, err := New("english")
	require.NoError(t, err)

	doc := p.Parse("First   line\nstill first.")
	require.Len(t, doc.Sentences(), 1)
	assert.Equal(t, "First line still first.", doc.Sentences()[0].String())
	assert.Equal(t, "english", p.Language())
}
