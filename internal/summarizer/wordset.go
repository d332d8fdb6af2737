package summarizer

import (
	"sort"

	"github.com/localrivet/edmundson/internal/stemmer"
)

// WordSet is an immutable set of stemmed words. The zero value is an empty set.
type WordSet struct {
	words map[string]struct{}
}

// NewWordSet stems every word with stem and stores the deduplicated result.
// A nil stem leaves the words unchanged.
func NewWordSet(words []string, stem stemmer.Func) WordSet {
	if stem == nil {
		stem = stemmer.Null
	}

	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[stem(w)] = struct{}{}
	}
	return WordSet{words: set}
}

// Contains reports whether the stem is a member of the set.
func (s WordSet) Contains(stem string) bool {
	_, ok := s.words[stem]
	return ok
}

// Len returns the number of distinct stems.
func (s WordSet) Len() int {
	return len(s.words)
}

// IsEmpty reports whether the set has no members.
func (s WordSet) IsEmpty() bool {
	return len(s.words) == 0
}

// Words returns the members in sorted order.
func (s WordSet) Words() []string {
	out := make([]string, 0, len(s.words))
	for w := range s.words {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}
