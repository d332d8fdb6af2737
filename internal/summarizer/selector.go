package summarizer

import (
	"sort"

	"github.com/localrivet/edmundson/internal/document"
)

// RatedSentence pairs a sentence with its rating for one scoring call.
type RatedSentence struct {
	Sentence document.Sentence
	Rating   float64
	// Order is the position of the sentence in the document.
	Order int
}

// Selector picks count sentences out of rated sentences.
type Selector func(rated []RatedSentence, count int) []document.Sentence

// BestSentences returns the count highest rated sentences in document order.
// Equal ratings keep document order, so earlier sentences win ties. A count
// of zero or less selects nothing; a count above len(rated) selects all.
func BestSentences(rated []RatedSentence, count int) []document.Sentence {
	if count <= 0 || len(rated) == 0 {
		return []document.Sentence{}
	}

	ranked := append([]RatedSentence(nil), rated...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	if count < len(ranked) {
		ranked = ranked[:count]
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Order < ranked[j].Order
	})

	best := make([]document.Sentence, len(ranked))
	for i, r := range ranked {
		best[i] = r.Sentence
	}
	return best
}
