package summarizer

import (
	"github.com/localrivet/edmundson/internal/document"
	"github.com/localrivet/edmundson/internal/stemmer"
)

// Default scoring parameters.
const (
	DefaultBonusWordValue  = 1.0
	DefaultStigmaWordValue = 1.0
	DefaultKeyWeight       = 0.5
)

// Edmundson rates the sentences of a document with the cue and key methods.
//
// Word sets are configured with SetBonusWords, SetStigmaWords and
// SetNullWords before scoring and must not be replaced while a scoring call
// is running; an Edmundson value is not safe for concurrent configuration.
type Edmundson struct {
	document document.Document
	stem     stemmer.Func
	selector Selector

	bonusWords  WordSet
	stigmaWords WordSet
	nullWords   WordSet
}

// NewEdmundson creates a method instance over doc. A nil stem uses stemmer.Null.
func NewEdmundson(doc document.Document, stem stemmer.Func) *Edmundson {
	if stem == nil {
		stem = stemmer.Null
	}
	return &Edmundson{
		document: doc,
		stem:     stem,
		selector: BestSentences,
	}
}

// WithSelector replaces the sentence selector. A nil selector restores BestSentences.
func (e *Edmundson) WithSelector(selector Selector) *Edmundson {
	if selector == nil {
		selector = BestSentences
	}
	e.selector = selector
	return e
}

// Select picks count sentences from rated with the configured selector.
func (e *Edmundson) Select(rated []RatedSentence, count int) []document.Sentence {
	return e.selector(rated, count)
}

// StemWord normalizes a word with the configured stemmer.
func (e *Edmundson) StemWord(word string) string {
	return e.stem(word)
}

// SetBonusWords replaces the bonus words with the stems of words.
func (e *Edmundson) SetBonusWords(words []string) {
	e.bonusWords = NewWordSet(words, e.stem)
}

// SetStigmaWords replaces the stigma words with the stems of words.
func (e *Edmundson) SetStigmaWords(words []string) {
	e.stigmaWords = NewWordSet(words, e.stem)
}

// SetNullWords replaces the null words with the stems of words. No scoring
// method consults them yet.
func (e *Edmundson) SetNullWords(words []string) {
	e.nullWords = NewWordSet(words, e.stem)
}

// BonusWords returns the stemmed bonus words.
func (e *Edmundson) BonusWords() WordSet { return e.bonusWords }

// StigmaWords returns the stemmed stigma words.
func (e *Edmundson) StigmaWords() WordSet { return e.stigmaWords }

// NullWords returns the stemmed null words.
func (e *Edmundson) NullWords() WordSet { return e.nullWords }

// RequireWordSets checks the given word sets in order and returns a
// configuration error for the first empty one.
func (e *Edmundson) RequireWordSets(kinds ...WordSetKind) error {
	for _, kind := range kinds {
		if err := requireNonEmpty(e.wordSet(kind), kind); err != nil {
			return err
		}
	}
	return nil
}

func (e *Edmundson) wordSet(kind WordSetKind) WordSet {
	switch kind {
	case BonusWords:
		return e.bonusWords
	case StigmaWords:
		return e.stigmaWords
	default:
		return e.nullWords
	}
}

// CueMethod selects count sentences rated by bonus and stigma word occurrences.
func (e *Edmundson) CueMethod(count int, bonusWordValue, stigmaWordValue float64) ([]document.Sentence, error) {
	rated, err := e.CueRatings(bonusWordValue, stigmaWordValue)
	if err != nil {
		return nil, err
	}
	return e.Select(rated, count), nil
}

// CueRatings rates every sentence as
// bonusCount*bonusWordValue - stigmaCount*stigmaWordValue.
// Both bonus and stigma words must be configured.
func (e *Edmundson) CueRatings(bonusWordValue, stigmaWordValue float64) ([]RatedSentence, error) {
	if err := e.RequireWordSets(BonusWords, StigmaWords); err != nil {
		return nil, err
	}

	sentences := e.document.Sentences()
	rated := make([]RatedSentence, 0, len(sentences))
	for i, sentence := range sentences {
		rated = append(rated, RatedSentence{
			Sentence: sentence,
			Rating:   e.rateByCue(sentence, bonusWordValue, stigmaWordValue),
			Order:    i,
		})
	}
	return rated, nil
}

func (e *Edmundson) rateByCue(sentence document.Sentence, bonusWordValue, stigmaWordValue float64) float64 {
	var bonus, stigma int
	for _, word := range sentence.Words() {
		stem := e.stem(word)
		if e.bonusWords.Contains(stem) {
			bonus++
		}
		if e.stigmaWords.Contains(stem) {
			stigma++
		}
	}
	return float64(bonus)*bonusWordValue - float64(stigma)*stigmaWordValue
}

// KeyMethod selects count sentences rated by occurrences of significant words.
func (e *Edmundson) KeyMethod(count int, weight float64) ([]document.Sentence, error) {
	rated, err := e.KeyRatings(weight)
	if err != nil {
		return nil, err
	}
	return e.Select(rated, count), nil
}

// KeyRatings rates every sentence by the number of its words that are
// significant for weight. Only bonus words must be configured.
func (e *Edmundson) KeyRatings(weight float64) ([]RatedSentence, error) {
	significant, err := e.SignificantWords(weight)
	if err != nil {
		return nil, err
	}

	sentences := e.document.Sentences()
	rated := make([]RatedSentence, 0, len(sentences))
	for i, sentence := range sentences {
		rated = append(rated, RatedSentence{
			Sentence: sentence,
			Rating:   float64(e.rateByKey(sentence, significant)),
			Order:    i,
		})
	}
	return rated, nil
}

// SignificantWords returns the bonus stems whose document frequency relative
// to the most frequent bonus stem is strictly greater than weight.
func (e *Edmundson) SignificantWords(weight float64) (WordSet, error) {
	if err := e.RequireWordSets(BonusWords); err != nil {
		return WordSet{}, err
	}

	counts := make(map[string]int)
	for _, word := range e.document.Words() {
		stem := e.stem(word)
		if !e.bonusWords.Contains(stem) {
			continue
		}
		counts[e.stem(stem)]++
	}

	maxFrequency := 1
	for _, c := range counts {
		if c > maxFrequency {
			maxFrequency = c
		}
	}

	significant := make(map[string]struct{}, len(counts))
	for stem, c := range counts {
		if float64(c)/float64(maxFrequency) > weight {
			significant[stem] = struct{}{}
		}
	}
	return WordSet{words: significant}, nil
}

func (e *Edmundson) rateByKey(sentence document.Sentence, significant WordSet) int {
	rating := 0
	for _, word := range sentence.Words() {
		if significant.Contains(e.stem(word)) {
			rating++
		}
	}
	return rating
}
