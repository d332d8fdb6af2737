// Package document defines the read-only document model consumed by the
// summarization methods: an ordered list of sentences, each exposing its words.
package document

import "strings"

// Sentence is a single sentence of a document.
type Sentence interface {
	// Words returns the raw words of the sentence in order.
	Words() []string

	// String returns the original sentence text.
	String() string
}

// Document is an ordered collection of sentences.
type Document interface {
	// Sentences returns the sentences in document order.
	Sentences() []Sentence

	// Words returns every word of the document, flattened across sentences
	// in document order.
	Words() []string
}

// PlainSentence is the default Sentence implementation.
type PlainSentence struct {
	text  string
	words []string
}

// NewSentence creates a sentence from its text and its words. If text is
// empty the words joined by a single space are used.
func NewSentence(text string, words []string) *PlainSentence {
	if text == "" {
		text = strings.Join(words, " ")
	}
	return &PlainSentence{
		text:  text,
		words: append([]string(nil), words...),
	}
}

// Words returns the raw words of the sentence.
func (s *PlainSentence) Words() []string {
	return s.words
}

func (s *PlainSentence) String() string {
	return s.text
}

// Plain is the default Document implementation.
type Plain struct {
	sentences []Sentence
	words     []string
}

// New creates a document from sentences.
func New(sentences ...Sentence) *Plain {
	doc := &Plain{sentences: sentences}
	for _, s := range sentences {
		doc.words = append(doc.words, s.Words()...)
	}
	return doc
}

// FromWords builds a document from pre-tokenized sentences. Mostly useful in tests.
func FromWords(sentences ...[]string) *Plain {
	list := make([]Sentence, 0, len(sentences))
	for _, words := range sentences {
		list = append(list, NewSentence("", words))
	}
	return New(list...)
}

// Sentences returns the sentences in document order.
func (d *Plain) Sentences() []Sentence {
	return d.sentences
}

// Words returns all words of the document in order.
func (d *Plain) Words() []string {
	return d.words
}

// Texts returns the text of each sentence in order.
func Texts(sentences []Sentence) []string {
	texts := make([]string, len(sentences))
	for i, s := range sentences {
		texts[i] = s.String()
	}
	return texts
}
