// Package parser builds documents from plain text.
package parser

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/neurosnap/sentences.v1"
	"gopkg.in/neurosnap/sentences.v1/english"

	"github.com/localrivet/edmundson/internal/document"
)

// reWord matches runs of letters or digits, keeping inner apostrophes
// ("don't", "o’clock") as part of the word.
var reWord = regexp.MustCompile(`[\pL\pN]+(?:['’][\pL\pN]+)*`)

// Parser splits plain text into sentences and words.
type Parser struct {
	language  string
	tokenizer *sentences.DefaultSentenceTokenizer
}

// New creates a parser. The punkt sentence tokenizer is trained on English
// text; it is used for every language since sentence boundaries are mostly
// punctuation-driven.
func New(language string) (*Parser, error) {
	tokenizer, err := english.NewSentenceTokenizer(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create sentence tokenizer: %w", err)
	}
	return &Parser{
		language:  language,
		tokenizer: tokenizer,
	}, nil
}

// Language returns the language the parser was created for.
func (p *Parser) Language() string {
	return p.language
}

// Parse builds a document from text. Sentences without any word are dropped.
func (p *Parser) Parse(text string) *document.Plain {
	if strings.TrimSpace(text) == "" {
		return document.New()
	}

	var list []document.Sentence
	for _, s := range p.tokenizer.Tokenize(text) {
		sentenceText := strings.Join(strings.Fields(s.Text), " ")
		words := Words(sentenceText)
		if len(words) == 0 {
			continue
		}
		list = append(list, document.NewSentence(sentenceText, words))
	}
	return document.New(list...)
}

// Words splits text into words, dropping punctuation.
func Words(text string) []string {
	return reWord.FindAllString(text, -1)
}
