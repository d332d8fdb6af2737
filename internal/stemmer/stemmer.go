// Package stemmer provides the word normalization functions used to match
// words against the configured word sets regardless of inflection.
package stemmer

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/kljensen/snowball"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Func maps a raw word to its stem. Implementations must be pure and
// idempotent: Func(Func(w)) == Func(w).
type Func func(word string) string

// Stemmer names accepted by New.
const (
	NameNull      = "null"
	NameLowercase = "lowercase"
	NameSnowball  = "snowball"

	DefaultLanguage = "english"
)

// ErrUnknownStemmer is returned by New for an unrecognized stemmer name.
var ErrUnknownStemmer = errors.New("unknown stemmer")

var supportedLanguages = map[string]bool{
	"english":   true,
	"spanish":   true,
	"french":    true,
	"russian":   true,
	"swedish":   true,
	"norwegian": true,
	"hungarian": true,
}

// Null returns the word unchanged.
func Null(word string) string {
	return word
}

// Lowercase returns the lowercase form of the word.
func Lowercase(word string) string {
	return strings.ToLower(word)
}

// Snowball returns a stemmer that strips accents and punctuation, lowercases
// and then applies the Snowball algorithm for the given language until the
// stem is stable. Stop words are left unstemmed.
func Snowball(language string) (Func, error) {
	language = strings.ToLower(strings.TrimSpace(language))
	if language == "" {
		language = DefaultLanguage
	}
	if !supportedLanguages[language] {
		return nil, fmt.Errorf("snowball stemmer does not support language %q", language)
	}

	return func(word string) string {
		return stemToFixpoint(normalize(word), language)
	}, nil
}

// maxStemPasses bounds stemToFixpoint; every observed English chain settles
// within three passes.
const maxStemPasses = 8

// stemToFixpoint re-applies the Snowball algorithm until the output stops
// changing. A single pass is not idempotent ("university" -> "univers" ->
// "univ") and the key method stems words that are already stemmed.
func stemToFixpoint(word, language string) string {
	for i := 0; i < maxStemPasses; i++ {
		stemmed, err := snowball.Stem(word, language, false)
		if err != nil || stemmed == word {
			return word
		}
		word = stemmed
	}
	return word
}

// New returns the stemmer registered under name. An empty name selects Null.
func New(name, language string) (Func, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", NameNull:
		return Null, nil
	case NameLowercase:
		return Lowercase, nil
	case NameSnowball:
		return Snowball(language)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStemmer, name)
	}
}

func isRemovable(r rune) bool {
	return unicode.Is(unicode.Mn, r) || unicode.IsPunct(r)
}

// normalize decomposes the word, drops combining marks and punctuation, and
// lowercases the result. The transformer chain is stateful so one is built
// per call.
func normalize(word string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.Predicate(isRemovable)), norm.NFC)
	out, _, err := transform.String(t, word)
	if err != nil {
		out = word
	}
	return strings.ToLower(out)
}
