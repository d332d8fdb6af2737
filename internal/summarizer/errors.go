package summarizer

import (
	"errors"
	"fmt"

	"github.com/localrivet/edmundson/internal/errortypes"
)

// WordSetKind names one of the configured word sets.
type WordSetKind string

// Word set kinds
const (
	BonusWords  WordSetKind = "bonus"
	StigmaWords WordSetKind = "stigma"
	NullWords   WordSetKind = "null"
)

// ErrEmptyWordSet is wrapped by the configuration error returned when a
// scoring method needs a word set that has not been configured.
var ErrEmptyWordSet = errors.New("empty word set")

// requireNonEmpty returns a configuration error naming kind when set is empty.
func requireNonEmpty(set WordSet, kind WordSetKind) error {
	if !set.IsEmpty() {
		return nil
	}

	return errortypes.ConfigError(
		fmt.Errorf("%w: %s", ErrEmptyWordSet, kind),
		fmt.Sprintf("Set of %s words is empty. Please set %s words with a collection of words", kind, kind),
	).WithField("word_set", string(kind))
}

// EmptyWordSetKind returns the kind of word set reported by err, if err is an
// empty word set error.
func EmptyWordSetKind(err error) (WordSetKind, bool) {
	if !errors.Is(err, ErrEmptyWordSet) {
		return "", false
	}

	var appErr *errortypes.AppError
	if errors.As(err, &appErr) {
		if kind, ok := appErr.Fields["word_set"].(string); ok {
			return WordSetKind(kind), true
		}
	}
	return "", true
}
