package summarizer

import (
	"fmt"

	"github.com/localrivet/edmundson/internal/document"
	"github.com/localrivet/edmundson/internal/errortypes"
)

// Method names accepted by NewMethod.
const (
	MethodCue = "cue"
	MethodKey = "key"
)

// Method is a summarization method bound to a configured Edmundson instance.
type Method interface {
	// Name returns the method name.
	Name() string

	// Rate returns the rating of every sentence in document order.
	Rate() ([]RatedSentence, error)

	// Summarize returns the count best sentences in document order.
	Summarize(count int) ([]document.Sentence, error)
}

// MethodParams holds the tunables of the cue and key methods.
type MethodParams struct {
	BonusWordValue  float64
	StigmaWordValue float64
	Weight          float64
}

// DefaultMethodParams returns the default method parameters.
func DefaultMethodParams() MethodParams {
	return MethodParams{
		BonusWordValue:  DefaultBonusWordValue,
		StigmaWordValue: DefaultStigmaWordValue,
		Weight:          DefaultKeyWeight,
	}
}

// Cue is the cue method.
type Cue struct {
	Edmundson       *Edmundson
	BonusWordValue  float64
	StigmaWordValue float64
}

// Name returns "cue".
func (c Cue) Name() string { return MethodCue }

// Rate returns cue ratings.
func (c Cue) Rate() ([]RatedSentence, error) {
	return c.Edmundson.CueRatings(c.BonusWordValue, c.StigmaWordValue)
}

// Summarize runs the cue method.
func (c Cue) Summarize(count int) ([]document.Sentence, error) {
	return c.Edmundson.CueMethod(count, c.BonusWordValue, c.StigmaWordValue)
}

// Key is the key method.
type Key struct {
	Edmundson *Edmundson
	Weight    float64
}

// Name returns "key".
func (k Key) Name() string { return MethodKey }

// Rate returns key ratings.
func (k Key) Rate() ([]RatedSentence, error) {
	return k.Edmundson.KeyRatings(k.Weight)
}

// Summarize runs the key method.
func (k Key) Summarize(count int) ([]document.Sentence, error) {
	return k.Edmundson.KeyMethod(count, k.Weight)
}

// NewMethod returns the method called name bound to e.
func NewMethod(name string, e *Edmundson, params MethodParams) (Method, error) {
	switch methodName(name) {
	case MethodCue:
		return Cue{Edmundson: e, BonusWordValue: params.BonusWordValue, StigmaWordValue: params.StigmaWordValue}, nil
	case MethodKey:
		return Key{Edmundson: e, Weight: params.Weight}, nil
	default:
		return nil, errortypes.ValidationError(
			fmt.Errorf("unknown method %q", name),
			"invalid summarization method",
		).WithField("method", name)
	}
}
