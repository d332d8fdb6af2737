package summarizer

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/localrivet/edmundson/internal/document"
	"github.com/localrivet/edmundson/internal/errortypes"
	"github.com/localrivet/edmundson/internal/parser"
	"github.com/localrivet/edmundson/internal/stemmer"
	"github.com/localrivet/edmundson/internal/telemetry"
)

// ErrNotInitialized is returned when a TextSummarizer is used before Initialize.
var ErrNotInitialized = errors.New("summarizer not initialized")

// WordLists holds raw, unstemmed word lists.
type WordLists struct {
	Bonus  []string `json:"bonus" yaml:"bonus"`
	Stigma []string `json:"stigma" yaml:"stigma"`
	Null   []string `json:"null" yaml:"null"`
}

// Options configures a summarization run.
type Options struct {
	Method          string
	SentencesCount  int
	Stemmer         string
	Language        string
	BonusWordValue  float64
	StigmaWordValue float64
	Weight          float64
	Words           WordLists
}

// DefaultOptions returns the cue method with default values and no words.
func DefaultOptions() Options {
	return Options{
		Method:          MethodCue,
		SentencesCount:  DefaultSentencesCount,
		Stemmer:         stemmer.NameNull,
		Language:        stemmer.DefaultLanguage,
		BonusWordValue:  DefaultBonusWordValue,
		StigmaWordValue: DefaultStigmaWordValue,
		Weight:          DefaultKeyWeight,
	}
}

func (o Options) params() MethodParams {
	return MethodParams{
		BonusWordValue:  o.BonusWordValue,
		StigmaWordValue: o.StigmaWordValue,
		Weight:          o.Weight,
	}
}

// ValidateOptions checks the method name and the sentence count.
func ValidateOptions(opts Options) error {
	if opts.SentencesCount <= 0 {
		return errortypes.ValidationError(
			errors.New("sentences count must be positive"),
			"invalid summarization options",
		).WithField("sentences_count", opts.SentencesCount)
	}
	switch methodName(opts.Method) {
	case MethodCue, MethodKey:
		return nil
	default:
		return errortypes.ValidationError(
			errors.New("unknown method "+opts.Method),
			"invalid summarization options",
		).WithField("method", opts.Method)
	}
}

// Result is the outcome of one summarization run.
type Result struct {
	Method    string
	Sentences []document.Sentence
	// Ratings holds the rating of every sentence in document order.
	Ratings []RatedSentence
}

// Text joins the selected sentences with a single space.
func (r *Result) Text() string {
	return strings.Join(document.Texts(r.Sentences), " ")
}

// TextSummarizer implements Summarizer on plain text with the Edmundson methods.
type TextSummarizer struct {
	opts        Options
	stem        stemmer.Func
	parser      *parser.Parser
	metrics     *telemetry.MetricsCollector
	logger      *slog.Logger
	selector    Selector
	initialized bool
}

// NewTextSummarizer creates a summarizer with default options opts. A nil
// metrics collector or logger is replaced by a fresh collector or slog.Default().
func NewTextSummarizer(opts Options, metrics *telemetry.MetricsCollector, logger *slog.Logger) *TextSummarizer {
	if metrics == nil {
		metrics = telemetry.NewMetricsCollector()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &TextSummarizer{
		opts:    opts,
		metrics: metrics,
		logger:  logger,
	}
}

// WithSelector replaces the sentence selector used by Run. A nil selector
// restores BestSentences.
func (s *TextSummarizer) WithSelector(selector Selector) *TextSummarizer {
	s.selector = selector
	return s
}

// Initialize validates the default options and builds the stemmer and parser.
func (s *TextSummarizer) Initialize() error {
	if err := ValidateOptions(s.opts); err != nil {
		return err
	}

	stem, err := stemmer.New(s.opts.Stemmer, s.opts.Language)
	if err != nil {
		return errortypes.ConfigError(err, "failed to create stemmer").
			WithField("stemmer", s.opts.Stemmer).
			WithField("language", s.opts.Language)
	}

	p, err := parser.New(s.opts.Language)
	if err != nil {
		return errortypes.ConfigError(err, "failed to create parser")
	}

	s.stem = stem
	s.parser = p
	s.initialized = true
	s.logger.Debug("Text summarizer initialized", "method", s.opts.Method, "stemmer", s.opts.Stemmer)
	return nil
}

// Options returns the default options.
func (s *TextSummarizer) Options() Options {
	return s.opts
}

// Metrics returns the metrics collector.
func (s *TextSummarizer) Metrics() *telemetry.MetricsCollector {
	return s.metrics
}

// Summarize summarizes text with the default options.
func (s *TextSummarizer) Summarize(text string) (string, error) {
	result, err := s.Run(text, s.opts)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}

// Run summarizes text with opts and returns the selected sentences along
// with every sentence rating.
func (s *TextSummarizer) Run(text string, opts Options) (*Result, error) {
	if !s.initialized {
		return nil, errortypes.ConfigError(ErrNotInitialized, "cannot summarize")
	}

	start := time.Now()
	result, err := s.run(text, opts)
	s.record(methodName(opts.Method), time.Since(start), result, err)
	return result, err
}

func (s *TextSummarizer) run(text string, opts Options) (*Result, error) {
	if err := ValidateOptions(opts); err != nil {
		return nil, err
	}

	stem := s.stem
	if opts.Stemmer != s.opts.Stemmer || opts.Language != s.opts.Language {
		var err error
		stem, err = stemmer.New(opts.Stemmer, opts.Language)
		if err != nil {
			return nil, errortypes.ConfigError(err, "failed to create stemmer").
				WithField("stemmer", opts.Stemmer).
				WithField("language", opts.Language)
		}
	}

	doc := s.parser.Parse(text)
	e := NewEdmundson(doc, stem).WithSelector(s.selector)
	e.SetBonusWords(opts.Words.Bonus)
	e.SetStigmaWords(opts.Words.Stigma)
	e.SetNullWords(opts.Words.Null)

	method, err := NewMethod(opts.Method, e, opts.params())
	if err != nil {
		return nil, err
	}

	// Rate once and select from the same ratings so the result carries both.
	rated, err := method.Rate()
	if err != nil {
		return nil, err
	}

	s.logger.Debug("Rated sentences", "method", method.Name(), "sentences", len(rated))
	return &Result{
		Method:    method.Name(),
		Sentences: e.Select(rated, opts.SentencesCount),
		Ratings:   rated,
	}, nil
}

func (s *TextSummarizer) record(method string, elapsed time.Duration, result *Result, err error) {
	if method == MethodCue || method == MethodKey {
		s.metrics.IncrementCounter(telemetry.CallsMetric(method), 1)
		s.metrics.RecordTimer(telemetry.ResponseTimeMetric(method), elapsed)
	}
	s.metrics.RecordTimestamp(telemetry.MetricLastSummary)

	if err != nil {
		s.metrics.IncrementCounter(telemetry.MetricSummaryFailure, 1)
		if errors.Is(err, ErrEmptyWordSet) {
			s.metrics.IncrementCounter(telemetry.MetricEmptyWordSet, 1)
		}
		return
	}

	s.metrics.IncrementCounter(telemetry.MetricSummarySuccess, 1)
	s.metrics.SetGauge(telemetry.MetricSentencesRated, float64(len(result.Ratings)))
}

func methodName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
