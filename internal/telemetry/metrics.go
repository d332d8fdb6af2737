// Package telemetry provides in-process metrics for the summarizer and the
// profile store.
package telemetry

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
)

// maxTimerSamples bounds the durations kept per timer.
const maxTimerSamples = 100

// Metric names
const (
	// Summarization calls by method
	MetricCallsCue = "summarizer.calls.cue"
	MetricCallsKey = "summarizer.calls.key"

	MetricSummarySuccess = "summarizer.success"
	MetricSummaryFailure = "summarizer.failure"

	// Failures caused by an unconfigured word set
	MetricEmptyWordSet = "summarizer.empty_word_set"

	MetricSentencesRated = "summarizer.sentences_rated"

	MetricResponseTimeCue = "summarizer.response_time.cue"
	MetricResponseTimeKey = "summarizer.response_time.key"

	MetricLastSummary = "summarizer.last_summary"

	// Profile store
	MetricProfileSaves   = "profilestore.saves"
	MetricProfileLoads   = "profilestore.loads"
	MetricProfileDeletes = "profilestore.deletes"
	MetricProfileErrors  = "profilestore.errors"
)

// CallsMetric returns the call counter name for a summarization method.
func CallsMetric(method string) string {
	return "summarizer.calls." + method
}

// ResponseTimeMetric returns the timer name for a summarization method.
func ResponseTimeMetric(method string) string {
	return "summarizer.response_time." + method
}

// MetricsCollector collects counters, gauges, timers and timestamps. It is
// safe for concurrent use.
type MetricsCollector struct {
	counters   map[string]int64
	gauges     map[string]float64
	timers     map[string][]time.Duration
	latestTime map[string]time.Time
	mu         sync.RWMutex
}

// NewMetricsCollector creates a new MetricsCollector instance
func NewMetricsCollector() *MetricsCollector {
	return &MetricsCollector{
		counters:   make(map[string]int64),
		gauges:     make(map[string]float64),
		timers:     make(map[string][]time.Duration),
		latestTime: make(map[string]time.Time),
	}
}

// IncrementCounter increments a named counter by amount
func (m *MetricsCollector) IncrementCounter(name string, amount int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters[name] += amount
}

// SetGauge sets a named gauge
func (m *MetricsCollector) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.gauges[name] = value
}

// RecordTimer appends a duration to the named timer, dropping the oldest
// sample past maxTimerSamples.
func (m *MetricsCollector) RecordTimer(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	samples := append(m.timers[name], duration)
	if len(samples) > maxTimerSamples {
		samples = samples[len(samples)-maxTimerSamples:]
	}
	m.timers[name] = samples
}

// RecordTimestamp records the current time for the named event
func (m *MetricsCollector) RecordTimestamp(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.latestTime[name] = time.Now()
}

// GetCounter returns the current value of a counter
func (m *MetricsCollector) GetCounter(name string) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.counters[name]
}

// GetGauge returns the current value of a gauge
func (m *MetricsCollector) GetGauge(name string) float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.gauges[name]
}

// GetTimerAverage returns the mean of the recorded durations
func (m *MetricsCollector) GetTimerAverage(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return average(m.timers[name])
}

// GetTimerP95 returns the 95th percentile of the recorded durations
func (m *MetricsCollector) GetTimerP95(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return p95(m.timers[name])
}

// GetTimeSince returns the time elapsed since the named timestamp, or zero
// if it was never recorded
func (m *MetricsCollector) GetTimeSince(name string) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()

	timestamp, exists := m.latestTime[name]
	if !exists {
		return 0
	}
	return time.Since(timestamp)
}

// GetReport renders all metrics as text, sorted by name
func (m *MetricsCollector) GetReport() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var b strings.Builder
	b.WriteString("Metrics Report:\n")
	b.WriteString("==============\n\n")

	b.WriteString("Counters:\n")
	for _, name := range sortedKeys(m.counters) {
		fmt.Fprintf(&b, "  %s: %d\n", name, m.counters[name])
	}

	b.WriteString("\nGauges:\n")
	for _, name := range sortedKeys(m.gauges) {
		fmt.Fprintf(&b, "  %s: %.2f\n", name, m.gauges[name])
	}

	b.WriteString("\nTimers:\n")
	for _, name := range sortedKeys(m.timers) {
		samples := m.timers[name]
		fmt.Fprintf(&b, "  %s: avg=%v p95=%v count=%d\n", name, average(samples), p95(samples), len(samples))
	}

	b.WriteString("\nTime Since:\n")
	for _, name := range sortedKeys(m.latestTime) {
		ts := m.latestTime[name]
		fmt.Fprintf(&b, "  %s: %v ago (%s)\n", name, time.Since(ts), ts.Format(time.RFC3339))
	}

	return b.String()
}

// Reset clears all collected metrics
func (m *MetricsCollector) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.counters = make(map[string]int64)
	m.gauges = make(map[string]float64)
	m.timers = make(map[string][]time.Duration)
	m.latestTime = make(map[string]time.Time)
}

func average(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	var total time.Duration
	for _, d := range samples {
		total += d
	}
	return total / time.Duration(len(samples))
}

func p95(samples []time.Duration) time.Duration {
	if len(samples) == 0 {
		return 0
	}
	sorted := append([]time.Duration(nil), samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	idx := int(float64(len(sorted)) * 0.95)
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
