package telemetry

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCounters(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricCallsCue, 1)
	m.IncrementCounter(MetricCallsCue, 2)

	if got := m.GetCounter(MetricCallsCue); got != 3 {
		t.Errorf("GetCounter() = %d, want 3", got)
	}
	if got := m.GetCounter("missing"); got != 0 {
		t.Errorf("GetCounter(missing) = %d, want 0", got)
	}
}

func TestMetricNames(t *testing.T) {
	if CallsMetric("cue") != MetricCallsCue || CallsMetric("key") != MetricCallsKey {
		t.Errorf("CallsMetric does not match the call counter constants")
	}
	if ResponseTimeMetric("cue") != MetricResponseTimeCue || ResponseTimeMetric("key") != MetricResponseTimeKey {
		t.Errorf("ResponseTimeMetric does not match the timer constants")
	}
}

func TestTimers(t *testing.T) {
	m := NewMetricsCollector()
	if m.GetTimerAverage(MetricResponseTimeKey) != 0 || m.GetTimerP95(MetricResponseTimeKey) != 0 {
		t.Fatalf("Expected zero durations for an empty timer")
	}

	for i := 1; i <= 20; i++ {
		m.RecordTimer(MetricResponseTimeKey, time.Duration(i)*time.Millisecond)
	}

	if got := m.GetTimerAverage(MetricResponseTimeKey); got != 10500*time.Microsecond {
		t.Errorf("GetTimerAverage() = %v, want 10.5ms", got)
	}
	if got := m.GetTimerP95(MetricResponseTimeKey); got != 20*time.Millisecond {
		t.Errorf("GetTimerP95() = %v, want 20ms", got)
	}
}

func TestTimerSamplesAreBounded(t *testing.T) {
	m := NewMetricsCollector()
	for i := 0; i < maxTimerSamples+10; i++ {
		m.RecordTimer("t", time.Duration(i))
	}

	m.mu.RLock()
	n := len(m.timers["t"])
	first := m.timers["t"][0]
	m.mu.RUnlock()

	if n != maxTimerSamples {
		t.Errorf("kept %d samples, want %d", n, maxTimerSamples)
	}
	if first != 10 {
		t.Errorf("oldest kept sample = %v, want 10", first)
	}
}

func TestReportAndReset(t *testing.T) {
	m := NewMetricsCollector()
	m.IncrementCounter(MetricCallsCue, 4)
	m.SetGauge(MetricSentencesRated, 12)
	m.RecordTimer(MetricResponseTimeCue, time.Millisecond)
	m.RecordTimestamp(MetricLastSummary)

	report := m.GetReport()
	for _, want := range []string{MetricCallsCue + ": 4", MetricSentencesRated + ": 12.00", MetricResponseTimeCue, MetricLastSummary} {
		if !strings.Contains(report, want) {
			t.Errorf("report missing %q:\n%s", want, report)
		}
	}

	if m.GetTimeSince(MetricLastSummary) <= 0 {
		t.Errorf("Expected a positive time since the last summary")
	}

	m.Reset()
	if m.GetCounter(MetricCallsCue) != 0 || m.GetGauge(MetricSentencesRated) != 0 || m.GetTimeSince(MetricLastSummary) != 0 {
		t.Errorf("Reset did not clear metrics")
	}
}

func TestConcurrentUse(t *testing.T) {
	m := NewMetricsCollector()
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				m.IncrementCounter(MetricCallsKey, 1)
				m.RecordTimer(MetricResponseTimeKey, time.Microsecond)
				_ = m.GetReport()
			}
		}()
	}
	wg.Wait()

	if got := m.GetCounter(MetricCallsKey); got != 1000 {
		t.Errorf("GetCounter() = %d, want 1000", got)
	}
}
