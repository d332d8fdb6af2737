package summarizer

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/localrivet/edmundson/internal/telemetry"
)

// HealthStatus represents the health status of the summarizer
type HealthStatus string

const (
	// StatusHealthy indicates the summarizer is initialized and most runs succeed
	StatusHealthy HealthStatus = "healthy"

	// StatusDegraded indicates that at least half of the runs failed
	StatusDegraded HealthStatus = "degraded"

	// StatusUnhealthy indicates the summarizer is not initialized
	StatusUnhealthy HealthStatus = "unhealthy"
)

// HealthReport summarizes the collected metrics of a TextSummarizer.
type HealthReport struct {
	Status        HealthStatus       `json:"status"`
	Timestamp     time.Time          `json:"timestamp"`
	Method        string             `json:"method"`
	Calls         map[string]int64   `json:"calls"`
	ResponseTimes map[string]float64 `json:"response_times_ms"`
	SuccessRate   float64            `json:"success_rate"`
	TotalRequests int64              `json:"total_requests"`
	EmptyWordSets int64              `json:"empty_word_set_failures"`
	LastRated     int                `json:"last_sentences_rated"`
}

// CreateHealthReport builds a health report from the summarizer metrics.
func CreateHealthReport(s *TextSummarizer) (*HealthReport, error) {
	if s == nil {
		return nil, fmt.Errorf("summarizer is nil")
	}

	m := s.Metrics()
	if m == nil {
		return nil, fmt.Errorf("metrics collector is nil")
	}

	success := m.GetCounter(telemetry.MetricSummarySuccess)
	failure := m.GetCounter(telemetry.MetricSummaryFailure)
	total := success + failure

	var successRate float64
	if total > 0 {
		successRate = float64(success) / float64(total) * 100.0
	}

	status := StatusHealthy
	switch {
	case !s.initialized:
		status = StatusUnhealthy
	case total > 0 && successRate < 50:
		status = StatusDegraded
	}

	calls := make(map[string]int64, 2)
	responseTimes := make(map[string]float64, 2)
	for _, method := range []string{MethodCue, MethodKey} {
		calls[method] = m.GetCounter(telemetry.CallsMetric(method))
		responseTimes[method] = float64(m.GetTimerAverage(telemetry.ResponseTimeMetric(method))) / float64(time.Millisecond)
	}

	return &HealthReport{
		Status:        status,
		Timestamp:     time.Now(),
		Method:        s.opts.Method,
		Calls:         calls,
		ResponseTimes: responseTimes,
		SuccessRate:   successRate,
		TotalRequests: total,
		EmptyWordSets: m.GetCounter(telemetry.MetricEmptyWordSet),
		LastRated:     int(m.GetGauge(telemetry.MetricSentencesRated)),
	}, nil
}

// CreateHealthReportJSON renders the health report as indented JSON.
func CreateHealthReportJSON(s *TextSummarizer) (string, error) {
	report, err := CreateHealthReport(s)
	if err != nil {
		return "", err
	}

	reportJSON, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal health report: %w", err)
	}

	return string(reportJSON), nil
}

// ResetMetrics clears the summarizer metrics.
func ResetMetrics(s *TextSummarizer) error {
	if s == nil {
		return fmt.Errorf("summarizer is nil")
	}
	s.Metrics().Reset()
	return nil
}
