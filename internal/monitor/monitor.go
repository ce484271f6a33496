// Package monitor provides execution health tracking for agent runs: it
// records per-step execution history and detects stuck steps, failure-rate
// spikes, action loops, timeout overruns, and excessive retries.
package monitor

import (
	"time"

	"github.com/vinayprograms/agentkit/logging"
)

// Default detection thresholds.
const (
	// DefaultStuckThreshold is how long the most recent step may stay open
	// before it is considered stuck.
	DefaultStuckThreshold = 120 * time.Second

	// DefaultTimeoutReference is the fallback duration a closed step is
	// measured against when no declared timeout is known for it.
	DefaultTimeoutReference = 60 * time.Second

	// failureRateMinSteps is the minimum step count before the failure-rate
	// detector engages.
	failureRateMinSteps = 5

	// failureRateThreshold is the failed/total ratio above which the
	// failure-rate detector fires.
	failureRateThreshold = 0.5

	// maxRetries is the retry count above which a step is flagged.
	maxRetries = 3
)

// ExecutionRecord tracks one attempted step instance.
type ExecutionRecord struct {
	StepID      string
	StartedAt   time.Time
	CompletedAt time.Time // zero while the step is still open
	Success     bool
	Error       string
	RetryCount  uint32
}

// open reports whether the record has not completed yet.
func (r *ExecutionRecord) open() bool {
	return r.CompletedAt.IsZero()
}

// duration returns the closed record's wall time.
func (r *ExecutionRecord) duration() time.Duration {
	return r.CompletedAt.Sub(r.StartedAt)
}

// Metrics holds aggregate execution counters, recomputed incrementally as
// records close.
type Metrics struct {
	TotalSteps          int
	SuccessfulSteps     int
	FailedSteps         int
	AverageStepDuration time.Duration
	StuckCount          int
	LoopCount           int
}

// Monitor tracks a rolling execution history and derives health findings
// from it.
//
// A Monitor is owned by a single writer. Methods must not be called from
// multiple goroutines without external synchronization.
type Monitor struct {
	// StuckThreshold and TimeoutReference override the default detection
	// thresholds. They may be set before the first record is written.
	StuckThreshold   time.Duration
	TimeoutReference time.Duration

	history      []ExecutionRecord
	metrics      Metrics
	loops        *loopDetector
	stepTimeouts map[string]time.Duration
	logger       *logging.Logger
}

// New creates a Monitor with default thresholds.
func New() *Monitor {
	return &Monitor{
		StuckThreshold:   DefaultStuckThreshold,
		TimeoutReference: DefaultTimeoutReference,
		loops:            newLoopDetector(loopWindowCapacity),
		stepTimeouts:     make(map[string]time.Duration),
		logger:           logging.New().WithComponent("monitor"),
	}
}

// SetStepTimeout declares the expected timeout for a step, typically taken
// from the step's plan entry. The timeout detector measures that step's
// closed records against this value instead of the fixed reference.
func (m *Monitor) SetStepTimeout(stepID string, d time.Duration) {
	if d > 0 {
		m.stepTimeouts[stepID] = d
	}
}

// RecordStepStart appends a new open record for the step and feeds the
// loop-pattern window.
func (m *Monitor) RecordStepStart(stepID string) {
	m.history = append(m.history, ExecutionRecord{
		StepID:    stepID,
		StartedAt: time.Now(),
	})
	m.loops.add(stepID)
	m.metrics.TotalSteps++
}

// RecordStepComplete closes the most recent open record for the step and
// folds its duration into the running average.
func (m *Monitor) RecordStepComplete(stepID string, success bool, errMsg string) {
	rec := m.findLatest(stepID)
	if rec == nil {
		return
	}

	rec.CompletedAt = time.Now()
	rec.Success = success
	rec.Error = errMsg

	if success {
		m.metrics.SuccessfulSteps++
	} else {
		m.metrics.FailedSteps++
	}
	m.updateAverageDuration(rec.duration())
}

// RecordRetry increments the retry counter on the step's most recent record
// without closing it.
func (m *Monitor) RecordRetry(stepID string) {
	if rec := m.findLatest(stepID); rec != nil {
		rec.RetryCount++
	}
}

// Metrics returns a copy of the current aggregate counters.
func (m *Monitor) Metrics() Metrics {
	return m.metrics
}

// CleanupHistory trims the oldest records once the history exceeds
// keepRecent, preserving order.
func (m *Monitor) CleanupHistory(keepRecent int) {
	if len(m.history) > keepRecent {
		m.history = append([]ExecutionRecord(nil), m.history[len(m.history)-keepRecent:]...)
	}
}

// CheckHealth runs all detectors and returns the union of findings, in
// detector order: stuck state, failure rate, loop, timeout, retries.
// Findings are advisory; nothing is aborted.
func (m *Monitor) CheckHealth() []Issue {
	var issues []Issue

	if stuck := m.checkStuckState(); stuck != nil {
		issues = append(issues, stuck)
		m.metrics.StuckCount++
	}

	if failure := m.checkFailureRate(); failure != nil {
		issues = append(issues, failure)
	}

	if loop := m.loops.detect(); loop != nil {
		issues = append(issues, loop)
		m.metrics.LoopCount++
	}

	issues = append(issues, m.checkTimeouts()...)
	issues = append(issues, m.checkExcessiveRetries()...)

	if len(issues) > 0 {
		m.logger.Warn("health issues detected", map[string]interface{}{
			"count": len(issues),
		})
	}

	return issues
}

// checkStuckState flags only the single most recently started record, and
// only while it is still open.
func (m *Monitor) checkStuckState() Issue {
	if len(m.history) == 0 {
		return nil
	}
	last := &m.history[len(m.history)-1]
	if !last.open() {
		return nil
	}
	elapsed := time.Since(last.StartedAt)
	if elapsed > m.StuckThreshold {
		return &StuckState{StepID: last.StepID, Duration: elapsed}
	}
	return nil
}

func (m *Monitor) checkFailureRate() Issue {
	if m.metrics.TotalSteps <= failureRateMinSteps {
		return nil
	}
	rate := float32(m.metrics.FailedSteps) / float32(m.metrics.TotalSteps)
	if rate > failureRateThreshold {
		return &HighFailureRate{Rate: rate}
	}
	return nil
}

func (m *Monitor) checkTimeouts() []Issue {
	var issues []Issue
	for i := range m.history {
		rec := &m.history[i]
		if rec.open() {
			continue
		}
		expected := m.TimeoutReference
		if declared, ok := m.stepTimeouts[rec.StepID]; ok {
			expected = declared
		}
		if d := rec.duration(); d > expected {
			issues = append(issues, &Timeout{
				StepID:   rec.StepID,
				Expected: expected,
				Actual:   d,
			})
		}
	}
	return issues
}

func (m *Monitor) checkExcessiveRetries() []Issue {
	var issues []Issue
	for i := range m.history {
		rec := &m.history[i]
		if rec.RetryCount > maxRetries {
			issues = append(issues, &ExcessiveRetries{
				StepID:     rec.StepID,
				RetryCount: rec.RetryCount,
			})
		}
	}
	return issues
}

// findLatest returns the most recent record for the step, open or closed.
func (m *Monitor) findLatest(stepID string) *ExecutionRecord {
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].StepID == stepID {
			return &m.history[i]
		}
	}
	return nil
}

// updateAverageDuration folds a newly closed duration into the running
// average: new_avg = (old_avg*(n-1) + d) / n, where n counts all closed
// records so far.
func (m *Monitor) updateAverageDuration(d time.Duration) {
	n := m.metrics.SuccessfulSteps + m.metrics.FailedSteps
	if n <= 1 {
		m.metrics.AverageStepDuration = d
		return
	}
	total := m.metrics.AverageStepDuration*time.Duration(n-1) + d
	m.metrics.AverageStepDuration = total / time.Duration(n)
}
