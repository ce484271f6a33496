// Health issue kinds.
package monitor

import "time"

// IssueKind discriminates health issue variants.
type IssueKind string

const (
	KindStuckState       IssueKind = "stuck_state"
	KindHighFailureRate  IssueKind = "high_failure_rate"
	KindInfiniteLoop     IssueKind = "infinite_loop"
	KindTimeout          IssueKind = "timeout"
	KindExcessiveRetries IssueKind = "excessive_retries"
)

// Issue is a detected execution anomaly. Issues are produced fresh on every
// health check and never persisted.
type Issue interface {
	Kind() IssueKind
}

// StuckState reports the most recent step staying open past the stuck
// threshold.
type StuckState struct {
	StepID   string
	Duration time.Duration
}

func (*StuckState) Kind() IssueKind { return KindStuckState }

// HighFailureRate reports the failed/total ratio exceeding the threshold.
type HighFailureRate struct {
	Rate float32
}

func (*HighFailureRate) Kind() IssueKind { return KindHighFailureRate }

// InfiniteLoop reports a repeated step or repeated step sequence.
type InfiniteLoop struct {
	Pattern string
}

func (*InfiniteLoop) Kind() IssueKind { return KindInfiniteLoop }

// Timeout reports a closed step whose duration exceeded its expected
// timeout.
type Timeout struct {
	StepID   string
	Expected time.Duration
	Actual   time.Duration
}

func (*Timeout) Kind() IssueKind { return KindTimeout }

// ExcessiveRetries reports a step retried past the retry budget.
type ExcessiveRetries struct {
	StepID     string
	RetryCount uint32
}

func (*ExcessiveRetries) Kind() IssueKind { return KindExcessiveRetries }
