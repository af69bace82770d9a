package metrics

import "time"

// Recorder defines observability hooks for plan assembly and diffing.
// Implementations may forward to Prometheus, OpenTelemetry, etc. All methods
// must be safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObservePlanAssembly(d time.Duration, actionCount int)
	IncPlanOutcome(outcome string) // outcome: success|failed
	IncMatchQueries(n int)
	ObserveDiff(added, removed, unchanged int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObservePlanAssembly(time.Duration, int) {}
func (NoopRecorder) IncPlanOutcome(string)                  {}
func (NoopRecorder) IncMatchQueries(int)                    {}
func (NoopRecorder) ObserveDiff(int, int, int)              {}
