package metrics

import "time"

// Recorder defines observability hooks for navigation validation.
type Recorder interface {
	ObserveValidationDuration(d time.Duration)
	SetSidebarSize(categories, entries int)
	IncIssue(rule, severity string)
	IncBuildOutcome(outcome string) // outcome: clean|warning|error|structural
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveValidationDuration(time.Duration) {}
func (NoopRecorder) SetSidebarSize(int, int)                 {}
func (NoopRecorder) IncIssue(string, string)                 {}
func (NoopRecorder) IncBuildOutcome(string)                  {}
