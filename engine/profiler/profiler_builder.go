package profiler

import "time"

// ProfilerOption is a functional option for configuring a Profiler.
type ProfilerOption func(p *Profiler)

// WithUpdateInterval sets how often stats are logged. Non-positive values are ignored.
//
// Parameters:
//   - interval: time between log lines
//
// Returns:
//   - ProfilerOption: option function to apply
func WithUpdateInterval(interval time.Duration) ProfilerOption {
	return func(p *Profiler) {
		if interval > 0 {
			p.updateInterval = interval
		}
	}
}

// WithClock replaces time.Now, for tests.
//
// Parameters:
//   - now: the clock function
//
// Returns:
//   - ProfilerOption: option function to apply
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogf replaces log.Printf as the output sink.
//
// Parameters:
//   - logf: printf-style sink
//
// Returns:
//   - ProfilerOption: option function to apply
func WithLogf(logf func(format string, args ...any)) ProfilerOption {
	return func(p *Profiler) {
		if logf != nil {
			p.logf = logf
		}
	}
}

// WithStatsSource appends a source whose non-empty output is added to each log line.
//
// Parameters:
//   - src: returns a short stats fragment, e.g. the camera position
//
// Returns:
//   - ProfilerOption: option function to apply
func WithStatsSource(src func() string) ProfilerOption {
	return func(p *Profiler) {
		if src != nil {
			p.sources = append(p.sources, src)
		}
	}
}

// WithEnabled sets whether the profiler starts enabled. Defaults to true.
//
// Parameters:
//   - enabled: true to log stats
//
// Returns:
//   - ProfilerOption: option function to apply
func WithEnabled(enabled bool) ProfilerOption {
	return func(p *Profiler) {
		p.enabled = enabled
	}
}
