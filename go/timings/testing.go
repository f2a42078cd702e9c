package timings

import "time"

// NewRegistryForTesting returns a Registry which reads the given clock
// instead of time.Now, so that tests can control elapsed time.
func NewRegistryForTesting(now func() time.Time) *Registry {
	return &Registry{
		timers: map[string]*timer{},
		now:    now,
	}
}
