// Package timings implements a process-wide registry of named stopwatch
// timers. Timers are in-memory only and do not survive a restart.
package timings

import (
	"fmt"
	"sync"
	"time"
)

// NotFoundError is returned by Stop and Read when no timer exists under the
// given name. Destroy never returns it; destroying an absent timer is a
// no-op so that cleanup code can run unconditionally.
type NotFoundError struct {
	Name string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("no timer named %q", e.Name)
}

// timer records the start of a span and, once stopped, its end.
type timer struct {
	start   time.Time
	stop    time.Time
	stopped bool
}

// Registry owns all named timers for a process. A name maps to at most one
// live timer at a time. All methods are safe for concurrent use.
type Registry struct {
	mtx    sync.Mutex
	timers map[string]*timer
	now    func() time.Time
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		timers: map[string]*timer{},
		now:    time.Now,
	}
}

// Start creates a new running timer under the given name. Any existing
// timer with the same name is discarded first, so Start always yields a
// single running timer; the prior timer's in-flight state is lost.
func (r *Registry) Start(name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	r.timers[name] = &timer{start: r.now()}
}

// Stop records the stop timestamp for the named timer and returns the
// elapsed time. The timer remains readable until destroyed. Stopping an
// absent timer returns a NotFoundError.
func (r *Registry) Stop(name string) (time.Duration, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	t, ok := r.timers[name]
	if !ok {
		return 0, NotFoundError{Name: name}
	}
	t.stop = r.now()
	t.stopped = true
	return t.stop.Sub(t.start), nil
}

// Read returns the elapsed time for the named timer: stop minus start if
// the timer has been stopped, otherwise elapsed-so-far. Reading an absent
// timer returns a NotFoundError.
func (r *Registry) Read(name string) (time.Duration, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	t, ok := r.timers[name]
	if !ok {
		return 0, NotFoundError{Name: name}
	}
	if t.stopped {
		return t.stop.Sub(t.start), nil
	}
	return r.now().Sub(t.start), nil
}

// Destroy removes the named timer. Destroying an absent timer is a silent
// no-op.
func (r *Registry) Destroy(name string) {
	r.mtx.Lock()
	defer r.mtx.Unlock()
	delete(r.timers, name)
}
