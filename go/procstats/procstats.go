// Package procstats emits a standard sequence of metric events around a
// named unit of work, backed by a timer registry.
//
// A process span is bracketed by Start and End. Start emits
// "processes.{group}.{name}.invoked" and starts a timer; End stops the
// timer and emits "processes.{group}.{name}.time_to_complete",
// ".completed", and ".statuses.{status}", then destroys the timer.
package procstats

import (
	"fmt"

	"go.statline.org/statline/go/events"
	"go.statline.org/statline/go/timings"
)

// DefaultGroup is the event-name group used when the caller passes "".
const DefaultGroup = "logger"

// timerPrefix derives the registry key for a process span. The group is
// deliberately not part of the key, only of the event names: two spans
// collide exactly when their names collide, regardless of group.
const timerPrefix = "logger_process_timer_"

// Recorder composes an event emitter and a timer registry into process
// instrumentation. Spans of the same name must not overlap; a second Start
// before End silently discards the first timer's in-flight state.
type Recorder struct {
	events *events.Emitter
	timers *timings.Registry
}

// NewRecorder returns a Recorder emitting through e and timing through t.
func NewRecorder(e *events.Emitter, t *timings.Registry) *Recorder {
	return &Recorder{
		events: e,
		timers: t,
	}
}

func timerName(name string) string {
	return timerPrefix + name
}

func eventName(group, name, suffix string) string {
	return fmt.Sprintf("processes.%s.%s.%s", group, name, suffix)
}

// Start begins a process span: it destroys any stale timer left by a prior
// unterminated span of the same name, emits the invoked event, and starts
// the timer. An empty group means DefaultGroup.
func (r *Recorder) Start(name, group string) error {
	if group == "" {
		group = DefaultGroup
	}
	r.timers.Destroy(timerName(name))
	if err := r.events.Emit(eventName(group, name, "invoked"), events.Count, int64(1)); err != nil {
		return err
	}
	r.timers.Start(timerName(name))
	return nil
}

// End finishes a process span: it stops the timer, emits the
// time_to_complete (elapsed milliseconds, truncated), completed, and
// statuses.{status} events in that order, and destroys the timer. An empty
// group means DefaultGroup; an empty status means "ok".
//
// End without a matching prior Start returns a timings.NotFoundError and
// emits nothing; a duration is never fabricated. The status is
// interpolated into the event name verbatim, so callers must sanitize
// status strings containing dots if the downstream sink treats dots as
// path delimiters.
func (r *Recorder) End(name, group, status string) error {
	if group == "" {
		group = DefaultGroup
	}
	if status == "" {
		status = "ok"
	}
	elapsed, err := r.timers.Stop(timerName(name))
	if err != nil {
		return err
	}
	if err := r.events.Emit(eventName(group, name, "time_to_complete"), events.Time, elapsed.Milliseconds()); err != nil {
		return err
	}
	if err := r.events.Emit(eventName(group, name, "completed"), events.Count, int64(1)); err != nil {
		return err
	}
	if err := r.events.Emit(eventName(group, name, "statuses."+status), events.Count, int64(1)); err != nil {
		return err
	}
	r.timers.Destroy(timerName(name))
	return nil
}

// Do runs fn as a process span named name, ending with status "ok" when fn
// returns nil and "error" otherwise. It returns fn's error; span
// bookkeeping errors take precedence only when fn succeeded.
func (r *Recorder) Do(name, group string, fn func() error) error {
	if err := r.Start(name, group); err != nil {
		return err
	}
	status := "ok"
	err := fn()
	if err != nil {
		status = "error"
	}
	if endErr := r.End(name, group, status); endErr != nil && err == nil {
		return endErr
	}
	return err
}
