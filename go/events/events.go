// Package events implements named, typed metric events and their dispatch
// to registered listeners.
//
// An Event carries a dot-delimited hierarchical name, one of four types
// (count, gauge, set, time), and an integer value whose meaning depends on
// the type. Events are not persisted; the Emitter validates each event and
// fans it out to every registered Listener, in registration order.
package events

// Type is the kind of a metric event.
type Type string

const (
	// Count events carry a signed delta.
	Count Type = "count"
	// Gauge events carry an absolute reading.
	Gauge Type = "gauge"
	// Set events carry a member to add to a uniqueness set.
	Set Type = "set"
	// Time events carry a duration in milliseconds, non-negative.
	Time Type = "time"
)

// Valid returns true if t is one of the four event types.
func (t Type) Valid() bool {
	switch t {
	case Count, Gauge, Set, Time:
		return true
	}
	return false
}

// Event is an immutable metric event. It has no identity beyond its fields.
type Event struct {
	Name  string
	Type  Type
	Value int64
}

// Listener is invoked for every event the Emitter dispatches. A Listener
// must not assume anything about which goroutine calls it; invocation is
// synchronous from the emitting call site, so a Listener that hangs stalls
// the caller. Callers needing isolation must impose their own timeout.
type Listener interface {
	HandleEvent(e Event) error
}

// ListenerFunc adapts a plain function to the Listener interface.
type ListenerFunc func(e Event) error

// HandleEvent implements Listener.
func (f ListenerFunc) HandleEvent(e Event) error {
	return f(e)
}

// NoopListener discards all events. Useful for testing and for disabling a
// wired-up listener without unregistering it.
type NoopListener struct{}

// HandleEvent implements Listener.
func (NoopListener) HandleEvent(e Event) error {
	return nil
}
