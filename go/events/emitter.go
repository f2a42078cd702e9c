package events

import (
	"math"
	"sync"
	"time"

	"go.statline.org/statline/go/stlog"
)

// Logger is the diagnostic log sink used by the Emitter for the optional
// debug trace and for reporting listener failures. It is a pure side
// channel with no bearing on dispatch correctness.
type Logger interface {
	Debugf(format string, args ...interface{})
	Errorf(format string, args ...interface{})
}

// stlogLogger is the default Logger, backed by the stlog package.
type stlogLogger struct{}

func (stlogLogger) Debugf(format string, args ...interface{}) {
	stlog.Debugf(format, args...)
}

func (stlogLogger) Errorf(format string, args ...interface{}) {
	stlog.Errorf(format, args...)
}

// Emitter validates metric events and fans them out to registered
// listeners. It holds all mutable dispatch state explicitly (listener
// list, debug flag, log sink) rather than in process-wide singletons, so
// multiple independent instances can coexist.
//
// All methods are safe for concurrent use. Dispatch itself is synchronous:
// Emit does not return until every listener has been attempted.
type Emitter struct {
	mtx       sync.RWMutex
	listeners []Listener
	debug     func() bool
	log       Logger
}

// NewEmitter returns an Emitter with the given diagnostic log sink and
// debug-flag getter. A nil log falls back to stlog; a nil debug means the
// debug trace is never recorded. The debug getter is read once per Emit.
func NewEmitter(log Logger, debug func() bool) *Emitter {
	if log == nil {
		log = stlogLogger{}
	}
	return &Emitter{
		listeners: []Listener{},
		debug:     debug,
		log:       log,
	}
}

// Register adds a listener. Listeners are invoked in registration order,
// which is stable for the lifetime of the Emitter.
func (e *Emitter) Register(l Listener) {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	e.listeners = append(e.listeners, l)
}

// Emit validates the event and dispatches it to every registered listener
// exactly once, in registration order. Validation errors abort before any
// listener runs; a listener that fails or panics is logged and does not
// prevent later listeners from running, and never surfaces to the caller.
//
// value must be representable as an integer; any of Go's integer kinds is
// accepted, everything else (floats included) is an InvalidValueError.
func (e *Emitter) Emit(name string, typ Type, value interface{}) error {
	if name == "" {
		return InvalidNameError{}
	}
	if !typ.Valid() {
		return InvalidTypeError{Name: name, Type: typ}
	}
	v, ok := toInt64(value)
	if !ok {
		return InvalidValueError{Name: name, Value: value}
	}
	if e.debug != nil && e.debug() {
		e.log.Debugf("Emitting event %s type %s value %d", name, typ, v)
	}
	ev := Event{Name: name, Type: typ, Value: v}
	for _, l := range e.snapshot() {
		e.dispatch(l, ev)
	}
	return nil
}

// snapshot copies the listener list so that dispatch runs without holding
// the lock; a listener may itself call Register or Emit.
func (e *Emitter) snapshot() []Listener {
	e.mtx.RLock()
	defer e.mtx.RUnlock()
	ret := make([]Listener, len(e.listeners))
	copy(ret, e.listeners)
	return ret
}

// dispatch invokes a single listener, isolating errors and panics.
func (e *Emitter) dispatch(l Listener, ev Event) {
	defer func() {
		if r := recover(); r != nil {
			e.log.Errorf("Listener panicked on event %s: %v", ev.Name, r)
		}
	}()
	if err := l.HandleEvent(ev); err != nil {
		e.log.Errorf("Listener failed on event %s: %s", ev.Name, err)
	}
}

// Inc emits a count event with value 1.
func (e *Emitter) Inc(name string) error {
	return e.Emit(name, Count, int64(1))
}

// Count emits a count event with the given signed delta.
func (e *Emitter) Count(name string, delta int64) error {
	return e.Emit(name, Count, delta)
}

// Gauge emits a gauge event with the given absolute reading.
func (e *Emitter) Gauge(name string, v int64) error {
	return e.Emit(name, Gauge, v)
}

// SetAdd emits a set event adding the given member.
func (e *Emitter) SetAdd(name string, member int64) error {
	return e.Emit(name, Set, member)
}

// Timing emits a time event with the duration truncated to integer
// milliseconds.
func (e *Emitter) Timing(name string, d time.Duration) error {
	return e.Emit(name, Time, d.Milliseconds())
}

// toInt64 converts any of Go's integer kinds to int64. It returns false
// for all other kinds, including floats, per the rule that values are never
// silently coerced.
func toInt64(value interface{}) (int64, bool) {
	switch v := value.(type) {
	case int:
		return int64(v), true
	case int8:
		return int64(v), true
	case int16:
		return int64(v), true
	case int32:
		return int64(v), true
	case int64:
		return v, true
	case uint:
		if uint64(v) > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	case uint8:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint64:
		if v > math.MaxInt64 {
			return 0, false
		}
		return int64(v), true
	}
	return 0, false
}
