package events

import "fmt"

// InvalidNameError is returned by Emit when the event name is empty.
type InvalidNameError struct{}

func (e InvalidNameError) Error() string {
	return "event name must be a non-empty string"
}

// InvalidTypeError is returned by Emit when the event type is not one of
// count, gauge, set, time. It carries the offending value; the caller's
// own stack or log context supplies location info.
type InvalidTypeError struct {
	Name string
	Type Type
}

func (e InvalidTypeError) Error() string {
	return fmt.Sprintf("event %q has invalid type %q; must be one of count, gauge, set, time", e.Name, string(e.Type))
}

// InvalidValueError is returned by Emit when the event value is not
// representable as an integer.
type InvalidValueError struct {
	Name  string
	Value interface{}
}

func (e InvalidValueError) Error() string {
	return fmt.Sprintf("event %q has invalid value %v (%T); must be an integer", e.Name, e.Value, e.Value)
}
