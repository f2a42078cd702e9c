package events

import "sync"

// CaptureListener records every event it receives, for use in tests.
type CaptureListener struct {
	mtx    sync.Mutex
	events []Event
}

// HandleEvent implements Listener.
func (c *CaptureListener) HandleEvent(e Event) error {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.events = append(c.events, e)
	return nil
}

// Events returns a copy of the recorded events in arrival order.
func (c *CaptureListener) Events() []Event {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	ret := make([]Event, len(c.events))
	copy(ret, c.events)
	return ret
}

// Reset discards all recorded events.
func (c *CaptureListener) Reset() {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	c.events = nil
}
