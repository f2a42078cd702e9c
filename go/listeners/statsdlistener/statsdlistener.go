// Package statsdlistener forwards statline events to a statsd daemon using
// the plain-text line protocol.
package statsdlistener

import (
	"fmt"
	"io"
	"net"
	"sync"

	"go.statline.org/statline/go/events"
)

// typeCode maps event types to statsd metric type codes.
var typeCode = map[events.Type]string{
	events.Count: "c",
	events.Gauge: "g",
	events.Set:   "s",
	events.Time:  "ms",
}

// Listener implements events.Listener by writing one statsd line per event.
type Listener struct {
	mtx sync.Mutex
	w   io.Writer
}

// New returns a Listener writing lines to w. Each event produces a single
// Write call, so a net.Conn needs no extra buffering or framing.
func New(w io.Writer) *Listener {
	return &Listener{w: w}
}

// Dial returns a Listener sending to a statsd daemon over UDP.
func Dial(addr string) (*Listener, error) {
	conn, err := net.Dial("udp", addr)
	if err != nil {
		return nil, fmt.Errorf("dialing statsd at %s: %w", addr, err)
	}
	return New(conn), nil
}

// HandleEvent implements events.Listener.
func (l *Listener) HandleEvent(e events.Event) error {
	l.mtx.Lock()
	defer l.mtx.Unlock()
	_, err := fmt.Fprintf(l.w, "%s:%d|%s", e.Name, e.Value, typeCode[e.Type])
	return err
}

var _ events.Listener = (*Listener)(nil)
