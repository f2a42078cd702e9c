// Package loglistener logs every statline event via stlog. It is mainly
// useful during development, wired alongside a real backend listener.
package loglistener

import (
	"go.statline.org/statline/go/events"
	"go.statline.org/statline/go/stlog"
)

// Listener implements events.Listener by logging each event at info level.
type Listener struct{}

// HandleEvent implements events.Listener.
func (Listener) HandleEvent(e events.Event) error {
	stlog.Infof("event %s %s %d", e.Name, e.Type, e.Value)
	return nil
}

var _ events.Listener = Listener{}
