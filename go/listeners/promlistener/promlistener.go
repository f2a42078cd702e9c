// Package promlistener mirrors statline events into Prometheus metrics.
//
// Event names are dot-delimited; Prometheus metric names are not, so names
// are sanitized on the way in. The mapping is: count events become gauges
// accumulating signed deltas, gauge events become gauges holding the last
// absolute reading, time events become summaries observing milliseconds,
// and set events become gauges holding the cardinality of the members seen
// so far.
package promlistener

import (
	"regexp"
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"go.statline.org/statline/go/events"
)

var (
	// invalidChar is used to force metric names to conform to Prometheus's
	// restrictions.
	invalidChar = regexp.MustCompile("([^a-zA-Z0-9_:])")
)

func clean(s string) string {
	return invalidChar.ReplaceAllLiteralString(s, "_")
}

// memberSet tracks the unique members of one set event name.
type memberSet struct {
	members map[int64]bool
	gauge   prometheus.Gauge
}

// Listener implements events.Listener on top of a Prometheus registerer.
type Listener struct {
	reg prometheus.Registerer

	gauges   map[string]prometheus.Gauge
	gaugeMtx sync.Mutex

	summaries  map[string]prometheus.Summary
	summaryMtx sync.Mutex

	sets   map[string]*memberSet
	setMtx sync.Mutex
}

// New returns a Listener registering its metrics with reg; a nil reg means
// the default registerer.
func New(reg prometheus.Registerer) *Listener {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	return &Listener{
		reg:       reg,
		gauges:    map[string]prometheus.Gauge{},
		summaries: map[string]prometheus.Summary{},
		sets:      map[string]*memberSet{},
	}
}

// HandleEvent implements events.Listener.
func (l *Listener) HandleEvent(e events.Event) error {
	switch e.Type {
	case events.Count:
		g, err := l.gauge(e.Name)
		if err != nil {
			return err
		}
		g.Add(float64(e.Value))
	case events.Gauge:
		g, err := l.gauge(e.Name)
		if err != nil {
			return err
		}
		g.Set(float64(e.Value))
	case events.Time:
		s, err := l.summary(e.Name)
		if err != nil {
			return err
		}
		s.Observe(float64(e.Value))
	case events.Set:
		return l.setAdd(e.Name, e.Value)
	}
	return nil
}

// gauge creates or retrieves the gauge for the given event name.
func (l *Listener) gauge(name string) (prometheus.Gauge, error) {
	l.gaugeMtx.Lock()
	defer l.gaugeMtx.Unlock()
	if g, ok := l.gauges[name]; ok {
		return g, nil
	}
	g := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: clean(name),
		Help: name,
	})
	if err := l.reg.Register(g); err != nil {
		return nil, err
	}
	l.gauges[name] = g
	return g, nil
}

// summary creates or retrieves the summary for the given event name.
func (l *Listener) summary(name string) (prometheus.Summary, error) {
	l.summaryMtx.Lock()
	defer l.summaryMtx.Unlock()
	if s, ok := l.summaries[name]; ok {
		return s, nil
	}
	s := prometheus.NewSummary(prometheus.SummaryOpts{
		Name:       clean(name),
		Help:       name,
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	})
	if err := l.reg.Register(s); err != nil {
		return nil, err
	}
	l.summaries[name] = s
	return s, nil
}

// setAdd records a set member and updates the cardinality gauge.
func (l *Listener) setAdd(name string, member int64) error {
	l.setMtx.Lock()
	defer l.setMtx.Unlock()
	ms, ok := l.sets[name]
	if !ok {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Name: clean(name),
			Help: name,
		})
		if err := l.reg.Register(g); err != nil {
			return err
		}
		ms = &memberSet{
			members: map[int64]bool{},
			gauge:   g,
		}
		l.sets[name] = ms
	}
	ms.members[member] = true
	ms.gauge.Set(float64(len(ms.members)))
	return nil
}

var _ events.Listener = (*Listener)(nil)
