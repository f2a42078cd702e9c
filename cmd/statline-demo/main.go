// statline-demo wires a full statline pipeline together: an emitter with
// prometheus, statsd, and log listeners, fed by synthetic process spans.
// Metrics are served on /metrics for scraping.
package main

import (
	"flag"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go.statline.org/statline/go/events"
	"go.statline.org/statline/go/listeners/loglistener"
	"go.statline.org/statline/go/listeners/promlistener"
	"go.statline.org/statline/go/listeners/statsdlistener"
	"go.statline.org/statline/go/procstats"
	"go.statline.org/statline/go/settings"
	"go.statline.org/statline/go/stlog"
	"go.statline.org/statline/go/timings"
)

// flags
var (
	config     = flag.String("config", "", "Path to a settings file; env vars only if empty.")
	port       = flag.String("port", ":8000", "HTTP service address (e.g., ':8000')")
	statsdAddr = flag.String("statsd", "", "Optional statsd daemon address (e.g., 'localhost:8125')")
)

func main() {
	flag.Parse()

	cfg, err := settings.New(*config)
	if err != nil {
		stlog.Fatal(err)
	}

	emitter := events.NewEmitter(nil, cfg.Debug)
	emitter.Register(promlistener.New(nil))
	emitter.Register(loglistener.Listener{})
	if *statsdAddr != "" {
		statsd, err := statsdlistener.Dial(*statsdAddr)
		if err != nil {
			stlog.Fatal(err)
		}
		emitter.Register(statsd)
	}

	recorder := procstats.NewRecorder(emitter, timings.NewRegistry())
	go func() {
		for i := int64(0); ; i++ {
			err := recorder.Do("demo", "", func() error {
				time.Sleep(time.Second)
				return nil
			})
			if err != nil {
				stlog.Errorf("Demo span failed: %s", err)
			}
			if err := emitter.Gauge("demo.iterations", i); err != nil {
				stlog.Errorf("Failed to emit: %s", err)
			}
		}
	}()

	http.Handle("/metrics", promhttp.Handler())
	stlog.Fatal(http.ListenAndServe(*port, nil))
}
