package procstats

import (
	"errors"
	"fmt"
	"testing"
	"time"

	assert "github.com/stretchr/testify/require"

	"go.statline.org/statline/go/events"
	"go.statline.org/statline/go/testutils"
	"go.statline.org/statline/go/timings"
)

// fakeClock is a manually-advanced clock for deterministic elapsed times.
type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time {
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.t = c.t.Add(d)
}

func newRecorder() (*Recorder, *events.CaptureListener, *fakeClock, *timings.Registry) {
	clock := &fakeClock{t: time.Unix(1500000000, 0)}
	capture := &events.CaptureListener{}
	emitter := events.NewEmitter(nil, nil)
	emitter.Register(capture)
	registry := timings.NewRegistryForTesting(clock.now)
	return NewRecorder(emitter, registry), capture, clock, registry
}

func TestStartEnd(t *testing.T) {
	r, capture, clock, registry := newRecorder()

	assert.NoError(t, r.Start("build", ""))
	clock.advance(2500 * time.Millisecond)
	assert.NoError(t, r.End("build", "", ""))

	// Exactly four events, in order, with the default group and status.
	testutils.AssertDeepEqual(t, []events.Event{
		{Name: "processes.logger.build.invoked", Type: events.Count, Value: 1},
		{Name: "processes.logger.build.time_to_complete", Type: events.Time, Value: 2500},
		{Name: "processes.logger.build.completed", Type: events.Count, Value: 1},
		{Name: "processes.logger.build.statuses.ok", Type: events.Count, Value: 1},
	}, capture.Events())

	// No timer remains registered afterward.
	_, err := registry.Read("logger_process_timer_build")
	var nfe timings.NotFoundError
	assert.True(t, errors.As(err, &nfe))
}

func TestExplicitGroupAndStatus(t *testing.T) {
	r, capture, _, _ := newRecorder()

	assert.NoError(t, r.Start("sync", "repo"))
	assert.NoError(t, r.End("sync", "repo", "failed"))

	evs := capture.Events()
	assert.Len(t, evs, 4)
	assert.Equal(t, "processes.repo.sync.invoked", evs[0].Name)
	assert.Equal(t, "processes.repo.sync.statuses.failed", evs[3].Name)
}

func TestStatusInterpolatedVerbatim(t *testing.T) {
	r, capture, _, _ := newRecorder()

	// Sanitizing path-delimiter characters is the caller's responsibility.
	assert.NoError(t, r.Start("job", ""))
	assert.NoError(t, r.End("job", "", "err.timeout"))
	evs := capture.Events()
	assert.Equal(t, "processes.logger.job.statuses.err.timeout", evs[3].Name)
}

func TestEndWithoutStart(t *testing.T) {
	r, capture, _, _ := newRecorder()

	err := r.End("never-started", "", "")
	var nfe timings.NotFoundError
	assert.True(t, errors.As(err, &nfe))
	// Strict policy: no events emitted, no fabricated duration.
	assert.Empty(t, capture.Events())
}

func TestDoubleStartDiscardsFirst(t *testing.T) {
	r, capture, clock, _ := newRecorder()

	assert.NoError(t, r.Start("build", ""))
	clock.advance(time.Minute)
	// The second Start discards the first timer's in-flight state; the
	// reported duration is measured from the second Start only.
	assert.NoError(t, r.Start("build", ""))
	clock.advance(time.Second)
	assert.NoError(t, r.End("build", "", ""))

	evs := capture.Events()
	assert.Len(t, evs, 5) // two invoked events, then the completion trio
	assert.Equal(t, "processes.logger.build.invoked", evs[0].Name)
	assert.Equal(t, "processes.logger.build.invoked", evs[1].Name)
	assert.Equal(t, "processes.logger.build.time_to_complete", evs[2].Name)
	assert.Equal(t, int64(1000), evs[2].Value)
	assert.Equal(t, "processes.logger.build.statuses.ok", evs[4].Name)
}

func TestGroupNotPartOfTimerKey(t *testing.T) {
	r, capture, clock, _ := newRecorder()

	// Starting under one group and ending under another works because the
	// group is part of the event names only, never of the timer key.
	assert.NoError(t, r.Start("job", "alpha"))
	clock.advance(time.Second)
	assert.NoError(t, r.End("job", "beta", ""))

	evs := capture.Events()
	assert.Len(t, evs, 4)
	assert.Equal(t, "processes.alpha.job.invoked", evs[0].Name)
	assert.Equal(t, "processes.beta.job.time_to_complete", evs[1].Name)
	assert.Equal(t, int64(1000), evs[1].Value)
}

func TestDo(t *testing.T) {
	r, capture, _, _ := newRecorder()

	assert.NoError(t, r.Do("ok-span", "", func() error {
		return nil
	}))
	evs := capture.Events()
	assert.Len(t, evs, 4)
	assert.Equal(t, "processes.logger.ok-span.statuses.ok", evs[3].Name)

	capture.Reset()
	failure := fmt.Errorf("fn failed")
	err := r.Do("bad-span", "", func() error {
		return failure
	})
	assert.Equal(t, failure, err)
	evs = capture.Events()
	assert.Len(t, evs, 4)
	assert.Equal(t, "processes.logger.bad-span.statuses.error", evs[3].Name)
}
