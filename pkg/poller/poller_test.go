package poller

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestPollerRunsTaskOnInterval(t *testing.T) {
	var runs int32
	p := New(Opts{
		Name:     "test",
		Interval: 20 * time.Millisecond,
		Task: func() {
			atomic.AddInt32(&runs, 1)
		},
	})

	p.Start()
	require.True(t, p.IsRunning())

	time.Sleep(110 * time.Millisecond)
	p.Stop()
	require.False(t, p.IsRunning())

	count := atomic.LoadInt32(&runs)
	require.GreaterOrEqual(t, count, int32(3))

	time.Sleep(50 * time.Millisecond)
	require.Equal(t, count, atomic.LoadInt32(&runs))
}

func TestPollerFireImmediately(t *testing.T) {
	var runs int32
	p := New(Opts{
		Name:     "test",
		Interval: time.Hour,
		Task: func() {
			atomic.AddInt32(&runs, 1)
		},
		FireImmediately: true,
	})

	p.Start()
	defer p.Stop()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&runs) == 1
	}, time.Second, 10*time.Millisecond)
}

func TestPollerStartIsIdempotent(t *testing.T) {
	var runs int32
	p := New(Opts{
		Name:     "test",
		Interval: time.Hour,
		Task: func() {
			atomic.AddInt32(&runs, 1)
		},
		FireImmediately: true,
	})

	p.Start()
	p.Start()
	p.Start()
	defer p.Stop()

	// A second loop would fire the immediate task again.
	time.Sleep(50 * time.Millisecond)
	require.Equal(t, int32(1), atomic.LoadInt32(&runs))
}

func TestPollerSharedRateLimiterThrottlesRuns(t *testing.T) {
	limiter := rate.NewLimiter(rate.Every(30*time.Millisecond), 1)

	var runs int32
	task := func() {
		atomic.AddInt32(&runs, 1)
	}
	first := New(Opts{
		Name:        "first",
		Interval:    5 * time.Millisecond,
		Task:        task,
		RateLimiter: limiter,
	})
	second := New(Opts{
		Name:        "second",
		Interval:    5 * time.Millisecond,
		Task:        task,
		RateLimiter: limiter,
	})

	first.Start()
	second.Start()
	time.Sleep(100 * time.Millisecond)
	first.Stop()
	second.Stop()
	// A loop blocked on the limiter at stop time still finishes that run.
	time.Sleep(80 * time.Millisecond)

	// Unthrottled the two loops would run ~40 times; the shared limiter
	// caps them to roughly one run per 30ms overall.
	count := atomic.LoadInt32(&runs)
	require.GreaterOrEqual(t, count, int32(1))
	require.LessOrEqual(t, count, int32(8))
}

func TestPollerStopIsIdempotent(t *testing.T) {
	p := New(Opts{
		Name:     "test",
		Interval: time.Hour,
		Task:     func() {},
	})

	p.Stop()
	require.False(t, p.IsRunning())

	p.Start()
	p.Stop()
	p.Stop()
	require.False(t, p.IsRunning())

	p.Start()
	require.True(t, p.IsRunning())
	p.Stop()
}
