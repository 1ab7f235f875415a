package poller

import (
	"context"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// Poller is a named timer-driven recurring task with idempotent start and
// stop: starting a running poller or stopping a stopped one is a no-op, so
// at any time at most one ticker loop exists per poller.
type Poller struct {
	name        string
	interval    time.Duration
	task        func()
	immediate   bool
	rateLimiter *rate.Limiter

	mtx      sync.Mutex
	stopChan chan struct{}
}

// Opts defines the parameters needed for creating a poller with New.
type Opts struct {
	// Name appears in logs only.
	Name string
	// Interval between two consecutive task runs.
	Interval time.Duration
	// Task is the recurring unit of work.
	Task func()
	// FireImmediately makes Start run the task once before the first tick.
	FireImmediately bool
	// RateLimiter, if set, bounds task runs across pollers sharing it.
	RateLimiter *rate.Limiter
}

// New returns a stopped poller.
func New(opts Opts) *Poller {
	return &Poller{
		name:        opts.Name,
		interval:    opts.Interval,
		task:        opts.Task,
		immediate:   opts.FireImmediately,
		rateLimiter: opts.RateLimiter,
	}
}

// Start spawns the ticker loop. If the poller is already running the call is
// a no-op and no second loop is created.
func (p *Poller) Start() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.stopChan != nil {
		return
	}

	log.Debugf("poller %s: start", p.name)
	p.stopChan = make(chan struct{})
	go p.loop(p.stopChan)
}

// Stop terminates the ticker loop. Stopping an already stopped poller is a
// no-op.
func (p *Poller) Stop() {
	p.mtx.Lock()
	defer p.mtx.Unlock()

	if p.stopChan == nil {
		return
	}

	log.Debugf("poller %s: stop", p.name)
	close(p.stopChan)
	p.stopChan = nil
}

// IsRunning reports whether a ticker loop is live.
func (p *Poller) IsRunning() bool {
	p.mtx.Lock()
	defer p.mtx.Unlock()
	return p.stopChan != nil
}

func (p *Poller) loop(stopChan chan struct{}) {
	if p.immediate {
		p.run()
	}

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.run()
		case <-stopChan:
			return
		}
	}
}

func (p *Poller) run() {
	if p.rateLimiter != nil {
		if err := p.rateLimiter.Wait(context.Background()); err != nil {
			log.Warnf("poller %s: rate limiter: %s", p.name, err)
			return
		}
	}
	p.task()
}
