package service

import (
	"context"
	"sync"
	"time"

	"github.com/noteminder/noteminder/internal/logger"
)

// rebuildCoordinator coalesces bursts of change events (document edits, rule
// saves) into a single Rebuild call after a quiet period. The debounce is
// the sole backpressure against change-event storms during bulk edits.
type rebuildCoordinator struct {
	engine *engineService
	quiet  time.Duration

	events   chan struct{}
	stopChan chan struct{}

	mu      sync.Mutex
	running bool
	stopped bool
}

func newRebuildCoordinator(engine *engineService, quiet time.Duration) *rebuildCoordinator {
	return &rebuildCoordinator{
		engine:   engine,
		quiet:    quiet,
		events:   make(chan struct{}, 1),
		stopChan: make(chan struct{}),
	}
}

func (c *rebuildCoordinator) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.running || c.stopped {
		return
	}
	c.running = true
	go c.loop()
}

func (c *rebuildCoordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stopped {
		return
	}
	c.stopped = true
	c.running = false
	close(c.stopChan)
}

// Notify records a change event. Non-blocking: while a rebuild is already
// pending, additional events only extend the quiet window.
func (c *rebuildCoordinator) Notify() {
	select {
	case c.events <- struct{}{}:
	default:
		// An event is already pending; the loop will pick it up.
	}
}

func (c *rebuildCoordinator) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time

	for {
		select {
		case <-c.events:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(c.quiet)
			timerC = timer.C

		case <-timerC:
			timer = nil
			timerC = nil
			if _, err := c.engine.Rebuild(context.Background()); err != nil {
				logger.Log.Errorf("Debounced rebuild failed: %v", err)
			}

		case <-c.stopChan:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}
