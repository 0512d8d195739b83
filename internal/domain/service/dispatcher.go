package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/noteminder/noteminder/internal/domain"
	"github.com/noteminder/noteminder/internal/domain/contract"
	"github.com/noteminder/noteminder/internal/logger"
)

type dispatchState int

const (
	dispatchStopped dispatchState = iota
	dispatchRunning
	dispatchPaused
)

const deliveryTimeout = 10 * time.Second

// dispatcher periodically queries the store for due occurrences and delivers
// each exactly once per generation cycle. It moves Stopped -> Running <->
// Paused -> Stopped; Stop is terminal for the instance.
type dispatcher struct {
	store      *occurrenceStore
	deliverers map[domain.Channel]contract.Deliverer
	interval   time.Duration
	nowFn      func() time.Time

	// checkMu is shared with the engine: a due-check pass and a store swap
	// (ReplaceAll) must never interleave, or a due occurrence could be lost
	// mid-delivery.
	checkMu *sync.Mutex

	mu       sync.Mutex
	state    dispatchState
	stopped  bool
	stopChan chan struct{}
}

func newDispatcher(store *occurrenceStore, deliverers map[domain.Channel]contract.Deliverer, interval time.Duration, nowFn func() time.Time, checkMu *sync.Mutex) *dispatcher {
	return &dispatcher{
		store:      store,
		deliverers: deliverers,
		interval:   interval,
		nowFn:      nowFn,
		checkMu:    checkMu,
		state:      dispatchStopped,
		stopChan:   make(chan struct{}),
	}
}

// Start performs an immediate due-check and begins periodic checks. Calling
// Start on a running dispatcher is a no-op; a stopped dispatcher stays
// stopped.
func (d *dispatcher) Start() {
	d.mu.Lock()
	if d.stopped || d.state != dispatchStopped {
		d.mu.Unlock()
		return
	}
	d.state = dispatchRunning
	d.mu.Unlock()

	logger.Log.Infof("Dispatcher starting with %s interval", d.interval)
	d.CheckDue()
	go d.loop()
}

// Stop cancels the periodic check permanently.
func (d *dispatcher) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	d.state = dispatchStopped
	close(d.stopChan)
	logger.Log.Info("Dispatcher stopped")
}

// Pause suspends firing. The ticker keeps running; due occurrences
// accumulate and are caught up in one immediate check on Resume.
func (d *dispatcher) Pause() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.state != dispatchRunning {
		return
	}
	d.state = dispatchPaused
	logger.Log.Info("Dispatcher paused")
}

// Resume lifts a pause and immediately checks for occurrences that came due
// during the paused interval.
func (d *dispatcher) Resume() {
	d.mu.Lock()
	if d.state != dispatchPaused {
		d.mu.Unlock()
		return
	}
	d.state = dispatchRunning
	d.mu.Unlock()

	logger.Log.Info("Dispatcher resumed, catching up on due occurrences")
	d.CheckDue()
}

func (d *dispatcher) IsPaused() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == dispatchPaused
}

func (d *dispatcher) IsRunning() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state == dispatchRunning
}

func (d *dispatcher) loop() {
	ticker := time.NewTicker(d.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if d.IsRunning() {
				d.CheckDue()
			}
		case <-d.stopChan:
			return
		}
	}
}

// CheckDue delivers every due occurrence and marks it fired. The pass runs
// to completion under checkMu, so a concurrent regeneration cannot swap the
// store contents out from under it.
func (d *dispatcher) CheckDue() int {
	d.checkMu.Lock()
	defer d.checkMu.Unlock()

	due := d.store.DueAsOf(d.nowFn())
	for _, occ := range due {
		d.deliverAll(occ.ID)
	}

	if len(due) > 0 {
		logger.Log.Infof("Dispatched %d due occurrence(s)", len(due))
	}
	return len(due)
}

// FireNow delivers one occurrence immediately, bypassing the due-time check.
func (d *dispatcher) FireNow(id string) error {
	d.mu.Lock()
	stopped := d.stopped
	d.mu.Unlock()
	if stopped {
		return domain.ErrDispatcherStopped
	}

	d.checkMu.Lock()
	defer d.checkMu.Unlock()

	if d.store.Get(id) == nil {
		return domain.ErrOccurrenceNotFound
	}
	d.deliverAll(id)
	return nil
}

// deliverAll attempts every channel of the occurrence independently, then
// marks it fired. Channel failures do not block other channels and do not
// prevent the fired flag; delivery is fire-and-forget with no retries.
func (d *dispatcher) deliverAll(id string) {
	occ := d.store.Get(id)
	if occ == nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), deliveryTimeout)
	defer cancel()

	for _, channel := range occ.Channels {
		deliverer, ok := d.deliverers[channel]
		if !ok {
			logger.Log.Debugf("No deliverer registered for channel %s, skipping", channel)
			continue
		}

		if err := deliverer.Deliver(ctx, occ); err != nil {
			if errors.Is(err, domain.ErrDeliveryUnsupported) {
				logger.Log.Debugf("Channel %s unsupported on this host", channel)
				continue
			}
			logger.Log.Errorf("Delivery on channel %s failed for occurrence %s: %v", channel, occ.ID, err)
		}
	}

	d.store.MarkFired(occ.ID)
}
