// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"sync"

	"code.hybscloud.com/iox"
)

// channel is the rendezvous kernel behind all four channel
// multiplicities. A single monitor (mu/cond) owns all channel state;
// shared ends bracket their monitor interaction with a FIFO [Mutex] so
// that at most one reader and at most one writer are ever inside.
//
// Unbuffered channels rendezvous through the value slot: a write
// deposits and parks until a read clears hasData. Buffered channels
// delegate occupancy to the store; the slot fields stay unused.
type channel[T any] struct {
	mu   sync.Mutex
	cond sync.Cond

	store Store[T] // nil for unbuffered channels

	value         T
	hasData       bool
	readerPresent bool
	extended      bool

	alt *Alternative

	poison        int
	readImmunity  int
	writeImmunity int

	readMutex  *Mutex
	writeMutex *Mutex

	serial Serial
	obs    Observer
}

func (c *channel[T]) init(cfg config[T], sharedRead, sharedWrite bool) {
	c.cond.L = &c.mu
	c.serial = nextSerial()
	c.obs = cfg.obs
	c.readImmunity = cfg.readImmunity
	c.writeImmunity = cfg.writeImmunity
	if cfg.store != nil {
		c.store = cfg.store.Clone()
	}
	if sharedRead {
		c.readMutex = NewMutex()
	}
	if sharedWrite {
		c.writeMutex = NewMutex()
	}
}

func (c *channel[T]) poisonError() error {
	return &PoisonError{Strength: c.poison}
}

func (c *channel[T]) readPoisoned() bool {
	return c.poison > c.readImmunity
}

func (c *channel[T]) writePoisoned() bool {
	return c.poison > c.writeImmunity
}

// readReady reports whether a read could take a value right now.
// Caller holds the monitor.
func (c *channel[T]) readReady() bool {
	if c.store != nil {
		return c.store.State() != StoreEmpty
	}
	return c.hasData
}

func (c *channel[T]) spurious(site WaitSite) {
	if c.obs != nil {
		c.obs.SpuriousWakeup(c.serial, site)
	}
}

// deposited signals the read side after a value arrives: a registered
// alternative is scheduled instead of an ordinary notify.
// Caller holds the monitor.
func (c *channel[T]) deposited() {
	if c.alt != nil {
		c.alt.schedule()
	} else {
		c.cond.Broadcast()
	}
}

// Write delivers v to the channel. On an unbuffered channel it returns
// only after a reader has taken v (for an extended rendezvous, only
// after the matching EndRead). On a buffered channel it returns once the
// store accepted v, parking first while the store is full.
func (c *channel[T]) Write(v T) error {
	if c.writeMutex != nil {
		c.writeMutex.Claim()
		defer c.writeMutex.Release()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writePoisoned() {
		return c.poisonError()
	}
	if c.store != nil {
		for c.store.State() == StoreFull {
			c.cond.Wait()
			if c.writePoisoned() {
				return c.poisonError()
			}
			if c.store.State() == StoreFull {
				c.spurious(SiteWrite)
			}
		}
		c.store.Put(v)
		c.deposited()
		return nil
	}
	c.value = v
	c.hasData = true
	c.deposited()
	for c.hasData {
		if c.writePoisoned() && !c.extended {
			// The deposit was never taken; retract it so the channel
			// is left consistent.
			var zero T
			c.value = zero
			c.hasData = false
			return c.poisonError()
		}
		c.cond.Wait()
		if c.hasData && !c.writePoisoned() {
			c.spurious(SiteWrite)
		}
	}
	return nil
}

// TryWrite is the non-blocking form of Write. It returns
// [code.hybscloud.com/iox.ErrWouldBlock] when Write would park: on an
// unbuffered channel, unless a reader is already committed and waiting;
// on a buffered channel, while the store is full.
//
// TryWrite bypasses the shared-end arrival queue: on shared write ends
// it competes directly for the monitor instead of claiming the FIFO
// [Mutex], which a parked writer may hold indefinitely.
func (c *channel[T]) TryWrite(v T) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.writePoisoned() {
		return c.poisonError()
	}
	if c.store != nil {
		if c.store.State() == StoreFull {
			return iox.ErrWouldBlock
		}
		c.store.Put(v)
		c.deposited()
		return nil
	}
	if c.hasData || !c.readerPresent {
		return iox.ErrWouldBlock
	}
	c.value = v
	c.hasData = true
	c.cond.Broadcast()
	return nil
}

// Read takes the next value from the channel, parking until one is
// available.
func (c *channel[T]) Read() (T, error) {
	var zero T
	if c.readMutex != nil {
		c.readMutex.Claim()
		defer c.readMutex.Release()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	for !c.readReady() {
		if c.readPoisoned() {
			return zero, c.poisonError()
		}
		c.readerPresent = true
		c.cond.Wait()
		c.readerPresent = false
		if !c.readReady() && !c.readPoisoned() {
			c.spurious(SiteRead)
		}
	}
	if c.readPoisoned() {
		return zero, c.poisonError()
	}
	if c.store != nil {
		v := c.store.Get()
		c.cond.Broadcast()
		return v, nil
	}
	v := c.value
	c.value = zero
	c.hasData = false
	c.cond.Broadcast()
	return v, nil
}

// TryRead is the non-blocking form of Read: it returns
// [code.hybscloud.com/iox.ErrWouldBlock] when no value is available.
// Like TryWrite, it bypasses the shared-end arrival queue.
func (c *channel[T]) TryRead() (T, error) {
	var zero T
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readPoisoned() {
		return zero, c.poisonError()
	}
	if !c.readReady() {
		return zero, iox.ErrWouldBlock
	}
	if c.store != nil {
		v := c.store.Get()
		c.cond.Broadcast()
		return v, nil
	}
	v := c.value
	c.value = zero
	c.hasData = false
	c.cond.Broadcast()
	return v, nil
}

// StartRead opens an extended rendezvous: it takes the next value but
// keeps the writer synchronized until [channel.EndRead]. On a shared
// read end the arrival mutex stays claimed until EndRead, so competing
// readers stay out of the whole region.
func (c *channel[T]) StartRead() (T, error) {
	var zero T
	if c.readMutex != nil {
		c.readMutex.Claim()
	}
	c.mu.Lock()
	for !c.readReady() {
		if c.readPoisoned() {
			err := c.poisonError()
			c.mu.Unlock()
			if c.readMutex != nil {
				c.readMutex.Release()
			}
			return zero, err
		}
		c.readerPresent = true
		c.cond.Wait()
		c.readerPresent = false
		if !c.readReady() && !c.readPoisoned() {
			c.spurious(SiteExtendedRead)
		}
	}
	if c.readPoisoned() {
		err := c.poisonError()
		c.mu.Unlock()
		if c.readMutex != nil {
			c.readMutex.Release()
		}
		return zero, err
	}
	var v T
	if c.store != nil {
		v = c.store.StartGet()
	} else {
		v = c.value
	}
	c.extended = true
	c.mu.Unlock()
	return v, nil
}

// EndRead closes the extended rendezvous opened by StartRead, releasing
// the writer. It completes normally even if the channel was poisoned
// inside the region; the poison is observed by the next operation.
func (c *channel[T]) EndRead() {
	c.mu.Lock()
	if !c.extended {
		c.mu.Unlock()
		panic("csp: EndRead without StartRead")
	}
	c.extended = false
	if c.store != nil {
		c.store.EndGet()
	} else {
		var zero T
		c.value = zero
		c.hasData = false
	}
	c.cond.Broadcast()
	c.mu.Unlock()
	if c.readMutex != nil {
		c.readMutex.Release()
	}
}

// Poison raises the channel's poison strength to at least strength and
// wakes every waiter, including a registered alternative. Poison is
// monotone and sticky: the strength never decreases and never clears.
// Strengths below 1 have no effect.
func (c *channel[T]) Poison(strength int) {
	if strength <= 0 {
		return
	}
	c.mu.Lock()
	if strength > c.poison {
		c.poison = strength
		if c.obs != nil {
			c.obs.Poisoned(c.serial, strength)
		}
	}
	c.cond.Broadcast()
	if c.alt != nil {
		c.alt.schedule()
	}
	c.mu.Unlock()
}

// Pending reports whether a Read would return without parking, either
// with a value or with a poison error.
func (c *channel[T]) Pending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.readReady() || c.readPoisoned()
}

// enable implements [Guard]. It reports the read end ready, or registers
// a for scheduling when a value or poison arrives.
func (c *channel[T]) enable(a *Alternative) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.readMutex != nil {
		panic("csp: cannot mount a guard on a shared read end")
	}
	if c.readReady() || c.readPoisoned() {
		return true
	}
	if c.alt != nil && c.alt != a {
		panic("csp: channel already registered with another alternative")
	}
	c.alt = a
	return false
}

// disable implements [Guard]. It removes the alternative registration
// and reports whether the read end is ready now.
func (c *channel[T]) disable() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.alt = nil
	return c.readReady() || c.readPoisoned()
}
