// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"sync"
	"time"
)

// Guard is an event an [Alternative] can wait upon: a channel read end,
// a timeout, or an always-ready skip. Guards are created by [Timeout],
// [Skip], or by using an [AltingChannelInput] directly.
//
// A Guard belongs to the process mounting the Alternative; the same
// Guard must not be mounted in two Alternatives at once.
type Guard interface {
	// enable registers a with the guard's event source. It reports
	// true if the event is already ready, in which case no
	// registration takes place.
	enable(a *Alternative) bool

	// disable removes the registration made by enable and reports
	// whether the event is ready now.
	disable() bool
}

type altState uint8

const (
	altIdle altState = iota
	altEnabling
	altWaiting
	altReady
)

// Alternative waits for the first of several guards to become ready and
// returns its index. Guards are passed in a fixed order at construction;
// the selection policy decides among simultaneously ready guards:
//
//   - [Alternative.PriSelect] chooses the lowest-indexed ready guard.
//   - [Alternative.FairSelect] chooses the next ready guard after the
//     previously chosen index, scanning cyclically.
//   - [Alternative.Select] makes an arbitrary choice; this
//     implementation uses the fair rotation, so no guard starves under
//     sustained offered load.
//
// The selection protocol is two-phase: guards are enabled in policy
// order until one is ready or all are registered; if none is ready the
// Alternative parks until a writer deposits on a registered channel, a
// timeout fires, or poison arrives. Guards are then disabled in reverse
// enabling order and the choice is made among those ready.
//
// An Alternative may be reused for any number of selections, but never
// concurrently.
type Alternative struct {
	guards []Guard

	mu          sync.Mutex
	state       altState
	deadline    time.Time
	hasDeadline bool

	// wake carries at most one pending schedule token; it is drained
	// at the start of every selection cycle.
	wake chan struct{}

	favourite int
}

// NewAlternative returns an Alternative over the given guards.
// At least one guard is required.
func NewAlternative(guards ...Guard) *Alternative {
	if len(guards) == 0 {
		panic("csp: alternative requires at least one guard")
	}
	return &Alternative{
		guards: guards,
		wake:   make(chan struct{}, 1),
	}
}

// Select waits for a ready guard and returns its index, choosing
// arbitrarily among simultaneously ready guards. The choice rule is the
// fair rotation, so repeated selection under sustained load is unbiased.
func (a *Alternative) Select() int {
	return a.doSelect(false)
}

// PriSelect waits for a ready guard and returns the lowest index among
// those ready.
func (a *Alternative) PriSelect() int {
	return a.doSelect(true)
}

// FairSelect waits for a ready guard and returns the next ready index
// after the previously chosen one, scanning cyclically. Two guards that
// are both continuously ready are chosen alternately.
func (a *Alternative) FairSelect() int {
	return a.doSelect(false)
}

func (a *Alternative) doSelect(pri bool) int {
	n := len(a.guards)
	for {
		start := 0
		if !pri {
			start = a.favourite % n
		}

		// Drop any schedule token left over from a previous cycle.
		select {
		case <-a.wake:
		default:
		}

		a.mu.Lock()
		if a.state != altIdle {
			a.mu.Unlock()
			panic("csp: alternative selected concurrently")
		}
		a.state = altEnabling
		a.hasDeadline = false
		a.mu.Unlock()

		// Enable phase, in policy order. Short-circuits on the first
		// ready guard; the rest are never registered and are skipped
		// symmetrically in the disable phase.
		enabled := 0
		ready := false
		for i := 0; i < n && !ready; i++ {
			enabled++
			ready = a.guards[(start+i)%n].enable(a)
		}

		if ready {
			a.mu.Lock()
			a.state = altReady
			a.mu.Unlock()
		} else {
			a.mu.Lock()
			if a.state == altEnabling {
				a.state = altWaiting
				deadline, timed := a.deadline, a.hasDeadline
				a.mu.Unlock()
				if timed {
					t := time.NewTimer(time.Until(deadline))
					select {
					case <-a.wake:
					case <-t.C:
					}
					t.Stop()
				} else {
					<-a.wake
				}
				a.mu.Lock()
			}
			a.state = altReady
			a.mu.Unlock()
		}

		// Disable phase, in reverse enabling order. The final
		// assignment wins, which is the earliest ready guard in
		// policy order.
		selected := -1
		for i := enabled - 1; i >= 0; i-- {
			if a.guards[(start+i)%n].disable() {
				selected = (start + i) % n
			}
		}

		a.mu.Lock()
		a.state = altIdle
		a.mu.Unlock()

		if selected >= 0 {
			if !pri {
				a.favourite = (selected + 1) % n
			}
			return selected
		}
		// A plain read raced us to the value between wakeup and
		// disable; nothing is ready anymore, so go around again.
	}
}

// setDeadline records the earliest timeout deadline of the current
// selection cycle. Called by timeout guards during their enable.
func (a *Alternative) setDeadline(t time.Time) {
	a.mu.Lock()
	if !a.hasDeadline || t.Before(a.deadline) {
		a.deadline = t
		a.hasDeadline = true
	}
	a.mu.Unlock()
}

// schedule marks the Alternative ready and wakes it if it is parked.
// Called by channel kernels (with their monitor held) when a value or
// poison arrives on a registered guard.
func (a *Alternative) schedule() {
	a.mu.Lock()
	woken := a.state == altEnabling || a.state == altWaiting
	if woken {
		a.state = altReady
	}
	a.mu.Unlock()
	if woken {
		select {
		case a.wake <- struct{}{}:
		default:
		}
	}
}
