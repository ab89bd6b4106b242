// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "time"

// timeoutGuard becomes ready once a fixed delay after enabling has
// elapsed. The deadline is recomputed at every selection cycle.
type timeoutGuard struct {
	d        time.Duration
	deadline time.Time
}

// Timeout returns a [Guard] that becomes ready d after the selection
// begins. It is the sole deadline mechanism of an [Alternative]: there
// is no external cancellation.
func Timeout(d time.Duration) Guard {
	return &timeoutGuard{d: d}
}

func (g *timeoutGuard) enable(a *Alternative) bool {
	g.deadline = time.Now().Add(g.d)
	if g.d <= 0 {
		return true
	}
	a.setDeadline(g.deadline)
	return false
}

func (g *timeoutGuard) disable() bool {
	return !time.Now().Before(g.deadline)
}

// skipGuard is always ready.
type skipGuard struct{}

// Skip returns a [Guard] that is always ready. Mounted last under
// PriSelect it turns the selection into a poll.
func Skip() Guard {
	return skipGuard{}
}

func (skipGuard) enable(*Alternative) bool { return true }

func (skipGuard) disable() bool { return true }
