// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import (
	"code.hybscloud.com/atomix"
	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// mutexWaiterCapacity bounds the waiter queue. lfq rounds capacities up
// to a power of two; 1024 parked claimers per shared end is far beyond
// any realistic process count, and Claim retries with backoff if the
// queue is momentarily full.
const mutexWaiterCapacity = 1024

// Mutex is the fair binary semaphore that linearizes competing readers
// or competing writers on a shared channel end. Waiters are served
// strictly in queue order, independent of the runtime's lock queueing
// discipline.
//
// Claim and Release are not reentrant and must be paired by the same
// process.
type Mutex struct {
	claims  atomix.Uint32
	waiters lfq.Queue[chan struct{}]
}

// NewMutex returns an unclaimed Mutex.
func NewMutex() *Mutex {
	return &Mutex{waiters: lfq.NewMPSC[chan struct{}](mutexWaiterCapacity)}
}

// Claim blocks until the calling process holds the mutex.
// Contending claimers are granted ownership in arrival order.
func (m *Mutex) Claim() {
	if m.claims.Add(1) == 1 {
		return
	}
	gate := make(chan struct{})
	var bo iox.Backoff
	for m.waiters.Enqueue(&gate) != nil {
		bo.Wait()
	}
	<-gate
}

// Release passes ownership to the longest-waiting claimer, or unlocks
// the mutex if none is waiting.
func (m *Mutex) Release() {
	if m.claims.Add(^uint32(0)) == 0 {
		return
	}
	// A claimer has incremented the counter but may not have enqueued
	// its gate yet; spin past the gap.
	var bo iox.Backoff
	for {
		gate, err := m.waiters.Dequeue()
		if err == nil {
			close(gate)
			return
		}
		bo.Wait()
	}
}
