// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/csp"
)

func TestMutexExcludes(t *testing.T) {
	m := csp.NewMutex()
	const workers = 8
	const rounds = 1000

	var inside, max, total int
	var check sync.Mutex
	var wg sync.WaitGroup
	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for i := 0; i < rounds; i++ {
				m.Claim()
				check.Lock()
				inside++
				if inside > max {
					max = inside
				}
				total++
				check.Unlock()
				check.Lock()
				inside--
				check.Unlock()
				m.Release()
			}
		}()
	}
	wg.Wait()
	if max != 1 {
		t.Fatalf("max claimers inside got %d, want 1", max)
	}
	if total != workers*rounds {
		t.Fatalf("total rounds got %d, want %d", total, workers*rounds)
	}
}

func TestMutexServesWaitersInArrivalOrder(t *testing.T) {
	m := csp.NewMutex()
	m.Claim()

	const waiters = 3
	var order []int
	var mu sync.Mutex
	var wg sync.WaitGroup
	wg.Add(waiters)
	for i := 0; i < waiters; i++ {
		go func(id int) {
			defer wg.Done()
			m.Claim()
			mu.Lock()
			order = append(order, id)
			mu.Unlock()
			m.Release()
		}(i)
		// Space arrivals out so the enqueue order is the spawn order.
		time.Sleep(30 * time.Millisecond)
	}

	m.Release()
	wg.Wait()
	for i, id := range order {
		if id != i {
			t.Fatalf("grant order got %v, want [0 1 2]", order)
		}
	}
}
