// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp

import "golang.org/x/sync/errgroup"

// Process is a sequential unit of execution. Run executes the process
// body to completion and returns its terminal error, if any; a
// [*PoisonError] conventionally means the process shut down gracefully
// after poisoning swept its channels.
type Process interface {
	Run() error
}

// ProcessFunc adapts a function to the [Process] interface.
type ProcessFunc func() error

// Run implements [Process].
func (f ProcessFunc) Run() error {
	return f()
}

// Parallel runs a set of processes concurrently and joins them.
type Parallel struct {
	procs []Process
}

// NewParallel returns a Parallel over the given processes.
func NewParallel(procs ...Process) *Parallel {
	return &Parallel{procs: procs}
}

// Run starts every process on its own goroutine and returns after all
// of them have returned. The first terminal error raised by a child is
// propagated; the remaining children are not preempted — they are
// expected to observe the same condition through their own channels
// (typically via poison) and terminate.
func (p *Parallel) Run() error {
	var g errgroup.Group
	for _, proc := range p.procs {
		g.Go(proc.Run)
	}
	return g.Wait()
}
