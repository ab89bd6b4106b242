// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package csp_test

import (
	"testing"

	"code.hybscloud.com/csp"
)

func TestBufferFIFO(t *testing.T) {
	b := csp.NewBuffer[int](3)
	if got := b.State(); got != csp.StoreEmpty {
		t.Fatalf("state got %v, want %v", got, csp.StoreEmpty)
	}
	b.Put(1)
	b.Put(2)
	if got := b.State(); got != csp.StoreNonEmptyFull {
		t.Fatalf("state got %v, want %v", got, csp.StoreNonEmptyFull)
	}
	b.Put(3)
	if got := b.State(); got != csp.StoreFull {
		t.Fatalf("state got %v, want %v", got, csp.StoreFull)
	}
	for want := 1; want <= 3; want++ {
		if got := b.Get(); got != want {
			t.Fatalf("get got %d, want %d", got, want)
		}
	}
	if got := b.State(); got != csp.StoreEmpty {
		t.Fatalf("state after drain got %v, want %v", got, csp.StoreEmpty)
	}
}

func TestBufferWraps(t *testing.T) {
	b := csp.NewBuffer[int](2)
	b.Put(1)
	b.Put(2)
	if got := b.Get(); got != 1 {
		t.Fatalf("get got %d, want 1", got)
	}
	b.Put(3)
	if got := b.Get(); got != 2 {
		t.Fatalf("get got %d, want 2", got)
	}
	if got := b.Get(); got != 3 {
		t.Fatalf("get got %d, want 3", got)
	}
}

func TestBufferPanicsOnMisuse(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on get from empty buffer")
		}
	}()
	csp.NewBuffer[int](1).Get()
}

func TestBufferExtendedGet(t *testing.T) {
	b := csp.NewBuffer[int](2)
	b.Put(7)
	if got := b.StartGet(); got != 7 {
		t.Fatalf("startGet got %d, want 7", got)
	}
	// The value stays until EndGet.
	if got := b.State(); got != csp.StoreNonEmptyFull {
		t.Fatalf("state got %v, want %v", got, csp.StoreNonEmptyFull)
	}
	b.EndGet()
	if got := b.State(); got != csp.StoreEmpty {
		t.Fatalf("state got %v, want %v", got, csp.StoreEmpty)
	}
}

func TestInfiniteBufferNeverFull(t *testing.T) {
	b := csp.NewInfiniteBuffer[int]()
	for i := 0; i < 1000; i++ {
		b.Put(i)
		if got := b.State(); got == csp.StoreFull {
			t.Fatalf("infinite buffer reported full after %d puts", i+1)
		}
	}
	for want := 0; want < 1000; want++ {
		if got := b.Get(); got != want {
			t.Fatalf("get got %d, want %d", got, want)
		}
	}
}

func TestOverwriteOldest(t *testing.T) {
	b := csp.NewOverwriteOldestBuffer[int](3)
	for i := 1; i <= 5; i++ {
		b.Put(i)
	}
	if got := b.State(); got == csp.StoreFull {
		t.Fatalf("overwriting buffer reported full")
	}
	// 1 and 2 were overwritten.
	for want := 3; want <= 5; want++ {
		if got := b.Get(); got != want {
			t.Fatalf("get got %d, want %d", got, want)
		}
	}
}

func TestOverwriteNewest(t *testing.T) {
	b := csp.NewOverwriteNewestBuffer[int](3)
	for i := 1; i <= 5; i++ {
		b.Put(i)
	}
	// 3 was replaced by 4, then 4 by 5.
	for _, want := range []int{1, 2, 5} {
		if got := b.Get(); got != want {
			t.Fatalf("get got %d, want %d", got, want)
		}
	}
}

func TestOverwriteOldestDuringExtendedGet(t *testing.T) {
	b := csp.NewOverwriteOldestBuffer[int](2)
	b.Put(1)
	b.Put(2)
	if got := b.StartGet(); got != 1 {
		t.Fatalf("startGet got %d, want 1", got)
	}
	// Overwrites the reserved element; the reader's copy is unaffected
	// and EndGet must not remove anything.
	b.Put(3)
	b.EndGet()
	for _, want := range []int{2, 3} {
		if got := b.Get(); got != want {
			t.Fatalf("get got %d, want %d", got, want)
		}
	}
	if got := b.State(); got != csp.StoreEmpty {
		t.Fatalf("state got %v, want %v", got, csp.StoreEmpty)
	}
}

func TestOverwriteNewestCapacityOneExtendedGet(t *testing.T) {
	b := csp.NewOverwriteNewestBuffer[int](1)
	b.Put(1)
	if got := b.StartGet(); got != 1 {
		t.Fatalf("startGet got %d, want 1", got)
	}
	b.Put(2)
	b.EndGet()
	if got := b.Get(); got != 2 {
		t.Fatalf("get got %d, want 2", got)
	}
}

func TestCloneIsEmptyAndIndependent(t *testing.T) {
	b := csp.NewBuffer[int](2)
	b.Put(9)
	c := b.Clone()
	if got := c.State(); got != csp.StoreEmpty {
		t.Fatalf("clone state got %v, want %v", got, csp.StoreEmpty)
	}
	c.Put(1)
	c.Put(2)
	if got := c.State(); got != csp.StoreFull {
		t.Fatalf("clone state got %v, want %v (capacity not preserved)", got, csp.StoreFull)
	}
	if got := b.Get(); got != 9 {
		t.Fatalf("original got %d, want 9", got)
	}
}

func TestZeroBuffer(t *testing.T) {
	b := csp.NewZeroBuffer[int]()
	if got := b.State(); got != csp.StoreEmpty {
		t.Fatalf("state got %v, want %v", got, csp.StoreEmpty)
	}
	b.Put(5)
	if got := b.State(); got != csp.StoreFull {
		t.Fatalf("state got %v, want %v", got, csp.StoreFull)
	}
	if got := b.Get(); got != 5 {
		t.Fatalf("get got %d, want 5", got)
	}
}
