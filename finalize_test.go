// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

import "testing"

func TestFiniReportsEverySeededObjectExactlyOnce(t *testing.T) {
	const total = 64
	p, err := Init[record](total, 0, AllocHintNormal)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	seen := make(map[int]int)
	p.Fini(nil, func(ctx any, obj any, isForeign, isElement bool) {
		if !isElement {
			t.Fatalf("unexpected buffer report on a pool with no user buffer")
		}
		if isForeign {
			t.Fatalf("self-managed object reported as foreign")
		}
		seen[0]++
	})
	if seen[0] != total {
		t.Fatalf("Fini reported %d objects, want %d", seen[0], total)
	}
}

func TestFiniIsIdempotentOnDrainedPool(t *testing.T) {
	p, err := Init[record](4, 0, AllocHintNormal)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}

	p.Fini(nil, func(ctx any, obj any, isForeign, isElement bool) {})

	calls := 0
	p.Fini(nil, func(ctx any, obj any, isForeign, isElement bool) {
		calls++
	})
	if calls != 0 {
		t.Fatalf("Fini on an already-finalized pool invoked the callback %d times, want 0", calls)
	}
}

func TestFiniAfterPartialAcquireOnlyReportsResidentObjects(t *testing.T) {
	p, err := Init[record](4, 0, AllocHintNormal)
	if err != nil {
		t.Fatalf("Init: %v", err)
	}
	if _, err := p.Acquire(); err != nil {
		t.Fatalf("Acquire: %v", err)
	}

	calls := 0
	p.Fini(nil, func(ctx any, obj any, isForeign, isElement bool) {
		calls++
	})
	if calls != 3 {
		t.Fatalf("Fini reported %d resident objects, want 3 (one was still acquired)", calls)
	}
}
