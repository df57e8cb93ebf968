// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package cpu

import (
	"sync"
	"testing"
)

func TestPinWithinRange(t *testing.T) {
	n := NumShards()
	id := Pin()
	defer Unpin()
	if id < 0 || id >= n {
		t.Fatalf("Pin() = %d, want in [0, %d)", id, n)
	}
}

func TestPinUnpinNested(t *testing.T) {
	id1 := Pin()
	id2 := Pin()
	if id2 < 0 || id2 >= NumShards() {
		t.Fatalf("nested Pin() = %d out of range", id2)
	}
	Unpin()
	_ = id1
	Unpin()
}

func TestPinConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	n := NumShards()
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				id := Pin()
				if id < 0 || id >= n {
					Unpin()
					t.Errorf("Pin() = %d, want in [0, %d)", id, n)
					return
				}
				Unpin()
			}
		}()
	}
	wg.Wait()
}
