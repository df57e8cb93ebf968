// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import (
	"errors"
	"sync"
	"testing"
)

func TestNewPanicsOnNonPow2(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("New(3) did not panic")
		}
	}()
	New[int](3)
}

func TestEnqueueDequeueFIFOIsh(t *testing.T) {
	s := New[int](4)
	for i := 0; i < 4; i++ {
		s.Enqueue(100 + i)
	}
	for i := 0; i < 4; i++ {
		v, ok := s.TryDequeue()
		if !ok {
			t.Fatalf("TryDequeue(%d): not ok", i)
		}
		if v != 100+i {
			t.Fatalf("TryDequeue(%d) = %d, want %d", i, v, 100+i)
		}
	}
	if _, ok := s.TryDequeue(); ok {
		t.Fatal("TryDequeue on empty slot returned ok")
	}
}

func TestTryEnqueueFull(t *testing.T) {
	s := New[int](4)
	for i := 0; i < 4; i++ {
		if err := s.TryEnqueue(i); err != nil {
			t.Fatalf("TryEnqueue(%d): %v", i, err)
		}
	}
	if err := s.TryEnqueue(999); !errors.Is(err, ErrFull) {
		t.Fatalf("TryEnqueue on full: got %v, want ErrFull", err)
	}
}

// TestCounterWrap starts tail/head just below the 64-bit boundary and
// carries them across it, verifying the epoch-tag comparison keeps
// working when the counters wrap.
func TestCounterWrap(t *testing.T) {
	s := New[int](4)
	s.head.StoreRelaxed(^uint64(0) - 8)
	s.tail.StoreRelaxed(^uint64(0) - 8)
	const rounds = 1 << 17 // many passes over the 4-entry ring after the wrap
	for r := 0; r < rounds; r++ {
		s.Enqueue(r)
		v, ok := s.TryDequeue()
		if !ok || v != r {
			t.Fatalf("round %d: got (%d, %v), want (%d, true)", r, v, ok, r)
		}
	}
}

// TestConcurrentMPMC stresses concurrent TryEnqueue/TryDequeue from many
// goroutines and checks conservation: every enqueued value is dequeued
// exactly once.
func TestConcurrentMPMC(t *testing.T) {
	const capacity = 64
	const perProducer = 2000
	const producers = 8
	s := New[int](capacity)

	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				v := base*perProducer + i
				for s.TryEnqueue(v) != nil {
					// backpressure: yield to consumers
				}
			}
		}(p)
	}

	total := producers * perProducer
	seen := make([]bool, total)
	var seenMu sync.Mutex
	var consumerWg sync.WaitGroup
	done := make(chan struct{})
	for c := 0; c < 4; c++ {
		consumerWg.Add(1)
		go func() {
			defer consumerWg.Done()
			for {
				select {
				case <-done:
					// Drain remainder before exiting.
					for {
						v, ok := s.TryDequeue()
						if !ok {
							return
						}
						seenMu.Lock()
						seen[v] = true
						seenMu.Unlock()
					}
				default:
					v, ok := s.TryDequeue()
					if ok {
						seenMu.Lock()
						seen[v] = true
						seenMu.Unlock()
					}
				}
			}
		}()
	}

	wg.Wait()
	close(done)
	consumerWg.Wait()

	for i, ok := range seen {
		if !ok {
			t.Fatalf("value %d never observed by any consumer", i)
		}
	}
}
