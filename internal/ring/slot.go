// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package ring

import (
	"errors"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
)

// ErrFull is returned by TryEnqueue when the ring cannot accept another
// entry without exceeding capacity.
var ErrFull = errors.New("ring: slot full")

// Slot is a fixed-capacity bounded-array MPMC ring. It is the per-CPU
// shard body of an object pool: concurrent producers and consumers on
// the same Slot never block, never allocate, and are safe to call
// re-entrantly (a goroutine preempted mid-operation, then resumed
// alongside another goroutine already inside Enqueue/Dequeue on the
// same Slot, cannot corrupt the ring).
//
// head and tail are monotonically increasing counters that wrap; all
// comparisons are by equality or by unsigned difference, never by
// ordering the wrapped value itself.
type Slot[T any] struct {
	_        pad
	head     atomix.Uint64
	_        pad
	tail     atomix.Uint64
	_        pad
	entries  []T
	ages     []atomix.Uint64
	capacity uint64
	mask     uint64
}

type pad [64]byte

// New creates a Slot with the given capacity, which must already be a
// power of two (capacity derivation, including the cache-line floor and
// power-of-two rounding, is the Pool's responsibility — Slot itself has
// no opinion on object size).
//
// Counters start at capacity rather than zero: the first index a
// producer reserves is capacity&mask, and it stamps ages[i] with the
// reserved counter value (capacity). Since ages is zero-initialized,
// capacity can never equal zero for any real capacity, so a consumer
// racing a producer's very first reservation can never mistake an
// unwritten slot for a stale-but-valid one.
func New[T any](capacity uint64) *Slot[T] {
	if capacity == 0 || capacity&(capacity-1) != 0 {
		panic("ring: capacity must be a power of two")
	}
	s := &Slot[T]{
		entries:  make([]T, capacity),
		ages:     make([]atomix.Uint64, capacity),
		capacity: capacity,
		mask:     capacity - 1,
	}
	s.head.StoreRelaxed(capacity)
	s.tail.StoreRelaxed(capacity)
	return s
}

// Cap returns the slot's capacity.
func (s *Slot[T]) Cap() int {
	return int(s.capacity)
}

// Enqueue adds obj unconditionally. It must only be called where the
// caller has already proven the ring cannot be full — the object pool
// calls it only where this ring's own capacity covers every object it
// could hold: during Init's self-managed seeding (each shard receives at
// most its even share) and from Release when the pool's total object
// count does not exceed a single shard's capacity.
func (s *Slot[T]) Enqueue(obj T) {
	k := s.tail.AddAcqRel(1) - 1
	i := k & s.mask
	s.entries[i] = obj
	s.ages[i].StoreRelease(k)
}

// TryEnqueue adds obj, returning ErrFull if the ring is at capacity.
func (s *Slot[T]) TryEnqueue(obj T) error {
	sw := spin.Wait{}
	for {
		tail := s.tail.LoadAcquire()
		head := s.head.LoadAcquire()
		if tail-head >= s.capacity {
			return ErrFull
		}
		if s.tail.CompareAndSwapAcqRel(tail, tail+1) {
			i := tail & s.mask
			s.entries[i] = obj
			s.ages[i].StoreRelease(tail)
			return nil
		}
		sw.Once()
	}
}

// TryDequeue removes and returns an entry. The second return value is
// false when the ring is empty, or when a racing producer's
// reservation is mid-flight and cannot yet be observed as complete —
// in both cases the caller is expected to fall back to another shard
// rather than spin here.
func (s *Slot[T]) TryDequeue() (T, bool) {
	head := s.head.LoadAcquire()
	for {
		if head == s.tail.LoadAcquire() {
			var zero T
			return zero, false
		}

		i := head & s.mask
		age := s.ages[i].LoadAcquire()

		if age == head {
			val := s.entries[i]
			if s.head.CompareAndSwapAcqRel(head, head+1) {
				return val, true
			}
		}

		newHead := s.head.LoadAcquire()
		if newHead == head {
			var zero T
			return zero, false
		}
		head = newHead
	}
}
