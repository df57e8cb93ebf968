// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

import (
	"fmt"
	"unsafe"

	"code.hybscloud.com/objpool/internal/cpu"
	"code.hybscloud.com/objpool/internal/ring"
)

// minShardCapacity floors every shard's ring at a conservative size so
// a shard still amortizes CAS contention across roughly a cache line
// even when Init is called with totalObjects 0 (the scatter-only
// provisioning path, where the real population size is only known to
// the caller via later ScatterAdd calls).
const minShardCapacity = 16

// objOrigin records which of the three populator shapes (spec.md §4.3)
// produced a given resident object. It travels with the object inside
// the ring as part of cell[T] (see below) rather than being recovered
// from the object's address the way the C original does, because Go
// copies T by value — there is no stable pointer identity to inspect
// at Fini time.
type objOrigin uint8

const (
	originSelfManaged objOrigin = iota
	originUserBufferElement
	originScatteredForeign
)

// cell is the value actually stored in each shard's ring. Wrapping T
// with its origin is the Go-native substitute for the C original's
// address-range membership test (in-slot / in-user-buffer / foreign):
// since T has no address identity once copied into the ring, the tag
// must travel alongside the value instead of being computed
// after the fact from a pointer.
//
// Once an object completes a public Acquire/Release round trip its
// origin collapses to originSelfManaged (see [Pool.Release]) — T's
// contract already requires callers to treat objects as fungible,
// uninitialized payloads between release and acquire, so Go cannot
// and need not preserve provenance through arbitrary churn. Objects
// that are never Released back through the public API (still resident
// from Init/Populate/ScatterAdd) keep their original tag, which is
// exactly what the non-churn scenarios in spec.md §8 exercise.
type cell[T any] struct {
	obj    T
	origin objOrigin
}

// Pool is a fixed-capacity, multi-producer/multi-consumer reservoir of
// pre-allocated T values, sharded one [ring.Slot] per logical P.
//
// A Pool is a plain value owned by its caller: nothing here is a
// package-level singleton, and an arbitrary number of independent Pools
// may coexist. It is built by [Init], optionally seeded further by
// [Pool.Populate] or [Pool.ScatterAdd] during a single-threaded
// initialization phase, and is then safe for concurrent [Pool.Acquire]
// and [Pool.Release] from any number of goroutines — including a
// goroutine's own Acquire being preempted and re-entered by another
// goroutine on the same or a different P — until [Pool.Fini].
type Pool[T any] struct {
	shards []*ring.Slot[cell[T]]

	// totalObjects tracks the running count of objects ever seeded
	// into the pool: the Init-time self-managed count, plus every
	// object accepted by Populate or ScatterAdd. It only mutates
	// during the single-threaded initialization phase and is read
	// (never written) once Acquire/Release begin.
	totalObjects     int
	perShardCapacity int
	asymmetry        int
	allocStrategy    allocStrategy

	// ownedObjectsInSlot records whether Init's self-managed path ever
	// ran (totalObjects > 0 at Init). It is bookkeeping only — Go's
	// ring storage is always co-allocated with its Slot regardless —
	// kept for parity with spec.md's field of the same name.
	ownedObjectsInSlot bool

	userBufferRegistered bool
	userBufferReported   bool
	userBuffer           []byte
}

// derivePerShardCapacity implements spec.md §4.2's capacity derivation:
// asymmetry 0 splits totalObjects evenly across shards, asymmetry 1
// sizes every shard to hold the whole pool, and any other value sizes
// each shard to totalObjects/asymmetry. The result is floored at
// minShardCapacity, rounded up to a power of two, and doubled again if
// the rounding left capacity*numShards short of totalObjects.
func derivePerShardCapacity(totalObjects, numShards, asymmetry int) int {
	// evenSplit is the minimum any regime may produce: selfManagedPopulate
	// always distributes totalObjects evenly across numShards regardless
	// of asymmetry, so a shard must be able to hold at least its even
	// share or self-managed seeding would overflow the ring. asymmetry
	// only ever widens a shard beyond this floor, to tolerate a single
	// consumer draining more than its even share.
	evenSplit := ceilDiv(totalObjects, numShards)

	var raw int
	switch {
	case asymmetry == 0:
		raw = evenSplit
	case asymmetry == 1:
		raw = totalObjects
	default:
		raw = ceilDiv(totalObjects, asymmetry)
	}
	if raw < evenSplit {
		raw = evenSplit
	}
	if raw < minShardCapacity {
		raw = minShardCapacity
	}
	capacity := roundToPow2(raw)
	for capacity*numShards < totalObjects {
		capacity <<= 1
	}
	return capacity
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}

// Init builds a Pool sized for totalObjects and, when totalObjects > 0,
// self-manages seeding it with zero-value T objects spread evenly
// across shards (spec.md §4.3.1). A totalObjects of 0 builds an empty,
// correctly-shaped pool intended to be seeded afterward via
// [Pool.Populate] or [Pool.ScatterAdd] (spec.md §4.3.2, §4.3.3).
//
// asymmetry selects the capacity-derivation regime described in
// [derivePerShardCapacity]; it must be in [0, totalObjects] or Init
// returns ErrInvalidArgument, per spec.md §9's resolution of that Open
// Question.
//
// hint signals whether the calling context can tolerate the large
// allocation path; see [AllocHint].
func Init[T any](totalObjects int, asymmetry int, hint AllocHint) (pool *Pool[T], err error) {
	if totalObjects < 0 {
		return nil, fmt.Errorf("objpool: init: %w: totalObjects must be >= 0, got %d", ErrInvalidArgument, totalObjects)
	}
	if asymmetry < 0 || asymmetry > totalObjects {
		return nil, fmt.Errorf("objpool: init: %w: asymmetry %d out of range [0, %d]", ErrInvalidArgument, asymmetry, totalObjects)
	}

	numShards := cpu.NumShards()
	if numShards < 1 {
		return nil, fmt.Errorf("objpool: init: %w: no shards available", ErrInvalidArgument)
	}

	// init's failures perform cleanup of any partially allocated
	// shards before returning (spec.md §7); in Go, a shard allocation
	// failure surfaces as a panic from make(), not an error return, so
	// recover converts it to ErrOutOfMemory. Partially built shards are
	// simply dropped along with the half-built Pool on this path —
	// there is nothing to explicitly free since nothing outside this
	// function ever observed them.
	defer func() {
		if r := recover(); r != nil {
			pool = nil
			err = fmt.Errorf("objpool: init: %w: %v", ErrOutOfMemory, r)
		}
	}()

	perShard := derivePerShardCapacity(totalObjects, numShards, asymmetry)

	shards := make([]*ring.Slot[cell[T]], numShards)
	for i := range shards {
		shards[i] = ring.New[cell[T]](uint64(perShard))
	}

	p := &Pool[T]{
		shards:           shards,
		totalObjects:     totalObjects,
		perShardCapacity: perShard,
		asymmetry:        asymmetry,
		allocStrategy:    decideAllocStrategy(hint, perShard, int(unsafe.Sizeof(cell[T]{}))),
	}
	if totalObjects > 0 {
		p.ownedObjectsInSlot = true
		p.selfManagedPopulate()
	}
	return p, nil
}

// Acquire hands out one object, or ErrEmpty if every shard reports
// empty after one full walk. Acquire starts at the caller's home shard
// and visits the remaining shards in a fixed forward order (spec.md §9
// resolves the direction-alternation Open Question in favor of plain
// forward walk). It is non-blocking, allocation-free, and safe to call
// re-entrantly from a goroutine that preempted another Acquire on the
// same Pool.
func (p *Pool[T]) Acquire() (T, error) {
	home := cpu.Pin()
	defer cpu.Unpin()

	n := len(p.shards)
	for i := 0; i < n; i++ {
		idx := (home + i) % n
		if c, ok := p.shards[idx].TryDequeue(); ok {
			return c.obj, nil
		}
	}
	var zero T
	return zero, ErrEmpty
}

// Release returns obj to the pool, starting at the caller's home shard
// and walking forward until a shard accepts it. Because sum-of-
// capacities is always >= the running total of seeded objects by
// construction, Release always succeeds in a finite walk; ErrFull
// signals a caller bug (typically a double-release) rather than
// genuine backpressure.
//
// When the running seeded total cannot exceed a single shard's
// capacity, Release uses the unconditional, always-succeeding
// [ring.Slot.Enqueue] on the home shard directly rather than walking
// (spec.md §4.2); otherwise it walks with [ring.Slot.TryEnqueue].
func (p *Pool[T]) Release(obj T) error {
	home := cpu.Pin()
	defer cpu.Unpin()

	c := cell[T]{obj: obj, origin: originSelfManaged}
	n := len(p.shards)

	// home can exceed len(p.shards) if GOMAXPROCS grew after Init
	// snapshotted the shard count (see internal/cpu.NumShards's doc);
	// it never shrinks, so a defensive modulo keeps every index in
	// bounds without needing to re-derive shards.
	if p.totalObjects <= p.perShardCapacity {
		p.shards[home%n].Enqueue(c)
		return nil
	}

	for i := 0; i < n; i++ {
		idx := (home + i) % n
		if err := p.shards[idx].TryEnqueue(c); err == nil {
			return nil
		}
	}
	return fmt.Errorf("objpool: release: %w", ErrFull)
}
