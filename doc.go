// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package objpool provides a scalable, lock-free, per-CPU object pool:
// a fixed-capacity multi-producer/multi-consumer reservoir of
// pre-allocated, fixed-size objects built to hand out and reclaim
// objects at very high concurrent rates from any goroutine, including
// ones that must not allocate or block on their hot path.
//
// The pool shards its storage one [internal/ring.Slot] per logical P
// (runtime.GOMAXPROCS), so that concurrent Acquire/Release traffic
// localizes to a core's own cache instead of contending on one shared
// lock-free stack. Each shard is a bounded-array MPMC ring, lock-free
// and wait-free on its fast path, immune to the ABA problem via a
// per-index epoch tag rather than a tagged pointer, and safe to call
// re-entrantly — a goroutine preempted mid-operation and resumed
// alongside another goroutine already inside an operation on the same
// Pool cannot corrupt it.
//
// # Basic use
//
//	p, err := objpool.Init[MyRecord](1024, 0, objpool.AllocHintNormal)
//	if err != nil {
//	    // handle ErrInvalidArgument / ErrOutOfMemory
//	}
//	obj, err := p.Acquire()
//	if objpool.IsEmpty(err) {
//	    // pool exhausted; caller decides fallback
//	}
//	// ... use obj ...
//	_ = p.Release(obj)
//	p.Fini(nil, func(ctx any, obj any, isForeign, isElement bool) {
//	    // obj is a MyRecord when isElement, or the registered
//	    // []byte buffer on the one isElement=false call
//	})
//
// # Initialization shapes
//
// A Pool is built by [Init], which — given totalObjects > 0 —
// self-manages seeding every shard with zero-value objects spread
// evenly across shards. A Pool can instead (or additionally) be seeded
// from a caller-owned byte buffer via [Pool.Populate], or one object at
// a time via [Pool.ScatterAdd]; both are initialization-time-only
// operations, not safe for concurrent use, and must complete before the
// first [Pool.Acquire].
//
// # Concurrency
//
// Acquire and Release never block, never allocate, and perform a
// bounded number of CAS attempts (at most numShards*perShardCapacity in
// the worst case, typically one or two). No operation returns anything
// but a value or one of the sentinel errors in this package — there is
// no internal retry-with-backoff; callers implement their own retry
// policy around ErrEmpty/ErrFull if they want one.
//
// No ordering guarantee is made between the order objects are released
// and the order they are later acquired — this is explicitly not a
// FIFO or LIFO structure, and fairness across concurrent acquirers is
// not guaranteed.
//
// # Non-goals
//
// FIFO ordering across producers, fairness between consumers, dynamic
// resizing after Init, freeing individual object memory before Fini,
// cross-pool object migration, and persistence are all out of scope.
package objpool
