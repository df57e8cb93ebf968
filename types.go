// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

// ReleaseFunc is the user callback invoked once per object during Fini.
//
// ctx is the opaque value passed to Fini. obj is the object being
// reported: a T when isElement is true, or the registered user buffer
// itself (as the []byte originally passed to [Pool.Populate]) on the
// one isElement=false call. Mirroring obj's dual nature through a void*
// the way the C original's release_cb does would not type-check in
// Go, so obj is typed any and the caller switches on isElement to
// recover the concrete type — the same disambiguation the C callback
// performs by hand. isForeign reports whether obj's backing bytes live
// outside every shard's own allocation (a user buffer element or a
// scattered foreign object, as opposed to a shard-owned, self-managed
// object).
type ReleaseFunc[T any] func(ctx any, obj any, isForeign bool, isElement bool)

// AllocHint tells Init whether the calling context can tolerate a large,
// potentially reclaiming allocation for shard storage.
//
// It mirrors the C original's GFP_ATOMIC/GFP_KERNEL split: a caller
// running somewhere that must not sleep or trigger reclaim (the Go
// analogue being a context that must not be preempted for long, e.g.
// inside a signal handler or a latency-critical hot path at startup)
// passes AllocHintNoReclaim; everything else passes AllocHintNormal.
type AllocHint int

const (
	// AllocHintNormal allows the large/node-local allocation path when
	// shard size warrants it.
	AllocHintNormal AllocHint = iota
	// AllocHintNoReclaim forces the small-allocation path regardless of
	// shard size, because the caller's context cannot tolerate a
	// reclaiming allocator call.
	AllocHintNoReclaim
)

// allocStrategy records, once at Init, which allocation path a pool's
// shard storage was built with. It is never consulted again after
// Init returns — Go has no direct analogue to vmalloc_node/NUMA-local
// allocation, so both values currently resolve to a plain make(), but
// the decision point and its rationale are preserved for parity with
// the original contract and as a documented hook for a future
// NUMA-aware allocator.
type allocStrategy int

const (
	allocSmall allocStrategy = iota
	allocLarge
)

// pageSize approximates the system page granularity used to decide
// between the small and large allocation paths. The original compares
// against PAGE_SIZE; Go has no portable way to query it at runtime
// without cgo, so the conventional 4 KiB value used by every mainstream
// target architecture is used here.
const pageSize = 4096

// roundToPow2 rounds n up to the next power of two. n must be >= 1.
func roundToPow2(n int) int {
	if n <= 1 {
		return 1
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
