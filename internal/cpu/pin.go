// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package cpu provides a fast "which CPU am I running on" query for
// shard routing, ported from the Go runtime's own per-P sharding
// mechanism (the same one backing sync.Pool).
//
// Go has no user-visible equivalent of raw_smp_processor_id(): the OS
// thread underlying a goroutine can migrate between real CPUs at any
// preemption point. What the runtime does expose is the goroutine's
// current P (logical processor, 0..GOMAXPROCS(0)-1), which serves the
// same purpose here — it is the unit the runtime schedules goroutines
// onto without cross-core contention, and sync.Pool shards on exactly
// this value for exactly this reason.
package cpu

import (
	"runtime"
	_ "unsafe" // for go:linkname
)

// Pin associates the calling goroutine with its current P for the
// duration of a single pool operation and disables preemption so the
// returned index cannot go stale mid-operation. The caller must call
// Unpin when done; Pin/Unpin pairs nest (an inner Pin returns the same
// P, and preemption stays disabled until the outermost Unpin).
//
// The returned index is always < NumShards() at the time of the call.
func Pin() int {
	return runtime_procPin()
}

// Unpin releases a pin acquired by Pin.
func Unpin() {
	runtime_procUnpin()
}

// NumShards returns the shard count a pool created "now" should
// allocate. It is runtime.GOMAXPROCS(0) at the time of the call. Pools
// snapshot this once at Init; if GOMAXPROCS is raised later, Pin() can
// return an index at or beyond that snapshot, which is why Pool reduces
// the index modulo its shard count in its shard walk.
func NumShards() int {
	return runtime.GOMAXPROCS(0)
}

// These bind to the same unexported runtime entry points sync.Pool
// itself uses for per-P sharding. There is no exported stdlib API for
// this; every Go library (including the standard library) that shards
// by CPU without a full mutex goes through this door.
//
//go:linkname runtime_procPin sync.runtime_procPin
func runtime_procPin() int

//go:linkname runtime_procUnpin sync.runtime_procUnpin
func runtime_procUnpin()
