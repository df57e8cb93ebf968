// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package ring implements the bounded-array MPMC ring that backs a
// single per-CPU shard of an object pool.
//
// Slot is a direct descendant of the sequence-number bounded queue
// (Enqueue/Dequeue via per-index epoch comparison, no tagged pointers,
// no double-width CAS) but departs from a general-purpose FIFO queue
// in three ways that matter for object-pool duty:
//
//   - Enqueue has an unconditional, always-succeeds form in addition to
//     the bounded TryEnqueue, for callers that have already proven the
//     ring cannot be full (the object pool uses it only where one
//     shard's capacity covers every object that shard could receive).
//   - TryDequeue never spins internally. A transient conflict with an
//     in-flight producer is reported as empty rather than retried,
//     because retrying belongs to the caller's shard walk, not to a
//     single shard.
//   - Epoch counters start at capacity, not zero, so that the first
//     batch of consumable entries can never collide with a freshly
//     zero-initialized epoch array.
package ring
