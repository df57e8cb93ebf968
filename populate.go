// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

import (
	"fmt"
	"unsafe"
)

// selfManagedPopulate seeds every shard with zero-value T objects at
// Init, spread as evenly as spec.md §4.3.1 prescribes: n_i =
// floor(total/numShards), +1 for the first (total mod numShards)
// shards. It uses the unconditional [ring.Slot.Enqueue] because Init
// has just built every shard to hold at least its share of
// totalObjects, so no shard can be full at this point.
func (p *Pool[T]) selfManagedPopulate() {
	var zero T
	numShards := len(p.shards)
	base := p.totalObjects / numShards
	rem := p.totalObjects % numShards
	for i := 0; i < numShards; i++ {
		n := base
		if i < rem {
			n++
		}
		for k := 0; k < n; k++ {
			p.shards[i].Enqueue(cell[T]{obj: zero, origin: originSelfManaged})
		}
	}
}

// Populate carves a caller-provided, pointer-aligned byte buffer into
// objects of size objectSize and scatters them across shards (spec.md
// §4.3.2). objectSize must equal T's size, and buf must be large
// enough for at least one object and aligned to T's alignment
// requirement; any violation returns ErrInvalidArgument. Populate is
// not safe for concurrent use and must only be called during the
// single-threaded initialization phase, before the first Acquire.
//
// Every carved object is reported once by [Pool.Fini] with
// isForeign=true, isElement=true; the buffer itself is reported once
// more, before the per-object reports, with isElement=false (spec.md
// §3's "in user buffer" ownership class).
//
// A Pool accepts at most one registered user buffer: calling Populate
// again after a buffer is already registered returns
// ErrInvalidArgument rather than silently replacing it, matching the
// original objpool_populate's rejection of a pool that already has a
// buffer attached.
func (p *Pool[T]) Populate(buf []byte, objectSize int) error {
	if p.userBufferRegistered {
		return fmt.Errorf("objpool: populate: %w: a user buffer is already registered on this pool", ErrInvalidArgument)
	}

	var zero T
	sz := int(unsafe.Sizeof(zero))

	if len(buf) == 0 || objectSize <= 0 {
		return fmt.Errorf("objpool: populate: %w: empty buffer or non-positive object size", ErrInvalidArgument)
	}
	if objectSize != sz {
		return fmt.Errorf("objpool: populate: %w: object size %d does not match %T size %d", ErrInvalidArgument, objectSize, zero, sz)
	}

	align := int(unsafe.Alignof(zero))
	if uintptr(unsafe.Pointer(&buf[0]))%uintptr(align) != 0 {
		return fmt.Errorf("objpool: populate: %w: buffer is not %d-byte aligned", ErrInvalidArgument, align)
	}

	n := len(buf) / objectSize
	if n == 0 {
		return fmt.Errorf("objpool: populate: %w: buffer too small for one object", ErrInvalidArgument)
	}

	numShards := len(p.shards)
	start := p.totalObjects % numShards
	for k := 0; k < n; k++ {
		obj := *(*T)(unsafe.Pointer(&buf[k*objectSize]))
		c := cell[T]{obj: obj, origin: originUserBufferElement}

		accepted := false
		for j := 0; j < numShards; j++ {
			idx := (start + k + j) % numShards
			if err := p.shards[idx].TryEnqueue(c); err == nil {
				accepted = true
				break
			}
		}
		if !accepted {
			return fmt.Errorf("objpool: populate: %w", ErrFull)
		}
	}

	p.userBufferRegistered = true
	p.userBuffer = buf
	p.totalObjects += n
	return nil
}

// ScatterAdd adds a single individually-allocated foreign object,
// rotating the starting shard by the running seeded count so repeated
// calls distribute evenly (spec.md §4.3.3). Like Populate, ScatterAdd
// is not safe for concurrent use and is valid only during
// initialization. It returns ErrFull once every shard has rejected the
// object — the pool is over-provisioned relative to its capacity.
func (p *Pool[T]) ScatterAdd(obj T) error {
	numShards := len(p.shards)
	if numShards == 0 {
		return fmt.Errorf("objpool: scatter_add: %w: pool not initialized", ErrInvalidArgument)
	}

	start := p.totalObjects % numShards
	c := cell[T]{obj: obj, origin: originScatteredForeign}
	for j := 0; j < numShards; j++ {
		idx := (start + j) % numShards
		if err := p.shards[idx].TryEnqueue(c); err == nil {
			p.totalObjects++
			return nil
		}
	}
	return fmt.Errorf("objpool: scatter_add: %w", ErrFull)
}
