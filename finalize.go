// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

// Fini drains every shard by repeated TryDequeue until each reports
// empty, invoking releaseCB(ctx, obj, isForeign, isElement=true) once
// per drained object. If a user buffer was registered via
// [Pool.Populate], it is reported once first, with isElement=false and
// obj set to the buffer itself, before any per-object reports (spec.md
// §4.4).
//
// Fini is infallible once a valid Pool exists; it performs no
// user-observable error except via releaseCB. After Fini returns, the
// Pool is in its zero-initialized state and must not be used again —
// calling Fini twice on an already-drained Pool is a documented no-op
// (spec.md §8's idempotence law), since the second call finds no
// shards and no registered buffer left to report.
func (p *Pool[T]) Fini(ctx any, releaseCB ReleaseFunc[T]) {
	if p.userBufferRegistered && !p.userBufferReported {
		releaseCB(ctx, p.userBuffer, true, false)
		p.userBufferReported = true
	}

	for _, s := range p.shards {
		for {
			c, ok := s.TryDequeue()
			if !ok {
				break
			}
			releaseCB(ctx, c.obj, c.origin != originSelfManaged, true)
		}
	}

	p.shards = nil
	p.totalObjects = 0
	p.perShardCapacity = 0
	p.asymmetry = 0
	p.allocStrategy = allocSmall
	p.ownedObjectsInSlot = false
	p.userBufferRegistered = false
	p.userBufferReported = false
	p.userBuffer = nil
}
