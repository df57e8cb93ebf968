// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package objpool

// decideAllocStrategy picks, once at Init, which allocation path a
// shard's storage was conceptually built with.
//
// The original C implementation branches between a small-object slab
// allocator (GFP_ATOMIC-safe, used unconditionally when the caller's
// context forbids reclaim) and vmalloc_node, a large node-local mapping
// used only when the shard is big enough to matter and the context can
// tolerate it. Go's allocator has no reclaim-forbidding mode and no
// user-visible NUMA-local arena, so both branches currently resolve to
// a plain make(); the decision point and its inputs are kept so the
// contract — and a future NUMA-aware allocator hook — are preserved.
func decideAllocStrategy(hint AllocHint, perShardCapacity int, cellSize int) allocStrategy {
	if hint == AllocHintNoReclaim {
		return allocSmall
	}
	shardBytes := perShardCapacity * cellSize
	if shardBytes <= pageSize {
		return allocSmall
	}
	return allocLarge
}
